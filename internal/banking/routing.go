// Package banking validates and normalizes the bank identifiers that the
// supported file formats carry: US ABA routing numbers, Canadian
// institution numbers, Australian BSBs, and IBANs.
package banking

import (
	"fmt"
	"strings"
)

// abaWeights are the per-position weights of the ABA check digit scheme.
var abaWeights = [9]int{3, 7, 1, 3, 7, 1, 3, 7, 1}

// ValidABARouting reports whether r is a 9-digit ABA routing number with a
// correct check digit.
func ValidABARouting(r string) bool {
	if len(r) != 9 {
		return false
	}
	sum := 0
	for i := 0; i < 9; i++ {
		c := r[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * abaWeights[i]
	}
	return sum%10 == 0
}

// SplitRouting separates a 9-digit routing number into its 8-digit DFI
// prefix and check digit.
func SplitRouting(r string) (prefix, check string, err error) {
	if len(r) != 9 {
		return "", "", fmt.Errorf("routing number %q is not 9 digits", r)
	}
	return r[:8], r[8:], nil
}

// NormalizeBSB accepts an Australian BSB as either NNN-NNN or NNNNNN and
// returns the canonical NNN-NNN form.
func NormalizeBSB(bsb string) (string, error) {
	digits := strings.ReplaceAll(bsb, "-", "")
	if len(digits) != 6 {
		return "", fmt.Errorf("BSB %q is not 6 digits", bsb)
	}
	for i := 0; i < 6; i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", fmt.Errorf("BSB %q contains a non-digit", bsb)
		}
	}
	return digits[:3] + "-" + digits[3:], nil
}
