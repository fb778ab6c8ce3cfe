package banking

import "strings"

// NormalizeIBAN strips spaces and upper-cases an IBAN for comparison and
// emission.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.ReplaceAll(iban, " ", ""))
}

// ValidIBAN reports whether iban passes the ISO 13616 mod-97 check.
func ValidIBAN(iban string) bool {
	s := NormalizeIBAN(iban)
	if len(s) < 5 || len(s) > 34 {
		return false
	}
	// Move the country code and check digits to the end, then compute the
	// remainder of the digit expansion mod 97.
	rearranged := s[4:] + s[:4]
	rem := 0
	for i := 0; i < len(rearranged); i++ {
		c := rearranged[i]
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			n := int(c-'A') + 10
			rem = (rem*100 + n) % 97
		default:
			return false
		}
	}
	return rem == 1
}

// IBANCountry returns the two-letter country prefix of an IBAN, or "" when
// the input is too short.
func IBANCountry(iban string) string {
	s := NormalizeIBAN(iban)
	if len(s) < 2 {
		return ""
	}
	return s[:2]
}
