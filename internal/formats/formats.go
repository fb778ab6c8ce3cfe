// Package formats is the entry point for batch payment file generation:
// it dispatches preflight validation and emission to the format families.
package formats

import (
	"fmt"
	"time"

	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/internal/formats/aba"
	"github.com/kevin07696/bankfile-service/internal/formats/cpa005"
	"github.com/kevin07696/bankfile-service/internal/formats/nacha"
	"github.com/kevin07696/bankfile-service/internal/formats/nzeft"
	"github.com/kevin07696/bankfile-service/internal/formats/sepa"
)

// Format identifies one supported payment file format.
type Format string

const (
	NACHA     Format = "nacha"
	CPA005    Format = "cpa005"
	ABA       Format = "aba"
	SEPA      Format = "sepa"
	NZANZ     Format = "nz_anz"
	NZBNZ     Format = "nz_bnz"
	NZASB     Format = "nz_asb"
	NZWestpac Format = "nz_westpac"
)

var nzBanks = map[Format]nzeft.Bank{
	NZANZ:     nzeft.BankANZ,
	NZBNZ:     nzeft.BankBNZ,
	NZASB:     nzeft.BankASB,
	NZWestpac: nzeft.BankWestpac,
}

// Result is a generated file: its content and the suggested filename.
type Result struct {
	Filename string
	Content  []byte
}

// Preflight runs the format's validation and returns the diagnostics as an
// error, or nil when the batch is emittable.
func Preflight(f Format, b *models.Batch) error {
	switch f {
	case NACHA:
		return nacha.Preflight(b).Err()
	case CPA005:
		return cpa005.Preflight(b).Err()
	case ABA:
		return aba.Preflight(b).Err()
	case SEPA:
		return sepa.Preflight(b, sepa.SelectVariant(b)).Err()
	case NZANZ, NZBNZ, NZASB, NZWestpac:
		return nzeft.Preflight(b, nzBanks[f]).Err()
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

// Generate validates b and emits it in format f. No bytes are produced
// when preflight fails.
func Generate(f Format, b *models.Batch, now time.Time) (*Result, error) {
	if err := Preflight(f, b); err != nil {
		return nil, err
	}

	var (
		content  []byte
		filename string
		err      error
	)
	switch f {
	case NACHA:
		content, err = nacha.Generate(b, now)
		filename = nacha.Filename(b, now)
	case CPA005:
		content, err = cpa005.Generate(b, now)
		filename = cpa005.Filename(b, now)
	case ABA:
		content, err = aba.Generate(b, now)
		filename = aba.Filename(b, now)
	case SEPA:
		content, err = sepa.Generate(b, sepa.SelectVariant(b), now)
		filename = sepa.Filename(b, now)
	case NZANZ, NZBNZ, NZASB, NZWestpac:
		bank := nzBanks[f]
		content, err = nzeft.Generate(b, bank, now)
		filename = nzeft.Filename(b, bank, now)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
	if err != nil {
		return nil, err
	}
	return &Result{Filename: filename, Content: content}, nil
}
