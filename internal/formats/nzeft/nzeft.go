// Package nzeft writes New Zealand EFT batch files. The four supported
// banks take CSV-derived layouts that share the same row vocabulary but
// disagree on column order and header content, so one composer is
// parameterized by a per-bank table.
package nzeft

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/pkg/fieldenc"
)

// Bank selects the receiving bank's layout.
type Bank string

const (
	BankANZ     Bank = "ANZ"
	BankBNZ     Bank = "BNZ"
	BankASB     Bank = "ASB"
	BankWestpac Bank = "WESTPAC"
)

type row struct {
	b *models.Batch
	p *models.Payment
}

// bankLayout is the per-bank column table.
type bankLayout struct {
	// header produces the leading row(s) of the file.
	header func(b *models.Batch) [][]string
	// columns name and order the detail fields.
	columns []func(r row) string
	// withTotals appends a trailing count/total row.
	withTotals bool
}

func colAccount(r row) string { return r.p.PartnerBank.AccountNumber }
func colAmount(r row) string { return r.p.Amount.StringFixed(2) }
func colName(r row) string { return fieldenc.Translit(r.p.PartnerName) }
func colReference(r row) string { return fieldenc.Translit(r.p.Reference) }
func colParticulars(r row) string { return fieldenc.Translit(r.p.Memo) }
func colOriginName(r row) string { return fieldenc.Translit(r.b.OriginShortName) }

var layouts = map[Bank]bankLayout{
	BankANZ: {
		header: func(b *models.Batch) [][]string {
			// ANZ wants the dishonour account on the header row.
			return [][]string{{
				"1",
				b.OriginAccount.AccountNumber,
				fieldenc.Translit(b.Reference),
				b.EffectiveDate.Format("02/01/2006"),
				b.DishonourAccount,
			}}
		},
		columns:    []func(row) string{colAccount, colAmount, colName, colReference, colParticulars, colOriginName},
		withTotals: true,
	},
	BankBNZ: {
		header: func(b *models.Batch) [][]string {
			return [][]string{{
				"1",
				b.OriginAccount.AccountNumber,
				fieldenc.Translit(b.OriginLongName),
				fieldenc.Translit(b.Reference),
				b.EffectiveDate.Format("02/01/2006"),
			}}
		},
		columns:    []func(row) string{colAccount, colAmount, colName, colReference, colParticulars},
		withTotals: true,
	},
	BankASB: {
		header: func(b *models.Batch) [][]string {
			return [][]string{{
				fieldenc.Translit(b.OriginLongName),
				b.OriginAccount.AccountNumber,
				b.EffectiveDate.Format("02/01/2006"),
			}}
		},
		columns:    []func(row) string{colName, colAccount, colAmount, colReference},
		withTotals: false,
	},
	BankWestpac: {
		header: func(b *models.Batch) [][]string {
			return [][]string{{
				"HDR",
				b.OriginAccount.AccountNumber,
				fieldenc.Translit(b.OriginShortName),
				b.EffectiveDate.Format("02/01/2006"),
			}}
		},
		columns:    []func(row) string{colAccount, colAmount, colName, colParticulars, colReference},
		withTotals: true,
	},
}

// Generate emits the EFT file for b in the given bank's layout.
func Generate(b *models.Batch, bank Bank, _ time.Time) ([]byte, error) {
	l, ok := layouts[bank]
	if !ok {
		return nil, fmt.Errorf("unsupported NZ EFT bank %q", bank)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true

	for _, h := range l.header(b) {
		if err := w.Write(h); err != nil {
			return nil, err
		}
	}
	for i := range b.Payments {
		r := row{b: b, p: &b.Payments[i]}
		record := make([]string, len(l.columns))
		for j, col := range l.columns {
			record[j] = col(r)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	if l.withTotals {
		total := b.CreditTotal().Add(b.DebitTotal())
		err := w.Write([]string{
			"TLR",
			fmt.Sprintf("%d", len(b.Payments)),
			total.StringFixed(2),
		})
		if err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename returns the conventional name for an NZ EFT file generated now.
func Filename(b *models.Batch, bank Bank, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s.csv", bank, b.JournalCode, now.Format("20060102"))
}
