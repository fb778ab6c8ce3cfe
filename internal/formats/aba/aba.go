// Package aba writes Australian direct entry files: 120-character records,
// a type-0 descriptive record, one type-1 detail record per payment, and a
// type-7 file total record. A self-balancing journal gets an extra type-1
// debit against the originator's own account.
package aba

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/bankfile-service/internal/banking"
	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/internal/layout"
	"github.com/kevin07696/bankfile-service/pkg/fieldenc"
)

const (
	recordLength = 120

	codeCredit = "50"
	codeDebit  = "13"
)

var spec = layout.Spec{
	RecordLength: recordLength,
	Separator:    "\r\n",
}

type entry struct {
	bsb       string
	account   string
	code      string
	amount    decimal.Decimal
	name      string
	reference string
}

type ctx struct {
	b *models.Batch
	e *entry

	originBSB   string
	netTotal    decimal.Decimal
	creditTotal decimal.Decimal
	debitTotal  decimal.Decimal
	count       int
}

var descriptive = &layout.Template[ctx]{
	Name: "descriptive record",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("0"),
		layout.Lit[ctx](strings.Repeat(" ", 17)),
		layout.Lit[ctx]("01"), // reel sequence
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.Destination, 3) },
		layout.Lit[ctx](strings.Repeat(" ", 7)),
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.OriginLongName, 26) },
		func(c ctx) string { return fieldenc.NumString(c.b.OriginID, 6) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.Reference, 12) },
		func(c ctx) string { return fieldenc.Date(c.b.EffectiveDate, fieldenc.LayoutDDMMYY) },
		layout.Lit[ctx](strings.Repeat(" ", 40)),
	},
}

var detail = &layout.Template[ctx]{
	Name: "detail record",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("1"),
		func(c ctx) string { return c.e.bsb },
		func(c ctx) string { return fieldenc.AlnumRight(c.e.account, 9) },
		layout.Lit[ctx](" "), // indicator
		func(c ctx) string { return c.e.code },
		func(c ctx) string { return fieldenc.CentsField(c.e.amount, 10) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.e.name, 32) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.e.reference, 18) },
		func(c ctx) string { return c.originBSB },
		func(c ctx) string { return fieldenc.AlnumRight(c.b.OriginAccount.AccountNumber, 9) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.OriginShortName, 16) },
		func(c ctx) string { return fieldenc.Num(0, 8) }, // tax withholding
	},
}

var fileTotal = &layout.Template[ctx]{
	Name: "file total record",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("7"),
		layout.Lit[ctx]("999-999"),
		layout.Lit[ctx](strings.Repeat(" ", 12)),
		func(c ctx) string { return fieldenc.CentsField(c.netTotal, 10) },
		func(c ctx) string { return fieldenc.CentsField(c.creditTotal, 10) },
		func(c ctx) string { return fieldenc.CentsField(c.debitTotal, 10) },
		layout.Lit[ctx](strings.Repeat(" ", 24)),
		func(c ctx) string { return fieldenc.Num(int64(c.count), 6) },
		layout.Lit[ctx](strings.Repeat(" ", 40)),
	},
}

// Generate emits the ABA file for b. Preflight has already checked the BSBs
// it normalizes here.
func Generate(b *models.Batch, _ time.Time) ([]byte, error) {
	originBSB, err := banking.NormalizeBSB(b.OriginAccount.RoutingNumber)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(b.Payments)+1)
	for i := range b.Payments {
		p := &b.Payments[i]
		bsb, err := banking.NormalizeBSB(p.PartnerBank.RoutingNumber)
		if err != nil {
			return nil, err
		}
		code := codeCredit
		if p.Direction == models.DirectionDebit {
			code = codeDebit
		}
		entries = append(entries, entry{
			bsb:       bsb,
			account:   p.PartnerBank.AccountNumber,
			code:      code,
			amount:    p.Amount,
			name:      p.PartnerName,
			reference: p.Reference,
		})
	}

	if b.Balanced {
		entries = append(entries, entry{
			bsb:       originBSB,
			account:   b.OriginAccount.AccountNumber,
			code:      codeDebit,
			amount:    b.CreditTotal(),
			name:      b.OriginAccount.HolderName,
			reference: b.Reference,
		})
	}

	creditTotal, debitTotal := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.code == codeDebit {
			debitTotal = debitTotal.Add(e.amount)
		} else {
			creditTotal = creditTotal.Add(e.amount)
		}
	}

	base := ctx{
		b:           b,
		originBSB:   originBSB,
		netTotal:    creditTotal.Sub(debitTotal).Abs(),
		creditTotal: creditTotal,
		debitTotal:  debitTotal,
		count:       len(entries),
	}

	lines := make([]layout.Line[ctx], 0, len(entries)+2)
	lines = append(lines, layout.Line[ctx]{Template: descriptive, Ctx: base})
	for i := range entries {
		c := base
		c.e = &entries[i]
		lines = append(lines, layout.Line[ctx]{Template: detail, Ctx: c})
	}
	lines = append(lines, layout.Line[ctx]{Template: fileTotal, Ctx: base})

	return layout.Emit(spec, lines)
}

// Filename returns the conventional name for an ABA file generated now.
func Filename(b *models.Batch, now time.Time) string {
	return fmt.Sprintf("ABA-%s-%s.aba", b.JournalCode, now.Format("200601021504"))
}
