// Package nacha writes US ACH files: 94-character records, blocking factor
// 10, CRLF separators. Supports credits-only, debits-only and mixed
// batches, and balanced files where an offsetting debit against the
// originator's own account zeroes the batch.
package nacha

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/internal/layout"
	"github.com/kevin07696/bankfile-service/pkg/fieldenc"
)

const (
	recordLength = 94
	blockFactor  = 10

	// Service class codes.
	classMixed   = "200"
	classCredits = "220"
	classDebits  = "225"

	// Transaction codes by account type and direction.
	codeCheckingCredit = "22"
	codeCheckingDebit  = "27"
	codeSavingsCredit  = "32"
	codeSavingsDebit   = "37"
)

var spec = layout.Spec{
	RecordLength: recordLength,
	Separator:    "\r\n",
	BlockFactor:  blockFactor,
	PadLine:      strings.Repeat("9", recordLength),
}

// entry is one type-6 record: either a batch payment or the synthesized
// offset.
type entry struct {
	code    string
	routing string
	account string
	amount  decimal.Decimal
	id      string
	name    string
	trace   int
}

// ctx is the composer context threaded through every record template.
type ctx struct {
	b   *models.Batch
	now time.Time
	e   *entry

	svcClass    string
	entryCount  int
	blockCount  int
	entryHash   string
	debitTotal  decimal.Decimal
	creditTotal decimal.Decimal
}

var fileHeader = &layout.Template[ctx]{
	Name: "file header",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("101"),
		func(c ctx) string { return fieldenc.AlnumRight(c.b.Destination, 10) },
		func(c ctx) string { return fieldenc.AlnumRight(c.b.OriginID, 10) },
		func(c ctx) string { return fieldenc.Date(c.now, fieldenc.LayoutYYMMDD) },
		func(c ctx) string { return fieldenc.Date(c.now, fieldenc.LayoutHHMM) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.FileIDModifier, 1) },
		layout.Lit[ctx]("094"),
		layout.Lit[ctx]("10"),
		layout.Lit[ctx]("1"),
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.Destination, 23) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.OriginLongName, 23) },
		layout.Lit[ctx](strings.Repeat(" ", 8)),
	},
}

var batchHeader = &layout.Template[ctx]{
	Name: "batch header",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("5"),
		func(c ctx) string { return c.svcClass },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.OriginLongName, 16) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.DiscretionaryData, 20) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.OriginID, 10) },
		func(c ctx) string { return fieldenc.AlnumLeft(string(c.b.SECCode), 3) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.Reference, 10) },
		func(c ctx) string { return fieldenc.Date(c.b.EffectiveDate, fieldenc.LayoutYYMMDD) },
		func(c ctx) string { return fieldenc.Date(c.b.EffectiveDate, fieldenc.LayoutYYMMDD) },
		layout.Lit[ctx]("   "), // settlement date, filled in by the ACH operator
		layout.Lit[ctx]("1"),
		func(c ctx) string { return fieldenc.NumString(c.b.OriginDFI, 8) },
		func(c ctx) string { return fieldenc.Num(1, 7) },
	},
}

var entryDetail = &layout.Template[ctx]{
	Name: "entry detail",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("6"),
		func(c ctx) string { return c.e.code },
		func(c ctx) string { return c.e.routing[:8] },
		func(c ctx) string { return c.e.routing[8:] },
		func(c ctx) string { return fieldenc.AlnumLeft(c.e.account, 17) },
		func(c ctx) string { return fieldenc.CentsField(c.e.amount, 10) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.e.id, 15) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.e.name, 22) },
		layout.Lit[ctx]("  "),
		layout.Lit[ctx]("0"), // no addenda
		func(c ctx) string { return fieldenc.NumString(c.b.OriginDFI, 8) + fieldenc.Num(int64(c.e.trace), 7) },
	},
}

var batchControl = &layout.Template[ctx]{
	Name: "batch control",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("8"),
		func(c ctx) string { return c.svcClass },
		func(c ctx) string { return fieldenc.Num(int64(c.entryCount), 6) },
		func(c ctx) string { return c.entryHash },
		func(c ctx) string { return fieldenc.CentsField(c.debitTotal, 12) },
		func(c ctx) string { return fieldenc.CentsField(c.creditTotal, 12) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.OriginID, 10) },
		layout.Lit[ctx](strings.Repeat(" ", 19)),
		layout.Lit[ctx](strings.Repeat(" ", 6)),
		func(c ctx) string { return fieldenc.NumString(c.b.OriginDFI, 8) },
		func(c ctx) string { return fieldenc.Num(1, 7) },
	},
}

var fileControl = &layout.Template[ctx]{
	Name: "file control",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("9"),
		func(c ctx) string { return fieldenc.Num(1, 6) },
		func(c ctx) string { return fieldenc.Num(int64(c.blockCount), 6) },
		func(c ctx) string { return fieldenc.Num(int64(c.entryCount), 8) },
		func(c ctx) string { return c.entryHash },
		func(c ctx) string { return fieldenc.CentsField(c.debitTotal, 12) },
		func(c ctx) string { return fieldenc.CentsField(c.creditTotal, 12) },
		layout.Lit[ctx](strings.Repeat(" ", 39)),
	},
}

func transactionCode(p *models.Payment) string {
	savings := p.PartnerBank.AccountType == models.AccountTypeSavings
	if p.Direction == models.DirectionDebit {
		if savings {
			return codeSavingsDebit
		}
		return codeCheckingDebit
	}
	if savings {
		return codeSavingsCredit
	}
	return codeCheckingCredit
}

// Generate emits the NACHA file for b. The caller has already allocated
// b.FileIDModifier and run Preflight; now is the file creation timestamp
// stamped into the header.
func Generate(b *models.Batch, now time.Time) ([]byte, error) {
	entries := make([]entry, 0, len(b.Payments)+1)
	for i, p := range b.Payments {
		entries = append(entries, entry{
			code:    transactionCode(&b.Payments[i]),
			routing: p.PartnerBank.RoutingNumber,
			account: p.PartnerBank.AccountNumber,
			amount:  p.Amount,
			id:      p.PartnerID,
			name:    p.PartnerName,
			trace:   i + 1,
		})
	}

	svcClass := serviceClass(b)
	if b.Balanced {
		// Offset debit against the originator's own account for the credit
		// total, turning the batch into a zero-sum mixed batch.
		entries = append(entries, entry{
			code:    codeCheckingDebit,
			routing: b.OriginAccount.RoutingNumber,
			account: b.OriginAccount.AccountNumber,
			amount:  b.CreditTotal(),
			id:      b.OriginID,
			name:    "OFFSET",
			trace:   len(entries) + 1,
		})
		svcClass = classMixed
	}

	routings := make([]string, len(entries))
	debitTotal, creditTotal := decimal.Zero, decimal.Zero
	for i, e := range entries {
		routings[i] = e.routing
		if e.code == codeCheckingDebit || e.code == codeSavingsDebit {
			debitTotal = debitTotal.Add(e.amount)
		} else {
			creditTotal = creditTotal.Add(e.amount)
		}
	}

	// header + batch header + entries + batch control + file control
	recordCount := len(entries) + 4
	base := ctx{
		b:           b,
		now:         now,
		svcClass:    svcClass,
		entryCount:  len(entries),
		blockCount:  (recordCount + blockFactor - 1) / blockFactor,
		entryHash:   fieldenc.ABAHash(routings),
		debitTotal:  debitTotal,
		creditTotal: creditTotal,
	}

	lines := make([]layout.Line[ctx], 0, recordCount)
	lines = append(lines,
		layout.Line[ctx]{Template: fileHeader, Ctx: base},
		layout.Line[ctx]{Template: batchHeader, Ctx: base},
	)
	for i := range entries {
		c := base
		c.e = &entries[i]
		lines = append(lines, layout.Line[ctx]{Template: entryDetail, Ctx: c})
	}
	lines = append(lines,
		layout.Line[ctx]{Template: batchControl, Ctx: base},
		layout.Line[ctx]{Template: fileControl, Ctx: base},
	)

	return layout.Emit(spec, lines)
}

func serviceClass(b *models.Batch) string {
	credits, debits := b.CountFor(models.DirectionCredit), b.CountFor(models.DirectionDebit)
	switch {
	case credits > 0 && debits > 0:
		return classMixed
	case debits > 0:
		return classDebits
	default:
		return classCredits
	}
}

// Filename returns the conventional name for a NACHA file generated now.
func Filename(b *models.Batch, now time.Time) string {
	return fmt.Sprintf("NACHA-%s-%s.txt", b.JournalCode, now.Format("01-02-2006"))
}
