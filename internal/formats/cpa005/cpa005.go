// Package cpa005 writes Canadian EFT files per CPA Standard 005:
// 1464-character logical records, an A header, C (credit) and D (debit)
// detail records carrying up to six 240-character payment segments each,
// and a Z trailer with totals.
package cpa005

import (
	"fmt"
	"strings"
	"time"

	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/internal/layout"
	"github.com/kevin07696/bankfile-service/pkg/fieldenc"
)

const (
	recordLength    = 1464
	segmentLength   = 240
	segmentsPerLine = 6
)

var spec = layout.Spec{
	RecordLength: recordLength,
	Separator:    "\r\n",
}

type ctx struct {
	b   *models.Batch
	now time.Time

	recordNbr int
	kind      string // "C" or "D"
	segments  string // pre-rendered 1440-character segment block

	debitTotal  string
	debitCount  int
	creditTotal string
	creditCount int
}

func originID(c ctx) string { return fieldenc.AlnumLeft(c.b.OriginID, 10) }
func fcn(c ctx) string { return fieldenc.Num(int64(c.b.FileCreationNbr), 4) }
func recordNbr(c ctx) string { return fieldenc.Num(int64(c.recordNbr), 9) }

var header = &layout.Template[ctx]{
	Name: "A header",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("A"),
		recordNbr,
		originID,
		fcn,
		func(c ctx) string { return fieldenc.JulianDate(c.now) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.Destination, 5) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.Reference, 20) },
		func(c ctx) string { return fieldenc.AlnumLeft(c.b.Currency, 3) },
		layout.Lit[ctx](strings.Repeat(" ", recordLength-58)),
	},
}

var detail = &layout.Template[ctx]{
	Name: "detail",
	Fields: []func(ctx) string{
		func(c ctx) string { return c.kind },
		recordNbr,
		originID,
		fcn,
		func(c ctx) string { return c.segments },
	},
}

var trailer = &layout.Template[ctx]{
	Name: "Z trailer",
	Fields: []func(ctx) string{
		layout.Lit[ctx]("Z"),
		recordNbr,
		originID,
		fcn,
		func(c ctx) string { return c.debitTotal },
		func(c ctx) string { return fieldenc.Num(int64(c.debitCount), 8) },
		func(c ctx) string { return c.creditTotal },
		func(c ctx) string { return fieldenc.Num(int64(c.creditCount), 8) },
		layout.Lit[ctx](strings.Repeat(" ", recordLength-68)),
	},
}

// segment renders one 240-character payment segment.
func segment(b *models.Batch, p *models.Payment, seq int) string {
	var sb strings.Builder
	sb.Grow(segmentLength)
	sb.WriteString(fieldenc.NumString(p.TransactionCode, 3))
	sb.WriteString(fieldenc.CentsField(p.Amount, 10))
	sb.WriteString(fieldenc.JulianDate(p.ValueDate))
	sb.WriteString(fieldenc.NumString(p.PartnerBank.RoutingNumber, 9))
	sb.WriteString(fieldenc.AlnumLeft(p.PartnerBank.AccountNumber, 12))
	sb.WriteString(fieldenc.Num(int64(seq), 22)) // item trace number
	sb.WriteString("000")                        // stored transaction type
	sb.WriteString(fieldenc.AlnumLeft(b.OriginShortName, 15))
	sb.WriteString(fieldenc.AlnumLeft(p.PartnerName, 30))
	sb.WriteString(fieldenc.AlnumLeft(b.OriginLongName, 30))
	sb.WriteString(fieldenc.AlnumLeft(b.OriginID, 10))
	sb.WriteString(fieldenc.AlnumLeft(p.Reference, 19))
	sb.WriteString(fieldenc.NumString(b.OriginAccount.RoutingNumber, 9))
	sb.WriteString(fieldenc.AlnumLeft(b.OriginAccount.AccountNumber, 12))
	sb.WriteString(fieldenc.AlnumLeft(p.Memo, 15))
	sb.WriteString(strings.Repeat(" ", 22))
	sb.WriteString("  ") // settlement code, left to the direct clearer
	sb.WriteString(fieldenc.Num(0, 11))
	return sb.String()
}

// Generate emits the CPA-005 file for b. The caller has already allocated
// b.FileCreationNbr and run Preflight.
func Generate(b *models.Batch, now time.Time) ([]byte, error) {
	base := ctx{
		b:           b,
		now:         now,
		debitTotal:  fieldenc.CentsField(b.DebitTotal(), 14),
		debitCount:  b.CountFor(models.DirectionDebit),
		creditTotal: fieldenc.CentsField(b.CreditTotal(), 14),
		creditCount: b.CountFor(models.DirectionCredit),
	}

	var lines []layout.Line[ctx]
	record := 1
	head := base
	head.recordNbr = record
	lines = append(lines, layout.Line[ctx]{Template: header, Ctx: head})

	for _, dir := range []models.Direction{models.DirectionCredit, models.DirectionDebit} {
		kind := "C"
		if dir == models.DirectionDebit {
			kind = "D"
		}
		var segs []string
		seq := 0
		for i := range b.Payments {
			if b.Payments[i].Direction != dir {
				continue
			}
			seq++
			segs = append(segs, segment(b, &b.Payments[i], seq))
		}
		for start := 0; start < len(segs); start += segmentsPerLine {
			end := min(start+segmentsPerLine, len(segs))
			block := strings.Join(segs[start:end], "")
			block += strings.Repeat(" ", (segmentsPerLine-(end-start))*segmentLength)

			record++
			c := base
			c.recordNbr = record
			c.kind = kind
			c.segments = block
			lines = append(lines, layout.Line[ctx]{Template: detail, Ctx: c})
		}
	}

	record++
	tail := base
	tail.recordNbr = record
	lines = append(lines, layout.Line[ctx]{Template: trailer, Ctx: tail})

	return layout.Emit(spec, lines)
}

// Filename returns the conventional name for a CPA-005 file generated now.
func Filename(b *models.Batch, now time.Time) string {
	return fmt.Sprintf("CPA005-%s-%s.txt", b.JournalCode, now.Format("2006-01-02"))
}
