package cpa005

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/internal/layout"
	"github.com/kevin07696/bankfile-service/internal/testutil/fixtures"
	"github.com/kevin07696/bankfile-service/pkg/diag"
	"github.com/kevin07696/bankfile-service/pkg/fieldenc"
)

var fileStamp = time.Date(2024, 5, 25, 10, 0, 0, 0, time.UTC)

func generate(t *testing.T, b *models.Batch) []string {
	t.Helper()
	require.False(t, Preflight(b).HasErrors())
	out, err := Generate(b, fileStamp)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(out), "\r\n"), "\r\n")
}

func TestGenerate_RecordFraming(t *testing.T) {
	b := fixtures.CABatch()
	lines := generate(t, b)

	// A header, one C record holding both credit segments, Z trailer.
	require.Len(t, lines, 3)
	for i, line := range lines {
		assert.Len(t, line, 1464, "record %d", i)
	}
	assert.Equal(t, "A", lines[0][:1])
	assert.Equal(t, "C", lines[1][:1])
	assert.Equal(t, "Z", lines[2][:1])
}

// TestGenerate_Header checks the A record against hand-computed values:
// record count 1, originator, FCN 0001, the 0YYDDD creation date for
// 2024-05-25, and the file reference.
func TestGenerate_Header(t *testing.T) {
	b := fixtures.CABatch()
	header := generate(t, b)[0]

	assert.Equal(t, "000000001", header[1:10], "record count")
	assert.Equal(t, "ACME000001", header[10:20], "originator ID")
	assert.Equal(t, "0001", header[20:24], "file creation number")
	assert.Equal(t, "024146", header[24:30], "creation date 0YYDDD")
	assert.Equal(t, "00330", header[30:35], "destination data centre")
	assert.Equal(t, "PAYMENTS 250524     ", header[35:55], "file reference")
	assert.Equal(t, "CAD", header[55:58], "currency")
}

// TestGenerate_Trailer verifies the Z record totals match the detail
// segments: 2 credits summing to 1299.99.
func TestGenerate_Trailer(t *testing.T) {
	b := fixtures.CABatch()
	trailer := generate(t, b)[2]

	assert.Equal(t, "000000003", trailer[1:10], "record count")
	assert.Equal(t, "00000000000000", trailer[24:38], "debit total")
	assert.Equal(t, "00000000", trailer[38:46], "debit count")
	assert.Equal(t, "00000000129999", trailer[46:60], "credit total in cents")
	assert.Equal(t, "00000002", trailer[60:68], "credit count")
}

func TestGenerate_DetailSegments(t *testing.T) {
	b := fixtures.CABatch()
	detail := generate(t, b)[1]

	// Prefix: kind, record count, originator, FCN.
	assert.Equal(t, "C000000002ACME000001" + "0001", detail[:24])

	// First segment: transaction type, amount, due date, institution,
	// account.
	seg := detail[24:]
	assert.Equal(t, "450", seg[:3])
	assert.Equal(t, "0000120050", seg[3:13], "amount in cents")
	assert.Equal(t, "024146", seg[13:19], "due date 0YYDDD")
	assert.Equal(t, "091000019", seg[19:28], "institution and check digit")
	assert.Equal(t, "555666777   ", seg[28:40], "account number")

	// Second segment starts 240 characters in.
	seg2 := detail[24+240:]
	assert.Equal(t, "450", seg2[:3])
	assert.Equal(t, "0000009949", seg2[3:13])
}

func TestGenerate_SevenPaymentsSplitAcrossRecords(t *testing.T) {
	b := fixtures.CABatch()
	for len(b.Payments) < 7 {
		b.Payments = append(b.Payments, b.Payments[0])
	}
	lines := generate(t, b)

	// 6 segments fill the first C record; the seventh spills into a second.
	require.Len(t, lines, 4)
	assert.Equal(t, "C", lines[1][:1])
	assert.Equal(t, "C", lines[2][:1])
	assert.Equal(t, "Z", lines[3][:1])
}

func TestGenerate_MixedDirectionsSplitByKind(t *testing.T) {
	b := fixtures.CABatch()
	b.Payments[1].Direction = models.DirectionDebit
	lines := generate(t, b)

	require.Len(t, lines, 4)
	assert.Equal(t, "C", lines[1][:1])
	assert.Equal(t, "D", lines[2][:1])
}

// TestGenerate_ParsedFileReconciles reads the emitted file back through the
// layout parser, walks the 240-character segments of every C and D record,
// and checks that their amounts and counts reconcile with the Z trailer.
func TestGenerate_ParsedFileReconciles(t *testing.T) {
	b := fixtures.CABatch()
	b.Payments[1].Direction = models.DirectionDebit
	out, err := Generate(b, fileStamp)
	require.NoError(t, err)

	records, err := layout.Records(spec, out)
	require.NoError(t, err)

	creditCount, debitCount := 0, 0
	credits, debits := decimal.Zero, decimal.Zero
	var tail string
	for _, r := range records {
		switch r[0] {
		case 'C', 'D':
			for off := 24; off < recordLength; off += segmentLength {
				seg := r[off : off+segmentLength]
				if strings.TrimSpace(seg) == "" {
					continue
				}
				cents, parseErr := decimal.NewFromString(seg[3:13])
				require.NoError(t, parseErr)
				if r[0] == 'D' {
					debitCount++
					debits = debits.Add(cents.Shift(-2))
				} else {
					creditCount++
					credits = credits.Add(cents.Shift(-2))
				}
			}
		case 'Z':
			tail = r
		}
	}

	require.NotEmpty(t, tail)
	assert.Equal(t, fieldenc.CentsField(debits, 14), tail[24:38])
	assert.Equal(t, fieldenc.Num(int64(debitCount), 8), tail[38:46])
	assert.Equal(t, fieldenc.CentsField(credits, 14), tail[46:60])
	assert.Equal(t, fieldenc.Num(int64(creditCount), 8), tail[60:68])
}

func TestPreflight(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(b *models.Batch)
		kind   diag.Kind
	}{
		{
			name:   "missing transaction code",
			mutate: func(b *models.Batch) { b.Payments[0].TransactionCode = "" },
			kind:   diag.KindMissingField,
		},
		{
			name:   "bad routing number",
			mutate: func(b *models.Batch) { b.Payments[0].PartnerBank.RoutingNumber = "12345" },
			kind:   diag.KindBankAccount,
		},
		{
			name:   "FCN out of range",
			mutate: func(b *models.Batch) { b.FileCreationNbr = 10000 },
			kind:   diag.KindMissingIdentifier,
		},
		{
			name:   "missing originator",
			mutate: func(b *models.Batch) { b.OriginID = "" },
			kind:   diag.KindMissingIdentifier,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := fixtures.CABatch()
			tc.mutate(b)
			report := Preflight(b)
			require.True(t, report.HasErrors())
			assert.Equal(t, tc.kind, report.Diagnostics[0].Kind)
		})
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "CPA005-CEFT-2024-05-25.txt", Filename(fixtures.CABatch(), fileStamp))
}
