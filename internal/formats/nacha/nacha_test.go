package nacha

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

var fileStamp = time.Date(2020, 11, 30, 19, 45, 0, 0, time.UTC)

func generate(t *testing.T, b *models.Batch) []string {
	t.Helper()
	require.False(t, Preflight(b).HasErrors())
	out, err := Generate(b, fileStamp)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(out), "\r\n"), "\r\n")
}

// TestGenerate_Unbalanced checks the file header and file control of a
// two-credit $400.00 batch against hand-computed field values.
func TestGenerate_Unbalanced(t *testing.T) {
	b := fixtures.USBatch()
	lines := generate(t, b)

	// Header: record type, priority, destination, origin, date, time,
	// modifier, record size, blocking factor, format code.
	assert.True(t, strings.HasPrefix(lines[0], "101 111111118  IMM_ORIG2011301945A094101"),
		"file header was %q", lines[0])

	// 6 real records padded to a multiple of 10.
	assert.Len(t, lines, 10)
	for i, line := range lines {
		assert.Len(t, line, 94, "record %d", i)
	}
	for _, line := range lines[6:] {
		assert.Equal(t, strings.Repeat("9", 94), line)
	}

	// File control: 1 batch, 1 block, 2 entries, entry hash over both
	// counterparty routings, zero debits, $400.00 credits.
	control := lines[5]
	assert.Equal(t, "9", control[:1])
	assert.Equal(t, "000001", control[1:7], "batch count")
	assert.Equal(t, "000001", control[7:13], "block count")
	assert.Equal(t, "00000002", control[13:21], "entry count")
	assert.Equal(t, "0010200002", control[21:31], "entry hash")
	assert.Equal(t, "000000000000", control[31:43], "total debits")
	assert.Equal(t, "000000040000", control[43:55], "total credits")
}

// TestGenerate_Balanced verifies the offset entry: service class 200, a
// transaction-code-27 debit for the credit total against the originator's
// own account, and equal debit/credit totals in the file control.
func TestGenerate_Balanced(t *testing.T) {
	b := fixtures.USBatch()
	b.Balanced = true
	lines := generate(t, b)

	batchHeader := lines[1]
	assert.Equal(t, "200", batchHeader[1:4], "service class code")

	offset := lines[4] // header, batch header, 2 entries, then the offset
	assert.Equal(t, "627", offset[:3], "offset is a type-6 record with code 27")
	assert.Equal(t, "11111111", offset[3:11], "offset routing prefix is the originator's")
	assert.Equal(t, "8", offset[11:12], "offset routing check digit")
	assert.Equal(t, "0000040000", offset[29:39], "offset amount equals the credit total")

	control := lines[6]
	assert.Equal(t, "9", control[:1])
	assert.Equal(t, "0021311113", control[21:31], "entry hash includes the offset routing")
	assert.Equal(t, "000000040000", control[31:43], "total debits")
	assert.Equal(t, "000000040000", control[43:55], "total credits")
}

func TestGenerate_TransactionCodes(t *testing.T) {
	b := fixtures.USBatch()
	lines := generate(t, b)

	// First payment goes to a checking account, second to savings.
	assert.Equal(t, "622", lines[2][:3])
	assert.Equal(t, "632", lines[3][:3])
}

func TestGenerate_DebitBatchServiceClass(t *testing.T) {
	b := fixtures.USBatch()
	for i := range b.Payments {
		b.Payments[i].Direction = models.DirectionDebit
	}
	lines := generate(t, b)
	assert.Equal(t, "225", lines[1][1:4], "debits-only service class")
}

func TestGenerate_BlockCount(t *testing.T) {
	b := fixtures.USBatch()
	// 9 payments + 4 framing records = 13 records, 2 blocks.
	for len(b.Payments) < 9 {
		b.Payments = append(b.Payments, b.Payments[0])
	}
	lines := generate(t, b)
	assert.Len(t, lines, 20)
	control := lines[12]
	assert.Equal(t, "000002", control[7:13], "block count")
}

// TestPreflight_ShortRoutingNumber is the "no bytes on bad input" case: a
// malformed counterparty routing number must surface as a bank-account
// diagnostic naming the payment, and nothing is emitted.
// TestGenerate_ParsedFileReconciles reads the emitted file back through the
// layout parser and checks that the entry records reconcile with the file
// control: entry count, recomputed entry hash, and the amounts summed by
// transaction code.
func TestGenerate_ParsedFileReconciles(t *testing.T) {
	b := fixtures.USBatch()
	b.Balanced = true
	out, err := Generate(b, fileStamp)
	require.NoError(t, err)

	records, err := layout.Records(spec, out)
	require.NoError(t, err)

	var routings []string
	debits, credits := decimal.Zero, decimal.Zero
	var control string
	for _, r := range records {
		switch {
		case r == spec.PadLine:
		case r[0] == '6':
			routings = append(routings, r[3:12])
			cents, parseErr := decimal.NewFromString(r[29:39])
			require.NoError(t, parseErr)
			if code := r[1:3]; code == codeCheckingDebit || code == codeSavingsDebit {
				debits = debits.Add(cents.Shift(-2))
			} else {
				credits = credits.Add(cents.Shift(-2))
			}
		case r[0] == '9':
			control = r
		}
	}

	require.NotEmpty(t, control)
	assert.Equal(t, fieldenc.Num(int64(len(routings)), 8), control[13:21])
	assert.Equal(t, fieldenc.ABAHash(routings), control[21:31])
	assert.Equal(t, fieldenc.CentsField(debits, 12), control[31:43])
	assert.Equal(t, fieldenc.CentsField(credits, 12), control[43:55])
	assert.True(t, debits.Equal(credits), "balanced file should net to zero")
}

func TestPreflight_ShortRoutingNumber(t *testing.T) {
	b := fixtures.USBatch()
	b.Payments[0].PartnerBank.RoutingNumber = "11111111"

	report := Preflight(b)
	require.True(t, report.HasErrors())

	found := false
	for _, d := range report.Diagnostics {
		if d.Kind == diag.KindBankAccount && d.PaymentIndex == 0 {
			found = true
			assert.Equal(t, "partner_bank.routing_number", d.Field)
		}
	}
	assert.True(t, found, "expected a bank-account diagnostic for payment 0, got %v", report.Diagnostics)
}

func TestPreflight_CollectsAllProblems(t *testing.T) {
	b := fixtures.USBatch()
	b.OriginDFI = ""
	b.Payments[1].PartnerName = ""
	b.Payments[1].Currency = "EUR"

	report := Preflight(b)
	require.True(t, report.HasErrors())
	assert.Len(t, report.Diagnostics, 3)
}

func TestPreflight_FileIDModifier(t *testing.T) {
	testCases := []struct {
		name     string
		modifier string
	}{
		{name: "missing", modifier: ""},
		{name: "lowercase", modifier: "a"},
		{name: "multiple characters", modifier: "AB"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := fixtures.USBatch()
			b.FileIDModifier = tc.modifier

			report := Preflight(b)
			require.True(t, report.HasErrors())
			assert.Equal(t, diag.KindMissingIdentifier, report.Diagnostics[0].Kind)
			assert.Equal(t, "file_id_modifier", report.Diagnostics[0].Field)
		})
	}
}

func TestPreflight_AmountCap(t *testing.T) {
	b := fixtures.USBatch()
	b.Payments[0].Amount = maxAmount.Add(maxAmount)

	report := Preflight(b)
	require.True(t, report.HasErrors())
	assert.Equal(t, diag.KindAmountCap, report.Diagnostics[0].Kind)
}

func TestFilename(t *testing.T) {
	b := fixtures.USBatch()
	assert.Equal(t, "NACHA-BNK1-11-30-2020.txt", Filename(b, fileStamp))
}
