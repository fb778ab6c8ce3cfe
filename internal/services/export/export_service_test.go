package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kevin07696/bankfile-service/internal/formats"
	"github.com/kevin07696/bankfile-service/internal/testutil"
	"github.com/kevin07696/bankfile-service/internal/testutil/fixtures"
	"github.com/kevin07696/bankfile-service/pkg/diag"
)

func newTestService() *Service {
	clock := testutil.FixedClock{Instant: time.Date(2024, 8, 14, 9, 30, 0, 0, time.UTC)}
	return NewService(testutil.NewInMemorySequences(), clock, zap.NewNop())
}

func TestExport_AllocatesFileIDModifier(t *testing.T) {
	svc := newTestService()

	b := fixtures.USBatch()
	b.FileIDModifier = ""

	result, err := svc.Export(context.Background(), formats.NACHA, b)
	require.NoError(t, err)
	assert.Equal(t, "A", b.FileIDModifier, "first file of the day takes modifier A")
	assert.Equal(t, "NACHA-BNK1-08-14-2024.txt", result.Filename)
	assert.NotEmpty(t, result.Content)

	b2 := fixtures.USBatch()
	b2.FileIDModifier = ""
	_, err = svc.Export(context.Background(), formats.NACHA, b2)
	require.NoError(t, err)
	assert.Equal(t, "B", b2.FileIDModifier, "resend on the same date advances the modifier")
}

// TestExport_ModifierKeysOnUTCDay pins the modifier sequence to the UTC
// calendar day: a late-evening effective date in a western zone is the next
// UTC day, so it shares the counter with batches dated that day.
func TestExport_ModifierKeysOnUTCDay(t *testing.T) {
	svc := newTestService()

	b := fixtures.USBatch()
	b.FileIDModifier = ""
	b.EffectiveDate = time.Date(2020, 11, 30, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	_, err := svc.Export(context.Background(), formats.NACHA, b)
	require.NoError(t, err)
	assert.Equal(t, "A", b.FileIDModifier)

	b2 := fixtures.USBatch()
	b2.FileIDModifier = ""
	b2.EffectiveDate = time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Export(context.Background(), formats.NACHA, b2)
	require.NoError(t, err)
	assert.Equal(t, "B", b2.FileIDModifier, "same UTC day shares the counter")
}

func TestExport_KeepsCallerModifier(t *testing.T) {
	svc := newTestService()

	b := fixtures.USBatch()
	require.Equal(t, "A", b.FileIDModifier)

	_, err := svc.Export(context.Background(), formats.NACHA, b)
	require.NoError(t, err)
	assert.Equal(t, "A", b.FileIDModifier)

	// The sequence store was never touched, so a later allocation still
	// starts at A.
	b2 := fixtures.USBatch()
	b2.FileIDModifier = ""
	_, err = svc.Export(context.Background(), formats.NACHA, b2)
	require.NoError(t, err)
	assert.Equal(t, "A", b2.FileIDModifier)
}

func TestExport_AllocatesFileCreationNumber(t *testing.T) {
	svc := newTestService()

	b := fixtures.CABatch()
	b.FileCreationNbr = 0

	result, err := svc.Export(context.Background(), formats.CPA005, b)
	require.NoError(t, err)
	assert.Equal(t, 1, b.FileCreationNbr)
	assert.Equal(t, "CPA005-CEFT-2024-08-14.txt", result.Filename)

	b2 := fixtures.CABatch()
	b2.FileCreationNbr = 0
	_, err = svc.Export(context.Background(), formats.CPA005, b2)
	require.NoError(t, err)
	assert.Equal(t, 2, b2.FileCreationNbr)
}

func TestExport_PreflightFailure(t *testing.T) {
	svc := newTestService()

	b := fixtures.USBatch()
	b.OriginDFI = ""

	result, err := svc.Export(context.Background(), formats.NACHA, b)
	require.Error(t, err)
	assert.Nil(t, result, "no bytes on preflight failure")

	var report *diag.Report
	require.True(t, errors.As(err, &report))
	assert.Equal(t, diag.KindMissingIdentifier, report.Diagnostics[0].Kind)
}

func TestExport_UnsupportedFormat(t *testing.T) {
	svc := newTestService()

	_, err := svc.Export(context.Background(), formats.Format("bacs"), fixtures.USBatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
