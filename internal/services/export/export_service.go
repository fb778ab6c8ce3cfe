// Package export orchestrates payment file generation: it allocates the
// file sequence state through the sequence port, runs the format's
// preflight, emits the file, and records metrics. The emitters themselves
// stay pure.
package export

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kevin07696/bankfile-service/internal/domain/models"
	"github.com/kevin07696/bankfile-service/internal/domain/ports"
	"github.com/kevin07696/bankfile-service/internal/formats"
	"github.com/kevin07696/bankfile-service/pkg/diag"
	"github.com/kevin07696/bankfile-service/pkg/observability"
	"github.com/kevin07696/bankfile-service/pkg/timeutil"
)

// Service implements the export workflow.
type Service struct {
	sequences ports.SequencePort
	clock     ports.Clock
	logger    *zap.Logger
}

// NewService creates a new export service
func NewService(sequences ports.SequencePort, clock ports.Clock, logger *zap.Logger) *Service {
	return &Service{
		sequences: sequences,
		clock:     clock,
		logger:    logger,
	}
}

// Export generates the payment file for b in format f. Sequence state is
// allocated before emission; the batch is not mutated beyond receiving the
// allocated values.
func (s *Service) Export(ctx context.Context, f formats.Format, b *models.Batch) (*formats.Result, error) {
	now := s.clock.Now()

	switch f {
	case formats.NACHA:
		if b.FileIDModifier == "" {
			mod, err := s.sequences.NextFileIDModifier(ctx, b.JournalCode, timeutil.StartOfDay(b.EffectiveDate))
			if err != nil {
				return nil, fmt.Errorf("allocate file ID modifier: %w", err)
			}
			b.FileIDModifier = mod
		}
	case formats.CPA005:
		if b.FileCreationNbr == 0 {
			fcn, err := s.sequences.NextFileCreationNbr(ctx, b.JournalCode)
			if err != nil {
				return nil, fmt.Errorf("allocate file creation number: %w", err)
			}
			b.FileCreationNbr = fcn
		}
	}

	start := s.clock.Now()
	result, err := formats.Generate(f, b, now)
	if err != nil {
		var report *diag.Report
		if errors.As(err, &report) {
			observability.RecordPreflightFailure(string(f))
			s.logger.Warn("batch rejected by preflight",
				zap.String("format", string(f)),
				zap.String("journal", b.JournalCode),
				zap.Int("diagnostics", len(report.Diagnostics)),
			)
		}
		return nil, err
	}

	observability.RecordFileGenerated(string(f), len(b.Payments), s.clock.Now().Sub(start))
	s.logger.Info("payment file generated",
		zap.String("format", string(f)),
		zap.String("journal", b.JournalCode),
		zap.String("filename", result.Filename),
		zap.Int("payments", len(b.Payments)),
		zap.Int("bytes", len(result.Content)),
	)
	return result, nil
}
