// Package postgres holds the pgx-backed adapters. The sequence repository
// owns the per-journal file sequence counters that the emitters take as
// input: the CPA-005 file creation number and the NACHA file-ID modifier.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SequenceRepository implements ports.SequencePort on PostgreSQL. The
// counters live in two small tables; the upsert-returning statements keep
// allocation atomic without explicit locks.
type SequenceRepository struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

// NextFileCreationNbr allocates the next CPA-005 FCN for the journal,
// cycling 1..9999.
func (r *SequenceRepository) NextFileCreationNbr(ctx context.Context, journalCode string) (int, error) {
	const q = `
		INSERT INTO file_creation_numbers (journal_code, last_nbr)
		VALUES ($1, 1)
		ON CONFLICT (journal_code)
		DO UPDATE SET last_nbr = file_creation_numbers.last_nbr % 9999 + 1
		RETURNING last_nbr`

	var nbr int
	if err := r.pool.QueryRow(ctx, q, journalCode).Scan(&nbr); err != nil {
		return 0, fmt.Errorf("allocate file creation number: %w", err)
	}
	return nbr, nil
}

// NextFileIDModifier allocates the NACHA file-ID modifier for the journal
// and effective date, advancing A..Z with the count of files already sent.
func (r *SequenceRepository) NextFileIDModifier(ctx context.Context, journalCode string, effectiveDate time.Time) (string, error) {
	const q = `
		INSERT INTO file_id_modifiers (journal_code, effective_date, files_sent)
		VALUES ($1, $2, 1)
		ON CONFLICT (journal_code, effective_date)
		DO UPDATE SET files_sent = file_id_modifiers.files_sent + 1
		RETURNING files_sent`

	var sent int
	err := r.pool.QueryRow(ctx, q, journalCode, effectiveDate.Format("2006-01-02")).Scan(&sent)
	if err != nil {
		return "", fmt.Errorf("allocate file ID modifier: %w", err)
	}
	// files_sent = 1 means this is the first file of the day: "A".
	offset := (sent - 1) % 26
	return string(rune('A' + offset)), nil
}
