package ports

import (
	"context"
	"time"
)

// SequencePort allocates the caller-owned file sequence state the emitters
// treat as plain input: the CPA-005 file creation number and the NACHA
// file-ID modifier. Implementations must serialize allocation so two files
// never share a value.
type SequencePort interface {
	// NextFileCreationNbr returns the next FCN for the journal, cycling
	// through 1..9999.
	NextFileCreationNbr(ctx context.Context, journalCode string) (int, error)

	// NextFileIDModifier returns the modifier for the next NACHA file the
	// journal sends on effectiveDate, advancing "A" through "Z".
	NextFileIDModifier(ctx context.Context, journalCode string, effectiveDate time.Time) (string, error)
}

// Clock abstracts time for deterministic file headers in tests.
type Clock interface {
	Now() time.Time
}
