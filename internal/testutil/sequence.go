// Package testutil provides in-memory implementations of the domain ports
// for tests that should not need PostgreSQL.
package testutil

import (
	"context"
	"sync"
	"time"
)

// InMemorySequences implements ports.SequencePort with map-backed counters.
type InMemorySequences struct {
	mu        sync.Mutex
	fcns      map[string]int
	modifiers map[string]int
}

// NewInMemorySequences creates an empty in-memory sequence store.
func NewInMemorySequences() *InMemorySequences {
	return &InMemorySequences{
		fcns:      make(map[string]int),
		modifiers: make(map[string]int),
	}
}

// NextFileCreationNbr cycles 1..9999 per journal.
func (s *InMemorySequences) NextFileCreationNbr(_ context.Context, journalCode string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fcns[journalCode] = s.fcns[journalCode]%9999 + 1
	return s.fcns[journalCode], nil
}

// NextFileIDModifier advances A..Z per journal and effective date.
func (s *InMemorySequences) NextFileIDModifier(_ context.Context, journalCode string, effectiveDate time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := journalCode + "|" + effectiveDate.Format("2006-01-02")
	sent := s.modifiers[key]
	s.modifiers[key] = sent + 1
	return string(rune('A' + sent%26)), nil
}

// FixedClock implements ports.Clock with a constant instant.
type FixedClock struct {
	Instant time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.Instant
}
