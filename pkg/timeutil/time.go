// Package timeutil keeps every timestamp the service stamps or keys on in
// UTC, so file headers and sequence allocations do not depend on the host
// timezone.
package timeutil

import "time"

// Now returns the current time in UTC.
func Now() time.Time {
	return time.Now().UTC()
}

// StartOfDay returns midnight UTC of the calendar day t falls on. Sequence
// state keyed by effective date goes through this so two batches for the
// same day always share a key, whatever wall clock or zone they carry.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
