package diag

import (
	"fmt"
	"strings"
)

// Kind is the machine-readable category of a diagnostic, stable across
// releases so callers can localize and present them.
type Kind string

const (
	KindMissingIdentifier  Kind = "missing_identifier"
	KindBankAccount        Kind = "bank_account_wellformedness"
	KindAmountCap          Kind = "amount_cap_exceeded"
	KindCountCap           Kind = "count_cap_exceeded"
	KindCurrencyMismatch   Kind = "currency_mismatch"
	KindCurrencyNotAllowed Kind = "currency_not_allowed"
	KindMissingField       Kind = "missing_field"
	KindInvariant          Kind = "invariant_violation"
)

// Diagnostic describes one preflight failure with enough context for the
// caller to point at the offending payment or record.
type Diagnostic struct {
	Kind         Kind
	Field        string
	RecordIndex  int // -1 when not tied to a record
	PaymentIndex int // -1 when not tied to a payment
	Message      string
}

func (d Diagnostic) Error() string {
	loc := ""
	if d.PaymentIndex >= 0 {
		loc = fmt.Sprintf(" (payment %d)", d.PaymentIndex)
	} else if d.RecordIndex >= 0 {
		loc = fmt.Sprintf(" (record %d)", d.RecordIndex)
	}
	return fmt.Sprintf("%s: %s%s: %s", d.Kind, d.Field, loc, d.Message)
}

// New creates a diagnostic not tied to any record or payment.
func New(kind Kind, field, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Kind:         kind,
		Field:        field,
		RecordIndex:  -1,
		PaymentIndex: -1,
		Message:      fmt.Sprintf(format, args...),
	}
}

// ForPayment creates a diagnostic attached to the payment at index i.
func ForPayment(kind Kind, field string, i int, format string, args ...interface{}) Diagnostic {
	d := New(kind, field, format, args...)
	d.PaymentIndex = i
	return d
}

// Report aggregates the diagnostics from one preflight run. A nil or empty
// report means the batch is emittable.
type Report struct {
	Diagnostics []Diagnostic
}

// Add appends a diagnostic to the report.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// HasErrors reports whether any diagnostic was collected.
func (r *Report) HasErrors() bool {
	return r != nil && len(r.Diagnostics) > 0
}

// Err returns the report as an error, or nil when it is empty, so callers
// can write the usual "if err := preflight(); err != nil" dance.
func (r *Report) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return r
}

func (r *Report) Error() string {
	msgs := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		msgs[i] = d.Error()
	}
	return fmt.Sprintf("preflight failed with %d problem(s): %s",
		len(r.Diagnostics), strings.Join(msgs, "; "))
}

// InvariantError marks a bug in a format family: a composed record came out
// with the wrong width. It aborts emission immediately rather than being
// collected into a report.
type InvariantError struct {
	Template string
	Index    int
	Got      int
	Want     int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("record template %q (record %d) produced %d characters, want %d",
		e.Template, e.Index, e.Got, e.Want)
}
