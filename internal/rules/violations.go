// Package rules implements the business-rule checks applied to reservation
// and table requests before any write reaches the database.  Validators do
// not fail fast: every check runs and the offending fields are collected
// into a single aggregated error so the client sees all problems at once.
package rules

import (
	"fmt"
	"strings"
)

// Violations accumulates field names or human readable reasons that failed
// validation.  The zero value is ready to use.
type Violations []string

// Add appends a violation.
func (v *Violations) Add(reason string) { *v = append(*v, reason) }

// Addf appends a formatted violation.
func (v *Violations) Addf(format string, args ...any) {
	*v = append(*v, fmt.Sprintf(format, args...))
}

// Err materialises the collected violations into a *ValidationError whose
// message starts with the given prefix.  It returns nil when nothing was
// recorded, so callers can write `return v.Err(...)` unconditionally.
func (v Violations) Err(prefix string) error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Prefix: prefix, Fields: []string(v)}
}

// ValidationError carries the aggregated set of invalid fields for one
// request.  Handlers translate it into an HTTP 400 response.
type ValidationError struct {
	Prefix string   // leading clause of the message, e.g. "One or more inputs are invalid"
	Fields []string // every violated field or reason, in check order
}

func (e *ValidationError) Error() string {
	return e.Prefix + ": " + strings.Join(e.Fields, ", ")
}
