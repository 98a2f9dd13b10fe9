// Package validation provides field-level input validation collecting
// structured errors instead of panicking or throwing.
package validation

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validator accumulates field errors in check order.
type Validator struct {
	Errors map[string]string
	fields []string
}

// New creates a new validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no check failed.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records an error for a field. Only the first error per field is
// kept.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
		v.fields = append(v.fields, field)
	}
}

// Check adds an error if the condition is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string is not blank.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Email validates email format.
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// FirstError returns the first failing field and its message, in the order
// checks ran. Callers reporting a single field-level failure use this.
func (v *Validator) FirstError() (field, message string) {
	if len(v.fields) == 0 {
		return "", ""
	}
	field = v.fields[0]
	return field, v.Errors[field]
}
