package mapping

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a single field's mapping failure.
type ErrorKind string

const (
	ErrAttributeNotFound    ErrorKind = "attribute_not_found"
	ErrInvalidOptionValue   ErrorKind = "invalid_option_value"
	ErrTypeMismatch         ErrorKind = "type_mismatch"
	ErrRequiredFieldMissing ErrorKind = "required_field_missing"
)

// FieldError describes one field that failed mapping. Errors are aggregated
// across all fields in a single pass so the caller can fix every problem in
// one round trip.
type FieldError struct {
	Kind        ErrorKind `json:"kind"`
	Field       string    `json:"field"`
	Message     string    `json:"message"`
	Suggestions []string  `json:"suggestions,omitempty"`
	// ValidOptions enumerates the legal option titles for choice attributes.
	ValidOptions []string `json:"valid_options,omitempty"`
}

func (e *FieldError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.Suggestions) > 0 {
		fmt.Fprintf(&b, " (did you mean %s?)", quoteJoin(e.Suggestions))
	}
	return b.String()
}

func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}

// Result is the outcome of mapping one raw field bag. Non-empty Errors means
// the request must not reach the backend.
type Result struct {
	Mapped   *Fields       `json:"mapped"`
	Warnings []string      `json:"warnings,omitempty"`
	Errors   []*FieldError `json:"errors,omitempty"`
}

// OK reports whether every field mapped cleanly.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// ErrorMessages renders each field error as text, in field order.
func (r *Result) ErrorMessages() []string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Error()
	}
	return msgs
}
