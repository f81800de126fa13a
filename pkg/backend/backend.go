// Package backend defines the adapter surface the dispatcher calls into.
// One adapter exists per resource type; the core depends only on this shape
// and never retries — retry/backoff belongs to the transport layer in front
// of the remote platform.
package backend

import (
	"context"
	"fmt"
)

// Record is a single record payload as returned by a backend.
type Record map[string]any

// Query carries search/list parameters in canonical form.
type Query struct {
	Text   string
	Filter map[string]any
	Limit  int
	Offset int
}

// Adapter is the per-resource CRUD surface. Fields arrive fully mapped to
// canonical slugs; adapters translate them into the exact call shape their
// backend needs.
type Adapter interface {
	Create(ctx context.Context, fields map[string]any) (Record, error)
	Get(ctx context.Context, recordID string) (Record, error)
	Update(ctx context.Context, recordID string, fields map[string]any) (Record, error)
	Delete(ctx context.Context, recordID string) error
	Search(ctx context.Context, q Query) ([]Record, error)
}

// ErrorKind classifies a backend failure.
type ErrorKind string

const (
	ErrNotFound           ErrorKind = "not_found"
	ErrRateLimited        ErrorKind = "rate_limited"
	ErrValidationRejected ErrorKind = "validation_rejected"
	ErrUnauthorized       ErrorKind = "unauthorized"
	ErrTimeout            ErrorKind = "timeout"
	ErrRejected           ErrorKind = "rejected"
)

// Error is a structured backend failure. Message carries the backend's own
// text; the dispatcher passes it through rather than rewording it.
type Error struct {
	Kind    ErrorKind
	Message string
	// Field is set when the backend named an offending field.
	Field string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewError builds a backend error.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
