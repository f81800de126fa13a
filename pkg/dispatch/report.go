package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/recordwise/crm-bridge/pkg/backend"
	"github.com/recordwise/crm-bridge/pkg/catalog"
	"github.com/recordwise/crm-bridge/pkg/mapping"
)

// maxEnumeratedOptions bounds how many valid option titles an error message
// spells out before collapsing into a remainder count.
const maxEnumeratedOptions = 10

// reportMapping converts an aggregated mapping failure into the result's
// error. Every field error keeps its literal key and message; the primary
// kind and suggestions come from the first error so simple callers can act
// without parsing the full list.
func reportMapping(res *mapping.Result) *OperationResult {
	first := res.Errors[0]

	lines := make([]string, 0, len(res.Errors))
	for _, fe := range res.Errors {
		line := fe.Message
		if fe.Kind == mapping.ErrInvalidOptionValue && len(fe.ValidOptions) > 0 {
			line += " Valid options: " + enumerateOptions(fe.ValidOptions) + "."
		}
		lines = append(lines, line)
	}

	opErr := &OperationError{
		Kind:        mappingKind(first.Kind),
		Message:     strings.Join(lines, "\n"),
		Field:       first.Field,
		Suggestions: first.Suggestions,
	}
	for _, fe := range res.Errors {
		if fe.Kind == mapping.ErrAttributeNotFound {
			opErr.DiscoveryHint = mapping.DiscoveryToolName
			break
		}
	}

	return &OperationResult{
		Success:  false,
		Warnings: res.Warnings,
		Error:    opErr,
	}
}

func mappingKind(kind mapping.ErrorKind) ErrorKind {
	switch kind {
	case mapping.ErrAttributeNotFound:
		return ErrAttributeNotFound
	case mapping.ErrInvalidOptionValue:
		return ErrInvalidOptionValue
	case mapping.ErrRequiredFieldMissing:
		return ErrRequiredFieldMissing
	default:
		return ErrTypeMismatch
	}
}

// enumerateOptions renders option titles bounded at maxEnumeratedOptions
// with a remainder count.
func enumerateOptions(titles []string) string {
	if len(titles) <= maxEnumeratedOptions {
		return strings.Join(titles, ", ")
	}
	shown := strings.Join(titles[:maxEnumeratedOptions], ", ")
	return fmt.Sprintf("%s (and %d more)", shown, len(titles)-maxEnumeratedOptions)
}

// reportBackend translates a backend failure 1:1 into the taxonomy, keeping
// the backend's own message text.
func reportBackend(rt catalog.ResourceType, err error) *OperationResult {
	var bErr *backend.Error
	if !errors.As(err, &bErr) {
		return &OperationResult{
			Success: false,
			Error: &OperationError{
				Kind:    ErrBackendRejected,
				Message: fmt.Sprintf("%s backend: %v", rt, err),
			},
		}
	}

	kind := ErrBackendRejected
	switch bErr.Kind {
	case backend.ErrNotFound:
		kind = ErrRecordNotFound
	case backend.ErrRateLimited:
		kind = ErrRateLimited
	case backend.ErrTimeout:
		kind = ErrTimeout
	case backend.ErrUnauthorized:
		kind = ErrUnauthorized
	case backend.ErrValidationRejected:
		kind = ErrBackendRejected
	}
	return &OperationResult{
		Success: false,
		Error: &OperationError{
			Kind:    kind,
			Message: bErr.Message,
			Field:   bErr.Field,
		},
	}
}

// defaultImmutableFields lists attributes each backend silently refuses to
// write. The platform drops such writes without an error; mirroring that
// contract, the dispatcher strips them before the call and reports success
// with a warning instead of inventing a stricter failure. Tracked per
// resource type because backends differ; Policy.ImmutableFields overrides
// the whole table from configuration.
var defaultImmutableFields = map[catalog.ResourceType][]string{
	catalog.ResourceCompanies: {"created_at"},
	catalog.ResourcePeople:    {"created_at"},
	catalog.ResourceDeals:     {"created_at"},
}

// stripImmutable removes immutable fields from a mapped set, returning one
// warning per removed field.
func stripImmutable(immutable map[catalog.ResourceType][]string, rt catalog.ResourceType, mapped *mapping.Fields) []string {
	var warnings []string
	for _, slug := range immutable[rt] {
		if mapped.Delete(slug) {
			warnings = append(warnings,
				fmt.Sprintf("field %q is read-only on %s; the backend ignores writes to it", slug, rt))
		}
	}
	return warnings
}
