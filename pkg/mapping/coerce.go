package mapping

import (
	"fmt"

	"github.com/recordwise/crm-bridge/pkg/catalog"
)

// Coerce adjusts a raw value's shape to the descriptor's declared kind.
// Rules, in order:
//  1. Multi-valued kind with a scalar input wraps into a one-element slice.
//     The interpretation is unambiguous, so no warning is emitted.
//  2. Choice kinds with a declared option set reject values outside it,
//     returning a FieldError carrying ranked suggestions and the full valid
//     option list.
//  3. Everything else passes through unchanged.
//
// Coerce never panics; it returns either a value or a structured error.
func Coerce(desc *catalog.AttributeDescriptor, raw any) (any, *FieldError) {
	value := raw
	if desc.Kind.IsMultiValued() {
		value = wrapScalar(raw)
	}

	if desc.HasOptions() {
		if err := checkOptions(desc, value); err != nil {
			return nil, err
		}
	}
	return value, nil
}

// wrapScalar turns a scalar into a one-element slice; sequences pass through
// so coercion is idempotent.
func wrapScalar(raw any) any {
	switch raw.(type) {
	case []any, []string, nil:
		return raw
	default:
		return []any{raw}
	}
}

// checkOptions validates every element of value against the declared option
// set, collecting the first offending element into a structured error.
func checkOptions(desc *catalog.AttributeDescriptor, value any) *FieldError {
	for _, elem := range elements(value) {
		s, ok := elem.(string)
		if !ok {
			return &FieldError{
				Kind:         ErrTypeMismatch,
				Field:        desc.Slug,
				Message:      fmt.Sprintf("value %v for %q must be a string option", elem, desc.Slug),
				ValidOptions: desc.OptionTitles(),
			}
		}
		if desc.AllowsValue(s) {
			continue
		}
		return &FieldError{
			Kind:         ErrInvalidOptionValue,
			Field:        desc.Slug,
			Message:      fmt.Sprintf("%q is not a valid option for %q", s, desc.Slug),
			Suggestions:  Suggest(s, desc.OptionTitles(), MaxSuggestions),
			ValidOptions: desc.OptionTitles(),
		}
	}
	return nil
}

// elements views value as a sequence; scalars become a single-element view.
func elements(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	case nil:
		return nil
	default:
		return []any{v}
	}
}
