package mapping

import (
	"fmt"
	"sort"
	"strings"

	"github.com/recordwise/crm-bridge/pkg/catalog"
)

// DiscoveryToolName is the tool callers are pointed at when they use a field
// key the catalog does not know.
const DiscoveryToolName = "discover_attributes"

// Operation names the request kind being mapped. Only create currently
// changes pipeline behavior (required-field enforcement).
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpSearch Operation = "search"
)

// requiredForCreate lists fields a create cannot omit, per resource type.
var requiredForCreate = map[catalog.ResourceType][]string{
	catalog.ResourceCompanies: {"name"},
	catalog.ResourcePeople:    {"name"},
	catalog.ResourceDeals:     {"name"},
	catalog.ResourceTasks:     {"content"},
	catalog.ResourceNotes:     {"content"},
	catalog.ResourceLists:     {"name"},
}

// MapFields normalizes a raw field bag against the catalog snapshot.
//
// Phase one resolves each key (canonical slug, static alias, display name)
// and coerces the value to the descriptor's declared kind. Keys claimed by a
// resource-specific rewrite rule are deferred. Phase two applies the rewrite
// rules. Errors are aggregated across all fields; nothing aborts early, so a
// caller gets every problem in one round trip. Non-empty Errors means the
// request must never reach a backend.
func MapFields(cat *catalog.Catalog, rt catalog.ResourceType, op Operation, raw map[string]any) *Result {
	return MapFieldsWithLimit(cat, rt, op, raw, MaxSuggestions)
}

// MapFieldsWithLimit is MapFields with an explicit suggestion bound, for
// callers surfacing an operator-configured limit. maxSuggestions <= 0 falls
// back to MaxSuggestions.
func MapFieldsWithLimit(cat *catalog.Catalog, rt catalog.ResourceType, op Operation, raw map[string]any, maxSuggestions int) *Result {
	res := &Result{Mapped: NewFields()}

	if _, err := cat.Describe(rt); err != nil {
		res.Errors = append(res.Errors, &FieldError{
			Kind:    ErrAttributeNotFound,
			Field:   string(rt),
			Message: err.Error(),
		})
		return res
	}

	// map iteration order is random; sort keys so output and error order are
	// stable for a given input.
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	type deferred struct {
		rule  *rewriteRule
		value any
	}
	var rewrites []deferred

	for _, key := range keys {
		value := raw[key]

		if rule, ok := claimedRewrite(rt, key); ok {
			rewrites = append(rewrites, deferred{rule: rule, value: value})
			continue
		}

		resolution, ok := ResolveAlias(cat, rt, key)
		if !ok {
			res.Errors = append(res.Errors, attributeNotFound(cat, rt, key, maxSuggestions))
			continue
		}
		if resolution.Aliased {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("field %q was interpreted as %q", key, resolution.Slug))
		}

		desc, _ := cat.Lookup(rt, resolution.Slug)
		coerced, fieldErr := Coerce(desc, value)
		if fieldErr != nil {
			res.Errors = append(res.Errors, fieldErr)
			continue
		}
		res.Mapped.Set(resolution.Slug, coerced)
	}

	for _, d := range rewrites {
		if fieldErr := d.rule.Apply(d.value, res.Mapped); fieldErr != nil {
			res.Errors = append(res.Errors, fieldErr)
		}
	}

	if op == OpCreate {
		for _, slug := range requiredForCreate[rt] {
			if _, ok := res.Mapped.Get(slug); !ok {
				res.Errors = append(res.Errors, &FieldError{
					Kind:    ErrRequiredFieldMissing,
					Field:   slug,
					Message: fmt.Sprintf("required field %q is missing for %s create", slug, rt),
				})
			}
		}
	}

	return res
}

// attributeNotFound builds the unresolved-key error: the literal key, ranked
// corrections bounded at maxSuggestions, and a pointer at the discovery tool.
func attributeNotFound(cat *catalog.Catalog, rt catalog.ResourceType, key string, maxSuggestions int) *FieldError {
	suggestions := Suggest(key, vocabulary(cat, rt), maxSuggestions)

	var b strings.Builder
	fmt.Fprintf(&b, "unknown field %q for %s", key, rt)
	if len(suggestions) > 0 {
		fmt.Fprintf(&b, "; did you mean %s?", quoteJoin(suggestions))
	}
	fmt.Fprintf(&b, " Use %s(%q) to list valid fields.", DiscoveryToolName, rt)

	return &FieldError{
		Kind:        ErrAttributeNotFound,
		Field:       key,
		Message:     b.String(),
		Suggestions: suggestions,
	}
}

// vocabulary is the suggestion candidate set for a resource: canonical slugs
// in catalog declaration order, then registered alias keys. Declaration
// order matters — it is the tie-break for equal edit distances.
func vocabulary(cat *catalog.Catalog, rt catalog.ResourceType) []string {
	candidates := cat.Slugs(rt)
	aliasKeys := make([]string, 0, len(staticAliases[rt]))
	for alias := range staticAliases[rt] {
		aliasKeys = append(aliasKeys, alias)
	}
	sort.Strings(aliasKeys)
	return append(candidates, aliasKeys...)
}
