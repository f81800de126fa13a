package tools

import (
	"github.com/recordwise/crm-bridge/pkg/dispatch"
)

// Rule maps one legacy tool name onto the unified operation model. Transform
// reshapes the legacy parameter bag into a canonical request; it never
// validates or coerces values, that stays in the mapping pipeline.
type Rule struct {
	LegacyName   string
	Operation    dispatch.Operation
	ResourceType string
	Transform    func(params map[string]any) *dispatch.OperationRequest
}

// Translator is a stateless shape-adapter for callers still using the old
// per-resource tool names. Lookup is a pure static table; unknown names
// pass through untranslated.
type Translator struct {
	rules map[string]Rule
}

// NewTranslator builds the translator with the versioned rule table.
func NewTranslator() *Translator {
	t := &Translator{rules: make(map[string]Rule)}
	for _, rule := range legacyRules() {
		// First registration wins.
		if _, ok := t.rules[rule.LegacyName]; !ok {
			t.rules[rule.LegacyName] = rule
		}
	}
	return t
}

// Translate maps a legacy call onto a canonical request. The second return
// is false when the name is not a legacy name, in which case the caller
// should treat the call as already canonical.
func (t *Translator) Translate(name string, params map[string]any) (*dispatch.OperationRequest, bool) {
	rule, ok := t.rules[name]
	if !ok {
		return nil, false
	}
	req := rule.Transform(params)
	req.Operation = rule.Operation
	req.ResourceType = rule.ResourceType
	return req, true
}

// Names returns the legacy names the translator recognizes, in rule
// declaration order.
func (t *Translator) Names() []string {
	names := make([]string, 0, len(t.rules))
	seen := make(map[string]bool, len(t.rules))
	for _, rule := range legacyRules() {
		if !seen[rule.LegacyName] {
			seen[rule.LegacyName] = true
			names = append(names, rule.LegacyName)
		}
	}
	return names
}

// Rule returns the rule for a legacy name.
func (t *Translator) Rule(name string) (Rule, bool) {
	rule, ok := t.rules[name]
	return rule, ok
}

type legacyResource struct {
	singular string
	rt       string
}

var legacyResources = []legacyResource{
	{"company", "companies"},
	{"person", "people"},
	{"deal", "deals"},
	{"task", "tasks"},
	{"note", "notes"},
}

func legacyRules() []Rule {
	rules := make([]Rule, 0, 4*len(legacyResources)+len(legacyResources))
	for _, res := range legacyResources {
		legacy, rt := res.singular, res.rt
		rules = append(rules,
			Rule{
				LegacyName:   "create-" + legacy,
				Operation:    dispatch.OpCreate,
				ResourceType: rt,
				Transform:    flatFields,
			},
			Rule{
				LegacyName:   "update-" + legacy,
				Operation:    dispatch.OpUpdate,
				ResourceType: rt,
				Transform:    recordIDAndFlatFields,
			},
			Rule{
				LegacyName:   "get-" + legacy,
				Operation:    dispatch.OpGet,
				ResourceType: rt,
				Transform:    recordIDOnly,
			},
			Rule{
				LegacyName:   "delete-" + legacy,
				Operation:    dispatch.OpDelete,
				ResourceType: rt,
				Transform:    recordIDOnly,
			},
		)
	}
	for _, res := range legacyResources {
		rules = append(rules, Rule{
			LegacyName:   "search-" + res.rt,
			Operation:    dispatch.OpSearch,
			ResourceType: res.rt,
			Transform:    searchShape,
		})
	}
	return rules
}

// legacyReserved are the legacy parameter keys that address the request
// itself rather than record fields.
var legacyReserved = map[string]bool{
	"record_id": true,
	"id":        true,
	"query":     true,
	"filter":    true,
	"limit":     true,
	"offset":    true,
}

// flatFields treats every non-reserved top-level parameter as a record
// field, matching the old tools' flat calling convention.
func flatFields(params map[string]any) *dispatch.OperationRequest {
	fields := make(map[string]any, len(params))
	for key, value := range params {
		if legacyReserved[key] {
			continue
		}
		fields[key] = value
	}
	return &dispatch.OperationRequest{Fields: fields}
}

func recordIDAndFlatFields(params map[string]any) *dispatch.OperationRequest {
	req := flatFields(params)
	req.RecordID = legacyRecordID(params)
	return req
}

func recordIDOnly(params map[string]any) *dispatch.OperationRequest {
	return &dispatch.OperationRequest{RecordID: legacyRecordID(params)}
}

func searchShape(params map[string]any) *dispatch.OperationRequest {
	query, _ := ReadString(params, "query", false)
	filter, _ := ReadMap(params, "filter", false)
	return &dispatch.OperationRequest{
		Query:  query,
		Fields: filter,
		Page: dispatch.Page{
			Limit:  ReadIntDefault(params, "limit", 0),
			Offset: ReadIntDefault(params, "offset", 0),
		},
	}
}

// legacyRecordID accepts both record_id and the older bare id key.
func legacyRecordID(params map[string]any) string {
	if id, _ := ReadString(params, "record_id", false); id != "" {
		return id
	}
	id, _ := ReadString(params, "id", false)
	return id
}
