package mapping

import (
	"fmt"

	"github.com/recordwise/crm-bridge/pkg/catalog"
)

// rewriteRule renames and reshapes one caller-facing key into the canonical
// field a specific backend wants. Rules run after generic resolution so the
// generic pipeline stays resource-agnostic and quirks cannot leak across
// resource types.
type rewriteRule struct {
	// Key is the caller-facing field name the rule claims. Claimed keys skip
	// generic alias resolution entirely.
	Key   string
	Apply func(value any, out *Fields) *FieldError
}

// resourceRewrites is the per-resource override table. The task backend is
// the odd one out: it predates the unified attribute model and takes its own
// parameter names and shapes.
var resourceRewrites = map[catalog.ResourceType][]rewriteRule{
	catalog.ResourceTasks: {
		{
			Key: "is_completed",
			Apply: func(value any, out *Fields) *FieldError {
				done, ok := value.(bool)
				if !ok {
					return &FieldError{
						Kind:    ErrTypeMismatch,
						Field:   "is_completed",
						Message: fmt.Sprintf("is_completed must be a boolean, got %T", value),
					}
				}
				if done {
					out.Set("status", "completed")
				} else {
					out.Set("status", "pending")
				}
				return nil
			},
		},
		{
			Key: "assignees",
			Apply: func(value any, out *Fields) *FieldError {
				ids := flattenRecordIDs(value)
				if len(ids) == 0 {
					return &FieldError{
						Kind:    ErrTypeMismatch,
						Field:   "assignees",
						Message: "assignees must contain at least one id",
					}
				}
				// The task backend supports a single assignee.
				out.Set("assigneeId", ids[0])
				return nil
			},
		},
		{
			Key: "deadline_at",
			Apply: func(value any, out *Fields) *FieldError {
				out.Set("dueDate", value)
				return nil
			},
		},
		{
			Key: "linked_records",
			Apply: func(value any, out *Fields) *FieldError {
				ids := flattenRecordIDs(value)
				if len(ids) == 0 {
					return &FieldError{
						Kind:    ErrTypeMismatch,
						Field:   "linked_records",
						Message: "linked_records must be a list of record ids or {record_id} objects",
					}
				}
				out.Set("recordIds", ids)
				return nil
			},
		},
	},
}

// claimedRewrite returns the rule claiming key for rt, if any.
func claimedRewrite(rt catalog.ResourceType, key string) (*rewriteRule, bool) {
	for i := range resourceRewrites[rt] {
		if resourceRewrites[rt][i].Key == key {
			return &resourceRewrites[rt][i], true
		}
	}
	return nil, false
}

// flattenRecordIDs extracts bare record ids from the accepted linked-record
// shapes: a bare string, {"record_id": ...}, or {"id": ...}, possibly inside
// a sequence.
func flattenRecordIDs(value any) []any {
	var ids []any
	for _, elem := range elements(value) {
		switch v := elem.(type) {
		case string:
			if v != "" {
				ids = append(ids, v)
			}
		case map[string]any:
			if id, ok := v["record_id"]; ok {
				ids = append(ids, id)
			} else if id, ok := v["id"]; ok {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
