package mapping

import (
	"strings"

	"github.com/recordwise/crm-bridge/pkg/catalog"
)

// staticAliases maps historical and commonly mistyped field keys to their
// canonical slugs. Only exact one-to-one equivalences belong here: a wrongly
// guessed rename is worse than a visible error, so fuzzy matching never
// applies aliases.
var staticAliases = map[catalog.ResourceType]map[string]string{
	catalog.ResourceCompanies: {
		"linkedin_url":   "linkedin",
		"twitter_handle": "twitter",
		"twitter_url":    "twitter",
		"domain":         "domains",
		"website":        "domains",
		"category":       "categories",
		"industry":       "categories",
	},
	catalog.ResourcePeople: {
		"linkedin_url":   "linkedin",
		"twitter_handle": "twitter",
		"twitter_url":    "twitter",
		"email":          "email_addresses",
		"emails":         "email_addresses",
		"phone":          "phone_numbers",
		"phones":         "phone_numbers",
		"title":          "job_title",
	},
	catalog.ResourceDeals: {
		"deal_stage": "stage",
		"amount":     "value",
		"deal_value": "value",
	},
	catalog.ResourceTasks: {
		"due_date": "dueDate",
		"assignee": "assigneeId",
	},
	catalog.ResourceNotes: {
		"body": "content",
		"text": "content",
	},
}

// Resolution is the outcome of resolving one field key.
type Resolution struct {
	Slug    string
	Aliased bool // true when resolution went through an alias or display name
}

// ResolveAlias maps a user-supplied field key to its canonical slug.
// Precedence: exact canonical slug, then the static alias table, then a
// case-insensitive display-name match. First match wins.
func ResolveAlias(cat *catalog.Catalog, rt catalog.ResourceType, key string) (Resolution, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Resolution{}, false
	}

	if _, ok := cat.Lookup(rt, key); ok {
		return Resolution{Slug: key}, true
	}

	if aliases, ok := staticAliases[rt]; ok {
		if slug, ok := aliases[strings.ToLower(key)]; ok {
			// The alias table is only trusted if the target exists in the
			// current catalog snapshot.
			if _, exists := cat.Lookup(rt, slug); exists {
				return Resolution{Slug: slug, Aliased: true}, true
			}
		}
	}

	if slug, ok := cat.ResolveDisplayName(rt, key); ok {
		return Resolution{Slug: slug, Aliased: true}, true
	}

	return Resolution{}, false
}
