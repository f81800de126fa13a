// Package catalog holds the per-resource-type attribute metadata that the
// mapping pipeline validates against. A Catalog is an immutable snapshot:
// request processing only ever reads it, and refresh replaces it wholesale.
package catalog

import (
	"fmt"
	"strings"
)

// ResourceType identifies one of the record kinds the platform exposes.
type ResourceType string

const (
	ResourceCompanies ResourceType = "companies"
	ResourcePeople    ResourceType = "people"
	ResourceDeals     ResourceType = "deals"
	ResourceTasks     ResourceType = "tasks"
	ResourceLists     ResourceType = "lists"
	ResourceNotes     ResourceType = "notes"
	ResourceRecords   ResourceType = "records"
)

// ResourceTypes lists every supported resource type in stable order.
var ResourceTypes = []ResourceType{
	ResourceCompanies,
	ResourcePeople,
	ResourceDeals,
	ResourceTasks,
	ResourceLists,
	ResourceNotes,
	ResourceRecords,
}

// ParseResourceType validates a caller-supplied resource type string.
func ParseResourceType(s string) (ResourceType, error) {
	rt := ResourceType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ResourceTypes {
		if rt == known {
			return rt, nil
		}
	}
	return "", &UnsupportedResourceTypeError{Given: s}
}

// UnsupportedResourceTypeError reports a resource type outside the closed set.
type UnsupportedResourceTypeError struct {
	Given string
}

func (e *UnsupportedResourceTypeError) Error() string {
	return fmt.Sprintf("unsupported resource type %q (valid: %s)", e.Given, joinResourceTypes())
}

func joinResourceTypes() string {
	names := make([]string, len(ResourceTypes))
	for i, rt := range ResourceTypes {
		names[i] = string(rt)
	}
	return strings.Join(names, ", ")
}

// Kind is the declared value kind of an attribute.
type Kind string

const (
	KindText            Kind = "text"
	KindNumber          Kind = "number"
	KindBoolean         Kind = "boolean"
	KindDate            Kind = "date"
	KindSelect          Kind = "select"
	KindStatus          Kind = "status"
	KindMultiSelect     Kind = "multi-select"
	KindRecordReference Kind = "record-reference"
)

// IsMultiValued reports whether values of this kind are stored as sequences.
func (k Kind) IsMultiValued() bool {
	return k == KindMultiSelect
}

// IsChoice reports whether the kind restricts values to a declared option set.
// A choice kind with no declared options accepts any value.
func (k Kind) IsChoice() bool {
	return k == KindSelect || k == KindStatus || k == KindMultiSelect
}

// Option is a single legal value of a choice attribute.
type Option struct {
	Value string `json:"value"`
	Title string `json:"title"`
}

// AttributeDescriptor describes one attribute of a resource type.
type AttributeDescriptor struct {
	Slug        string   `json:"slug"`
	DisplayName string   `json:"display_name"`
	Kind        Kind     `json:"kind"`
	Options     []Option `json:"options,omitempty"`
}

// HasOptions reports whether the descriptor declares an enumerable option set.
func (d *AttributeDescriptor) HasOptions() bool {
	return d.Kind.IsChoice() && len(d.Options) > 0
}

// OptionTitles returns the option titles in declaration order.
func (d *AttributeDescriptor) OptionTitles() []string {
	titles := make([]string, len(d.Options))
	for i, opt := range d.Options {
		titles[i] = opt.Title
	}
	return titles
}

// AllowsValue reports whether v matches one of the declared options, by value
// or title, case-insensitively. Attributes without options allow everything.
func (d *AttributeDescriptor) AllowsValue(v string) bool {
	if !d.HasOptions() {
		return true
	}
	for _, opt := range d.Options {
		if strings.EqualFold(opt.Value, v) || strings.EqualFold(opt.Title, v) {
			return true
		}
	}
	return false
}

// Catalog is an immutable snapshot of attribute metadata for every resource
// type. Descriptor order within a resource is the declaration order reported
// by the schema endpoint; suggestion ranking relies on it for deterministic
// tie-breaks.
type Catalog struct {
	attributes map[ResourceType][]AttributeDescriptor
}

// New builds a catalog from per-resource descriptor lists. The input map is
// copied; later mutation of the argument does not affect the catalog.
func New(attrs map[ResourceType][]AttributeDescriptor) *Catalog {
	copied := make(map[ResourceType][]AttributeDescriptor, len(attrs))
	for rt, descs := range attrs {
		copied[rt] = append([]AttributeDescriptor(nil), descs...)
	}
	return &Catalog{attributes: copied}
}

// Describe returns the attribute descriptors for a resource type in
// declaration order.
func (c *Catalog) Describe(rt ResourceType) ([]AttributeDescriptor, error) {
	descs, ok := c.attributes[rt]
	if !ok {
		return nil, &UnsupportedResourceTypeError{Given: string(rt)}
	}
	return descs, nil
}

// Lookup finds a descriptor by exact canonical slug.
func (c *Catalog) Lookup(rt ResourceType, slug string) (*AttributeDescriptor, bool) {
	for i := range c.attributes[rt] {
		if c.attributes[rt][i].Slug == slug {
			return &c.attributes[rt][i], true
		}
	}
	return nil, false
}

// Slugs returns the canonical slugs of a resource type in declaration order.
func (c *Catalog) Slugs(rt ResourceType) []string {
	descs := c.attributes[rt]
	slugs := make([]string, len(descs))
	for i, d := range descs {
		slugs[i] = d.Slug
	}
	return slugs
}

// ResolveDisplayName maps a human-readable attribute name to its canonical
// slug. Matching is case-insensitive and ignores surrounding whitespace.
func (c *Catalog) ResolveDisplayName(rt ResourceType, name string) (string, bool) {
	descs, ok := c.attributes[rt]
	if !ok {
		return "", false
	}
	name = strings.TrimSpace(name)
	for _, d := range descs {
		if strings.EqualFold(d.DisplayName, name) {
			return d.Slug, true
		}
	}
	return "", false
}

// WithResource returns a copy of the catalog with one resource's descriptors
// replaced. The receiver is never mutated, so published snapshots stay
// valid while a caller derives a new one.
func (c *Catalog) WithResource(rt ResourceType, descs []AttributeDescriptor) *Catalog {
	merged := make(map[ResourceType][]AttributeDescriptor, len(c.attributes)+1)
	for k, v := range c.attributes {
		merged[k] = v
	}
	merged[rt] = append([]AttributeDescriptor(nil), descs...)
	return &Catalog{attributes: merged}
}

// Attributes returns a copy of the full descriptor map, for persistence.
func (c *Catalog) Attributes() map[ResourceType][]AttributeDescriptor {
	copied := make(map[ResourceType][]AttributeDescriptor, len(c.attributes))
	for rt, descs := range c.attributes {
		copied[rt] = append([]AttributeDescriptor(nil), descs...)
	}
	return copied
}
