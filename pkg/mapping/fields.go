// Package mapping normalizes caller-supplied field bags into the canonical
// shape each backend expects: alias resolution, value coercion, suggestion
// ranking for unresolved keys, and per-resource rewrites.
package mapping

import (
	"bytes"
	"encoding/json"
)

// Fields is an ordered slug→value mapping. Order is the order fields were
// emitted by the pipeline, which keeps mapped output deterministic for a
// given input.
type Fields struct {
	keys   []string
	values map[string]any
}

// NewFields creates an empty ordered field mapping.
func NewFields() *Fields {
	return &Fields{values: make(map[string]any)}
}

// Set stores a value under slug, keeping the first-set position on overwrite.
func (f *Fields) Set(slug string, value any) {
	if _, exists := f.values[slug]; !exists {
		f.keys = append(f.keys, slug)
	}
	f.values[slug] = value
}

// Get returns the value stored under slug.
func (f *Fields) Get(slug string) (any, bool) {
	v, ok := f.values[slug]
	return v, ok
}

// Delete removes a slug. Returns true if it was present.
func (f *Fields) Delete(slug string) bool {
	if _, ok := f.values[slug]; !ok {
		return false
	}
	delete(f.values, slug)
	for i, k := range f.keys {
		if k == slug {
			f.keys = append(f.keys[:i], f.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored fields.
func (f *Fields) Len() int {
	return len(f.keys)
}

// Keys returns the slugs in insertion order.
func (f *Fields) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Map flattens to a plain map for backend calls.
func (f *Fields) Map() map[string]any {
	out := make(map[string]any, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}

// MarshalJSON renders the mapping as a JSON object preserving field order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
