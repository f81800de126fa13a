package backend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Memory is an in-memory Adapter used by tests and local development. It
// mimics the remote platform's semantics closely enough for the dispatcher:
// structured errors, and silent acceptance of unknown fields.
type Memory struct {
	mu      sync.RWMutex
	records map[string]Record
	order   []string
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]Record)}
}

func (m *Memory) Create(ctx context.Context, fields map[string]any) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	rec := Record{"id": id}
	for k, v := range fields {
		rec[k] = v
	}
	m.records[id] = rec
	m.order = append(m.order, id)
	return cloneRecord(rec), nil
}

func (m *Memory) Get(ctx context.Context, recordID string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[recordID]
	if !ok {
		return nil, NewError(ErrNotFound, "record %s does not exist", recordID)
	}
	return cloneRecord(rec), nil
}

func (m *Memory) Update(ctx context.Context, recordID string, fields map[string]any) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[recordID]
	if !ok {
		return nil, NewError(ErrNotFound, "record %s does not exist", recordID)
	}
	for k, v := range fields {
		rec[k] = v
	}
	return cloneRecord(rec), nil
}

func (m *Memory) Delete(ctx context.Context, recordID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[recordID]; !ok {
		return NewError(ErrNotFound, "record %s does not exist", recordID)
	}
	delete(m.records, recordID)
	for i, id := range m.order {
		if id == recordID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *Memory) Search(ctx context.Context, q Query) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []Record
	for _, id := range m.order {
		rec := m.records[id]
		if !matchesQuery(rec, q) {
			continue
		}
		matched = append(matched, cloneRecord(rec))
	}

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func matchesQuery(rec Record, q Query) bool {
	for slug, want := range q.Filter {
		got, ok := rec[slug]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	if q.Text == "" {
		return true
	}
	needle := strings.ToLower(q.Text)
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(strings.ToLower(fmt.Sprint(rec[k])), needle) {
			return true
		}
	}
	return false
}

func cloneRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
