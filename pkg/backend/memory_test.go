package backend

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryCreateAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	rec, err := m.Create(ctx, map[string]any{"name": "Acme"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id, ok := rec["id"].(string)
	if !ok || id == "" {
		t.Fatalf("expected a generated id, got %v", rec["id"])
	}

	got, err := m.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["name"] != "Acme" {
		t.Fatalf("expected stored fields, got %v", got)
	}
}

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()
	_, err := m.Get(context.Background(), "nope")
	var bErr *Error
	if !errors.As(err, &bErr) || bErr.Kind != ErrNotFound {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestMemoryUpdateMergesFields(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	rec, _ := m.Create(ctx, map[string]any{"name": "Acme", "stage": "Lead"})
	id := rec["id"].(string)

	updated, err := m.Update(ctx, id, map[string]any{"stage": "Won"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated["stage"] != "Won" || updated["name"] != "Acme" {
		t.Fatalf("expected merged fields, got %v", updated)
	}
}

func TestMemoryDelete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	rec, _ := m.Create(ctx, map[string]any{"name": "Acme"})
	id := rec["id"].(string)

	if err := m.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(ctx, id); err == nil {
		t.Fatalf("expected deleted record to be gone")
	}
	var bErr *Error
	if err := m.Delete(ctx, id); !errors.As(err, &bErr) || bErr.Kind != ErrNotFound {
		t.Fatalf("expected not-found on double delete, got %v", err)
	}
}

func TestMemorySearchTextAndFilter(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.Create(ctx, map[string]any{"name": "Acme Corp", "stage": "Lead"})
	m.Create(ctx, map[string]any{"name": "Globex", "stage": "Won"})
	m.Create(ctx, map[string]any{"name": "Acme Labs", "stage": "Won"})

	recs, err := m.Search(ctx, Query{Text: "acme"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 text matches, got %d", len(recs))
	}

	recs, err = m.Search(ctx, Query{Filter: map[string]any{"stage": "Won"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 filter matches, got %d", len(recs))
	}

	recs, err = m.Search(ctx, Query{Text: "acme", Filter: map[string]any{"stage": "Won"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected combined match, got %d", len(recs))
	}
}

func TestMemorySearchPagination(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		m.Create(ctx, map[string]any{"name": "Item"})
	}

	recs, err := m.Search(ctx, Query{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected a page of 2, got %d", len(recs))
	}

	recs, _ = m.Search(ctx, Query{Offset: 10})
	if len(recs) != 0 {
		t.Fatalf("expected offset past end to yield nothing, got %d", len(recs))
	}
}

func TestMemoryRecordsAreIsolated(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	rec, _ := m.Create(ctx, map[string]any{"name": "Acme"})
	rec["name"] = "Mutated"

	got, _ := m.Get(ctx, rec["id"].(string))
	if got["name"] != "Acme" {
		t.Fatalf("expected stored record to be unaffected by caller mutation, got %v", got)
	}
}
