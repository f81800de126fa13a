package catalog

import (
	"context"
	"path/filepath"
	"testing"
)

func TestCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	cache, err := OpenCache(path)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	original := Defaults()
	if err := cache.Save(ctx, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil {
		t.Fatalf("expected a cached catalog")
	}
	desc, ok := loaded.Lookup(ResourceDeals, "stage")
	if !ok {
		t.Fatalf("expected deals stage to survive the round trip")
	}
	if desc.DisplayName != "Deal stage" {
		t.Fatalf("expected display name to survive, got %q", desc.DisplayName)
	}
	if len(desc.Options) == 0 {
		t.Fatalf("expected stage options to survive")
	}
}

func TestCacheLoadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	cache, err := OpenCache(path)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	loaded, err := cache.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected empty cache to yield nil catalog")
	}
}

func TestCacheSaveReplacesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	cache, err := OpenCache(path)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()
	if err := cache.Save(ctx, Defaults()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	trimmed := New(map[ResourceType][]AttributeDescriptor{
		ResourceNotes: {{Slug: "content", DisplayName: "Content", Kind: KindText}},
	})
	if err := cache.Save(ctx, trimmed); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := cache.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := loaded.Lookup(ResourceDeals, "stage"); ok {
		t.Fatalf("expected second save to replace the first snapshot")
	}
	if _, ok := loaded.Lookup(ResourceNotes, "content"); !ok {
		t.Fatalf("expected second snapshot to be readable")
	}
}
