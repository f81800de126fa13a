package dispatch

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/recordwise/crm-bridge/pkg/backend"
	"github.com/recordwise/crm-bridge/pkg/catalog"
)

// fakeAdapter records calls and replays canned responses.
type fakeAdapter struct {
	calls    []string
	created  map[string]any
	updated  map[string]any
	searched backend.Query
	err      error
}

func (f *fakeAdapter) Create(ctx context.Context, fields map[string]any) (backend.Record, error) {
	f.calls = append(f.calls, "create")
	f.created = fields
	if f.err != nil {
		return nil, f.err
	}
	rec := backend.Record{"id": "rec-1"}
	for k, v := range fields {
		rec[k] = v
	}
	return rec, nil
}

func (f *fakeAdapter) Get(ctx context.Context, recordID string) (backend.Record, error) {
	f.calls = append(f.calls, "get")
	if f.err != nil {
		return nil, f.err
	}
	return backend.Record{"id": recordID}, nil
}

func (f *fakeAdapter) Update(ctx context.Context, recordID string, fields map[string]any) (backend.Record, error) {
	f.calls = append(f.calls, "update")
	f.updated = fields
	if f.err != nil {
		return nil, f.err
	}
	return backend.Record{"id": recordID}, nil
}

func (f *fakeAdapter) Delete(ctx context.Context, recordID string) error {
	f.calls = append(f.calls, "delete")
	return f.err
}

func (f *fakeAdapter) Search(ctx context.Context, q backend.Query) ([]backend.Record, error) {
	f.calls = append(f.calls, "search")
	f.searched = q
	if f.err != nil {
		return nil, f.err
	}
	return []backend.Record{{"id": "rec-1"}}, nil
}

type fakeBackends struct {
	adapter *fakeAdapter
}

func (f *fakeBackends) ForResource(rt catalog.ResourceType) backend.Adapter {
	return f.adapter
}

func newTestDispatcher() (*Dispatcher, *fakeAdapter) {
	adapter := &fakeAdapter{}
	store := catalog.NewStore(catalog.Defaults())
	d := New(store, &fakeBackends{adapter: adapter}, zerolog.Nop())
	return d, adapter
}

func TestDispatchRejectsMissingResourceType(t *testing.T) {
	d, adapter := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{Operation: OpCreate})
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Error.Kind != ErrUnsupportedResourceType {
		t.Fatalf("expected unsupported_resource_type, got %q", res.Error.Kind)
	}
	if len(adapter.calls) != 0 {
		t.Fatalf("expected no backend calls, got %v", adapter.calls)
	}
}

func TestDispatchRejectsUnknownResourceType(t *testing.T) {
	d, _ := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpGet,
		ResourceType: "gadgets",
		RecordID:     "x",
	})
	if res.Error == nil || res.Error.Kind != ErrUnsupportedResourceType {
		t.Fatalf("expected unsupported_resource_type, got %+v", res.Error)
	}
}

func TestDispatchMappingErrorShortCircuits(t *testing.T) {
	d, adapter := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpCreate,
		ResourceType: "people",
		Fields: map[string]any{
			"name":                      "Ada",
			"totally_unknown_field_xyz": "x",
		},
	})
	if res.Success {
		t.Fatalf("expected failure")
	}
	if res.Error.Kind != ErrAttributeNotFound {
		t.Fatalf("expected attribute_not_found, got %q", res.Error.Kind)
	}
	if res.Error.DiscoveryHint == "" {
		t.Fatalf("expected a discovery hint")
	}
	if len(adapter.calls) != 0 {
		t.Fatalf("no backend call may happen while mapping errors exist, got %v", adapter.calls)
	}
}

func TestDispatchCreateSuccess(t *testing.T) {
	d, adapter := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpCreate,
		ResourceType: "companies",
		Fields: map[string]any{
			"name":    "Acme",
			"domains": "acme.dev",
		},
	})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res.Error)
	}
	if len(adapter.calls) != 1 || adapter.calls[0] != "create" {
		t.Fatalf("expected one create call, got %v", adapter.calls)
	}
	if _, ok := adapter.created["domains"]; !ok {
		t.Fatalf("expected canonical fields to reach the backend, got %v", adapter.created)
	}
}

func TestDispatchImmutableFieldWarns(t *testing.T) {
	d, adapter := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpUpdate,
		ResourceType: "companies",
		RecordID:     "rec-1",
		Fields: map[string]any{
			"name":       "Acme Renamed",
			"created_at": "2020-01-01",
		},
	})
	if !res.Success {
		t.Fatalf("expected success with warning, got %+v", res.Error)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "created_at") {
		t.Fatalf("expected a read-only warning naming created_at, got %v", res.Warnings)
	}
	if _, ok := adapter.updated["created_at"]; ok {
		t.Fatalf("expected created_at to be stripped before the backend call")
	}
	if _, ok := adapter.updated["name"]; !ok {
		t.Fatalf("expected remaining fields to be written")
	}
}

func TestDispatchUpdateRequiresRecordID(t *testing.T) {
	d, adapter := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpUpdate,
		ResourceType: "companies",
		Fields:       map[string]any{"name": "Acme"},
	})
	if res.Success || res.Error.Kind != ErrRequiredFieldMissing {
		t.Fatalf("expected required_field_missing, got %+v", res.Error)
	}
	if len(adapter.calls) != 0 {
		t.Fatalf("expected no backend calls, got %v", adapter.calls)
	}
}

func TestDispatchBackendErrorTranslation(t *testing.T) {
	cases := []struct {
		backendKind backend.ErrorKind
		want        ErrorKind
	}{
		{backend.ErrNotFound, ErrRecordNotFound},
		{backend.ErrRateLimited, ErrRateLimited},
		{backend.ErrUnauthorized, ErrUnauthorized},
		{backend.ErrTimeout, ErrTimeout},
		{backend.ErrValidationRejected, ErrBackendRejected},
	}
	for _, tc := range cases {
		d, adapter := newTestDispatcher()
		adapter.err = backend.NewError(tc.backendKind, "backend said no")
		res := d.Dispatch(context.Background(), &OperationRequest{
			Operation:    OpGet,
			ResourceType: "deals",
			RecordID:     "rec-1",
		})
		if res.Success {
			t.Fatalf("%s: expected failure", tc.backendKind)
		}
		if res.Error.Kind != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.backendKind, tc.want, res.Error.Kind)
		}
		if !strings.Contains(res.Error.Message, "backend said no") {
			t.Fatalf("%s: expected backend text passthrough, got %q", tc.backendKind, res.Error.Message)
		}
	}
}

func TestDispatchSearchMapsFilterKeys(t *testing.T) {
	d, adapter := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpSearch,
		ResourceType: "people",
		Query:        "ada",
		Fields:       map[string]any{"title": "CTO"},
		Page:         Page{Limit: 5},
	})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res.Error)
	}
	if _, ok := adapter.searched.Filter["job_title"]; !ok {
		t.Fatalf("expected filter key to be canonicalized, got %v", adapter.searched.Filter)
	}
	if adapter.searched.Limit != 5 || adapter.searched.Text != "ada" {
		t.Fatalf("expected query parameters to pass through, got %+v", adapter.searched)
	}
}

func TestDispatchSearchRejectsBadFilterKey(t *testing.T) {
	d, adapter := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpSearch,
		ResourceType: "people",
		Fields:       map[string]any{"totally_unknown_field_xyz": "x"},
	})
	if res.Success || res.Error.Kind != ErrAttributeNotFound {
		t.Fatalf("expected attribute_not_found for a bad filter key, got %+v", res.Error)
	}
	if len(adapter.calls) != 0 {
		t.Fatalf("expected no backend call, got %v", adapter.calls)
	}
}

func TestDispatchAttributeOptions(t *testing.T) {
	d, _ := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpOptions,
		ResourceType: "deals",
		Attribute:    "Deal stage",
	})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res.Error)
	}
	content, ok := res.Content.(map[string]any)
	if !ok {
		t.Fatalf("expected map content, got %T", res.Content)
	}
	if content["attribute"] != "stage" {
		t.Fatalf("expected the canonical slug, got %v", content["attribute"])
	}
}

func TestDispatchAttributeOptionsNonChoice(t *testing.T) {
	d, _ := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpOptions,
		ResourceType: "deals",
		Attribute:    "value",
	})
	if res.Success {
		t.Fatalf("expected a graceful failure for a non-choice attribute")
	}
	if res.Error.Kind != ErrTypeMismatch {
		t.Fatalf("expected type_mismatch, got %q", res.Error.Kind)
	}
	if !strings.Contains(res.Error.Message, "value") || !strings.Contains(res.Error.Message, "number") {
		t.Fatalf("expected the real attribute and kind in the message, got %q", res.Error.Message)
	}
}

func TestDispatchDelete(t *testing.T) {
	d, adapter := newTestDispatcher()
	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpDelete,
		ResourceType: "notes",
		RecordID:     "note-1",
	})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res.Error)
	}
	if len(adapter.calls) != 1 || adapter.calls[0] != "delete" {
		t.Fatalf("expected one delete call, got %v", adapter.calls)
	}
}

func TestPolicyImmutableFieldsOverride(t *testing.T) {
	adapter := &fakeAdapter{}
	store := catalog.NewStore(catalog.Defaults())
	d := NewWithPolicy(store, &fakeBackends{adapter: adapter}, Policy{
		ImmutableFields: map[catalog.ResourceType][]string{
			catalog.ResourceDeals: {"owner"},
		},
	}, zerolog.Nop())

	res := d.Dispatch(context.Background(), &OperationRequest{
		Operation:    OpUpdate,
		ResourceType: "deals",
		RecordID:     "deal-3",
		Fields:       map[string]any{"owner": "user-1", "created_at": "2024-01-01", "name": "Renewal"},
	})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res.Error)
	}
	if _, ok := adapter.updated["owner"]; ok {
		t.Fatalf("expected owner to be stripped, backend got %v", adapter.updated)
	}
	// A configured list replaces the built-in one entirely.
	if _, ok := adapter.updated["created_at"]; !ok {
		t.Fatalf("expected created_at to reach the backend, got %v", adapter.updated)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "owner") {
		t.Fatalf("expected one read-only warning naming owner, got %v", res.Warnings)
	}
}

func TestPolicySuggestionLimit(t *testing.T) {
	request := func() *OperationRequest {
		return &OperationRequest{
			Operation:    OpCreate,
			ResourceType: "people",
			Fields:       map[string]any{"name": "Ada", "emial": "ada@acme.dev"},
		}
	}

	d, _ := newTestDispatcher()
	res := d.Dispatch(context.Background(), request())
	if res.Success || len(res.Error.Suggestions) < 2 {
		t.Fatalf("expected several default suggestions for emial, got %+v", res.Error)
	}

	store := catalog.NewStore(catalog.Defaults())
	limited := NewWithPolicy(store, &fakeBackends{adapter: &fakeAdapter{}},
		Policy{MaxSuggestions: 1}, zerolog.Nop())
	res = limited.Dispatch(context.Background(), request())
	if res.Success {
		t.Fatalf("expected the unknown field to be rejected")
	}
	if len(res.Error.Suggestions) != 1 || res.Error.Suggestions[0] != "email" {
		t.Fatalf("expected exactly the closest candidate, got %v", res.Error.Suggestions)
	}
}
