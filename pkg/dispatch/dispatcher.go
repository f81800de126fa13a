package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"github.com/recordwise/crm-bridge/pkg/backend"
	"github.com/recordwise/crm-bridge/pkg/catalog"
	"github.com/recordwise/crm-bridge/pkg/mapping"
)

// Backends resolves the adapter for a resource type.
type Backends interface {
	ForResource(rt catalog.ResourceType) backend.Adapter
}

// Policy carries the tunables operators override from configuration.
// MaxSuggestions <= 0 falls back to the mapping default; a nil
// ImmutableFields map falls back to the built-in per-resource lists, while a
// non-nil map replaces them entirely.
type Policy struct {
	MaxSuggestions  int
	ImmutableFields map[catalog.ResourceType][]string
}

func (p Policy) withDefaults() Policy {
	if p.MaxSuggestions <= 0 {
		p.MaxSuggestions = mapping.MaxSuggestions
	}
	if p.ImmutableFields == nil {
		p.ImmutableFields = defaultImmutableFields
	}
	return p
}

// Dispatcher turns OperationRequests into backend calls. It holds no
// per-request state: the catalog store hands out immutable snapshots and
// adapters are safe for concurrent use, so any number of requests may run at
// once.
type Dispatcher struct {
	store    *catalog.Store
	backends Backends
	policy   Policy
	log      zerolog.Logger
}

// New creates a dispatcher with the default policy.
func New(store *catalog.Store, backends Backends, log zerolog.Logger) *Dispatcher {
	return NewWithPolicy(store, backends, Policy{}, log)
}

// NewWithPolicy creates a dispatcher with operator-configured tunables.
func NewWithPolicy(store *catalog.Store, backends Backends, policy Policy, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		store:    store,
		backends: backends,
		policy:   policy.withDefaults(),
		log:      log.With().Str("component", "dispatch").Logger(),
	}
}

// Dispatch runs one request to completion. The resource type is validated
// before mapping begins, and no backend call is issued while the mapping
// result carries errors — an abandoned or failed request therefore leaves no
// partial state behind.
func (d *Dispatcher) Dispatch(ctx context.Context, req *OperationRequest) *OperationResult {
	reqID := xid.New().String()
	log := d.log.With().
		Str("request_id", reqID).
		Str("operation", string(req.Operation)).
		Str("resource_type", req.ResourceType).
		Logger()

	if strings.TrimSpace(req.ResourceType) == "" {
		return &OperationResult{Success: false, Error: &OperationError{
			Kind:    ErrUnsupportedResourceType,
			Message: "resource_type is required and is never inferred; pass one of: " + strings.Join(resourceTypeNames(), ", "),
		}}
	}
	rt, err := catalog.ParseResourceType(req.ResourceType)
	if err != nil {
		log.Debug().Msg("Rejected unknown resource type")
		return &OperationResult{Success: false, Error: &OperationError{
			Kind:    ErrUnsupportedResourceType,
			Message: err.Error(),
		}}
	}

	// One snapshot per request; a concurrent refresh swaps the store pointer
	// without affecting this request.
	snapshot := d.store.Current()

	var result *OperationResult
	switch req.Operation {
	case OpCreate:
		result = d.write(ctx, snapshot, rt, req, mapping.OpCreate)
	case OpUpdate:
		result = d.write(ctx, snapshot, rt, req, mapping.OpUpdate)
	case OpGet:
		result = d.get(ctx, rt, req)
	case OpDelete:
		result = d.delete(ctx, rt, req)
	case OpSearch, OpList:
		result = d.search(ctx, snapshot, rt, req)
	case OpOptions:
		result = attributeOptions(snapshot, rt, req.Attribute, d.policy.MaxSuggestions)
	default:
		result = &OperationResult{Success: false, Error: &OperationError{
			Kind:    ErrBackendRejected,
			Message: fmt.Sprintf("unknown operation %q", req.Operation),
		}}
	}

	if result.Error != nil {
		log.Debug().Str("error_kind", string(result.Error.Kind)).Msg("Request failed")
	} else {
		log.Debug().Msg("Request succeeded")
	}
	return result
}

// write handles create and update: map, short-circuit on mapping errors,
// strip immutable fields, then call the backend.
func (d *Dispatcher) write(ctx context.Context, snapshot *catalog.Catalog, rt catalog.ResourceType, req *OperationRequest, op mapping.Operation) *OperationResult {
	mapped := mapping.MapFieldsWithLimit(snapshot, rt, op, req.Fields, d.policy.MaxSuggestions)
	if !mapped.OK() {
		return reportMapping(mapped)
	}

	warnings := append(mapped.Warnings, stripImmutable(d.policy.ImmutableFields, rt, mapped.Mapped)...)

	adapter := d.backends.ForResource(rt)
	var (
		rec backend.Record
		err error
	)
	switch op {
	case mapping.OpCreate:
		rec, err = adapter.Create(ctx, mapped.Mapped.Map())
	default:
		if req.RecordID == "" {
			return missingRecordID(rt)
		}
		rec, err = adapter.Update(ctx, req.RecordID, mapped.Mapped.Map())
	}
	if err != nil {
		return backendFailure(ctx, rt, err)
	}
	return &OperationResult{Success: true, Content: rec, Warnings: warnings}
}

func (d *Dispatcher) get(ctx context.Context, rt catalog.ResourceType, req *OperationRequest) *OperationResult {
	if req.RecordID == "" {
		return missingRecordID(rt)
	}
	rec, err := d.backends.ForResource(rt).Get(ctx, req.RecordID)
	if err != nil {
		return backendFailure(ctx, rt, err)
	}
	return &OperationResult{Success: true, Content: rec}
}

func (d *Dispatcher) delete(ctx context.Context, rt catalog.ResourceType, req *OperationRequest) *OperationResult {
	if req.RecordID == "" {
		return missingRecordID(rt)
	}
	if err := d.backends.ForResource(rt).Delete(ctx, req.RecordID); err != nil {
		return backendFailure(ctx, rt, err)
	}
	return &OperationResult{Success: true, Content: map[string]any{"deleted": req.RecordID}}
}

// search normalizes filter field keys through the same pipeline as writes,
// so a misspelled filter gets the same suggestions a misspelled write would.
func (d *Dispatcher) search(ctx context.Context, snapshot *catalog.Catalog, rt catalog.ResourceType, req *OperationRequest) *OperationResult {
	q := backend.Query{
		Text:   req.Query,
		Limit:  req.Page.Limit,
		Offset: req.Page.Offset,
	}
	if len(req.Fields) > 0 {
		mapped := mapping.MapFieldsWithLimit(snapshot, rt, mapping.OpSearch, req.Fields, d.policy.MaxSuggestions)
		if !mapped.OK() {
			return reportMapping(mapped)
		}
		q.Filter = mapped.Mapped.Map()
	}

	records, err := d.backends.ForResource(rt).Search(ctx, q)
	if err != nil {
		return backendFailure(ctx, rt, err)
	}
	return &OperationResult{Success: true, Content: map[string]any{
		"records": records,
		"count":   len(records),
	}}
}

// attributeOptions serves the options operation from the catalog snapshot
// alone; no backend is involved.
func attributeOptions(snapshot *catalog.Catalog, rt catalog.ResourceType, attribute string, maxSuggestions int) *OperationResult {
	if strings.TrimSpace(attribute) == "" {
		return &OperationResult{Success: false, Error: &OperationError{
			Kind:    ErrAttributeNotFound,
			Message: "attribute is required",
		}}
	}

	res, ok := mapping.ResolveAlias(snapshot, rt, attribute)
	if !ok {
		slugs := snapshot.Slugs(rt)
		return &OperationResult{Success: false, Error: &OperationError{
			Kind: ErrAttributeNotFound,
			Message: fmt.Sprintf("unknown attribute %q for %s. Use %s(%q) to list valid fields.",
				attribute, rt, mapping.DiscoveryToolName, rt),
			Field:         attribute,
			Suggestions:   mapping.Suggest(attribute, slugs, maxSuggestions),
			DiscoveryHint: mapping.DiscoveryToolName,
		}}
	}

	desc, _ := snapshot.Lookup(rt, res.Slug)
	if !desc.HasOptions() {
		// Graceful, named error for non-choice attributes.
		return &OperationResult{Success: false, Error: &OperationError{
			Kind: ErrTypeMismatch,
			Message: fmt.Sprintf("attribute %q on %s has kind %s and does not declare options",
				desc.Slug, rt, desc.Kind),
			Field: desc.Slug,
		}}
	}
	return &OperationResult{Success: true, Content: map[string]any{
		"attribute": desc.Slug,
		"kind":      string(desc.Kind),
		"options":   desc.Options,
	}}
}

func missingRecordID(rt catalog.ResourceType) *OperationResult {
	return &OperationResult{Success: false, Error: &OperationError{
		Kind:    ErrRequiredFieldMissing,
		Message: fmt.Sprintf("record_id is required for this %s operation", rt),
		Field:   "record_id",
	}}
}

// backendFailure reports a backend error, preferring a timeout kind when the
// request context expired mid-call.
func backendFailure(ctx context.Context, rt catalog.ResourceType, err error) *OperationResult {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &OperationResult{Success: false, Error: &OperationError{
			Kind:    ErrTimeout,
			Message: fmt.Sprintf("%s backend call timed out", rt),
		}}
	}
	return reportBackend(rt, err)
}

func resourceTypeNames() []string {
	names := make([]string, len(catalog.ResourceTypes))
	for i, rt := range catalog.ResourceTypes {
		names[i] = string(rt)
	}
	return names
}
