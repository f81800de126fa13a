package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/recordwise/crm-bridge/pkg/catalog"
	"github.com/recordwise/crm-bridge/pkg/dispatch"
)

// Provider builds the record tools around a dispatcher and the catalog
// store. The discovery tools read catalog snapshots directly; everything
// else goes through the dispatcher.
type Provider struct {
	dispatcher *dispatch.Dispatcher
	store      *catalog.Store
}

// NewProvider creates a tool provider.
func NewProvider(dispatcher *dispatch.Dispatcher, store *catalog.Store) *Provider {
	return &Provider{dispatcher: dispatcher, store: store}
}

// RegisterAll registers every record tool plus the legacy aliases.
func (p *Provider) RegisterAll(reg *Registry) {
	for _, tool := range p.Tools() {
		reg.Register(tool)
	}
	reg.RegisterAlias("find_records", SearchRecordsName)
	reg.RegisterAlias("list_attributes", DiscoverAttributesName)
}

// Tools returns all record tools.
func (p *Provider) Tools() []*Tool {
	return []*Tool{
		p.createRecordTool(),
		p.getRecordTool(),
		p.updateRecordTool(),
		p.deleteRecordTool(),
		p.searchRecordsTool(),
		p.listRecordsTool(),
		p.discoverAttributesTool(),
		p.getAttributeOptionsTool(),
	}
}

func (p *Provider) createRecordTool() *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        CreateRecordName,
			Description: CreateRecordDescription,
			InputSchema: CreateRecordSchema(),
		},
		Group: GroupRecords,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			rt, err := ReadString(input, "resource_type", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			fields, err := ReadMap(input, "fields", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			return p.run(ctx, &dispatch.OperationRequest{
				Operation:    dispatch.OpCreate,
				ResourceType: rt,
				Fields:       fields,
			}), nil
		},
	}
}

func (p *Provider) getRecordTool() *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        GetRecordName,
			Description: GetRecordDescription,
			InputSchema: GetRecordSchema(),
		},
		Group: GroupRecords,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			rt, err := ReadString(input, "resource_type", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			id, err := ReadString(input, "record_id", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			return p.run(ctx, &dispatch.OperationRequest{
				Operation:    dispatch.OpGet,
				ResourceType: rt,
				RecordID:     id,
			}), nil
		},
	}
}

func (p *Provider) updateRecordTool() *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        UpdateRecordName,
			Description: UpdateRecordDescription,
			InputSchema: UpdateRecordSchema(),
		},
		Group: GroupRecords,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			rt, err := ReadString(input, "resource_type", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			id, err := ReadString(input, "record_id", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			fields, err := ReadMap(input, "fields", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			return p.run(ctx, &dispatch.OperationRequest{
				Operation:    dispatch.OpUpdate,
				ResourceType: rt,
				RecordID:     id,
				Fields:       fields,
			}), nil
		},
	}
}

func (p *Provider) deleteRecordTool() *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        DeleteRecordName,
			Description: DeleteRecordDescription,
			InputSchema: DeleteRecordSchema(),
		},
		Group: GroupRecords,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			rt, err := ReadString(input, "resource_type", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			id, err := ReadString(input, "record_id", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			return p.run(ctx, &dispatch.OperationRequest{
				Operation:    dispatch.OpDelete,
				ResourceType: rt,
				RecordID:     id,
			}), nil
		},
	}
}

func (p *Provider) searchRecordsTool() *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        SearchRecordsName,
			Description: SearchRecordsDescription,
			InputSchema: SearchRecordsSchema(),
		},
		Group: GroupRecords,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			rt, err := ReadString(input, "resource_type", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			query, _ := ReadString(input, "query", false)
			filter, err := ReadMap(input, "filter", false)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			return p.run(ctx, &dispatch.OperationRequest{
				Operation:    dispatch.OpSearch,
				ResourceType: rt,
				Query:        query,
				Fields:       filter,
				Page: dispatch.Page{
					Limit:  ReadIntDefault(input, "limit", 0),
					Offset: ReadIntDefault(input, "offset", 0),
				},
			}), nil
		},
	}
}

func (p *Provider) listRecordsTool() *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        ListRecordsName,
			Description: ListRecordsDescription,
			InputSchema: ListRecordsSchema(),
		},
		Group: GroupRecords,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			rt, err := ReadString(input, "resource_type", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			return p.run(ctx, &dispatch.OperationRequest{
				Operation:    dispatch.OpList,
				ResourceType: rt,
				Page: dispatch.Page{
					Limit:  ReadIntDefault(input, "limit", 0),
					Offset: ReadIntDefault(input, "offset", 0),
				},
			}), nil
		},
	}
}

func (p *Provider) discoverAttributesTool() *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        DiscoverAttributesName,
			Description: DiscoverAttributesDescription,
			InputSchema: DiscoverAttributesSchema(),
		},
		Group: GroupDiscovery,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			raw, err := ReadString(input, "resource_type", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			rt, err := catalog.ParseResourceType(raw)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			attrs, err := p.store.Current().Describe(rt)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			listing := make([]map[string]any, 0, len(attrs))
			for _, desc := range attrs {
				entry := map[string]any{
					"slug":         desc.Slug,
					"display_name": desc.DisplayName,
					"kind":         string(desc.Kind),
				}
				if desc.HasOptions() {
					entry["options"] = desc.OptionTitles()
				}
				listing = append(listing, entry)
			}
			return jsonResult(map[string]any{
				"resource_type": string(rt),
				"attributes":    listing,
			}), nil
		},
	}
}

func (p *Provider) getAttributeOptionsTool() *Tool {
	return &Tool{
		Tool: mcp.Tool{
			Name:        GetAttributeOptionsName,
			Description: GetAttributeOptionsDescription,
			InputSchema: GetAttributeOptionsSchema(),
		},
		Group: GroupDiscovery,
		Execute: func(ctx context.Context, input map[string]any) (*Result, error) {
			rt, err := ReadString(input, "resource_type", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			attr, err := ReadString(input, "attribute", true)
			if err != nil {
				return ErrorResult(err.Error()), nil
			}
			return p.run(ctx, &dispatch.OperationRequest{
				Operation:    dispatch.OpOptions,
				ResourceType: rt,
				Attribute:    attr,
			}), nil
		},
	}
}

// run dispatches the request and converts the outcome into a tool result.
func (p *Provider) run(ctx context.Context, req *dispatch.OperationRequest) *Result {
	return resultFromOutcome(p.dispatcher.Dispatch(ctx, req))
}

func resultFromOutcome(outcome *dispatch.OperationResult) *Result {
	if outcome.Error != nil {
		res := ErrorResult(outcome.Error.Message)
		res.Details = errorDetails(outcome.Error)
		return res
	}
	payload := map[string]any{"content": outcome.Content}
	if len(outcome.Warnings) > 0 {
		payload["warnings"] = outcome.Warnings
	}
	return jsonResult(payload)
}

func errorDetails(opErr *dispatch.OperationError) map[string]any {
	details := map[string]any{"kind": string(opErr.Kind)}
	if opErr.Field != "" {
		details["field"] = opErr.Field
	}
	if len(opErr.Suggestions) > 0 {
		details["suggestions"] = opErr.Suggestions
	}
	if opErr.DiscoveryHint != "" {
		details["discovery_hint"] = opErr.DiscoveryHint
	}
	return details
}

// jsonResult renders the payload as indented JSON text, keeping the
// structured payload on Details for callers that want it unparsed.
func jsonResult(payload map[string]any) *Result {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return ErrorResult(fmt.Sprintf("failed to encode result: %v", err))
	}
	return DetailedResult(string(data), payload)
}
