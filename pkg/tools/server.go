package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/recordwise/crm-bridge/pkg/dispatch"
)

// Server exposes the registry over MCP. Canonical tools run through their
// Execute functions; legacy names are registered as distinct tools whose
// handlers translate the old parameter shape before dispatching.
type Server struct {
	mcp        *mcp.Server
	registry   *Registry
	translator *Translator
	dispatcher *dispatch.Dispatcher
	log        zerolog.Logger
}

// NewServer builds the MCP server and registers every tool.
func NewServer(name, version string, registry *Registry, translator *Translator, dispatcher *dispatch.Dispatcher, log zerolog.Logger) *Server {
	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
		registry:   registry,
		translator: translator,
		dispatcher: dispatcher,
		log:        log.With().Str("component", "mcp-server").Logger(),
	}

	for _, tool := range registry.All() {
		s.addTool(tool)
	}
	for _, alias := range registry.AliasTools() {
		s.addTool(alias)
	}
	if translator != nil {
		for _, legacy := range translator.Names() {
			s.addLegacyTool(legacy)
		}
	}
	return s
}

// Run serves MCP over the given transport until the context is cancelled.
// For stdio pass &mcp.StdioTransport{}.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.log.Info().
		Int("tools", len(s.registry.All())).
		Int("aliases", len(s.registry.AliasTools())).
		Msg("Serving MCP")
	for _, group := range s.registry.Groups() {
		s.log.Debug().Str("group", group).Strs("tools", s.registry.ToolsInGroup(group)).Msg("Tool group")
	}
	return s.mcp.Run(ctx, transport)
}

func (s *Server) addTool(tool *Tool) {
	execute := tool.Execute
	name := tool.Name
	mcp.AddTool(s.mcp, &tool.Tool, func(ctx context.Context, req *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, any, error) {
		result, err := execute(ctx, input)
		if err != nil {
			s.log.Err(err).Str("tool", name).Msg("Tool execution failed")
			return nil, nil, err
		}
		return toCallToolResult(result), nil, nil
	})
}

// addLegacyTool registers a deprecated per-resource tool name. The handler
// reshapes the legacy parameter bag and hands it straight to the dispatcher;
// validation stays in the mapping pipeline.
func (s *Server) addLegacyTool(name string) {
	rule, ok := s.translator.Rule(name)
	if !ok {
		return
	}
	tool := &mcp.Tool{
		Name: name,
		Description: fmt.Sprintf("Deprecated. Performs a %s on %s; prefer the resource-agnostic record tools.",
			rule.Operation, rule.ResourceType),
		InputSchema: map[string]any{
			"type":                 "object",
			"additionalProperties": true,
		},
	}
	mcp.AddTool(s.mcp, tool, func(ctx context.Context, req *mcp.CallToolRequest, input map[string]any) (*mcp.CallToolResult, any, error) {
		canonical, ok := s.translator.Translate(name, input)
		if !ok {
			return toCallToolResult(ErrorResultf("unknown legacy tool %q", name)), nil, nil
		}
		outcome := s.dispatcher.Dispatch(ctx, canonical)
		return toCallToolResult(resultFromOutcome(outcome)), nil, nil
	})
}

func toCallToolResult(result *Result) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: result.Text()}},
		IsError: result.IsError(),
	}
}
