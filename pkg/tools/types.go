// Package tools exposes the record operations as MCP tools: definitions,
// registration, parameter reading, and the legacy-name compatibility shim.
package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool wraps an MCP tool with its execution logic and grouping metadata.
type Tool struct {
	mcp.Tool        // Name, Description, InputSchema
	Group    string // records, discovery
	Execute  func(ctx context.Context, input map[string]any) (*Result, error)
}

// Tool groups.
const (
	GroupRecords   = "records"
	GroupDiscovery = "discovery"
)

// Result standardizes tool output.
type Result struct {
	Status  ResultStatus   `json:"status"`
	Content []ContentBlock `json:"content,omitempty"`
	Details map[string]any `json:"details,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ContentBlock is a single result block. Record tools only produce text.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ResultStatus indicates the outcome of tool execution.
type ResultStatus string

const (
	ResultSuccess ResultStatus = "success"
	ResultError   ResultStatus = "error"
)

// IsError returns true if the result indicates an error.
func (r *Result) IsError() bool {
	return r.Status == ResultError
}

// Text returns the first text content block, or the error message when the
// result is an error.
func (r *Result) Text() string {
	if r.Status == ResultError && r.Error != "" {
		return r.Error
	}
	for _, block := range r.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text
		}
	}
	return ""
}
