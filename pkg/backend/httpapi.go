package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/recordwise/crm-bridge/pkg/catalog"
)

// Client talks to the record platform's REST API. It implements
// catalog.SchemaSource and hands out per-resource Adapters. It does not
// retry; 429 and deadline failures surface as distinct error kinds so the
// caller can decide.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds an API client. timeout bounds a single round trip.
func NewClient(baseURL, token string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "api-client").Logger(),
	}
}

// ForResource returns the adapter for one resource type.
func (c *Client) ForResource(rt catalog.ResourceType) Adapter {
	return &httpAdapter{client: c, rt: rt}
}

// FetchAttributes implements catalog.SchemaSource.
func (c *Client) FetchAttributes(ctx context.Context, rt catalog.ResourceType) ([]catalog.AttributeDescriptor, error) {
	var out struct {
		Data []catalog.AttributeDescriptor `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v2/%s/attributes", rt), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// do performs one JSON round trip and maps HTTP failures onto the error
// taxonomy.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return NewError(ErrTimeout, "request to %s timed out", path)
		}
		return err
	}
	defer resp.Body.Close()
	c.log.Trace().Str("method", method).Str("path", path).
		Int("status", resp.StatusCode).Dur("duration", time.Since(start)).
		Msg("API call")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, data)
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func isClientTimeout(err error) bool {
	var timeout interface{ Timeout() bool }
	return errors.As(err, &timeout) && timeout.Timeout()
}

// statusError maps an HTTP status to a structured backend error, keeping the
// backend's own message text.
func statusError(status int, body []byte) *Error {
	msg := string(body)
	var apiErr struct {
		Message string `json:"message"`
		Field   string `json:"field"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		msg = apiErr.Message
	}

	kind := ErrRejected
	switch {
	case status == http.StatusNotFound:
		kind = ErrNotFound
	case status == http.StatusTooManyRequests:
		kind = ErrRateLimited
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = ErrUnauthorized
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		kind = ErrTimeout
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		kind = ErrValidationRejected
	}
	return &Error{Kind: kind, Message: msg, Field: apiErr.Field}
}

// httpAdapter maps one resource type onto its REST endpoints. Companies,
// people, deals and custom records share the object-record shape; tasks,
// lists and notes have their own top-level endpoints.
type httpAdapter struct {
	client *Client
	rt     catalog.ResourceType
}

func (a *httpAdapter) basePath() string {
	switch a.rt {
	case catalog.ResourceTasks, catalog.ResourceLists, catalog.ResourceNotes:
		return fmt.Sprintf("/v2/%s", a.rt)
	default:
		return fmt.Sprintf("/v2/objects/%s/records", a.rt)
	}
}

func (a *httpAdapter) Create(ctx context.Context, fields map[string]any) (Record, error) {
	var out struct {
		Data Record `json:"data"`
	}
	payload := map[string]any{"data": map[string]any{"values": fields}}
	if err := a.client.do(ctx, http.MethodPost, a.basePath(), payload, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (a *httpAdapter) Get(ctx context.Context, recordID string) (Record, error) {
	var out struct {
		Data Record `json:"data"`
	}
	if err := a.client.do(ctx, http.MethodGet, a.basePath()+"/"+recordID, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (a *httpAdapter) Update(ctx context.Context, recordID string, fields map[string]any) (Record, error) {
	var out struct {
		Data Record `json:"data"`
	}
	payload := map[string]any{"data": map[string]any{"values": fields}}
	if err := a.client.do(ctx, http.MethodPatch, a.basePath()+"/"+recordID, payload, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (a *httpAdapter) Delete(ctx context.Context, recordID string) error {
	return a.client.do(ctx, http.MethodDelete, a.basePath()+"/"+recordID, nil, nil)
}

func (a *httpAdapter) Search(ctx context.Context, q Query) ([]Record, error) {
	var out struct {
		Data []Record `json:"data"`
	}
	payload := map[string]any{
		"limit":  q.Limit,
		"offset": q.Offset,
	}
	if q.Text != "" {
		payload["query"] = q.Text
	}
	if len(q.Filter) > 0 {
		payload["filter"] = q.Filter
	}
	if err := a.client.do(ctx, http.MethodPost, a.basePath()+"/query", payload, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
