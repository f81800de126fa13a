// Package dispatch routes normalized operation requests to resource-specific
// backend adapters. Each request runs an independent, stateless pipeline: a
// catalog snapshot is read once, mapping must be error-free before any
// backend call, and failures come back as structured, actionable errors.
package dispatch

// Operation is the closed set of request kinds.
type Operation string

const (
	OpCreate  Operation = "create"
	OpGet     Operation = "get"
	OpUpdate  Operation = "update"
	OpDelete  Operation = "delete"
	OpSearch  Operation = "search"
	OpList    Operation = "list"
	OpOptions Operation = "options"
)

// Page carries pagination parameters.
type Page struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// OperationRequest is one unit of work. ResourceType stays the raw caller
// string until the dispatcher validates it; inferring a missing resource
// type is out of scope by design.
type OperationRequest struct {
	Operation    Operation      `json:"operation"`
	ResourceType string         `json:"resource_type"`
	RecordID     string         `json:"record_id,omitempty"`
	Query        string         `json:"query,omitempty"`
	Fields       map[string]any `json:"fields,omitempty"`
	// Attribute selects the attribute for the options operation.
	Attribute string `json:"attribute,omitempty"`
	Page      Page   `json:"page,omitempty"`
}

// ErrorKind is the unified error taxonomy.
type ErrorKind string

const (
	ErrUnsupportedResourceType ErrorKind = "unsupported_resource_type"
	ErrAttributeNotFound       ErrorKind = "attribute_not_found"
	ErrInvalidOptionValue      ErrorKind = "invalid_option_value"
	ErrTypeMismatch            ErrorKind = "type_mismatch"
	ErrRequiredFieldMissing    ErrorKind = "required_field_missing"
	ErrRecordNotFound          ErrorKind = "record_not_found"
	ErrRateLimited             ErrorKind = "rate_limited"
	ErrTimeout                 ErrorKind = "timeout"
	ErrUnauthorized            ErrorKind = "unauthorized"
	ErrBackendRejected         ErrorKind = "backend_rejected"
)

// OperationError is a structured, self-correcting failure: it names the
// offending field or value, carries ranked correction guesses, and points at
// the discovery tool where applicable.
type OperationError struct {
	Kind          ErrorKind `json:"kind"`
	Message       string    `json:"message"`
	Field         string    `json:"field,omitempty"`
	Suggestions   []string  `json:"suggestions,omitempty"`
	DiscoveryHint string    `json:"discovery_hint,omitempty"`
}

func (e *OperationError) Error() string {
	return e.Message
}

// OperationResult is the normalized outcome. Success and Error are mutually
// exclusive; Warnings may accompany either.
type OperationResult struct {
	Success  bool            `json:"success"`
	Content  any             `json:"content,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
	Error    *OperationError `json:"error,omitempty"`
}
