package tools

// Tool schema definitions for the record operations exposed over MCP.

const (
	CreateRecordName        = "create_record"
	CreateRecordDescription = "Create a record of the given resource type. Field names are normalized against the live attribute catalog; unknown fields are rejected with suggestions."

	GetRecordName        = "get_record"
	GetRecordDescription = "Fetch a single record by its ID."

	UpdateRecordName        = "update_record"
	UpdateRecordDescription = "Update fields on an existing record. Field names are normalized the same way as create_record. Read-only fields are dropped with a warning."

	DeleteRecordName        = "delete_record"
	DeleteRecordDescription = "Delete a record by its ID."

	SearchRecordsName        = "search_records"
	SearchRecordsDescription = "Search records of a resource type by free text and/or field filters. Filter field names are normalized against the attribute catalog."

	ListRecordsName        = "list_records"
	ListRecordsDescription = "List records of a resource type with pagination."

	DiscoverAttributesName        = "discover_attributes"
	DiscoverAttributesDescription = "List the valid attribute slugs for a resource type, with display names and value kinds."

	GetAttributeOptionsName        = "get_attribute_options"
	GetAttributeOptionsDescription = "List the valid option values for a select, status, or multi-select attribute."
)

func resourceTypeProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "The resource type to operate on",
		"enum":        []string{"companies", "people", "deals", "tasks", "lists", "notes", "records"},
	}
}

func recordIDProperty() map[string]any {
	return map[string]any{
		"type":        "string",
		"description": "The ID of the record",
	}
}

// CreateRecordSchema returns the JSON schema for the create_record tool.
func CreateRecordSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resource_type": resourceTypeProperty(),
			"fields": map[string]any{
				"type":        "object",
				"description": "Field values for the new record, keyed by attribute name. Common synonyms (e.g. 'email' for 'email_addresses') are accepted.",
			},
		},
		"required": []string{"resource_type", "fields"},
	}
}

// GetRecordSchema returns the JSON schema for the get_record tool.
func GetRecordSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resource_type": resourceTypeProperty(),
			"record_id":     recordIDProperty(),
		},
		"required": []string{"resource_type", "record_id"},
	}
}

// UpdateRecordSchema returns the JSON schema for the update_record tool.
func UpdateRecordSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resource_type": resourceTypeProperty(),
			"record_id":     recordIDProperty(),
			"fields": map[string]any{
				"type":        "object",
				"description": "Field values to change, keyed by attribute name",
			},
		},
		"required": []string{"resource_type", "record_id", "fields"},
	}
}

// DeleteRecordSchema returns the JSON schema for the delete_record tool.
func DeleteRecordSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resource_type": resourceTypeProperty(),
			"record_id":     recordIDProperty(),
		},
		"required": []string{"resource_type", "record_id"},
	}
}

// SearchRecordsSchema returns the JSON schema for the search_records tool.
func SearchRecordsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resource_type": resourceTypeProperty(),
			"query": map[string]any{
				"type":        "string",
				"description": "Free-text query matched against record values",
			},
			"filter": map[string]any{
				"type":        "object",
				"description": "Exact-match filters keyed by attribute name",
			},
			"limit": map[string]any{
				"type":        "integer",
				"description": "Maximum number of records to return",
			},
			"offset": map[string]any{
				"type":        "integer",
				"description": "Number of records to skip",
			},
		},
		"required": []string{"resource_type"},
	}
}

// ListRecordsSchema returns the JSON schema for the list_records tool.
func ListRecordsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resource_type": resourceTypeProperty(),
			"limit": map[string]any{
				"type":        "integer",
				"description": "Maximum number of records to return",
			},
			"offset": map[string]any{
				"type":        "integer",
				"description": "Number of records to skip",
			},
		},
		"required": []string{"resource_type"},
	}
}

// DiscoverAttributesSchema returns the JSON schema for the discover_attributes tool.
func DiscoverAttributesSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resource_type": resourceTypeProperty(),
		},
		"required": []string{"resource_type"},
	}
}

// GetAttributeOptionsSchema returns the JSON schema for the get_attribute_options tool.
func GetAttributeOptionsSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resource_type": resourceTypeProperty(),
			"attribute": map[string]any{
				"type":        "string",
				"description": "The attribute slug or display name to enumerate options for",
			},
		},
		"required": []string{"resource_type", "attribute"},
	}
}
