package tools

import "testing"

func TestCreateRecordSchemaRequiresResourceType(t *testing.T) {
	schema := CreateRecordSchema()
	required, ok := schema["required"].([]string)
	if !ok {
		t.Fatalf("create_record schema required missing")
	}
	found := false
	for _, r := range required {
		if r == "resource_type" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected resource_type to be required")
	}
}

func TestResourceTypePropertyEnumeratesAllTypes(t *testing.T) {
	prop := resourceTypeProperty()
	enum, ok := prop["enum"].([]string)
	if !ok {
		t.Fatalf("resource_type property enum missing")
	}
	if len(enum) != 7 {
		t.Fatalf("expected 7 resource types, got %d", len(enum))
	}
}

func TestSearchRecordsSchemaIncludesPagination(t *testing.T) {
	schema := SearchRecordsSchema()
	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("search schema properties missing")
	}
	if _, ok := props["limit"]; !ok {
		t.Fatalf("expected search schema to include limit property")
	}
	if _, ok := props["offset"]; !ok {
		t.Fatalf("expected search schema to include offset property")
	}
}
