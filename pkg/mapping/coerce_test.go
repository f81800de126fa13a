package mapping

import (
	"reflect"
	"testing"

	"github.com/recordwise/crm-bridge/pkg/catalog"
)

func multiSelectDesc(options ...catalog.Option) *catalog.AttributeDescriptor {
	return &catalog.AttributeDescriptor{
		Slug:        "categories",
		DisplayName: "Categories",
		Kind:        catalog.KindMultiSelect,
		Options:     options,
	}
}

func TestCoerceWrapsScalarForMultiValued(t *testing.T) {
	desc := multiSelectDesc()
	got, fieldErr := Coerce(desc, "Enterprise")
	if fieldErr != nil {
		t.Fatalf("unexpected error: %v", fieldErr)
	}
	want := []any{"Enterprise"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestCoerceSequencePassThrough(t *testing.T) {
	desc := multiSelectDesc()
	input := []any{"a", "b"}
	got, fieldErr := Coerce(desc, input)
	if fieldErr != nil {
		t.Fatalf("unexpected error: %v", fieldErr)
	}
	if !reflect.DeepEqual(got, input) {
		t.Fatalf("expected sequence to pass through unchanged, got %v", got)
	}
}

func TestCoerceIdempotent(t *testing.T) {
	desc := multiSelectDesc()
	once, _ := Coerce(desc, "x")
	twice, _ := Coerce(desc, once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected coercion to be idempotent, got %v then %v", once, twice)
	}
}

func TestCoerceRejectsUnknownOption(t *testing.T) {
	desc := multiSelectDesc(
		catalog.Option{Value: "Technology", Title: "Technology"},
		catalog.Option{Value: "Finance", Title: "Finance"},
	)
	_, fieldErr := Coerce(desc, "Tecnology")
	if fieldErr == nil {
		t.Fatalf("expected an error for an unknown option")
	}
	if fieldErr.Kind != ErrInvalidOptionValue {
		t.Fatalf("expected invalid option kind, got %q", fieldErr.Kind)
	}
	if len(fieldErr.Suggestions) == 0 || fieldErr.Suggestions[0] != "Technology" {
		t.Fatalf("expected Technology suggestion, got %v", fieldErr.Suggestions)
	}
	if len(fieldErr.ValidOptions) != 2 {
		t.Fatalf("expected the full option list, got %v", fieldErr.ValidOptions)
	}
}

func TestCoerceScalarPassThrough(t *testing.T) {
	desc := &catalog.AttributeDescriptor{Slug: "name", DisplayName: "Name", Kind: catalog.KindText}
	got, fieldErr := Coerce(desc, "Acme Corp")
	if fieldErr != nil {
		t.Fatalf("unexpected error: %v", fieldErr)
	}
	if got != "Acme Corp" {
		t.Fatalf("expected unchanged value, got %v", got)
	}
}

func TestCoerceSelectWithoutOptionsAcceptsAnyValue(t *testing.T) {
	desc := &catalog.AttributeDescriptor{Slug: "owner", DisplayName: "Owner", Kind: catalog.KindSelect}
	got, fieldErr := Coerce(desc, "anyone")
	if fieldErr != nil {
		t.Fatalf("unexpected error: %v", fieldErr)
	}
	if got != "anyone" {
		t.Fatalf("expected value to pass through, got %v", got)
	}
}
