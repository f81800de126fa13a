package mapping

import (
	"testing"

	"github.com/recordwise/crm-bridge/pkg/catalog"
)

func TestResolveAliasExactSlug(t *testing.T) {
	cat := catalog.Defaults()
	res, ok := ResolveAlias(cat, catalog.ResourcePeople, "job_title")
	if !ok {
		t.Fatalf("expected job_title to resolve")
	}
	if res.Slug != "job_title" || res.Aliased {
		t.Fatalf("expected exact slug without aliasing, got %+v", res)
	}
}

func TestResolveAliasStaticTable(t *testing.T) {
	cat := catalog.Defaults()
	res, ok := ResolveAlias(cat, catalog.ResourcePeople, "linkedin_url")
	if !ok {
		t.Fatalf("expected linkedin_url to resolve")
	}
	if res.Slug != "linkedin" {
		t.Fatalf("expected linkedin, got %q", res.Slug)
	}
	if !res.Aliased {
		t.Fatalf("expected resolution to be marked as aliased")
	}
}

func TestResolveAliasDisplayName(t *testing.T) {
	cat := catalog.Defaults()
	res, ok := ResolveAlias(cat, catalog.ResourceDeals, "Deal stage")
	if !ok {
		t.Fatalf("expected Deal stage to resolve")
	}
	if res.Slug != "stage" || !res.Aliased {
		t.Fatalf("expected aliased stage, got %+v", res)
	}
}

func TestResolveAliasPrecedence(t *testing.T) {
	// A key that is both a real slug and could collide with a display name
	// must resolve as the slug, without an alias warning.
	cat := catalog.Defaults()
	res, ok := ResolveAlias(cat, catalog.ResourceDeals, "stage")
	if !ok || res.Slug != "stage" || res.Aliased {
		t.Fatalf("expected exact slug to win, got %+v ok=%v", res, ok)
	}
}

func TestResolveAliasUnresolved(t *testing.T) {
	cat := catalog.Defaults()
	if _, ok := ResolveAlias(cat, catalog.ResourcePeople, "totally_unknown_field_xyz"); ok {
		t.Fatalf("expected unknown key to stay unresolved")
	}
}

func TestStaticAliasRequiresCatalogTarget(t *testing.T) {
	// A static alias whose canonical slug is absent from the current
	// snapshot must not resolve.
	cat := catalog.New(map[catalog.ResourceType][]catalog.AttributeDescriptor{
		catalog.ResourcePeople: {{Slug: "name", DisplayName: "Name", Kind: catalog.KindText}},
	})
	if _, ok := ResolveAlias(cat, catalog.ResourcePeople, "linkedin_url"); ok {
		t.Fatalf("expected alias to fail when its target slug is gone")
	}
}
