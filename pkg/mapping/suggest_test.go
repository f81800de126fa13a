package mapping

import "testing"

func TestSuggestCloseMatch(t *testing.T) {
	got := Suggest("Tecnology", []string{"Technology", "Telecommunications", "Finance"}, 3)
	if len(got) == 0 {
		t.Fatalf("expected a suggestion for a one-letter typo")
	}
	if got[0] != "Technology" {
		t.Fatalf("expected Technology first, got %q", got[0])
	}
}

func TestSuggestCaseInsensitive(t *testing.T) {
	got := Suggest("LINKEDIN", []string{"linkedin", "twitter"}, 3)
	if len(got) == 0 || got[0] != "linkedin" {
		t.Fatalf("expected case-insensitive match, got %v", got)
	}
}

func TestSuggestDropsDistantCandidates(t *testing.T) {
	got := Suggest("zzzzzzzz", []string{"name", "email_addresses", "job_title"}, 3)
	if len(got) != 0 {
		t.Fatalf("expected no suggestions beyond the distance cap, got %v", got)
	}
}

func TestSuggestBounded(t *testing.T) {
	candidates := []string{"field1", "field2", "field3", "field4", "field5"}
	got := Suggest("field", candidates, MaxSuggestions)
	if len(got) > MaxSuggestions {
		t.Fatalf("expected at most %d suggestions, got %d", MaxSuggestions, len(got))
	}
}

func TestSuggestTiesBreakByDeclarationOrder(t *testing.T) {
	// stag is distance 1 from both stage and stags; declaration order decides.
	got := Suggest("stag", []string{"stags", "stage"}, 2)
	if len(got) != 2 {
		t.Fatalf("expected two suggestions, got %v", got)
	}
	if got[0] != "stags" {
		t.Fatalf("expected declaration order to break the tie, got %v", got)
	}
}

func TestHasCloseMatch(t *testing.T) {
	if !HasCloseMatch("Tecnology", []string{"Technology"}) {
		t.Fatalf("expected close match")
	}
	if HasCloseMatch("zzzzzzzz", []string{"Technology"}) {
		t.Fatalf("expected no close match for unrelated input")
	}
}
