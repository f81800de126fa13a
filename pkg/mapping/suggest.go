package mapping

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const (
	// MaxSuggestions bounds how many candidates a single error carries.
	MaxSuggestions = 3
	// maxEditDistance is the cap beyond which a candidate is not considered
	// a plausible correction.
	maxEditDistance = 3
)

// Suggest ranks candidates by case-insensitive edit distance to the given
// key, dropping anything beyond the distance cap. Ties keep the candidates'
// declaration order so suggestions are deterministic. Returns at most max
// entries; max <= 0 means MaxSuggestions.
func Suggest(key string, candidates []string, max int) []string {
	if max <= 0 {
		max = MaxSuggestions
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return nil
	}

	type ranked struct {
		candidate string
		distance  int
		order     int
	}
	var matches []ranked
	for i, cand := range candidates {
		d := levenshtein.ComputeDistance(key, strings.ToLower(cand))
		if d > maxEditDistance {
			continue
		}
		matches = append(matches, ranked{candidate: cand, distance: d, order: i})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].order < matches[j].order
	})

	if len(matches) > max {
		matches = matches[:max]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.candidate
	}
	return out
}

// HasCloseMatch reports whether any candidate is within the distance cap.
func HasCloseMatch(key string, candidates []string) bool {
	return len(Suggest(key, candidates, 1)) > 0
}
