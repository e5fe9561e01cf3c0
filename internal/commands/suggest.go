package commands

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SuggestionThreshold is the maximum edit distance for a typo suggestion.
// Anything further away than this is reported as an unknown command.
const SuggestionThreshold = 2

// Suggester proposes the nearest registered command name for a mistyped one
type Suggester struct {
	registry *Registry
}

// NewSuggester creates a suggester over the given registry
func NewSuggester(registry *Registry) *Suggester {
	return &Suggester{registry: registry}
}

// Suggest returns the registered name closest to typed, if its Levenshtein
// distance is at most SuggestionThreshold. Ties go to the earliest
// registered name, so results are deterministic.
func (s *Suggester) Suggest(typed string) (string, bool) {
	typed = strings.ToLower(typed)

	best := ""
	bestDistance := SuggestionThreshold + 1
	for _, name := range s.registry.AllNames() {
		distance := fuzzy.LevenshteinDistance(typed, name)
		if distance < bestDistance {
			best = name
			bestDistance = distance
		}
	}

	if bestDistance > SuggestionThreshold {
		return "", false
	}
	return best, true
}
