package nlquery

import (
	"context"
	"strings"
)

// RuleTranslator maps free text to raw filters with a fixed table of
// substring triggers. It is deterministic and side-effect free, which makes
// the pipeline testable without the external translation service.
type RuleTranslator struct{}

// NewRuleTranslator creates the offline translator.
func NewRuleTranslator() *RuleTranslator { return &RuleTranslator{} }

type rule struct {
	triggers []string // all must be present in the lowercased query
	filters  map[string]any
}

// Rules are evaluated in order; the first full match wins.
var rules = []rule{
	{triggers: []string{"single word", "palindrom"}, filters: map[string]any{"word_count": 1, "is_palindrome": true}},
	{triggers: []string{"one word", "palindrom"}, filters: map[string]any{"word_count": 1, "is_palindrome": true}},
	{triggers: []string{"two words"}, filters: map[string]any{"word_count": 2}},
	{triggers: []string{"single word"}, filters: map[string]any{"word_count": 1}},
	{triggers: []string{"one word"}, filters: map[string]any{"word_count": 1}},
	{triggers: []string{"palindrom"}, filters: map[string]any{"is_palindrome": true}},
}

// Translate applies the trigger rules to the lowercased query.
// Unmatched queries map to an empty filter set.
func (t *RuleTranslator) Translate(_ context.Context, text string) (map[string]any, error) {
	lower := strings.ToLower(text)

	for _, r := range rules {
		if matchesAll(lower, r.triggers) {
			out := make(map[string]any, len(r.filters))
			for k, v := range r.filters {
				out[k] = v
			}
			return out, nil
		}
	}

	return map[string]any{}, nil
}

func matchesAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
