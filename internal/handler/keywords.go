// Package handler reacts to plain (non-command) messages with
// keyword-triggered canned responses.
package handler

import (
	"sort"
	"strings"
)

// rule is one trigger/reply pair
type rule struct {
	trigger string
	reply   string
}

// KeywordResponder scans free text for configured trigger words and
// produces a canned reply. Triggers match case-insensitively as
// substrings; the first match in sorted trigger order wins, so responses
// are deterministic.
type KeywordResponder struct {
	rules []rule
}

// NewKeywordResponder builds a responder from a trigger-to-reply table
func NewKeywordResponder(keywords map[string]string) *KeywordResponder {
	triggers := make([]string, 0, len(keywords))
	for trigger := range keywords {
		if strings.TrimSpace(trigger) == "" {
			continue
		}
		triggers = append(triggers, trigger)
	}
	sort.Strings(triggers)

	rules := make([]rule, 0, len(triggers))
	for _, trigger := range triggers {
		rules = append(rules, rule{
			trigger: strings.ToLower(trigger),
			reply:   keywords[trigger],
		})
	}

	return &KeywordResponder{rules: rules}
}

// Match returns the canned reply for the first trigger found in text
func (k *KeywordResponder) Match(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	lowered := strings.ToLower(text)
	for _, r := range k.rules {
		if strings.Contains(lowered, r.trigger) {
			return r.reply, true
		}
	}
	return "", false
}

// Len returns the number of configured triggers
func (k *KeywordResponder) Len() int {
	return len(k.rules)
}
