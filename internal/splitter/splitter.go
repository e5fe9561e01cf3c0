// Package splitter breaks long outgoing messages into chunks that fit
// Telegram's message size limit, preferring word boundaries.
package splitter

import "strings"

// TelegramMaxMessageLength is the Bot API limit for one text message
const TelegramMaxMessageLength = 4096

// Splitter splits text into chunks no longer than maxLength
type Splitter struct {
	maxLength int
}

// New creates a splitter with the given chunk limit. Non-positive limits
// fall back to the Telegram maximum.
func New(maxLength int) *Splitter {
	if maxLength <= 0 {
		maxLength = TelegramMaxMessageLength
	}
	return &Splitter{maxLength: maxLength}
}

// Split breaks text into chunks of at most maxLength runes, cutting at the
// last newline or space before the limit when one exists and mid-word only
// as a last resort.
func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) <= s.maxLength {
		return []string{text}
	}

	var parts []string
	for len(runes) > s.maxLength {
		cut := s.findCut(runes)
		parts = append(parts, strings.TrimRight(string(runes[:cut]), " \n"))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " \n"))
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

// findCut picks the split position within the first maxLength runes
func (s *Splitter) findCut(runes []rune) int {
	window := runes[:s.maxLength]

	// Prefer the last newline, then the last space
	for i := len(window) - 1; i > 0; i-- {
		if window[i] == '\n' {
			return i + 1
		}
	}
	for i := len(window) - 1; i > 0; i-- {
		if window[i] == ' ' {
			return i + 1
		}
	}
	return s.maxLength
}
