package pattern

import (
	"strings"
	"unicode"
)

// MaxSuggestions caps the rule suggestions made for one import.
const MaxSuggestions = 3

// SuggestPattern derives a contains pattern from a description: digits and
// '#' are dropped, '*' separates words, and the first two words are kept in
// lower case. "SQ *BLUE BOTTLE #123" becomes "sq blue".
func SuggestPattern(description string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsDigit(r), r == '#':
			return -1
		case r == '*':
			return ' '
		}
		return r
	}, strings.ToUpper(description))

	words := strings.Fields(cleaned)
	if len(words) == 0 {
		return strings.ToLower(strings.TrimSpace(description))
	}
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.ToLower(strings.Join(words, " "))
}

// Suggester collects distinct pattern suggestions for uncategorized
// descriptions, skipping patterns existing rules already use.
type Suggester struct {
	seen        map[string]bool
	suggestions []string
	limit       int
}

// NewSuggester creates a Suggester that ignores the patterns of existing.
func NewSuggester(existing []Rule, limit int) *Suggester {
	s := &Suggester{seen: make(map[string]bool), limit: limit}
	for _, rule := range existing {
		s.seen[strings.ToLower(rule.Pattern)] = true
	}
	return s
}

// Add records a suggestion for description if there is room and it is new.
func (s *Suggester) Add(description string) {
	if len(s.suggestions) >= s.limit {
		return
	}
	p := SuggestPattern(description)
	if p == "" || s.seen[p] {
		return
	}
	s.seen[p] = true
	s.suggestions = append(s.suggestions, p)
}

// Suggestions returns the collected patterns in the order they were added.
func (s *Suggester) Suggestions() []string {
	return append([]string(nil), s.suggestions...)
}
