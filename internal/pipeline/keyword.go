package pipeline

import (
	"strings"

	"stockpulse/feed/internal/update"
)

// KeywordFilter drops mention updates whose text contains none of the
// tracked keywords. Matching is a case-insensitive substring check that
// short-circuits on the first hit, so a text matching several keywords
// still emits exactly once.
type KeywordFilter struct {
	keywords []string
}

// NewKeywordFilter creates a filter over the tracked keyword set.
func NewKeywordFilter(keywords []string) *KeywordFilter {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return &KeywordFilter{keywords: lowered}
}

// Matches reports whether the text contains any tracked keyword.
func (f *KeywordFilter) Matches(text string) bool {
	lowered := strings.ToLower(text)
	for _, k := range f.keywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// Apply passes through matching mentions, error events, and anything that
// is not a mention. Non-matching mentions are dropped silently.
func (f *KeywordFilter) Apply(in <-chan Event) <-chan Event {
	out := make(chan Event)

	go func() {
		defer close(out)
		for ev := range in {
			if ev.Err == nil {
				if m, ok := ev.Update.(update.MentionUpdate); ok && !f.Matches(m.Text) {
					continue
				}
			}
			out <- ev
		}
	}()

	return out
}
