package pipeline

import (
	"testing"
	"time"
)

func TestKeywordFilterMatchesCaseInsensitiveSubstring(t *testing.T) {
	filter := NewKeywordFilter([]string{"Google", "Microsoft", "Apple"})

	cases := []struct {
		text string
		want bool
	}{
		{"I love apple products", true},
		{"GOOGLE announced earnings", true},
		{"microsoft azure outage", true},
		{"bananas are great", false},
		{"", false},
	}
	for _, c := range cases {
		if got := filter.Matches(c.text); got != c.want {
			t.Errorf("Matches(%q) = %v, expected %v", c.text, got, c.want)
		}
	}
}

func TestKeywordFilterApplyDropsNonMatching(t *testing.T) {
	filter := NewKeywordFilter([]string{"Apple"})
	ts := time.Now()

	out := drain(filter.Apply(feed(
		mentionEvent("I love apple products", ts),
		mentionEvent("bananas are great", ts),
		quoteEvent("MSFT", "310.00", ts),
	)))

	// Quotes are not subject to keyword filtering.
	if len(out) != 2 {
		t.Fatalf("Expected 2 surviving events, got %d", len(out))
	}
}

func TestKeywordFilterMultipleHitsEmitOnce(t *testing.T) {
	filter := NewKeywordFilter([]string{"Apple", "apple", "APPLE"})
	ts := time.Now()

	out := drain(filter.Apply(feed(
		mentionEvent("apple apple apple", ts),
	)))

	if len(out) != 1 {
		t.Errorf("Expected exactly 1 emission regardless of hit count, got %d", len(out))
	}
}
