package pipeline

import (
	"testing"
	"time"

	"stockpulse/feed/internal/update"
)

func TestMergePreservesPerBranchOrder(t *testing.T) {
	ts := time.Now()
	a := feed(
		quoteEvent("AAPL", "1", ts),
		quoteEvent("AAPL", "2", ts),
		quoteEvent("AAPL", "3", ts),
	)
	b := feed(
		mentionEvent("m1", ts),
		mentionEvent("m2", ts),
	)

	var quotes, mentions []string
	for ev := range Merge(a, b) {
		switch u := ev.Update.(type) {
		case update.QuoteUpdate:
			quotes = append(quotes, u.Price.String())
		case update.MentionUpdate:
			mentions = append(mentions, u.Text)
		}
	}

	if len(quotes) != 3 || quotes[0] != "1" || quotes[1] != "2" || quotes[2] != "3" {
		t.Errorf("Quote branch order broken: %v", quotes)
	}
	if len(mentions) != 2 || mentions[0] != "m1" || mentions[1] != "m2" {
		t.Errorf("Mention branch order broken: %v", mentions)
	}
}

func TestMergeSurvivesOneBranchClosing(t *testing.T) {
	ts := time.Now()
	a := feed() // closes immediately

	b := make(chan Event)
	out := Merge(a, b)

	go func() {
		time.Sleep(20 * time.Millisecond)
		b <- mentionEvent("late", ts)
		close(b)
	}()

	got := drain(out)
	if len(got) != 1 {
		t.Fatalf("Expected the surviving branch to keep flowing, got %d events", len(got))
	}
}
