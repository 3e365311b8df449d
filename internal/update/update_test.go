package update

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestQuoteUpdateAsRecord(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	q := QuoteUpdate{Symbol: "AAPL", Price: decimal.RequireFromString("150.00"), Timestamp: ts}

	rec := q.AsRecord()

	if rec.Symbol != "AAPL" {
		t.Errorf("Expected symbol AAPL, got %q", rec.Symbol)
	}
	if !rec.Price.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("Expected price 150.00, got %s", rec.Price)
	}
	if rec.MentionText != "" {
		t.Errorf("Quote record should have empty mention text, got %q", rec.MentionText)
	}
	if rec.IsMention() {
		t.Error("Quote record should not report as mention")
	}
	if rec.ID != 0 {
		t.Errorf("Fresh record should have no ID, got %d", rec.ID)
	}
}

func TestMentionUpdateAsRecord(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := MentionUpdate{Text: "I love apple products", Timestamp: ts}

	rec := m.AsRecord()

	if rec.MentionText != "I love apple products" {
		t.Errorf("Unexpected mention text %q", rec.MentionText)
	}
	if rec.Symbol != "" {
		t.Errorf("Mention record should have empty symbol, got %q", rec.Symbol)
	}
	if !rec.IsMention() {
		t.Error("Mention record should report as mention")
	}
	if !rec.Price.IsZero() {
		t.Errorf("Mention record should have zero price, got %s", rec.Price)
	}
}

func TestQuoteUpdateEqual(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := QuoteUpdate{Symbol: "AAPL", Price: decimal.RequireFromString("150.00"), Timestamp: ts}
	b := QuoteUpdate{Symbol: "AAPL", Price: decimal.RequireFromString("150.000"), Timestamp: ts}

	// decimal equality ignores trailing zeros
	if !a.Equal(b) {
		t.Error("Expected 150.00 and 150.000 to compare equal")
	}

	c := QuoteUpdate{Symbol: "AAPL", Price: decimal.RequireFromString("150.01"), Timestamp: ts}
	if a.Equal(c) {
		t.Error("Different prices should not compare equal")
	}

	d := QuoteUpdate{Symbol: "MSFT", Price: decimal.RequireFromString("150.00"), Timestamp: ts}
	if a.Equal(d) {
		t.Error("Different symbols should not compare equal")
	}
}

func TestRecordWithID(t *testing.T) {
	rec := Record{Symbol: "GOOGL", Price: decimal.NewFromInt(2800)}

	stored := rec.WithID(42)

	if stored.ID != 42 {
		t.Errorf("Expected ID 42, got %d", stored.ID)
	}
	if rec.ID != 0 {
		t.Errorf("Original record must stay unchanged, got ID %d", rec.ID)
	}
}
