package pipeline

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"stockpulse/feed/internal/source"
	"stockpulse/feed/internal/update"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// captureSink records every reported error for assertions.
type captureSink struct {
	mu     sync.Mutex
	errors []error
}

func (s *captureSink) Report(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, err)
}

func (s *captureSink) reported() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]error, len(s.errors))
	copy(out, s.errors)
	return out
}

func TestNormalizeQuoteRejectsMalformedPrice(t *testing.T) {
	_, err := NormalizeQuote(source.RawQuote{Symbol: "AAPL", PriceString: "not-a-price"})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("Expected ErrParse, got %v", err)
	}
}

func TestNormalizeQuotesDropsMalformedAndContinues(t *testing.T) {
	in := make(chan source.QuoteEvent, 3)
	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	in <- source.QuoteEvent{Quote: source.RawQuote{Symbol: "AAPL", PriceString: "150.00", TradeTime: ts}}
	in <- source.QuoteEvent{Quote: source.RawQuote{Symbol: "MSFT", PriceString: "garbage", TradeTime: ts}}
	in <- source.QuoteEvent{Quote: source.RawQuote{Symbol: "GOOGL", PriceString: "186.50", TradeTime: ts}}
	close(in)

	sink := &captureSink{}
	out := drain(NormalizeQuotes(in, sink, testLogger()))

	if len(out) != 2 {
		t.Fatalf("Expected the malformed item dropped and the branch to continue, got %d events", len(out))
	}
	if sym := out[1].Update.(update.QuoteUpdate).Symbol; sym != "GOOGL" {
		t.Errorf("Expected GOOGL after the dropped item, got %s", sym)
	}

	reported := sink.reported()
	if len(reported) != 1 || !errors.Is(reported[0], ErrParse) {
		t.Errorf("Expected exactly one parse error reported, got %v", reported)
	}
}

func TestNormalizeQuotesWrapsTickFailures(t *testing.T) {
	in := make(chan source.QuoteEvent, 1)
	in <- source.QuoteEvent{Err: errors.New("connection refused")}
	close(in)

	out := drain(NormalizeQuotes(in, &captureSink{}, testLogger()))
	if len(out) != 1 || !errors.Is(out[0].Err, ErrNetwork) {
		t.Fatalf("Expected one ErrNetwork event, got %+v", out)
	}
}

func TestNormalizeMentionsWrapsStreamFailures(t *testing.T) {
	in := make(chan source.MentionEvent, 2)
	ts := time.Now()
	in <- source.MentionEvent{Mention: source.RawMention{Text: "apple up today", CreatedAt: ts}}
	in <- source.MentionEvent{Err: errors.New("websocket closed")}
	close(in)

	out := drain(NormalizeMentions(in))
	if len(out) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(out))
	}
	if m := out[0].Update.(update.MentionUpdate); m.Text != "apple up today" {
		t.Errorf("Unexpected mention: %+v", m)
	}
	if !errors.Is(out[1].Err, ErrNetwork) {
		t.Errorf("Expected ErrNetwork wrap, got %v", out[1].Err)
	}
}
