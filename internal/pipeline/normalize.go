// Package pipeline composes the quote and mention branches into one
// merged, error-recovered stream of update records.
//
// Stages are channel transformers: each consumes an upstream channel,
// runs its own goroutine, and closes its output when the upstream closes.
// Branch failures travel in-band as error events, so no stage ever
// terminates the stream on its own.
package pipeline

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"stockpulse/feed/internal/source"
	"stockpulse/feed/internal/update"
)

// Event is one item on a branch: either an update or a branch failure.
type Event struct {
	Update update.Update
	Err    error
}

// NormalizeQuote maps a raw quote into a QuoteUpdate. A price that does not
// parse as a decimal is rejected with ErrParse; no crafted update leaves
// this boundary.
func NormalizeQuote(raw source.RawQuote) (update.QuoteUpdate, error) {
	price, err := decimal.NewFromString(raw.PriceString)
	if err != nil {
		return update.QuoteUpdate{}, fmt.Errorf("%w: price %q for %s: %v", ErrParse, raw.PriceString, raw.Symbol, err)
	}

	return update.QuoteUpdate{
		Symbol:    raw.Symbol,
		Price:     price,
		Timestamp: raw.TradeTime,
	}, nil
}

// NormalizeMention maps a raw mention into a MentionUpdate.
func NormalizeMention(raw source.RawMention) update.MentionUpdate {
	return update.MentionUpdate{
		Text:      raw.Text,
		Timestamp: raw.CreatedAt,
	}
}

// NormalizeQuotes adapts the quote source channel into pipeline events.
// Malformed items are reported to the sink and dropped; the branch
// continues. Tick failures pass through as error events.
func NormalizeQuotes(in <-chan source.QuoteEvent, sink ErrorSink, logger *logrus.Logger) <-chan Event {
	out := make(chan Event)

	go func() {
		defer close(out)
		for ev := range in {
			if ev.Err != nil {
				out <- Event{Err: fmt.Errorf("%w: quote branch: %v", ErrNetwork, ev.Err)}
				continue
			}

			q, err := NormalizeQuote(ev.Quote)
			if err != nil {
				sink.Report(err)
				logger.Debugf("[normalize] Dropping quote item: %v", err)
				continue
			}
			out <- Event{Update: q}
		}
	}()

	return out
}

// NormalizeMentions adapts the mention source channel into pipeline events.
func NormalizeMentions(in <-chan source.MentionEvent) <-chan Event {
	out := make(chan Event)

	go func() {
		defer close(out)
		for ev := range in {
			if ev.Err != nil {
				out <- Event{Err: fmt.Errorf("%w: mention branch: %v", ErrNetwork, ev.Err)}
				continue
			}
			out <- Event{Update: NormalizeMention(ev.Mention)}
		}
	}()

	return out
}
