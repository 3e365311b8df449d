// Package source produces the two raw event streams the pipeline composes:
// an interval-polled quote feed and a push-based mention feed. Each source
// emits its items and failures in-band on a single event channel so that a
// branch error never tears down the goroutine producing it.
package source

import "time"

// RawQuote is one instrument observation as returned by the quote API,
// before normalization. The price stays a string until the normalizer
// parses it; a malformed price is the normalizer's problem, not ours.
type RawQuote struct {
	Symbol      string `json:"symbol"`
	PriceString string `json:"price"`
	TradeTime   time.Time `json:"last_trade_time"`
}

// RawMention is one social mention as pushed by the stream, before
// normalization.
type RawMention struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// QuoteEvent is either one raw quote or one per-tick failure.
type QuoteEvent struct {
	Quote RawQuote
	Err   error
}

// MentionEvent is either one raw mention or a connection failure.
type MentionEvent struct {
	Mention RawMention
	Err     error
}
