// Package update defines the typed records flowing through the feed pipeline.
//
// Inside the pipeline an update is one of two variants, QuoteUpdate or
// MentionUpdate. The shared Record shape exists only at the delivery and
// storage boundary, where both variants collapse into one row/callback type.
package update

import (
	"time"

	"github.com/shopspring/decimal"
)

// Update is the sum of the two event variants produced by the sources.
// Only QuoteUpdate and MentionUpdate implement it.
type Update interface {
	// When returns the source-reported event time.
	When() time.Time

	// AsRecord converts the variant into the shared delivery shape.
	AsRecord() Record

	sealed()
}

// QuoteUpdate is a single instrument price observation from the polled feed.
type QuoteUpdate struct {
	Symbol    string
	Price     decimal.Decimal
	Timestamp time.Time
}

func (q QuoteUpdate) When() time.Time { return q.Timestamp }

func (q QuoteUpdate) AsRecord() Record {
	return Record{
		Symbol:    q.Symbol,
		Price:     q.Price,
		Timestamp: q.Timestamp,
	}
}

func (QuoteUpdate) sealed() {}

// Equal reports value equality. Used by the deduplication stage to suppress
// repeated poll results for the same symbol.
func (q QuoteUpdate) Equal(other QuoteUpdate) bool {
	return q.Symbol == other.Symbol &&
		q.Price.Equal(other.Price) &&
		q.Timestamp.Equal(other.Timestamp)
}

// MentionUpdate is a single social-media mention from the pushed feed.
type MentionUpdate struct {
	Text      string
	Timestamp time.Time
}

func (m MentionUpdate) When() time.Time { return m.Timestamp }

func (m MentionUpdate) AsRecord() Record {
	return Record{
		MentionText: m.Text,
		Timestamp:   m.Timestamp,
	}
}

func (MentionUpdate) sealed() {}

// Record is the flat shape delivered to the consumer and persisted in the
// cache. Exactly one of Symbol and MentionText is non-empty. ID is zero until
// the store assigns one; the store returns a copy, it never mutates the
// record it was given.
type Record struct {
	ID          int64           `json:"id"`
	Symbol      string          `json:"symbol"`
	Price       decimal.Decimal `json:"price"`
	Timestamp   time.Time       `json:"timestamp"`
	MentionText string          `json:"mention_text"`
}

// IsMention reports whether the record carries a social mention rather than
// a quote.
func (r Record) IsMention() bool {
	return r.MentionText != ""
}

// WithID returns a copy of the record carrying the assigned identity.
func (r Record) WithID(id int64) Record {
	r.ID = id
	return r
}
