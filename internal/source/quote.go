package source

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// QuoteFetcher is the collaborator contract for the quote API client.
// Fetch performs one network query covering all symbols and returns one raw
// quote per symbol present in the response.
type QuoteFetcher interface {
	Fetch(ctx context.Context, symbols []string) ([]RawQuote, error)
}

// QuoteSource polls a QuoteFetcher on a fixed interval and expands each
// batch into per-symbol events. A failed tick produces exactly one error
// event; the ticker keeps firing regardless, so a transient failure never
// silences the branch.
type QuoteSource struct {
	fetcher  QuoteFetcher
	symbols  []string
	interval time.Duration
	logger   *logrus.Logger
}

// NewQuoteSource creates a quote source for a fixed symbol set.
func NewQuoteSource(fetcher QuoteFetcher, symbols []string, interval time.Duration, logger *logrus.Logger) *QuoteSource {
	return &QuoteSource{
		fetcher:  fetcher,
		symbols:  symbols,
		interval: interval,
		logger:   logger,
	}
}

// Stream starts the polling loop and returns its event channel. The channel
// is closed when ctx is cancelled, which also stops the ticker.
func (s *QuoteSource) Stream(ctx context.Context) <-chan QuoteEvent {
	events := make(chan QuoteEvent)

	go func() {
		defer close(events)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Infof("[quote-source] Polling %d symbols every %v", len(s.symbols), s.interval)

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("[quote-source] Stopped")
				return
			case <-ticker.C:
				s.poll(ctx, events)
			}
		}
	}()

	return events
}

// poll performs one tick: a single batched fetch, expanded into one event
// per returned symbol.
func (s *QuoteSource) poll(ctx context.Context, events chan<- QuoteEvent) {
	quotes, err := s.fetcher.Fetch(ctx, s.symbols)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warnf("[quote-source] Tick failed: %v", err)
		select {
		case events <- QuoteEvent{Err: err}:
		case <-ctx.Done():
		}
		return
	}

	for _, q := range quotes {
		select {
		case events <- QuoteEvent{Quote: q}:
		case <-ctx.Done():
			return
		}
	}
}
