package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"stockpulse/feed/internal/source"
	"stockpulse/feed/internal/storage"
	"stockpulse/feed/internal/update"
	"stockpulse/feed/pkg/faulttolerance"
)

// Consumer receives the merged, error-recovered stream. Both callbacks are
// invoked from one delivery goroutine, never concurrently. OnError is a
// side notification; OnUpdate calls keep coming after it.
type Consumer interface {
	OnUpdate(rec update.Record)
	OnError(kind ErrorKind)
}

// Publisher mirrors delivered records to an external transport. Optional;
// failures are non-fatal.
type Publisher interface {
	Publish(rec update.Record) error
}

// Config wires a Pipeline. Store and the two sources are required; Sink
// defaults to a logging sink and Publisher may be nil.
type Config struct {
	Quotes       *source.QuoteSource
	Mentions     *source.MentionSource
	Store        storage.UpdateStore
	Publisher    Publisher
	Keywords     []string
	SampleWindow time.Duration
	Sink         ErrorSink
	Logger       *logrus.Logger
}

// Pipeline composes the two branches into one consumer-facing stream:
//
//	quotes   -> normalize -> dedup ----------\
//	                                          merge -> recover -> deliver
//	mentions -> normalize -> sample -> filter/
//
// Every delivered live record is also written to the cache and mirrored to
// the publisher, both fire-and-forget.
type Pipeline struct {
	quotes       *source.QuoteSource
	mentions     *source.MentionSource
	store        storage.UpdateStore
	publisher    Publisher
	filter       *KeywordFilter
	sampleWindow time.Duration
	sink         ErrorSink
	logger       *logrus.Logger
	breaker      *faulttolerance.CircuitBreaker
}

// New creates a pipeline from the config.
func New(cfg Config) *Pipeline {
	sink := cfg.Sink
	if sink == nil {
		sink = NewLogSink(cfg.Logger)
	}

	return &Pipeline{
		quotes:       cfg.Quotes,
		mentions:     cfg.Mentions,
		store:        cfg.Store,
		publisher:    cfg.Publisher,
		filter:       NewKeywordFilter(cfg.Keywords),
		sampleWindow: cfg.SampleWindow,
		sink:         sink,
		logger:       cfg.Logger,
		breaker: faulttolerance.NewCircuitBreaker(faulttolerance.BreakerConfig{
			Name: "update-cache",
		}, cfg.Logger),
	}
}

// Run starts both sources and blocks delivering to the consumer until ctx
// is cancelled. Cancellation cascades: the quote ticker stops, the mention
// stream's cancel hook closes its connection, and the merged stream drains.
func (p *Pipeline) Run(ctx context.Context, consumer Consumer) error {
	quoteBranch := Dedup(NormalizeQuotes(p.quotes.Stream(ctx), p.sink, p.logger))
	mentionBranch := p.filter.Apply(Sample(NormalizeMentions(p.mentions.Stream(ctx)), p.sampleWindow))

	merged := Merge(quoteBranch, mentionBranch)
	deliveries := Recover(ctx, merged, p.store, p.sink, p.logger)

	p.logger.Info("[pipeline] Streaming")

	for d := range deliveries {
		if d.IsError {
			consumer.OnError(d.ErrKind)
			continue
		}

		if !d.Recovered {
			p.sideWrite(ctx, d.Record)
			p.mirror(d.Record)
		}
		consumer.OnUpdate(d.Record)
	}

	p.logger.Info("[pipeline] Stopped")
	return nil
}

// sideWrite persists the record without blocking delivery. Failures go to
// the sink; the breaker keeps a dead store from being hammered.
func (p *Pipeline) sideWrite(ctx context.Context, rec update.Record) {
	go func() {
		err := p.breaker.Execute(func() error {
			_, err := p.store.Insert(ctx, rec)
			return err
		})
		if err != nil && ctx.Err() == nil {
			p.sink.Report(fmt.Errorf("%w: insert failed: %v", ErrPersistence, err))
		}
	}()
}

// mirror forwards the record to the optional publisher.
func (p *Pipeline) mirror(rec update.Record) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(rec); err != nil {
		p.logger.Warnf("[pipeline] Mirror publish failed: %v", err)
	}
}
