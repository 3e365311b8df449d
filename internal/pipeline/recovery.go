package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"stockpulse/feed/internal/storage"
	"stockpulse/feed/internal/update"
)

const fallbackReadTimeout = 5 * time.Second

// Delivery is one item handed to the delivery loop: a record (live or
// recovered from the cache) or an error notification for the consumer.
type Delivery struct {
	Record    update.Record
	Recovered bool
	ErrKind   ErrorKind
	IsError   bool
}

// Recover wraps the merged stream so branch failures never end it. Each
// error event becomes a consumer notification followed by exactly one
// fallback batch read from the cache (newest first); live items keep
// flowing before and after. A failed fallback read yields an empty batch
// and a persistence notification, nothing more.
func Recover(ctx context.Context, in <-chan Event, store storage.UpdateStore, sink ErrorSink, logger *logrus.Logger) <-chan Delivery {
	out := make(chan Delivery)

	go func() {
		defer close(out)

		for ev := range in {
			if ev.Err == nil {
				out <- Delivery{Record: ev.Update.AsRecord()}
				continue
			}

			sink.Report(ev.Err)
			out <- Delivery{IsError: true, ErrKind: KindOf(ev.Err)}

			logger.Warnf("[recovery] Branch failure, falling back to cached data: %v", ev.Err)

			for _, rec := range fallbackBatch(ctx, store, sink, logger) {
				out <- Delivery{Record: rec, Recovered: true}
			}
		}
	}()

	return out
}

// fallbackBatch performs the one-shot history read. Read failures are
// non-fatal: the batch is simply empty.
func fallbackBatch(ctx context.Context, store storage.UpdateStore, sink ErrorSink, logger *logrus.Logger) []update.Record {
	readCtx, cancel := context.WithTimeout(ctx, fallbackReadTimeout)
	defer cancel()

	records, err := store.QueryAll(readCtx)
	if err != nil {
		sink.Report(fmt.Errorf("%w: fallback read failed: %v", ErrPersistence, err))
		return nil
	}

	logger.Infof("[recovery] Re-emitting %d cached updates", len(records))
	return records
}
