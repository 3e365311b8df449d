package pipeline

import "stockpulse/feed/internal/update"

// Dedup suppresses consecutive value-equal quotes per symbol. The polled
// feed returns unchanged prices on most ticks; without this stage the
// merged output would repeat every instrument every interval.
//
// Keys never expire; the per-symbol last-emitted map lives as long as the
// pipeline. Error events and mention updates pass through untouched.
func Dedup(in <-chan Event) <-chan Event {
	out := make(chan Event)

	go func() {
		defer close(out)

		last := make(map[string]update.QuoteUpdate)

		for ev := range in {
			q, ok := ev.Update.(update.QuoteUpdate)
			if !ok {
				out <- ev
				continue
			}

			if prev, seen := last[q.Symbol]; seen && prev.Equal(q) {
				continue
			}

			last[q.Symbol] = q
			out <- ev
		}
	}()

	return out
}
