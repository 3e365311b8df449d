package pipeline

import "time"

// Sample throttles a branch to at most one emission per window, always
// carrying the most recent item observed. A window with no arrivals emits
// nothing; intermediate items within a window are dropped, not buffered.
//
// Error events bypass the window and pass through immediately: a branch
// failure should not wait out a sampling interval.
func Sample(in <-chan Event, window time.Duration) <-chan Event {
	out := make(chan Event)

	go func() {
		defer close(out)

		ticker := time.NewTicker(window)
		defer ticker.Stop()

		var pending Event
		hasPending := false

		for {
			select {
			case ev, ok := <-in:
				if !ok {
					return
				}
				if ev.Err != nil {
					out <- ev
					continue
				}
				pending = ev
				hasPending = true

			case <-ticker.C:
				if hasPending {
					out <- pending
					hasPending = false
				}
			}
		}
	}()

	return out
}
