package pipeline

import "sync"

// Merge interleaves two branches into one stream. Items are forwarded as
// soon as either branch produces them: per-branch order is preserved, but
// no ordering holds across branches. The output closes only when both
// inputs have closed; one branch ending never ends the other.
func Merge(a, b <-chan Event) <-chan Event {
	out := make(chan Event)

	var wg sync.WaitGroup
	forward := func(in <-chan Event) {
		defer wg.Done()
		for ev := range in {
			out <- ev
		}
	}

	wg.Add(2)
	go forward(a)
	go forward(b)

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
