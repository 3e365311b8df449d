package source

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

// fakeStream pushes a scripted sequence to the listener from its own
// goroutine and records whether the cancel hook ran.
type fakeStream struct {
	mentions  []RawMention
	pushErr   error
	cancelled atomic.Bool
}

func (f *fakeStream) Connect(ctx context.Context, listener MentionListener) (func(), error) {
	go func() {
		for _, m := range f.mentions {
			if ctx.Err() != nil {
				return
			}
			listener.OnMention(m)
		}
		if f.pushErr != nil && listener.OnError != nil {
			listener.OnError(f.pushErr)
		}
	}()

	return func() { f.cancelled.Store(true) }, nil
}

func collectMentionEvents(ch <-chan MentionEvent, n int, timeout time.Duration) []MentionEvent {
	var events []MentionEvent
	deadline := time.After(timeout)
	for len(events) < n {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-deadline:
			return events
		}
	}
	return events
}

func TestMentionSourcePreservesArrivalOrder(t *testing.T) {
	stream := &fakeStream{mentions: []RawMention{
		{Text: "first"},
		{Text: "second"},
		{Text: "third"},
	}}

	src := NewMentionSource(stream, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := collectMentionEvents(src.Stream(ctx), 3, time.Second)

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	for i, want := range []string{"first", "second", "third"} {
		if events[i].Mention.Text != want {
			t.Errorf("Event %d: expected %q, got %q", i, want, events[i].Mention.Text)
		}
	}
}

func TestMentionSourcePropagatesStreamError(t *testing.T) {
	boom := errors.New("stream reset")
	stream := &fakeStream{
		mentions: []RawMention{{Text: "one"}},
		pushErr:  boom,
	}

	src := NewMentionSource(stream, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := collectMentionEvents(src.Stream(ctx), 2, time.Second)

	if len(events) != 2 {
		t.Fatalf("Expected mention then error, got %d events", len(events))
	}
	if events[0].Err != nil {
		t.Errorf("First event should be the mention, got error %v", events[0].Err)
	}
	if !errors.Is(events[1].Err, boom) {
		t.Errorf("Expected stream error to propagate in-band, got %v", events[1].Err)
	}
}

func TestMentionSourceInvokesCancelHookOnTeardown(t *testing.T) {
	stream := &fakeStream{}
	src := NewMentionSource(stream, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	ch := src.Stream(ctx)

	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				if !stream.cancelled.Load() {
					t.Error("Cancel hook must run before the event channel closes")
				}
				return
			}
		case <-deadline:
			t.Fatal("Channel was not closed after cancellation")
		}
	}
}
