package pipeline

import (
	"errors"
	"testing"
	"time"

	"stockpulse/feed/internal/update"
)

func mentionEvent(text string, ts time.Time) Event {
	return Event{Update: update.MentionUpdate{Text: text, Timestamp: ts}}
}

func TestSampleKeepsLatestPerWindow(t *testing.T) {
	in := make(chan Event)
	out := Sample(in, 40*time.Millisecond)

	ts := time.Now()
	go func() {
		in <- mentionEvent("first", ts)
		in <- mentionEvent("second", ts)
		in <- mentionEvent("third", ts)
		time.Sleep(100 * time.Millisecond)
		close(in)
	}()

	got := drain(out)
	if len(got) != 1 {
		t.Fatalf("Expected 1 sampled event for a burst, got %d", len(got))
	}
	m := got[0].Update.(update.MentionUpdate)
	if m.Text != "third" {
		t.Errorf("Expected latest item to survive, got %q", m.Text)
	}
}

func TestSampleEmitsNothingForEmptyWindow(t *testing.T) {
	in := make(chan Event)
	out := Sample(in, 20*time.Millisecond)

	go func() {
		time.Sleep(70 * time.Millisecond)
		close(in)
	}()

	if got := drain(out); len(got) != 0 {
		t.Errorf("Expected no emissions without arrivals, got %d", len(got))
	}
}

func TestSampleErrorsBypassWindow(t *testing.T) {
	in := make(chan Event)
	out := Sample(in, time.Hour)

	boom := errors.New("stream down")
	go func() {
		in <- Event{Err: boom}
		close(in)
	}()

	select {
	case ev := <-out:
		if !errors.Is(ev.Err, boom) {
			t.Errorf("Expected the error event, got %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("Error event must not wait for the sampling window")
	}
}
