package source

import (
	"context"

	"github.com/sirupsen/logrus"
)

// MentionListener receives push callbacks from a MentionStream connection.
// Either func may be nil.
type MentionListener struct {
	// OnMention is invoked once per inbound mention, in arrival order.
	OnMention func(RawMention)

	// OnError is invoked when the connection fails. The stream may keep the
	// listener registered and resume OnMention after it reconnects.
	OnError func(error)
}

// MentionStream is the collaborator contract for the push connection.
// Connect registers the listener and returns a cancel function that MUST
// close the underlying connection and release the listener. Not invoking
// cancel on teardown leaks the connection.
type MentionStream interface {
	Connect(ctx context.Context, listener MentionListener) (cancel func(), err error)
}

// MentionSource adapts the callback-style MentionStream into a single event
// channel. Cancelling ctx invokes the stream's cancel hook before the
// channel closes.
type MentionSource struct {
	stream MentionStream
	logger *logrus.Logger
}

// NewMentionSource creates a mention source over the given stream.
func NewMentionSource(stream MentionStream, logger *logrus.Logger) *MentionSource {
	return &MentionSource{stream: stream, logger: logger}
}

// Stream connects and returns the event channel. The channel is closed only
// after the stream's cancel hook has run.
func (s *MentionSource) Stream(ctx context.Context) <-chan MentionEvent {
	events := make(chan MentionEvent)
	inbound := make(chan MentionEvent)

	listener := MentionListener{
		OnMention: func(m RawMention) {
			select {
			case inbound <- MentionEvent{Mention: m}:
			case <-ctx.Done():
			}
		},
		OnError: func(err error) {
			select {
			case inbound <- MentionEvent{Err: err}:
			case <-ctx.Done():
			}
		},
	}

	go func() {
		defer close(events)

		cancel, err := s.stream.Connect(ctx, listener)
		if err != nil {
			s.logger.Errorf("[mention-source] Connect failed: %v", err)
			select {
			case events <- MentionEvent{Err: err}:
			case <-ctx.Done():
			}
			return
		}

		for {
			select {
			case <-ctx.Done():
				cancel()
				s.logger.Info("[mention-source] Stopped, connection closed")
				return
			case ev := <-inbound:
				select {
				case events <- ev:
				case <-ctx.Done():
					cancel()
					return
				}
			}
		}
	}()

	return events
}
