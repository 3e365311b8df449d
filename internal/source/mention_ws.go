package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	wsHandshakeTimeout = 5 * time.Second
	wsReadTimeout      = 60 * time.Second
	wsWriteTimeout     = 10 * time.Second
	wsPingInterval     = 30 * time.Second
	wsReconnectMin     = 1 * time.Second
	wsReconnectMax     = 30 * time.Second
)

// WSMentionStreamConfig holds connection settings for the mention stream.
type WSMentionStreamConfig struct {
	URL             string
	AuthToken       string
	TrackedKeywords []string
	Languages       []string
}

// WSMentionStream is the WebSocket implementation of MentionStream. It keeps
// one persistent connection, reconnecting with exponential backoff after a
// failure; the registered listener stays attached across reconnects, so the
// branch resumes on its own once the remote side is reachable again.
type WSMentionStream struct {
	config WSMentionStreamConfig
	logger *logrus.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// subscribeRequest is the filter query sent right after the handshake.
type subscribeRequest struct {
	Track     []string `json:"track"`
	Languages []string `json:"languages"`
}

// mentionMessage mirrors the wire shape of a pushed mention.
type mentionMessage struct {
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// NewWSMentionStream creates a WebSocket mention stream.
func NewWSMentionStream(config WSMentionStreamConfig, logger *logrus.Logger) *WSMentionStream {
	return &WSMentionStream{config: config, logger: logger}
}

// Connect starts the connection loop and returns the cancel hook. The hook
// stops the loop and closes the live socket, unblocking any pending read.
func (s *WSMentionStream) Connect(ctx context.Context, listener MentionListener) (func(), error) {
	runCtx, stop := context.WithCancel(ctx)

	go s.run(runCtx, listener)

	cancel := func() {
		stop()
		s.closeConn()
	}
	return cancel, nil
}

// run keeps one connection alive, reconnecting with backoff. Every
// disconnect is reported to the listener before the next attempt.
func (s *WSMentionStream) run(ctx context.Context, listener MentionListener) {
	reconnectDelay := wsReconnectMin

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		err := s.connectOnce(ctx, listener)
		if ctx.Err() != nil {
			return
		}

		if listener.OnError != nil {
			listener.OnError(err)
		}

		s.logger.Warnf("[mention-ws] Disconnected: %v. Reconnecting in %v...", err, reconnectDelay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}

		reconnectDelay *= 2
		if reconnectDelay > wsReconnectMax {
			reconnectDelay = wsReconnectMax
		}
	}
}

// connectOnce dials, subscribes, and reads until the connection fails.
func (s *WSMentionStream) connectOnce(ctx context.Context, listener MentionListener) error {
	dialer := websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout}

	header := http.Header{}
	if s.config.AuthToken != "" {
		header.Set("Authorization", "Bearer "+s.config.AuthToken)
	}

	conn, _, err := dialer.DialContext(ctx, s.config.URL, header)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	s.setConn(conn)
	defer func() {
		s.setConn(nil)
		conn.Close()
	}()

	s.logger.Infof("[mention-ws] Connected to %s", s.config.URL)

	conn.SetPongHandler(func(string) error { return nil })

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(subscribeRequest{
		Track:     s.config.TrackedKeywords,
		Languages: s.config.Languages,
	}); err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}

	pingTicker := time.NewTicker(wsPingInterval)
	defer pingTicker.Stop()

	readErr := make(chan error, 1)
	go func() {
		for {
			conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}

			var m mentionMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				s.logger.Debugf("[mention-ws] Skipping unparseable message: %v", err)
				continue
			}

			if listener.OnMention != nil {
				listener.OnMention(RawMention{
					Text:      m.Text,
					CreatedAt: parseTradeTime(m.CreatedAt),
				})
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return fmt.Errorf("read error: %w", err)
		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
		}
	}
}

func (s *WSMentionStream) setConn(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
}

// closeConn closes the live socket if any. Closing interrupts a blocked
// ReadMessage so the read loop can exit.
func (s *WSMentionStream) closeConn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
