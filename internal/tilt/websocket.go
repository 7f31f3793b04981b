package tilt

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-fidget/internal/core"
)

// Message is the wire format of an orientation sample. A sender provides
// either a tilt pair (x, y) or a raw gravity vector (gx, gy, gz).
type Message struct {
	X  *float64 `json:"x,omitempty"`
	Y  *float64 `json:"y,omitempty"`
	GX *float64 `json:"gx,omitempty"`
	GY *float64 `json:"gy,omitempty"`
	GZ *float64 `json:"gz,omitempty"`
}

// NewMessage builds a tilt-pair message.
func NewMessage(x, y float64) Message {
	return Message{X: &x, Y: &y}
}

// Tilt decodes the message into a tilt pair.
func (m Message) Tilt() (x, y float64, ok bool) {
	switch {
	case m.X != nil && m.Y != nil:
		if !core.IsFinite(*m.X) || !core.IsFinite(*m.Y) {
			return 0, 0, false
		}
		return core.ClampUnit(*m.X), core.ClampUnit(*m.Y), true
	case m.GX != nil && m.GY != nil:
		var gz float64
		if m.GZ != nil {
			gz = *m.GZ
		}
		return FromGravity(*m.GX, *m.GY, gz)
	}
	return 0, 0, false
}

// FromGravity projects a gravity vector in any unit onto the screen plane.
// A device lying flat reads (0, 0); tipping the right edge down gives
// positive x and tipping the bottom edge down gives positive y.
func FromGravity(gx, gy, gz float64) (x, y float64, ok bool) {
	g := math.Sqrt(gx*gx + gy*gy + gz*gz)
	if !core.IsFinite(g) || g == 0 {
		return 0, 0, false
	}
	return core.ClampUnit(gx / g), core.ClampUnit(gy / g), true
}

const wsHandshakeTimeout = 5 * time.Second

// WebSocketSource reads orientation samples from a websocket feed, such as a
// phone streaming its motion sensor or `fidget feed`.
type WebSocketSource struct {
	url    string
	logger *log.Logger
	dialer websocket.Dialer

	mu        sync.Mutex
	conn      *websocket.Conn
	x, y      float64
	have      bool
	connected bool
	done      chan struct{}
}

// NewWebSocketSource creates a source for the given ws:// or wss:// URL.
func NewWebSocketSource(url string, logger *log.Logger) *WebSocketSource {
	return &WebSocketSource{
		url:    url,
		logger: discardLogger(logger),
		dialer: websocket.Dialer{HandshakeTimeout: wsHandshakeTimeout},
	}
}

// URL returns the feed address.
func (s *WebSocketSource) URL() string {
	return s.url
}

// Open dials the feed and starts reading samples in the background.
func (s *WebSocketSource) Open(ctx context.Context) error {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("%w: dial %s: %v", ErrSourceUnavailable, s.url, err)
	}

	s.mu.Lock()
	s.conn = conn
	s.connected = true
	s.have = false
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go s.readLoop(conn, done)
	s.logger.Info("tilt feed connected", "url", s.url)
	return nil
}

func (s *WebSocketSource) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer close(done)
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			var ce *websocket.CloseError
			switch {
			case errors.As(err, &ce):
				s.logger.Info("tilt feed closed", "code", ce.Code, "reason", ce.Text)
			case !errors.Is(err, websocket.ErrCloseSent):
				s.logger.Debug("tilt feed read", "error", err)
			}
			s.mu.Lock()
			s.connected = false
			s.mu.Unlock()
			return
		}

		x, y, ok := msg.Tilt()
		if !ok {
			continue
		}
		s.mu.Lock()
		s.x, s.y, s.have = x, y, true
		s.mu.Unlock()
	}
}

// Read implements Source. Before the first sample ok is false. Once the
// feed drops, Read reports rest so the adapter eases back to level.
func (s *WebSocketSource) Read() (x, y float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.have {
		return 0, 0, false
	}
	if !s.connected {
		return 0, 0, true
	}
	return s.x, s.y, true
}

// Connected reports whether the feed is still delivering samples.
func (s *WebSocketSource) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

// Close implements Source and waits for the reader to exit.
func (s *WebSocketSource) Close() error {
	s.mu.Lock()
	conn, done := s.conn, s.done
	s.conn = nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	err := conn.Close()
	<-done
	if err != nil {
		return fmt.Errorf("tilt: close feed: %w", err)
	}
	return nil
}
