package tilt

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// FeedConfig shapes the synthetic wobble streamed by a FeedServer.
type FeedConfig struct {
	Amplitude float64       // Peak tilt per axis, in (0, 1]
	Period    time.Duration // One full x swing
	Rate      float64       // Messages per second
}

// DefaultFeedConfig returns a gentle wobble at 30 Hz.
func DefaultFeedConfig() FeedConfig {
	return FeedConfig{
		Amplitude: 0.6,
		Period:    4 * time.Second,
		Rate:      30,
	}
}

const feedWriteWait = 2 * time.Second

// FeedServer streams a synthetic orientation feed to websocket clients.
// Each client gets its own clock starting at connect time.
type FeedServer struct {
	cfg      FeedConfig
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewFeedServer creates a feed handler.
func NewFeedServer(cfg FeedConfig, logger *log.Logger) *FeedServer {
	def := DefaultFeedConfig()
	if !(cfg.Amplitude > 0) {
		cfg.Amplitude = def.Amplitude
	}
	if cfg.Period <= 0 {
		cfg.Period = def.Period
	}
	if !(cfg.Rate > 0) {
		cfg.Rate = def.Rate
	}
	return &FeedServer{
		cfg:    cfg,
		logger: discardLogger(logger),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// At returns the wobble at elapsed time t: x = a·sin(ωt), y = a·cos(0.7ωt).
func (f *FeedServer) At(t time.Duration) (x, y float64) {
	a := math.Min(f.cfg.Amplitude, 1)
	w := 2 * math.Pi / f.cfg.Period.Seconds()
	s := t.Seconds()
	return a * math.Sin(w*s), a * math.Cos(0.7*w*s)
}

// ServeHTTP upgrades the request and streams samples until the client
// disconnects or the request context ends.
func (f *FeedServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("feed upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	remote := r.RemoteAddr
	f.logger.Info("feed client connected", "remote_addr", remote)

	// Reads only detect the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	interval := time.Duration(float64(time.Second) / f.cfg.Rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-gone:
			f.logger.Info("feed client disconnected", "remote_addr", remote)
			return
		case now := <-ticker.C:
			x, y := f.At(now.Sub(start))
			_ = conn.SetWriteDeadline(now.Add(feedWriteWait))
			if err := conn.WriteJSON(NewMessage(x, y)); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					f.logger.Debug("feed write", "remote_addr", remote, "error", err)
				}
				return
			}
		}
	}
}
