package tilt

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// stubSource counts lifecycle calls and can refuse to open.
type stubSource struct {
	openErr error
	x, y    float64
	opened  atomic.Int32
	closed  atomic.Int32
}

func (s *stubSource) Open(context.Context) error {
	s.opened.Add(1)
	return s.openErr
}

func (s *stubSource) Read() (float64, float64, bool) {
	return s.x, s.y, true
}

func (s *stubSource) Close() error {
	s.closed.Add(1)
	return nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestAdapterStartsAtRest(t *testing.T) {
	a := NewAdapter(nil, DefaultConfig(), nil)
	if st := a.State(); st != (State{}) {
		t.Errorf("initial state = %+v, expected rest", st)
	}
}

func TestAdapterNilSourceDegrades(t *testing.T) {
	a := NewAdapter(nil, DefaultConfig(), nil)
	a.Start(context.Background())
	defer a.Stop()

	if a.Running() {
		t.Error("adapter without source should not run")
	}
	if st := a.State(); st.X != 0 || st.Y != 0 {
		t.Errorf("state = %+v, expected rest", st)
	}
}

func TestAdapterOpenFailureLogsAtDebug(t *testing.T) {
	tests := []struct {
		level  log.Level
		logged bool
	}{
		{log.InfoLevel, false},
		{log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewWithOptions(&buf, log.Options{Level: tt.level})
			a := NewAdapter(&stubSource{openErr: ErrSourceUnavailable}, DefaultConfig(), logger)
			a.Start(context.Background())
			a.Stop()

			if got := strings.Contains(buf.String(), "tilt source unavailable"); got != tt.logged {
				t.Errorf("logged = %v at %s, expected %v:\n%s", got, tt.level, tt.logged, buf.String())
			}
		})
	}
}

func TestAdapterOpenFailureDegrades(t *testing.T) {
	src := &stubSource{openErr: ErrSourceUnavailable, x: 1, y: 1}
	a := NewAdapter(src, DefaultConfig(), nil)
	a.Start(context.Background())
	a.Stop()

	if a.Running() {
		t.Error("adapter should not run when the source fails to open")
	}
	if src.closed.Load() != 0 {
		t.Error("a source that failed to open should not be closed")
	}
	if st := a.State(); st.X != 0 || st.Y != 0 {
		t.Errorf("state = %+v, expected rest", st)
	}
}

func TestAdapterSamplesSource(t *testing.T) {
	src := &stubSource{x: 0.8, y: -0.4}
	cfg := DefaultConfig()
	cfg.SampleRate = 500
	a := NewAdapter(src, cfg, nil)

	a.Start(context.Background())
	waitFor(t, "tilt to converge", func() bool {
		st := a.State()
		return math.Abs(st.X-0.8) < 0.01 && math.Abs(st.Y+0.4) < 0.01
	})
	a.Stop()

	if src.closed.Load() != 1 {
		t.Errorf("source closed %d times, expected 1", src.closed.Load())
	}
}

func TestAdapterStopIsIdempotent(t *testing.T) {
	src := &stubSource{}
	a := NewAdapter(src, DefaultConfig(), nil)

	a.Stop()
	a.Start(context.Background())
	a.Start(context.Background())
	a.Stop()
	a.Stop()

	if src.opened.Load() != 1 {
		t.Errorf("source opened %d times, expected 1", src.opened.Load())
	}
	if src.closed.Load() != 1 {
		t.Errorf("source closed %d times, expected 1", src.closed.Load())
	}
}

func TestAdapterStopsWithContext(t *testing.T) {
	src := &stubSource{}
	a := NewAdapter(src, DefaultConfig(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	a.Start(ctx)
	cancel()
	waitFor(t, "source close", func() bool { return src.closed.Load() == 1 })
	a.Stop()
}

func TestAdapterReduceMotion(t *testing.T) {
	a := NewAdapter(nil, DefaultConfig(), nil)
	a.Sample(1, 1)
	a.SetReduceMotion(true)

	st := a.State()
	if !st.ReduceMotion {
		t.Error("state should carry the reduced-motion flag")
	}
	if st.X == 0 {
		t.Error("adapter keeps reporting values under reduced motion")
	}

	if st = a.Sample(1, 1); !st.ReduceMotion {
		t.Error("later samples should keep the flag")
	}
}

func TestAdapterSampleMatchesSmoother(t *testing.T) {
	a := NewAdapter(nil, Config{Alpha: 0.5}, nil)
	st := a.Sample(1, -1)
	if st.X != 0.5 || st.Y != -0.5 {
		t.Errorf("Sample = %+v, expected (0.5, -0.5)", st)
	}
	if a.State() != st {
		t.Error("State should return the published sample")
	}
}

func TestErrSourceUnavailableWraps(t *testing.T) {
	src := NewWebSocketSource("ws://127.0.0.1:1/none", nil)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := src.Open(ctx)
	if !errors.Is(err, ErrSourceUnavailable) {
		t.Errorf("Open error = %v, expected ErrSourceUnavailable", err)
	}
}
