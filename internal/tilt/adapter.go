package tilt

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Adapter samples a Source at a fixed rate, smooths the samples and
// publishes the result as an immutable State.
type Adapter struct {
	src    Source
	cfg    Config
	logger *log.Logger

	mu       sync.Mutex // serializes writers of smoother and state
	smoother *Smoother
	state    atomic.Pointer[State]
	reduce   atomic.Bool

	life    sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// NewAdapter creates an adapter at rest. src may be nil, in which case Start
// is a no-op and tilt stays at zero.
func NewAdapter(src Source, cfg Config, logger *log.Logger) *Adapter {
	if !(cfg.SampleRate > 0) {
		cfg.SampleRate = DefaultSampleRate
	}
	a := &Adapter{
		src:      src,
		cfg:      cfg,
		logger:   discardLogger(logger),
		smoother: NewSmoother(cfg.Alpha),
	}
	a.state.Store(&State{})
	return a
}

// Start opens the source and begins sampling on a background goroutine.
// An unavailable source is not an error: it is logged and tilt stays at rest.
// Calling Start on a running adapter does nothing.
func (a *Adapter) Start(ctx context.Context) {
	a.life.Lock()
	defer a.life.Unlock()

	if a.running {
		return
	}
	if a.src == nil {
		a.logger.Debug("no tilt source, holding at rest")
		return
	}
	if err := a.src.Open(ctx); err != nil {
		a.logger.Debug("tilt source unavailable, holding at rest", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.done = make(chan struct{})
	a.running = true

	go a.run(ctx, a.done)
	a.logger.Debug("tilt sampling started", "rate", a.cfg.SampleRate)
}

func (a *Adapter) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	defer func() {
		if err := a.src.Close(); err != nil {
			a.logger.Debug("tilt source close", "error", err)
		}
	}()

	interval := time.Duration(float64(time.Second) / a.cfg.SampleRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if x, y, ok := a.src.Read(); ok {
				a.Sample(x, y)
			}
		}
	}
}

// Stop halts sampling and waits for the sampling goroutine to exit.
// It is safe to call any number of times.
func (a *Adapter) Stop() {
	a.life.Lock()
	defer a.life.Unlock()

	if !a.running {
		return
	}
	a.cancel()
	<-a.done
	a.running = false
	a.logger.Debug("tilt sampling stopped")
}

// Running reports whether the adapter is sampling a source.
func (a *Adapter) Running() bool {
	a.life.Lock()
	defer a.life.Unlock()
	return a.running
}

// Sample feeds one raw sample through the smoother and publishes the result.
func (a *Adapter) Sample(rawX, rawY float64) State {
	a.mu.Lock()
	defer a.mu.Unlock()

	x, y := a.smoother.Sample(rawX, rawY)
	st := &State{X: x, Y: y, ReduceMotion: a.reduce.Load()}
	a.state.Store(st)
	return *st
}

// SetReduceMotion sets the reduced-motion flag reported with every state.
// The smoothed values keep updating; consumers decide to ignore them.
func (a *Adapter) SetReduceMotion(on bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.reduce.Store(on)
	x, y := a.smoother.Value()
	a.state.Store(&State{X: x, Y: y, ReduceMotion: on})
}

// ReduceMotion reports the reduced-motion flag.
func (a *Adapter) ReduceMotion() bool {
	return a.reduce.Load()
}

// State returns the latest snapshot. It never blocks on the writer.
func (a *Adapter) State() State {
	return *a.state.Load()
}
