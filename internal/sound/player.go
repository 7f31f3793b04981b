package sound

import (
	"io"
	"math"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// Engine is an audio output. Implementations must layer overlapping plays
// rather than cut earlier ones off.
type Engine interface {
	Init(sampleRate int) error
	Play(buf Buffer, volume float64) error
	Close() error
}

// Player triggers effects. It initializes its engine lazily on the first
// enabled play; if that fails the player stays silent for good.
type Player struct {
	synth  *Synth
	engine Engine
	logger *log.Logger

	enabled atomic.Bool
	silent  atomic.Bool
	volume  atomic.Uint64 // math.Float64bits
	played  atomic.Uint64

	initOnce sync.Once
	inited   atomic.Bool
}

// NewPlayer creates a player. engine may be nil for a permanently silent
// player, which is what remote sessions use.
func NewPlayer(synth *Synth, engine Engine, enabled bool, logger *log.Logger) *Player {
	if synth == nil {
		synth = NewSynth(DefaultSampleRate)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	p := &Player{
		synth:  synth,
		engine: engine,
		logger: logger,
	}
	p.enabled.Store(enabled)
	p.volume.Store(math.Float64bits(1))
	return p
}

// Play schedules e for immediate playback and reports whether it was
// scheduled. Disabled, silent or unknown effects return false.
func (p *Player) Play(e Effect) bool {
	if !p.enabled.Load() {
		return false
	}
	if !e.Valid() {
		p.logger.Debug("ignoring unknown effect", "effect", e)
		return false
	}

	p.initOnce.Do(p.init)
	if p.silent.Load() {
		return false
	}

	buf, err := p.synth.Buffer(e)
	if err != nil {
		p.logger.Debug("synthesis failed", "effect", e, "error", err)
		return false
	}
	if err := p.engine.Play(buf, p.Volume()); err != nil {
		p.logger.Debug("playback failed", "effect", e, "error", err)
		return false
	}
	p.played.Add(1)
	return true
}

func (p *Player) init() {
	if p.engine == nil {
		p.silent.Store(true)
		return
	}
	if err := p.engine.Init(p.synth.SampleRate()); err != nil {
		p.logger.Warn("audio unavailable, continuing without sound", "error", err)
		p.silent.Store(true)
		return
	}
	p.inited.Store(true)
	p.logger.Debug("audio engine ready", "rate", p.synth.SampleRate())
}

// SetEnabled switches sound on or off.
func (p *Player) SetEnabled(on bool) {
	p.enabled.Store(on)
}

// Enabled reports the sound toggle.
func (p *Player) Enabled() bool {
	return p.enabled.Load()
}

// Silent reports whether the engine failed and playback is a no-op.
func (p *Player) Silent() bool {
	return p.silent.Load()
}

// SetVolume sets the master volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	p.volume.Store(math.Float64bits(v))
}

// Volume returns the master volume.
func (p *Player) Volume() float64 {
	return math.Float64frombits(p.volume.Load())
}

// Played returns how many effects have been scheduled.
func (p *Player) Played() uint64 {
	return p.played.Load()
}

// Synth returns the buffer cache the player draws from.
func (p *Player) Synth() *Synth {
	return p.synth
}

// Close releases the engine if it was started.
func (p *Player) Close() error {
	if !p.inited.CompareAndSwap(true, false) {
		return nil
	}
	p.silent.Store(true)
	return p.engine.Close()
}
