package physics

import (
	"math"

	"github.com/vovakirdan/tui-fidget/internal/core"
)

// PendulumConfig holds the tuning constants of a swinging pendulum.
// Angles are radians from straight down, positive to the right.
type PendulumConfig struct {
	Gravity       float64 // Angular acceleration per tick at 90°
	Damping       float64 // Angular velocity retained per tick, in (0, 1]
	MaxAngle      float64 // Drag deflection limit
	TickAngle     float64 // Travel between feedback ticks
	MinTickSpeed  float64 // Ticks are muted below this speed
	SettleAngle   float64 // Snap-to-rest epsilon for the angle
	SettleSpeed   float64 // Snap-to-rest epsilon for the velocity
	TiltInfluence float64 // Rest angle shift at full sideways tilt
	DragGain      float64 // Scales drag deltas into hand-off velocity
}

// DefaultPendulumConfig returns the tuned defaults.
func DefaultPendulumConfig() PendulumConfig {
	return PendulumConfig{
		Gravity:       0.012,
		Damping:       0.985,
		MaxAngle:      1.2,
		TickAngle:     0.35,
		MinTickSpeed:  0.01,
		SettleAngle:   0.002,
		SettleSpeed:   0.0005,
		TiltInfluence: 0.5,
		DragGain:      0.6,
	}
}

// Pendulum is a gravity-driven pendulum that can be grabbed and thrown.
type Pendulum struct {
	cfg      PendulumConfig
	angle    float64
	vel      float64
	phase    Phase
	dragging bool
	stopped  bool
	travel   float64

	// OnTick fires when accumulated travel exceeds TickAngle while the bob
	// moves faster than MinTickSpeed.
	OnTick func()
}

// NewPendulum creates a pendulum hanging at rest.
func NewPendulum(cfg PendulumConfig) *Pendulum {
	return &Pendulum{cfg: cfg}
}

// Angle returns the current angle.
func (p *Pendulum) Angle() float64 {
	return p.angle
}

// AngularVelocity returns the angular velocity in radians per tick.
func (p *Pendulum) AngularVelocity() float64 {
	return p.vel
}

// Phase returns the lifecycle phase.
func (p *Pendulum) Phase() Phase {
	return p.phase
}

// Dragging reports whether the bob is held.
func (p *Pendulum) Dragging() bool {
	return p.dragging
}

// Release sets an initial swing, used for tests and keyboard nudges.
func (p *Pendulum) Release(angle, angularVelocity float64) {
	if !finite(angle, angularVelocity) {
		p.reset()
		return
	}
	p.angle = math.Max(-p.cfg.MaxAngle, math.Min(p.cfg.MaxAngle, angle))
	p.vel = angularVelocity
	p.dragging = false
	p.phase = PhaseActive
}

// Nudge adds angular velocity to the swing.
func (p *Pendulum) Nudge(dv float64) {
	p.Release(p.angle, p.vel+dv)
}

// BeginDrag grabs the bob.
func (p *Pendulum) BeginDrag() {
	p.dragging = true
	p.vel = 0
	p.phase = PhaseActive
}

// DragTo drives the angle from the touch position relative to the pivot
// (dy grows downward). The angle is clamped to MaxAngle and the velocity is
// derived from the drag delta for momentum on release.
func (p *Pendulum) DragTo(dx, dy float64) {
	if !p.dragging || !finite(dx, dy) || (dx == 0 && dy == 0) {
		return
	}
	a := math.Atan2(dx, dy)
	a = math.Max(-p.cfg.MaxAngle, math.Min(p.cfg.MaxAngle, a))
	p.vel = (a - p.angle) * p.cfg.DragGain
	p.angle = a
}

// EndDrag lets go of the bob, keeping the hand-off velocity.
func (p *Pendulum) EndDrag() {
	if !p.dragging {
		return
	}
	p.dragging = false
	p.phase = PhaseActive
}

// Start lets the pendulum respond to ticks; the owning toy calls it on appear.
func (p *Pendulum) Start() {
	p.stopped = false
}

// Stop freezes the pendulum until Start; the owning toy calls it on disappear.
func (p *Pendulum) Stop() {
	p.stopped = true
	p.dragging = false
	p.phase = PhaseIdle
}

// Tick advances the swing by dt seconds. tiltX shifts the rest angle.
// It returns false while idle.
func (p *Pendulum) Tick(dt, tiltX float64) bool {
	if p.stopped {
		return false
	}
	if p.dragging {
		return true
	}

	rest := core.ClampUnit(tiltX) * p.cfg.TiltInfluence
	if p.phase != PhaseActive {
		// A tilt change displaces the rest point and wakes the pendulum.
		if math.Abs(p.angle-rest) <= p.cfg.SettleAngle {
			return false
		}
		p.phase = PhaseActive
	}

	s := FrameScale(dt)
	if s == 0 {
		return true
	}

	acc := -p.cfg.Gravity * math.Sin(p.angle-rest)
	p.vel += acc * s
	p.vel *= decay(p.cfg.Damping, s)
	p.angle += p.vel * s

	if !finite(p.angle, p.vel) {
		p.reset()
		return false
	}

	p.travel += math.Abs(p.vel * s)
	if p.travel >= p.cfg.TickAngle {
		p.travel = 0
		if math.Abs(p.vel) >= p.cfg.MinTickSpeed && p.OnTick != nil {
			p.OnTick()
		}
	}

	if math.Abs(p.angle-rest) < p.cfg.SettleAngle && math.Abs(p.vel) < p.cfg.SettleSpeed {
		p.angle = rest
		p.vel = 0
		p.travel = 0
		p.phase = PhaseIdle
		return false
	}
	return true
}

func (p *Pendulum) reset() {
	p.angle = 0
	p.vel = 0
	p.travel = 0
	p.dragging = false
	p.phase = PhaseIdle
}
