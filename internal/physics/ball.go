package physics

import (
	"math"

	"github.com/vovakirdan/tui-fidget/internal/core"
)

// BallConfig holds the tuning constants of a tilt-rolling ball.
// Distances are in cells, velocities in cells per 60 Hz tick.
type BallConfig struct {
	Gravity        float64 // Acceleration per tick at full tilt
	Friction       float64 // Velocity retained per tick, in (0, 1]
	Restitution    float64 // Velocity retained by a bounce, in [0, 1)
	MinImpactSpeed float64 // Slower contacts bounce silently
	MaxSpeed       float64 // 0 disables the cap
}

// DefaultBallConfig returns the tuned defaults.
func DefaultBallConfig() BallConfig {
	return BallConfig{
		Gravity:        0.045,
		Friction:       0.985,
		Restitution:    0.55,
		MinImpactSpeed: 0.05,
		MaxSpeed:       3.0,
	}
}

// Bounds is the rectangle the ball's center is confined to.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Center returns the middle of the bounds.
func (b Bounds) Center() core.Vec2 {
	return core.V((b.MinX+b.MaxX)/2, (b.MinY+b.MaxY)/2)
}

// Wall identifies one side of the bounds.
type Wall int

const (
	WallLeft Wall = iota
	WallRight
	WallTop
	WallBottom
	wallCount
)

// String returns the wall name.
func (w Wall) String() string {
	switch w {
	case WallLeft:
		return "left"
	case WallRight:
		return "right"
	case WallTop:
		return "top"
	case WallBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Contact describes the transition of the ball into contact with a wall.
type Contact struct {
	Wall  Wall
	Speed float64 // Incoming speed along the wall normal
}

// Ball is a tilt-driven ball rolling inside a rectangle.
type Ball struct {
	cfg      BallConfig
	bounds   Bounds
	pos      core.Vec2
	vel      core.Vec2
	phase    Phase
	touching [wallCount]bool

	// OnContact fires once per transition into contact with a wall, and only
	// for impacts at or above MinImpactSpeed.
	OnContact func(Contact)
}

// NewBall creates an idle ball resting in the center of bounds.
func NewBall(cfg BallConfig, bounds Bounds) *Ball {
	b := &Ball{cfg: cfg, bounds: bounds}
	b.Reset()
	return b
}

// Reset returns the ball to rest in the center. The phase is unchanged.
func (b *Ball) Reset() {
	b.pos = b.bounds.Center()
	b.vel = core.Vec2{}
	b.touching = [wallCount]bool{}
}

// Start begins simulation; the owning toy calls it when it appears.
func (b *Ball) Start() {
	b.phase = PhaseActive
}

// Stop halts simulation; the owning toy calls it when it disappears.
func (b *Ball) Stop() {
	b.phase = PhaseIdle
}

// Active reports whether the ball is consuming ticks.
func (b *Ball) Active() bool {
	return b.phase == PhaseActive
}

// Position returns the center of the ball.
func (b *Ball) Position() core.Vec2 {
	return b.pos
}

// Velocity returns the current velocity in cells per tick.
func (b *Ball) Velocity() core.Vec2 {
	return b.vel
}

// Bounds returns the confinement rectangle.
func (b *Ball) Bounds() Bounds {
	return b.bounds
}

// Resize changes the bounds and pulls the ball back inside them.
func (b *Ball) Resize(bounds Bounds) {
	b.bounds = bounds
	b.pos.X = core.ClampF(b.pos.X, bounds.MinX, bounds.MaxX)
	b.pos.Y = core.ClampF(b.pos.Y, bounds.MinY, bounds.MaxY)
}

// Nudge adds an impulse to the velocity.
func (b *Ball) Nudge(vx, vy float64) {
	b.vel = b.vel.Add(core.V(vx, vy))
	if !b.vel.IsFinite() {
		b.vel = core.Vec2{}
	}
}

// Tick advances the simulation by dt seconds under the given tilt.
// It returns false when the ball is idle.
func (b *Ball) Tick(dt, tiltX, tiltY float64) bool {
	if b.phase != PhaseActive {
		return false
	}
	s := FrameScale(dt)
	if s == 0 {
		return true
	}

	b.vel.X += core.ClampUnit(tiltX) * b.cfg.Gravity * s
	b.vel.Y += core.ClampUnit(tiltY) * b.cfg.Gravity * s
	b.vel = b.vel.Scale(decay(b.cfg.Friction, s))

	if b.cfg.MaxSpeed > 0 {
		if speed := b.vel.Len(); speed > b.cfg.MaxSpeed {
			b.vel = b.vel.Scale(b.cfg.MaxSpeed / speed)
		}
	}

	b.pos = b.pos.Add(b.vel.Scale(s))

	if !b.pos.IsFinite() || !b.vel.IsFinite() {
		b.Reset()
		return true
	}

	b.collide()
	return true
}

// collide clamps the ball to its bounds, reflects the velocity with
// restitution and fires edge-triggered contact callbacks.
func (b *Ball) collide() {
	var hit [wallCount]bool
	var speed [wallCount]float64

	if b.pos.X <= b.bounds.MinX {
		b.pos.X = b.bounds.MinX
		hit[WallLeft] = true
		if b.vel.X < 0 {
			speed[WallLeft] = -b.vel.X
			b.vel.X = -b.vel.X * b.cfg.Restitution
		}
	} else if b.pos.X >= b.bounds.MaxX {
		b.pos.X = b.bounds.MaxX
		hit[WallRight] = true
		if b.vel.X > 0 {
			speed[WallRight] = b.vel.X
			b.vel.X = -b.vel.X * b.cfg.Restitution
		}
	}

	if b.pos.Y <= b.bounds.MinY {
		b.pos.Y = b.bounds.MinY
		hit[WallTop] = true
		if b.vel.Y < 0 {
			speed[WallTop] = -b.vel.Y
			b.vel.Y = -b.vel.Y * b.cfg.Restitution
		}
	} else if b.pos.Y >= b.bounds.MaxY {
		b.pos.Y = b.bounds.MaxY
		hit[WallBottom] = true
		if b.vel.Y > 0 {
			speed[WallBottom] = b.vel.Y
			b.vel.Y = -b.vel.Y * b.cfg.Restitution
		}
	}

	for w := Wall(0); w < wallCount; w++ {
		entering := hit[w] && !b.touching[w]
		b.touching[w] = hit[w]
		if entering && speed[w] >= b.cfg.MinImpactSpeed && b.OnContact != nil {
			b.OnContact(Contact{Wall: w, Speed: speed[w]})
		}
	}
}

// Touching reports whether the ball currently rests against wall w.
func (b *Ball) Touching(w Wall) bool {
	if w < 0 || w >= wallCount {
		return false
	}
	return b.touching[w]
}

// Speed returns the magnitude of the velocity.
func (b *Ball) Speed() float64 {
	return math.Hypot(b.vel.X, b.vel.Y)
}
