// Package tiltball implements a ball rolling in a tray under device tilt.
// Wall contacts click and thump; the primary action hops the ball.
package tiltball

import (
	"fmt"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/physics"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/sound"
	"github.com/vovakirdan/tui-fidget/internal/toys/surface"
)

// Visual characters for rendering
const (
	BallChar       = '●'
	BallShadowChar = '•'
)

const (
	// HopSpeed is the upward kick of the primary action, cells per tick.
	HopSpeed = 0.9
	// PointerPull scales the impulse toward a pressed point.
	PointerPull = 0.08
	// HeavyImpact is the contact speed above which the haptic is heavy.
	HeavyImpact = 0.6
)

// Toy is the tilt-ball.
type Toy struct {
	env     registry.Env
	runtime core.RuntimeConfig
	ball    *physics.Ball
	pending []core.Feedback
	hits    int
	state   core.ToyState
}

// New creates a tilt-ball with the given tuning.
func New(env registry.Env) *Toy {
	return &Toy{env: env}
}

// ID returns the unique identifier for this toy.
func (t *Toy) ID() string {
	return "tiltball"
}

// Title returns the display name for this toy.
func (t *Toy) Title() string {
	return "Tilt Ball"
}

// Reset sizes the tray to the cell and starts the simulation.
func (t *Toy) Reset(runtime core.RuntimeConfig) {
	t.runtime = runtime
	t.ball = physics.NewBall(t.env.Ball, t.trayBounds())
	t.ball.OnContact = t.onContact
	t.ball.Start()
	t.pending = nil
	t.hits = 0
	t.state = core.ToyState{Active: true, Label: "tilt me"}
}

// trayBounds confines the ball center inside the tray border.
func (t *Toy) trayBounds() physics.Bounds {
	tray := t.tray()
	return physics.Bounds{
		MinX: float64(tray.X + 1),
		MinY: float64(tray.Y + 1),
		MaxX: float64(core.Max(tray.X+1, tray.Right()-2)),
		MaxY: float64(core.Max(tray.Y+1, tray.Bottom()-2)),
	}
}

func (t *Toy) tray() core.Rect {
	return core.NewRect(1, 1, t.runtime.ScreenW-2, t.runtime.ScreenH-3)
}

func (t *Toy) onContact(c physics.Contact) {
	t.hits++
	style := core.HapticMedium
	if c.Speed >= HeavyImpact {
		style = core.HapticHeavy
	}
	t.pending = append(t.pending, core.Feedback{Effect: string(sound.BallBounce), Haptic: style})
}

// Hide stops the simulation.
func (t *Toy) Hide() {
	if t.ball != nil {
		t.ball.Stop()
	}
	t.state.Active = false
}

// Step advances the ball by one host tick.
func (t *Toy) Step(f core.Frame) core.StepResult {
	if t.ball == nil {
		return core.StepResult{State: t.state}
	}

	touched := false
	if f.Input.Has(core.ActionPrimary) {
		t.ball.Nudge(0, -HopSpeed)
		touched = true
	}
	if f.Pointer.Phase == core.PointerDown || f.Pointer.Phase == core.PointerMove {
		pull := core.V(f.Pointer.X, f.Pointer.Y).Sub(t.ball.Position()).Scale(PointerPull)
		t.ball.Nudge(pull.X, pull.Y)
		touched = true
	}

	tx, ty := f.TiltX, f.TiltY
	if f.ReduceMotion {
		tx, ty = 0, 0
	}
	t.ball.Tick(f.DT, tx, ty)

	events := t.pending
	t.pending = nil

	t.state = core.ToyState{
		Value:   t.ball.Speed(),
		Active:  t.ball.Active(),
		Touched: touched,
		Label:   fmt.Sprintf("%d bounces", t.hits),
	}
	return core.StepResult{State: t.state, Feedback: events}
}

// Render draws the tray, the ball and its shadow.
func (t *Toy) Render(dst *core.Screen, view core.View) {
	defer surface.Frame(dst, view.Focused, view.Pulse)
	if t.ball == nil {
		return
	}

	p := surface.Params(t.env.Shading, t.env.MaxShadow, view)
	surface.Recessed(dst, t.tray(), p)

	bx, by := t.ball.Position().Round()
	sx, sy := p.Dark.Round()
	if sx != 0 || sy != 0 {
		dst.SetColored(bx+sx, by+sy, BallShadowChar, core.ColorShadow)
	}
	dst.SetColored(bx, by, BallChar, core.ColorBrightWhite)

	dst.DrawTextColored(2, dst.Height()-2, t.state.Label, core.ColorGray)
}

// State returns the current toy state.
func (t *Toy) State() core.ToyState {
	return t.state
}

// Ball exposes the simulator for inspection.
func (t *Toy) Ball() *physics.Ball {
	return t.ball
}

// Register the toy with the registry
func init() {
	registry.Register("tiltball", func(env registry.Env) registry.Toy {
		return New(env)
	})
}
