// Package pendulum implements a weighted pendulum that swings, can be
// grabbed and thrown, and leans with sideways tilt.
package pendulum

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/physics"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/sound"
	"github.com/vovakirdan/tui-fidget/internal/toys/surface"
)

// Visual characters for rendering
const (
	PivotChar = '┬'
	RodChar   = '·'
	BobChar   = '●'
)

const (
	// PushSpeed is the angular velocity added by the primary action.
	PushSpeed = 0.08
	// NudgeSpeed is the angular velocity added by [ and ].
	NudgeSpeed = 0.05
	// pivotY is the row the rod hangs from.
	pivotY = 1
)

// Toy is the pendulum.
type Toy struct {
	env     registry.Env
	runtime core.RuntimeConfig
	bob     *physics.Pendulum
	pending []core.Feedback
	state   core.ToyState
}

// New creates a pendulum with the given tuning.
func New(env registry.Env) *Toy {
	return &Toy{env: env}
}

// ID returns the unique identifier for this toy.
func (t *Toy) ID() string {
	return "pendulum"
}

// Title returns the display name for this toy.
func (t *Toy) Title() string {
	return "Pendulum"
}

// Reset hangs a fresh pendulum at rest.
func (t *Toy) Reset(runtime core.RuntimeConfig) {
	t.runtime = runtime
	t.bob = physics.NewPendulum(t.env.Pendulum)
	t.bob.OnTick = func() {
		t.pending = append(t.pending, core.Feedback{Effect: string(sound.PendulumTick), Haptic: core.HapticSoft})
	}
	t.bob.Start()
	t.pending = nil
	t.state = core.ToyState{Label: "push me"}
}

// Hide freezes the pendulum.
func (t *Toy) Hide() {
	if t.bob != nil {
		t.bob.Stop()
	}
	t.state.Active = false
}

// Step applies input and advances the swing by one host tick.
func (t *Toy) Step(f core.Frame) core.StepResult {
	if t.bob == nil {
		return core.StepResult{State: t.state}
	}

	touched := t.pointer(f.Pointer)
	switch {
	case f.Input.Has(core.ActionPrimary):
		t.bob.Nudge(PushSpeed)
		touched = true
	case f.Input.Has(core.ActionIncrease):
		t.bob.Nudge(NudgeSpeed)
		touched = true
	case f.Input.Has(core.ActionDecrease):
		t.bob.Nudge(-NudgeSpeed)
		touched = true
	}

	tilt := f.TiltX
	if f.ReduceMotion {
		tilt = 0
	}
	t.bob.Tick(f.DT, tilt)

	events := t.pending
	t.pending = nil

	t.state = core.ToyState{
		Value:   t.bob.Angle(),
		Active:  t.bob.Phase() == physics.PhaseActive,
		Touched: touched,
		Label:   fmt.Sprintf("%+4.0f°", t.bob.Angle()*180/math.Pi),
	}
	return core.StepResult{State: t.state, Feedback: events}
}

func (t *Toy) pointer(p core.Pointer) bool {
	cx := t.pivotX()
	switch p.Phase {
	case core.PointerDown:
		t.bob.BeginDrag()
		t.bob.DragTo((p.X-cx)/2, p.Y-pivotY)
		return true
	case core.PointerMove:
		if !t.bob.Dragging() {
			return false
		}
		t.bob.DragTo((p.X-cx)/2, p.Y-pivotY)
		return true
	case core.PointerUp:
		if !t.bob.Dragging() {
			return false
		}
		t.bob.EndDrag()
		return true
	}
	return false
}

func (t *Toy) pivotX() float64 {
	return float64(t.runtime.ScreenW) / 2
}

func (t *Toy) length() float64 {
	return math.Max(1, float64(t.runtime.ScreenH-5))
}

// BobPosition returns the cell the bob is drawn at.
func (t *Toy) BobPosition() (int, int) {
	a, l := t.bob.Angle(), t.length()
	x := t.pivotX() + math.Sin(a)*l*2
	y := pivotY + math.Cos(a)*l
	return int(math.Round(x)), int(math.Round(y))
}

// Render draws the pivot, the rod and a raised bob.
func (t *Toy) Render(dst *core.Screen, view core.View) {
	defer surface.Frame(dst, view.Focused, view.Pulse)
	if t.bob == nil {
		return
	}

	p := surface.Params(t.env.Shading, t.env.MaxShadow, view)
	px := int(math.Round(t.pivotX()))
	dst.DrawHLine(px-3, pivotY, 7, '─', core.ColorGray)
	dst.SetColored(px, pivotY, PivotChar, core.ColorWhite)

	a, l := t.bob.Angle(), t.length()
	for r := 1.0; r < l; r++ {
		x := t.pivotX() + math.Sin(a)*r*2
		y := pivotY + math.Cos(a)*r
		dst.SetColored(int(math.Round(x)), int(math.Round(y)), RodChar, core.ColorGray)
	}

	bx, by := t.BobPosition()
	surface.Raised(dst, core.NewRect(bx-1, by, 3, 1), p, core.ColorMagenta)
	dst.SetColored(bx, by, BobChar, core.ColorBrightMagenta)

	dst.DrawTextColored(2, dst.Height()-2, t.state.Label, core.ColorGray)
}

// State returns the current toy state.
func (t *Toy) State() core.ToyState {
	return t.state
}

// Bob exposes the simulator for inspection.
func (t *Toy) Bob() *physics.Pendulum {
	return t.bob
}

// Register the toy with the registry
func init() {
	registry.Register("pendulum", func(env registry.Env) registry.Toy {
		return New(env)
	})
}
