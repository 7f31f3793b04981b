// Package spinner implements a fidget spinner: drag it, let go, and it
// coasts down under friction while clicking at every detent.
package spinner

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
	LobeChar = '◍'
	HubChar  = '◉'
	ArmChar  = '·'
)

const (
	// FlickSpeed is the angular velocity a keyboard flick adds, rad/tick.
	FlickSpeed = 0.35
	// Lobes is the number of weighted arms.
	Lobes = 3
	// dragFade is how much of the drag velocity survives a tick without motion.
	dragFade = 0.5
)

// Toy is the momentum spinner.
type Toy struct {
	env     registry.Env
	runtime core.RuntimeConfig
	rotor   *physics.Spinner
	pending []core.Feedback

	lastAngle float64 // Pointer angle at the previous drag sample
	dragVel   float64 // Most recent drag speed, seeds the release
	state     core.ToyState
}

// New creates a spinner with the given tuning.
func New(env registry.Env) *Toy {
	return &Toy{env: env}
}

// ID returns the unique identifier for this toy.
func (t *Toy) ID() string {
	return "spinner"
}

// Title returns the display name for this toy.
func (t *Toy) Title() string {
	return "Spinner"
}

// Reset creates a rotor at rest.
func (t *Toy) Reset(runtime core.RuntimeConfig) {
	t.runtime = runtime
	t.rotor = physics.NewSpinner(t.env.Spinner)
	t.rotor.OnDetent = func(int) {
		t.pending = append(t.pending, core.Feedback{Effect: string(sound.SpinnerTick), Haptic: core.HapticLight})
	}
	t.pending = nil
	t.dragVel = 0
	t.state = core.ToyState{Label: "flick me"}
}

// Hide stops the rotor.
func (t *Toy) Hide() {
	if t.rotor != nil {
		t.rotor.Stop()
	}
	t.state.Active = false
}

// Step applies input and advances the rotor by one host tick.
func (t *Toy) Step(f core.Frame) core.StepResult {
	if t.rotor == nil {
		return core.StepResult{State: t.state}
	}

	touched := t.pointer(f.Pointer)
	switch {
	case f.Input.Has(core.ActionIncrease), f.Input.Has(core.ActionPrimary):
		t.rotor.Flick(FlickSpeed)
		touched = true
	case f.Input.Has(core.ActionDecrease):
		t.rotor.Flick(-FlickSpeed)
		touched = true
	}

	t.rotor.Tick(f.DT)

	events := t.pending
	t.pending = nil

	t.state = core.ToyState{
		Value:   t.rotor.AngularVelocity(),
		Active:  t.rotor.Phase() == physics.PhaseActive,
		Touched: touched,
		Label:   fmt.Sprintf("%4.0f rpm", RPM(t.rotor.AngularVelocity())),
	}
	return core.StepResult{State: t.state, Feedback: events}
}

// pointer turns a drag gesture into grab, drag and release calls.
func (t *Toy) pointer(p core.Pointer) bool {
	switch p.Phase {
	case core.PointerDown:
		t.rotor.Grab()
		t.lastAngle = t.angleAt(p.X, p.Y)
		t.dragVel = 0
		return true
	case core.PointerMove:
		if !t.rotor.Grabbed() {
			return false
		}
		a := t.angleAt(p.X, p.Y)
		delta := wrap(a - t.lastAngle)
		t.lastAngle = a
		t.rotor.Drag(delta)
		t.dragVel = delta
		return true
	case core.PointerUp:
		if !t.rotor.Grabbed() {
			return false
		}
		t.rotor.Release(t.dragVel)
		t.dragVel = 0
		return true
	}
	if t.rotor.Grabbed() {
		t.dragVel *= dragFade
	}
	return false
}

// angleAt returns the angle of a cell point around the hub, correcting for
// cells being about twice as tall as they are wide.
func (t *Toy) angleAt(x, y float64) float64 {
	cx, cy := t.center()
	return math.Atan2(y-cy, (x-cx)/2)
}

func (t *Toy) center() (float64, float64) {
	return float64(t.runtime.ScreenW) / 2, float64(t.runtime.ScreenH-1) / 2
}

// Render draws the body, the rotating lobes and the hub.
func (t *Toy) Render(dst *core.Screen, view core.View) {
	defer surface.Frame(dst, view.Focused, view.Pulse)
	if t.rotor == nil {
		return
	}

	p := surface.Params(t.env.Shading, t.env.MaxShadow, view)
	cx, cy := t.center()
	ry := math.Max(1, cy-2)
	rx := ry * 2

	body := core.NewRect(int(cx-rx)-1, int(cy-ry), int(2*rx)+3, int(2*ry)+1)
	surface.Raised(dst, body, p, core.ColorBlue)

	for i := 0; i < Lobes; i++ {
		a := t.rotor.Angle() + float64(i)*2*math.Pi/Lobes
		for _, r := range []float64{0.5, 1} {
			x := int(math.Round(cx + math.Cos(a)*rx*r))
			y := int(math.Round(cy + math.Sin(a)*ry*r))
			ch := ArmChar
			if r == 1 {
				ch = LobeChar
			}
			dst.SetColored(x, y, ch, core.ColorBrightCyan)
		}
	}
	dst.SetColored(int(math.Round(cx)), int(math.Round(cy)), HubChar, core.ColorBrightWhite)

	dst.DrawTextColored(2, dst.Height()-2, t.state.Label, core.ColorGray)
}

// State returns the current toy state.
func (t *Toy) State() core.ToyState {
	return t.state
}

// Rotor exposes the simulator for inspection.
func (t *Toy) Rotor() *physics.Spinner {
	return t.rotor
}

// RPM converts an angular velocity in rad/tick at 60 Hz to revolutions per
// minute.
func RPM(vel float64) float64 {
	return math.Abs(vel) * physics.BaseRate * 60 / (2 * math.Pi)
}

// wrap maps an angle difference into [-π, π].
func wrap(d float64) float64 {
	return math.Remainder(d, 2*math.Pi)
}

// Register the toy with the registry
func init() {
	registry.Register("spinner", func(env registry.Env) registry.Toy {
		return New(env)
	})
}
