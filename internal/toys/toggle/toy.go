// Package toggle implements a chunky on/off switch.
package toggle

import (
	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/sound"
	"github.com/vovakirdan/tui-fidget/internal/toys/surface"
)

// KnobChar marks the switch lever.
const KnobChar = '■'

// Toy is the switch.
type Toy struct {
	env     registry.Env
	runtime core.RuntimeConfig
	on      bool
	state   core.ToyState
}

// New creates a switch in the off position.
func New(env registry.Env) *Toy {
	return &Toy{env: env}
}

// ID returns the unique identifier for this toy.
func (t *Toy) ID() string {
	return "toggle"
}

// Title returns the display name for this toy.
func (t *Toy) Title() string {
	return "Switch"
}

// Reset turns the switch off.
func (t *Toy) Reset(runtime core.RuntimeConfig) {
	t.runtime = runtime
	t.on = false
	t.state = t.snapshot(false)
}

// Hide is a no-op.
func (t *Toy) Hide() {}

// Step applies one tick of input.
func (t *Toy) Step(f core.Frame) core.StepResult {
	var events []core.Feedback
	touched := false

	switch {
	case f.Input.Has(core.ActionPrimary), f.Pointer.Phase == core.PointerDown:
		events = t.set(!t.on)
		touched = true
	case f.Input.Has(core.ActionIncrease):
		events = t.set(true)
		touched = true
	case f.Input.Has(core.ActionDecrease):
		events = t.set(false)
		touched = true
	}

	t.state = t.snapshot(touched)
	return core.StepResult{State: t.state, Feedback: events}
}

// set flips to on and reports the matching click, or nothing if the switch
// is already there.
func (t *Toy) set(on bool) []core.Feedback {
	if t.on == on {
		return nil
	}
	t.on = on
	e := sound.SwitchOff
	if on {
		e = sound.SwitchOn
	}
	return []core.Feedback{{Effect: string(e), Haptic: core.HapticMedium}}
}

func (t *Toy) snapshot(touched bool) core.ToyState {
	s := core.ToyState{Touched: touched, Label: "off"}
	if t.on {
		s.Value = 1
		s.Label = "on"
	}
	return s
}

// track is the slot the lever slides in.
func (t *Toy) track() core.Rect {
	w := core.Min(12, t.runtime.ScreenW-6)
	return core.NewRect((t.runtime.ScreenW-w)/2, t.runtime.ScreenH/2-2, w, 3)
}

// Lever returns the rectangle of the lever for the current position.
func (t *Toy) Lever() core.Rect {
	tr := t.track()
	w := tr.W / 2
	if t.on {
		return core.NewRect(tr.Right()-w, tr.Y, w, tr.H)
	}
	return core.NewRect(tr.X, tr.Y, w, tr.H)
}

// Render draws the track and the lever. The lever stands proud when on and
// sits flush in the track when off.
func (t *Toy) Render(dst *core.Screen, view core.View) {
	defer surface.Frame(dst, view.Focused, view.Pulse)

	p := surface.Params(t.env.Shading, t.env.MaxShadow, view)
	surface.Recessed(dst, t.track(), p)

	lever := t.Lever()
	if t.on {
		surface.Raised(dst, lever, p, core.ColorGreen)
	} else {
		surface.Recessed(dst, lever, p)
	}
	cx, cy := lever.Center()
	dst.SetColored(cx, cy, KnobChar, core.ColorBrightWhite)

	dst.DrawTextColored(2, dst.Height()-2, t.state.Label, core.ColorGray)
}

// State returns the current toy state.
func (t *Toy) State() core.ToyState {
	return t.state
}

// On reports the switch position.
func (t *Toy) On() bool {
	return t.on
}

// Register the toy with the registry
func init() {
	registry.Register("toggle", func(env registry.Env) registry.Toy {
		return New(env)
	})
}
