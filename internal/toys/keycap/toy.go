// Package keycap implements a single mechanical key with a deep thock.
package keycap

import (
	"fmt"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/sound"
	"github.com/vovakirdan/tui-fidget/internal/toys/surface"
)

// Legend is printed on the key.
const Legend = "esc"

// HoldTicks is how long a keyboard press stays down. Terminals report
// no key-up, so the key springs back on its own.
const HoldTicks = 8

// Toy is the keycap.
type Toy struct {
	env     registry.Env
	runtime core.RuntimeConfig
	pressed bool
	held    bool // Pressed by a pointer, released only by pointer up
	hold    int
	presses int
	state   core.ToyState
}

// New creates a key at rest.
func New(env registry.Env) *Toy {
	return &Toy{env: env}
}

// ID returns the unique identifier for this toy.
func (t *Toy) ID() string {
	return "keycap"
}

// Title returns the display name for this toy.
func (t *Toy) Title() string {
	return "Keycap"
}

// Reset lifts the key.
func (t *Toy) Reset(runtime core.RuntimeConfig) {
	t.runtime = runtime
	t.pressed = false
	t.held = false
	t.hold = 0
	t.presses = 0
	t.state = t.snapshot(false)
}

// Hide lifts the key.
func (t *Toy) Hide() {
	t.pressed = false
	t.held = false
	t.hold = 0
	t.state = t.snapshot(false)
}

// Step applies one tick of input.
func (t *Toy) Step(f core.Frame) core.StepResult {
	var events []core.Feedback
	touched := false

	switch {
	case f.Pointer.Phase == core.PointerDown:
		events = t.press()
		t.held = true
		touched = true
	case f.Pointer.Phase == core.PointerUp && t.held:
		t.release()
		touched = true
	case f.Input.Has(core.ActionPrimary):
		events = t.press()
		t.hold = HoldTicks
		touched = true
	case f.Input.Has(core.ActionRelease):
		t.release()
		touched = true
	default:
		if t.pressed && !t.held {
			t.hold--
			if t.hold <= 0 {
				t.release()
			}
		}
	}

	t.state = t.snapshot(touched)
	return core.StepResult{State: t.state, Feedback: events}
}

// press pushes the key down, thocking only on the way down.
func (t *Toy) press() []core.Feedback {
	if t.pressed {
		return nil
	}
	t.pressed = true
	t.presses++
	return []core.Feedback{{Effect: string(sound.KeyThock), Haptic: core.HapticRigid}}
}

func (t *Toy) release() {
	t.pressed = false
	t.held = false
	t.hold = 0
}

func (t *Toy) snapshot(touched bool) core.ToyState {
	s := core.ToyState{
		Active:  t.pressed,
		Touched: touched,
		Label:   fmt.Sprintf("%d presses", t.presses),
	}
	if t.pressed {
		s.Value = 1
	}
	return s
}

// Cap returns the rectangle of the key top.
func (t *Toy) Cap() core.Rect {
	w := core.Min(10, t.runtime.ScreenW-6)
	h := core.Min(4, t.runtime.ScreenH-5)
	return core.NewRect((t.runtime.ScreenW-w)/2, (t.runtime.ScreenH-1-h)/2, w, h)
}

// Render draws the key, raised at rest and sunk while pressed.
func (t *Toy) Render(dst *core.Screen, view core.View) {
	defer surface.Frame(dst, view.Focused, view.Pulse)

	p := surface.Params(t.env.Shading, t.env.MaxShadow, view)
	r := t.Cap()
	if t.pressed {
		surface.Recessed(dst, r, p)
	} else {
		surface.Raised(dst, r, p, core.ColorWhite)
	}

	cx, cy := r.Center()
	dst.DrawTextColored(cx-len(Legend)/2, cy, Legend, core.ColorBrightWhite)

	dst.DrawTextColored(2, dst.Height()-2, t.state.Label, core.ColorGray)
}

// State returns the current toy state.
func (t *Toy) State() core.ToyState {
	return t.state
}

// Pressed reports whether the key is down.
func (t *Toy) Pressed() bool {
	return t.pressed
}

// Register the toy with the registry
func init() {
	registry.Register("keycap", func(env registry.Env) registry.Toy {
		return New(env)
	})
}
