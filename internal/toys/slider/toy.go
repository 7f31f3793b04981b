// Package slider implements a stepped slider with a tick at every notch.
package slider

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/sound"
	"github.com/vovakirdan/tui-fidget/internal/toys/surface"
)

// Visual characters for rendering
const (
	ThumbChar = '┃'
	NotchChar = '╷'
)

// Steps is the highest slider value; values run 0..Steps.
const Steps = 20

// Toy is the slider.
type Toy struct {
	env      registry.Env
	runtime  core.RuntimeConfig
	value    int
	dragging bool
	state    core.ToyState
}

// New creates a slider at zero.
func New(env registry.Env) *Toy {
	return &Toy{env: env}
}

// ID returns the unique identifier for this toy.
func (t *Toy) ID() string {
	return "slider"
}

// Title returns the display name for this toy.
func (t *Toy) Title() string {
	return "Slider"
}

// Reset moves the slider back to zero.
func (t *Toy) Reset(runtime core.RuntimeConfig) {
	t.runtime = runtime
	t.value = 0
	t.dragging = false
	t.state = t.snapshot(false)
}

// Hide drops any drag in progress.
func (t *Toy) Hide() {
	t.dragging = false
}

// Step applies one tick of input.
func (t *Toy) Step(f core.Frame) core.StepResult {
	var events []core.Feedback
	touched := false

	switch {
	case f.Input.Has(core.ActionIncrease), f.Input.Has(core.ActionPrimary):
		events = t.moveTo(t.value + 1)
		touched = true
	case f.Input.Has(core.ActionDecrease):
		events = t.moveTo(t.value - 1)
		touched = true
	}

	switch f.Pointer.Phase {
	case core.PointerDown:
		t.dragging = true
		events = append(events, t.moveTo(t.valueAt(f.Pointer.X))...)
		touched = true
	case core.PointerMove:
		if t.dragging {
			events = append(events, t.moveTo(t.valueAt(f.Pointer.X))...)
			touched = true
		}
	case core.PointerUp:
		touched = t.dragging
		t.dragging = false
	}

	t.state = t.snapshot(touched)
	return core.StepResult{State: t.state, Feedback: events}
}

// moveTo walks to target one notch at a time, ticking at each.
func (t *Toy) moveTo(target int) []core.Feedback {
	target = core.Clamp(target, 0, Steps)
	var events []core.Feedback
	for t.value != target {
		if target > t.value {
			t.value++
		} else {
			t.value--
		}
		events = append(events, core.Feedback{Effect: string(sound.SliderTick), Haptic: core.HapticSelection})
	}
	return events
}

// track is the slot the thumb runs along.
func (t *Toy) track() core.Rect {
	return core.NewRect(3, t.runtime.ScreenH/2-1, core.Max(2, t.runtime.ScreenW-6), 1)
}

// valueAt maps a cell column to the nearest notch.
func (t *Toy) valueAt(x float64) int {
	tr := t.track()
	n := (x - float64(tr.X)) / float64(tr.W-1)
	return core.Clamp(int(math.Round(n*Steps)), 0, Steps)
}

// ThumbX returns the column of the thumb.
func (t *Toy) ThumbX() int {
	tr := t.track()
	return tr.X + int(math.Round(float64(t.value)/Steps*float64(tr.W-1)))
}

func (t *Toy) snapshot(touched bool) core.ToyState {
	return core.ToyState{
		Value:   float64(t.value),
		Touched: touched,
		Label:   fmt.Sprintf("%2d / %d", t.value, Steps),
	}
}

// Render draws the recessed track with notches and a raised thumb.
func (t *Toy) Render(dst *core.Screen, view core.View) {
	defer surface.Frame(dst, view.Focused, view.Pulse)

	p := surface.Params(t.env.Shading, t.env.MaxShadow, view)
	tr := t.track()
	surface.Recessed(dst, tr, p)
	for i := 0; i <= Steps; i += 5 {
		x := tr.X + int(math.Round(float64(i)/Steps*float64(tr.W-1)))
		dst.SetColored(x, tr.Y+2, NotchChar, core.ColorGray)
	}

	x := t.ThumbX()
	surface.Raised(dst, core.NewRect(x, tr.Y-1, 1, 3), p, core.ColorCyan)
	dst.SetColored(x, tr.Y, ThumbChar, core.ColorBrightWhite)

	dst.DrawTextColored(2, dst.Height()-2, t.state.Label, core.ColorGray)
}

// State returns the current toy state.
func (t *Toy) State() core.ToyState {
	return t.state
}

// Value returns the current notch.
func (t *Toy) Value() int {
	return t.value
}

// Register the toy with the registry
func init() {
	registry.Register("slider", func(env registry.Env) registry.Toy {
		return New(env)
	})
}
