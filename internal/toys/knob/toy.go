// Package knob implements a detented frequency dial.
package knob

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
	IndicatorChar = '◆'
	ScaleChar     = '·'
)

const (
	// Detents is the number of click positions on the dial.
	Detents = 24
	// MinFrequency and MaxFrequency are the ends of the printed scale, MHz.
	MinFrequency = 88.0
	MaxFrequency = 108.0

	// The dial sweeps 270° clockwise from the lower left.
	sweepStart = 3 * math.Pi / 4
	sweep      = 3 * math.Pi / 2
)

// Toy is the frequency dial.
type Toy struct {
	env     registry.Env
	runtime core.RuntimeConfig
	detent  int
	state   core.ToyState
}

// New creates a dial at its lowest detent.
func New(env registry.Env) *Toy {
	return &Toy{env: env}
}

// ID returns the unique identifier for this toy.
func (t *Toy) ID() string {
	return "knob"
}

// Title returns the display name for this toy.
func (t *Toy) Title() string {
	return "Frequency Dial"
}

// Reset returns the dial to its lowest detent.
func (t *Toy) Reset(runtime core.RuntimeConfig) {
	t.runtime = runtime
	t.detent = 0
	t.state = t.snapshot(false)
}

// Hide is a no-op; the dial has no running simulation.
func (t *Toy) Hide() {}

// Step applies one tick of input.
func (t *Toy) Step(f core.Frame) core.StepResult {
	var events []core.Feedback
	touched := false

	switch {
	case f.Input.Has(core.ActionIncrease), f.Input.Has(core.ActionPrimary):
		events = t.turn(1)
		touched = true
	case f.Input.Has(core.ActionDecrease):
		events = t.turn(-1)
		touched = true
	}

	if f.Pointer.Phase == core.PointerDown || f.Pointer.Phase == core.PointerMove {
		events = append(events, t.turnTo(t.detentAt(f.Pointer.X, f.Pointer.Y))...)
		touched = true
	}

	t.state = t.snapshot(touched)
	return core.StepResult{State: t.state, Feedback: events}
}

// turn moves one detent in dir. Pushing past an end stop clicks without
// moving.
func (t *Toy) turn(dir int) []core.Feedback {
	next := t.detent + dir
	if next < 0 || next >= Detents {
		return []core.Feedback{{Effect: string(sound.DetentClick), Haptic: core.HapticRigid}}
	}
	t.detent = next
	return []core.Feedback{{Effect: string(sound.KnobTick), Haptic: core.HapticSelection}}
}

// turnTo walks to target one detent at a time so every click is heard.
func (t *Toy) turnTo(target int) []core.Feedback {
	var events []core.Feedback
	for t.detent != target {
		dir := 1
		if target < t.detent {
			dir = -1
		}
		events = append(events, t.turn(dir)...)
	}
	if len(events) > 0 && (target == 0 || target == Detents-1) {
		events = append(events, core.Feedback{Effect: string(sound.DetentClick), Haptic: core.HapticRigid})
	}
	return events
}

// detentAt maps a cell point to the nearest detent. Points in the dead zone
// below the dial snap to the closer end.
func (t *Toy) detentAt(x, y float64) int {
	cx, cy := t.center()
	a := math.Atan2(y-cy, (x-cx)/2)
	rel := math.Mod(a-sweepStart+4*math.Pi, 2*math.Pi)
	if rel > sweep {
		if rel > sweep+(2*math.Pi-sweep)/2 {
			rel = 0
		} else {
			rel = sweep
		}
	}
	return core.Clamp(int(math.Round(rel/sweep*(Detents-1))), 0, Detents-1)
}

// angleOf returns the screen angle of detent d.
func angleOf(d int) float64 {
	return sweepStart + float64(d)/(Detents-1)*sweep
}

func (t *Toy) center() (float64, float64) {
	return float64(t.runtime.ScreenW) / 2, float64(t.runtime.ScreenH-1) / 2
}

func (t *Toy) snapshot(touched bool) core.ToyState {
	return core.ToyState{
		Value:   float64(t.detent),
		Touched: touched,
		Label:   fmt.Sprintf("%5.1f MHz", Frequency(t.detent)),
	}
}

// Render draws the scale, the raised dial and its indicator.
func (t *Toy) Render(dst *core.Screen, view core.View) {
	defer surface.Frame(dst, view.Focused, view.Pulse)

	p := surface.Params(t.env.Shading, t.env.MaxShadow, view)
	cx, cy := t.center()
	ry := math.Max(1, cy-2)
	rx := ry * 2

	for _, d := range []int{0, Detents / 2, Detents - 1} {
		a := angleOf(d)
		x := int(math.Round(cx + math.Cos(a)*(rx+2)))
		y := int(math.Round(cy + math.Sin(a)*(ry+1)))
		dst.SetColored(x, y, ScaleChar, core.ColorGray)
	}

	body := core.NewRect(int(cx-rx), int(cy-ry), int(2*rx)+1, int(2*ry)+1)
	surface.Raised(dst, body, p, core.ColorOrange)

	x, y := t.IndicatorPosition()
	dst.SetColored(x, y, IndicatorChar, core.ColorBrightWhite)

	dst.DrawTextColored(2, dst.Height()-2, t.state.Label, core.ColorGray)
}

// IndicatorPosition returns the cell of the pointer mark on the dial face.
func (t *Toy) IndicatorPosition() (int, int) {
	cx, cy := t.center()
	ry := math.Max(1, cy-2)
	a := angleOf(t.detent)
	x := cx + math.Cos(a)*ry*2*0.8
	y := cy + math.Sin(a)*ry*0.8
	return int(math.Round(x)), int(math.Round(y))
}

// State returns the current toy state.
func (t *Toy) State() core.ToyState {
	return t.state
}

// Detent returns the current detent index.
func (t *Toy) Detent() int {
	return t.detent
}

// Frequency returns the printed frequency at detent d.
func Frequency(d int) float64 {
	d = core.Clamp(d, 0, Detents-1)
	return MinFrequency + float64(d)*(MaxFrequency-MinFrequency)/(Detents-1)
}

// Register the toy with the registry
func init() {
	registry.Register("knob", func(env registry.Env) registry.Toy {
		return New(env)
	})
}
