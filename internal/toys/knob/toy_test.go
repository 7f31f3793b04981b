package knob

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/sound"
)

func newToy() *Toy {
	t := New(registry.DefaultEnv())
	t.Reset(core.DefaultConfig())
	return t
}

func press(toy *Toy, a core.Action) core.StepResult {
	in := core.NewInputFrame()
	in.Set(a)
	return toy.Step(core.Frame{Input: in, DT: 1.0 / 60})
}

func point(toy *Toy, phase core.PointerPhase, x, y float64) core.StepResult {
	return toy.Step(core.Frame{Input: core.NewInputFrame(), Pointer: core.Pointer{Phase: phase, X: x, Y: y}, DT: 1.0 / 60})
}

func count(events []core.Feedback, e sound.Effect) int {
	n := 0
	for _, ev := range events {
		if ev.Effect == string(e) {
			n++
		}
	}
	return n
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("knob") {
		t.Fatal("knob should be registered")
	}
}

func TestTurnTicks(t *testing.T) {
	toy := newToy()
	res := press(toy, core.ActionIncrease)

	if toy.Detent() != 1 {
		t.Errorf("detent = %d, expected 1", toy.Detent())
	}
	if len(res.Feedback) != 1 || res.Feedback[0].Effect != string(sound.KnobTick) || res.Feedback[0].Haptic != core.HapticSelection {
		t.Errorf("feedback = %+v", res.Feedback)
	}
	if !res.State.Touched || res.State.Value != 1 {
		t.Errorf("state = %+v", res.State)
	}
}

func TestEndStops(t *testing.T) {
	toy := newToy()

	res := press(toy, core.ActionDecrease)
	if toy.Detent() != 0 {
		t.Errorf("detent = %d, expected to stay at 0", toy.Detent())
	}
	if count(res.Feedback, sound.DetentClick) != 1 {
		t.Errorf("feedback = %+v, expected an end-stop click", res.Feedback)
	}

	clicks := 0
	for i := 0; i < Detents+6; i++ {
		clicks += count(press(toy, core.ActionIncrease).Feedback, sound.DetentClick)
	}
	if toy.Detent() != Detents-1 {
		t.Errorf("detent = %d, expected %d", toy.Detent(), Detents-1)
	}
	if clicks != 7 {
		t.Errorf("end-stop clicks = %d, expected 7", clicks)
	}
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		detent int
		want   float64
	}{
		{0, MinFrequency},
		{Detents - 1, MaxFrequency},
		{-5, MinFrequency},
		{99, MaxFrequency},
	}
	for _, tt := range tests {
		if got := Frequency(tt.detent); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Frequency(%d) = %v, expected %v", tt.detent, got, tt.want)
		}
	}
}

func TestPointerTurns(t *testing.T) {
	toy := newToy()
	cx, cy := toy.center()

	// Straight right of the hub is 225° into the 270° sweep.
	res := point(toy, core.PointerDown, cx+8, cy)
	if toy.Detent() != 19 {
		t.Fatalf("detent = %d, expected 19", toy.Detent())
	}
	if n := count(res.Feedback, sound.KnobTick); n != 19 {
		t.Errorf("ticks = %d, expected one per detent", n)
	}

	// The dead zone below the dial snaps to the nearest end.
	res = point(toy, core.PointerMove, cx-2, cy+4)
	if toy.Detent() != 0 {
		t.Fatalf("detent = %d, expected 0", toy.Detent())
	}
	if n := count(res.Feedback, sound.DetentClick); n != 1 {
		t.Errorf("end clicks = %d, expected 1", n)
	}

	res = point(toy, core.PointerMove, cx-2, cy+4)
	if len(res.Feedback) != 0 {
		t.Errorf("holding still emitted %+v", res.Feedback)
	}
}

func TestRender(t *testing.T) {
	toy := newToy()
	press(toy, core.ActionIncrease)

	cfg := core.DefaultConfig()
	dst := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	toy.Render(dst, core.View{TiltX: 0.5})

	x, y := toy.IndicatorPosition()
	if got := dst.Get(x, y); got != IndicatorChar {
		t.Errorf("indicator cell = %q", got)
	}
}
