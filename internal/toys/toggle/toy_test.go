package toggle

import (
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

func TestRegistered(t *testing.T) {
	if !registry.Exists("toggle") {
		t.Fatal("toggle should be registered")
	}
}

func TestFlip(t *testing.T) {
	tests := []struct {
		action core.Action
		wantOn bool
		effect sound.Effect
	}{
		{core.ActionPrimary, true, sound.SwitchOn},
		{core.ActionPrimary, false, sound.SwitchOff},
		{core.ActionIncrease, true, sound.SwitchOn},
		{core.ActionIncrease, true, ""},
		{core.ActionDecrease, false, sound.SwitchOff},
		{core.ActionDecrease, false, ""},
	}

	toy := newToy()
	for i, tt := range tests {
		res := press(toy, tt.action)
		if toy.On() != tt.wantOn {
			t.Errorf("step %d: on = %v, expected %v", i, toy.On(), tt.wantOn)
		}
		if tt.effect == "" {
			if len(res.Feedback) != 0 {
				t.Errorf("step %d: feedback = %+v, expected none", i, res.Feedback)
			}
			continue
		}
		if len(res.Feedback) != 1 || res.Feedback[0].Effect != string(tt.effect) || res.Feedback[0].Haptic != core.HapticMedium {
			t.Errorf("step %d: feedback = %+v", i, res.Feedback)
		}
	}
}

func TestPointerFlips(t *testing.T) {
	toy := newToy()
	res := toy.Step(core.Frame{Input: core.NewInputFrame(), Pointer: core.Pointer{Phase: core.PointerDown, X: 3, Y: 3}})
	if !toy.On() || !res.State.Touched || res.State.Value != 1 {
		t.Errorf("state = %+v", res.State)
	}

	// Dragging does not flip again.
	toy.Step(core.Frame{Input: core.NewInputFrame(), Pointer: core.Pointer{Phase: core.PointerMove, X: 4, Y: 3}})
	if !toy.On() {
		t.Error("pointer move should not flip the switch")
	}
}

func TestLeverPosition(t *testing.T) {
	toy := newToy()
	off := toy.Lever()
	press(toy, core.ActionPrimary)
	on := toy.Lever()

	if on.X <= off.X {
		t.Errorf("lever on at x=%d, off at x=%d; expected on to the right", on.X, off.X)
	}
}

func TestRender(t *testing.T) {
	toy := newToy()
	press(toy, core.ActionPrimary)

	cfg := core.DefaultConfig()
	dst := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	toy.Render(dst, core.View{})

	cx, cy := toy.Lever().Center()
	if got := dst.Get(cx, cy); got != KnobChar {
		t.Errorf("lever cell = %q", got)
	}
}
