package keycap

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

func step(toy *Toy, a core.Action, phase core.PointerPhase) core.StepResult {
	in := core.NewInputFrame()
	if a != core.ActionNone {
		in.Set(a)
	}
	return toy.Step(core.Frame{Input: in, Pointer: core.Pointer{Phase: phase, X: 12, Y: 4}, DT: 1.0 / 60})
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("keycap") {
		t.Fatal("keycap should be registered")
	}
}

func TestPressThocksOnce(t *testing.T) {
	toy := newToy()

	res := step(toy, core.ActionPrimary, core.PointerNone)
	if !toy.Pressed() {
		t.Fatal("primary should press the key")
	}
	if len(res.Feedback) != 1 || res.Feedback[0].Effect != string(sound.KeyThock) || res.Feedback[0].Haptic != core.HapticRigid {
		t.Errorf("feedback = %+v", res.Feedback)
	}

	res = step(toy, core.ActionPrimary, core.PointerNone)
	if len(res.Feedback) != 0 {
		t.Errorf("pressing a pressed key emitted %+v", res.Feedback)
	}
}

func TestAutoRelease(t *testing.T) {
	toy := newToy()
	step(toy, core.ActionPrimary, core.PointerNone)

	for i := 0; i < HoldTicks-1; i++ {
		step(toy, core.ActionNone, core.PointerNone)
		if !toy.Pressed() {
			t.Fatalf("released after %d ticks, expected %d", i+1, HoldTicks)
		}
	}
	step(toy, core.ActionNone, core.PointerNone)
	if toy.Pressed() {
		t.Error("key should spring back after HoldTicks")
	}
}

func TestReleaseAction(t *testing.T) {
	toy := newToy()
	step(toy, core.ActionPrimary, core.PointerNone)
	step(toy, core.ActionRelease, core.PointerNone)
	if toy.Pressed() {
		t.Error("release should lift the key")
	}
}

func TestPointerHolds(t *testing.T) {
	toy := newToy()
	res := step(toy, core.ActionNone, core.PointerDown)
	if len(res.Feedback) != 1 {
		t.Fatalf("feedback = %+v", res.Feedback)
	}

	for i := 0; i < HoldTicks*3; i++ {
		step(toy, core.ActionNone, core.PointerNone)
	}
	if !toy.Pressed() {
		t.Error("a held pointer should keep the key down")
	}

	step(toy, core.ActionNone, core.PointerUp)
	if toy.Pressed() {
		t.Error("pointer up should lift the key")
	}
	if toy.State().Label != "1 presses" {
		t.Errorf("label = %q", toy.State().Label)
	}
}

func TestHideLifts(t *testing.T) {
	toy := newToy()
	step(toy, core.ActionNone, core.PointerDown)
	toy.Hide()
	if toy.Pressed() || toy.State().Active {
		t.Error("Hide should lift the key")
	}
}

func TestRenderSinksWhenPressed(t *testing.T) {
	cfg := core.DefaultConfig()
	toy := newToy()
	r := toy.Cap()

	up := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	toy.Render(up, core.View{})

	step(toy, core.ActionPrimary, core.PointerNone)
	down := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	toy.Render(down, core.View{})

	// The corner of the cap is face-colored at rest and well-colored when sunk.
	if a, b := up.GetCell(r.X, r.Y), down.GetCell(r.X, r.Y); a == b {
		t.Errorf("cap corner unchanged by press: %+v", a)
	}
}
