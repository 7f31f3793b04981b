package spinner

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/physics"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/sound"
)

const tick = 1.0 / 60.0

func newToy() *Toy {
	t := New(registry.DefaultEnv())
	t.Reset(core.DefaultConfig())
	return t
}

func step(toy *Toy, a core.Action, p core.Pointer) core.StepResult {
	in := core.NewInputFrame()
	if a != core.ActionNone {
		in.Set(a)
	}
	return toy.Step(core.Frame{Input: in, Pointer: p, DT: tick})
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("spinner") {
		t.Fatal("spinner should be registered")
	}
}

func TestFlickSpinsAndTicks(t *testing.T) {
	toy := newToy()

	res := step(toy, core.ActionIncrease, core.Pointer{})
	if !res.State.Active || !res.State.Touched {
		t.Fatalf("state after flick = %+v", res.State)
	}

	ticks := len(res.Feedback)
	for i := 0; i < 600 && toy.State().Active; i++ {
		res = step(toy, core.ActionNone, core.Pointer{})
		for _, ev := range res.Feedback {
			if ev.Effect != string(sound.SpinnerTick) || ev.Haptic != core.HapticLight {
				t.Errorf("feedback = %+v", ev)
			}
		}
		ticks += len(res.Feedback)
	}

	if ticks == 0 {
		t.Error("a flick should pass at least one detent")
	}
	if toy.State().Active {
		t.Error("spinner should coast to a stop")
	}
	if toy.Rotor().AngularVelocity() != 0 {
		t.Errorf("velocity = %v after stopping", toy.Rotor().AngularVelocity())
	}
}

func TestDecreaseSpinsBackwards(t *testing.T) {
	toy := newToy()
	step(toy, core.ActionDecrease, core.Pointer{})
	if toy.Rotor().AngularVelocity() >= 0 {
		t.Errorf("velocity = %v, expected negative", toy.Rotor().AngularVelocity())
	}
}

func TestDragAndRelease(t *testing.T) {
	toy := newToy()
	cx, cy := toy.center()

	// Start to the right of the hub, then sweep a quarter turn clockwise.
	step(toy, core.ActionNone, core.Pointer{Phase: core.PointerDown, X: cx + 8, Y: cy})
	if !toy.Rotor().Grabbed() {
		t.Fatal("pointer down should grab the rotor")
	}

	step(toy, core.ActionNone, core.Pointer{Phase: core.PointerMove, X: cx + 6, Y: cy + 2})
	if toy.Rotor().Angle() <= 0 {
		t.Errorf("angle = %v, expected drag to rotate the rotor", toy.Rotor().Angle())
	}

	res := step(toy, core.ActionNone, core.Pointer{Phase: core.PointerUp, X: cx + 6, Y: cy + 2})
	if toy.Rotor().Grabbed() {
		t.Error("pointer up should release")
	}
	if !res.State.Active || toy.Rotor().AngularVelocity() <= 0 {
		t.Errorf("release should spin clockwise, velocity = %v", toy.Rotor().AngularVelocity())
	}
}

func TestHeldStillReleasesIdle(t *testing.T) {
	toy := newToy()
	cx, cy := toy.center()

	step(toy, core.ActionNone, core.Pointer{Phase: core.PointerDown, X: cx + 8, Y: cy})
	step(toy, core.ActionNone, core.Pointer{Phase: core.PointerMove, X: cx + 6, Y: cy + 2})
	for i := 0; i < 40; i++ {
		step(toy, core.ActionNone, core.Pointer{})
	}
	step(toy, core.ActionNone, core.Pointer{Phase: core.PointerUp})

	if toy.Rotor().Phase() != physics.PhaseIdle {
		t.Errorf("phase = %v, a held-still release should not spin", toy.Rotor().Phase())
	}
}

func TestHideStops(t *testing.T) {
	toy := newToy()
	step(toy, core.ActionIncrease, core.Pointer{})
	toy.Hide()

	if toy.State().Active || toy.Rotor().AngularVelocity() != 0 {
		t.Error("Hide should stop the rotor")
	}
}

func TestRPM(t *testing.T) {
	// One revolution per second at 60 ticks per second.
	if got := RPM(2 * math.Pi / 60); math.Abs(got-60) > 1e-9 {
		t.Errorf("RPM = %v, expected 60", got)
	}
	if RPM(-1) != RPM(1) {
		t.Error("RPM should ignore direction")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := wrap(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("wrap(%v) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestRender(t *testing.T) {
	toy := newToy()
	cfg := core.DefaultConfig()
	dst := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	toy.Render(dst, core.View{})

	cx, cy := toy.center()
	if got := dst.Get(int(math.Round(cx)), int(math.Round(cy))); got != HubChar {
		t.Errorf("hub cell = %q", got)
	}
}
