package pendulum

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/sound"
)

const tick = 1.0 / 60.0

func newToy() *Toy {
	t := New(registry.DefaultEnv())
	t.Reset(core.DefaultConfig())
	return t
}

func frame(a core.Action, p core.Pointer) core.Frame {
	in := core.NewInputFrame()
	if a != core.ActionNone {
		in.Set(a)
	}
	return core.Frame{Input: in, Pointer: p, DT: tick}
}

func TestRegistered(t *testing.T) {
	toy, err := registry.Create("pendulum", registry.DefaultEnv())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if toy.Title() != "Pendulum" {
		t.Errorf("Title = %q", toy.Title())
	}
}

func TestPushSwingsAndSettles(t *testing.T) {
	toy := newToy()

	res := toy.Step(frame(core.ActionPrimary, core.Pointer{}))
	if !res.State.Active || !res.State.Touched {
		t.Fatalf("state after push = %+v", res.State)
	}

	ticks := 0
	for i := 0; i < 5000 && toy.State().Active; i++ {
		res = toy.Step(frame(core.ActionNone, core.Pointer{}))
		for _, ev := range res.Feedback {
			if ev.Effect != string(sound.PendulumTick) || ev.Haptic != core.HapticSoft {
				t.Errorf("feedback = %+v", ev)
			}
		}
		ticks += len(res.Feedback)
	}

	if ticks == 0 {
		t.Error("a push should produce swing ticks")
	}
	if toy.State().Active {
		t.Fatal("pendulum should settle")
	}
	if toy.Bob().Angle() != 0 || toy.Bob().AngularVelocity() != 0 {
		t.Errorf("settled at angle=%v vel=%v, expected exact zero", toy.Bob().Angle(), toy.Bob().AngularVelocity())
	}
}

func TestNudgeDirection(t *testing.T) {
	tests := []struct {
		action core.Action
		sign   float64
	}{
		{core.ActionIncrease, 1},
		{core.ActionDecrease, -1},
	}
	for _, tt := range tests {
		toy := newToy()
		toy.Step(frame(tt.action, core.Pointer{}))
		if got := toy.Bob().AngularVelocity() * tt.sign; got <= 0 {
			t.Errorf("%v: velocity = %v", tt.action, toy.Bob().AngularVelocity())
		}
	}
}

func TestDragAndThrow(t *testing.T) {
	toy := newToy()
	cx := toy.pivotX()

	toy.Step(frame(core.ActionNone, core.Pointer{Phase: core.PointerDown, X: cx + 8, Y: pivotY + 4}))
	if !toy.Bob().Dragging() {
		t.Fatal("pointer down should grab the bob")
	}
	want := math.Atan2(4, 4)
	if got := toy.Bob().Angle(); math.Abs(got-want) > 1e-12 {
		t.Errorf("angle = %v, expected %v", got, want)
	}

	res := toy.Step(frame(core.ActionNone, core.Pointer{Phase: core.PointerUp, X: cx + 8, Y: pivotY + 4}))
	if toy.Bob().Dragging() || !res.State.Active {
		t.Error("pointer up should let the bob swing")
	}
}

func TestTiltShiftsRest(t *testing.T) {
	env := registry.DefaultEnv()
	toy := newToy()

	f := frame(core.ActionNone, core.Pointer{})
	f.TiltX = 1
	for i := 0; i < 5000; i++ {
		toy.Step(f)
	}
	if got := toy.Bob().Angle(); got != env.Pendulum.TiltInfluence {
		t.Errorf("rest angle = %v, expected %v", got, env.Pendulum.TiltInfluence)
	}
}

func TestReduceMotionIgnoresTilt(t *testing.T) {
	toy := newToy()
	f := frame(core.ActionNone, core.Pointer{})
	f.TiltX = 1
	f.ReduceMotion = true
	for i := 0; i < 100; i++ {
		toy.Step(f)
	}
	if toy.Bob().Angle() != 0 || toy.State().Active {
		t.Errorf("angle = %v, expected the pendulum to stay at rest", toy.Bob().Angle())
	}
}

func TestHideFreezes(t *testing.T) {
	toy := newToy()
	toy.Step(frame(core.ActionPrimary, core.Pointer{}))
	toy.Hide()
	a := toy.Bob().Angle()

	for i := 0; i < 30; i++ {
		toy.Step(frame(core.ActionNone, core.Pointer{}))
	}
	if toy.Bob().Angle() != a {
		t.Error("hidden pendulum should not swing")
	}
}

func TestRender(t *testing.T) {
	toy := newToy()
	cfg := core.DefaultConfig()
	dst := core.NewScreen(cfg.ScreenW, cfg.ScreenH)
	toy.Render(dst, core.View{})

	x, y := toy.BobPosition()
	if got := dst.Get(x, y); got != BobChar {
		t.Errorf("bob cell = %q", got)
	}
	if got := dst.Get(int(toy.pivotX()), pivotY); got != PivotChar {
		t.Errorf("pivot cell = %q", got)
	}
}
