package feedback

import (
	"testing"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/sound"
)

type recordSounder struct {
	played []sound.Effect
}

func (r *recordSounder) Play(e sound.Effect) bool {
	r.played = append(r.played, e)
	return e.Valid()
}

func TestDispatch(t *testing.T) {
	snd := &recordSounder{}
	var impacts []core.HapticStyle
	d := NewDispatcher(snd, HapticsFunc(func(id string, s core.HapticStyle) {
		if id != "knob" {
			t.Errorf("impact for %q", id)
		}
		impacts = append(impacts, s)
	}), nil)

	n := d.Dispatch("knob", []core.Feedback{
		{Effect: string(sound.KnobTick), Haptic: core.HapticSelection},
		{Effect: string(sound.DetentClick), Haptic: core.HapticRigid},
		{Haptic: core.HapticLight},
		{Effect: "bogus"},
	})

	if n != 2 {
		t.Errorf("scheduled %d sounds, expected 2", n)
	}
	if len(snd.played) != 3 {
		t.Errorf("sounder called %d times, expected 3", len(snd.played))
	}
	if len(impacts) != 3 || impacts[1] != core.HapticRigid {
		t.Errorf("impacts = %v", impacts)
	}
}

func TestDispatchWithPlayer(t *testing.T) {
	// A disabled player swallows every effect.
	p := sound.NewPlayer(nil, nil, false, nil)
	d := NewDispatcher(p, nil, nil)
	if n := d.Dispatch("keycap", []core.Feedback{{Effect: string(sound.KeyThock), Haptic: core.HapticRigid}}); n != 0 {
		t.Errorf("disabled player scheduled %d sounds", n)
	}
}

func TestDispatchNilSounder(t *testing.T) {
	d := NewDispatcher(nil, nil, nil)
	if n := d.Dispatch("toggle", []core.Feedback{{Effect: string(sound.SwitchOn)}}); n != 0 {
		t.Errorf("nil sounder scheduled %d sounds", n)
	}
}
