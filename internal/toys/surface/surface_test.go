package surface

import (
	"testing"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/shading"
)

func TestSpot(t *testing.T) {
	r := core.NewRect(2, 3, 11, 5)
	tests := []struct {
		n      shading.Point
		wx, wy int
	}{
		{core.V(0, 0), 2, 3},
		{core.V(1, 1), 12, 7},
		{core.V(0.5, 0.5), 7, 5},
		{core.V(-3, 9), 2, 7},
	}
	for _, tt := range tests {
		x, y := Spot(r, tt.n)
		if x != tt.wx || y != tt.wy {
			t.Errorf("Spot(%v) = (%d, %d), expected (%d, %d)", tt.n, x, y, tt.wx, tt.wy)
		}
	}
}

func TestReduceMotionRendersRest(t *testing.T) {
	m := shading.DefaultModel()
	r := core.NewRect(4, 2, 8, 3)

	rest := core.NewScreen(20, 8)
	Raised(rest, r, Params(m, 1, core.View{}), core.ColorBlue)

	reduced := core.NewScreen(20, 8)
	Raised(reduced, r, Params(m, 1, core.View{TiltX: 1, TiltY: -0.7, ReduceMotion: true}), core.ColorBlue)

	if rest.String() != reduced.String() {
		t.Errorf("reduced motion should render the rest pose\nrest:\n%s\nreduced:\n%s", rest, reduced)
	}
}

func TestTiltMovesShadow(t *testing.T) {
	m := shading.DefaultModel()
	r := core.NewRect(6, 3, 6, 2)

	rest := core.NewScreen(20, 10)
	Raised(rest, r, Params(m, 1, core.View{}), core.ColorBlue)
	tilted := core.NewScreen(20, 10)
	Raised(tilted, r, Params(m, 1, core.View{TiltX: 1, TiltY: 1}), core.ColorBlue)

	if rest.String() == tilted.String() {
		t.Error("full tilt should move the shadows")
	}
}

func TestRimHiddenAtRest(t *testing.T) {
	m := shading.DefaultModel()
	r := core.NewRect(3, 3, 4, 2)
	dst := core.NewScreen(12, 8)
	Recessed(dst, r, Params(m, 1, core.View{}))

	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			if dst.Get(x, y) == RimChar {
				t.Fatalf("rim drawn at (%d, %d) with no tilt", x, y)
			}
		}
	}
}

func TestFrameColor(t *testing.T) {
	tests := []struct {
		focused bool
		pulse   float64
		want    core.Color
	}{
		{false, 0, core.ColorGray},
		{true, 0, core.ColorBrightCyan},
		{true, 0.3, core.ColorYellow},
		{false, 0.9, core.ColorBrightYellow},
	}
	for _, tt := range tests {
		dst := core.NewScreen(6, 4)
		Frame(dst, tt.focused, tt.pulse)
		if got := dst.GetCell(0, 0).Color; got != tt.want {
			t.Errorf("Frame(%v, %v) color = %v, expected %v", tt.focused, tt.pulse, got, tt.want)
		}
	}
}

func TestRimToneFollowsGradient(t *testing.T) {
	p := shading.Parameters{
		RimStart:   core.V(0, 0),
		RimEnd:     core.V(1, 1),
		RimOpacity: 1,
	}
	tests := []struct {
		n    shading.Point
		want core.Color
	}{
		{core.V(0, 0), core.ColorHighlight},
		{core.V(0.5, 0.5), core.ColorSurface},
		{core.V(1, 1), core.ColorShadow},
		{core.V(-2, -2), core.ColorHighlight},
		{core.V(1, 0), core.ColorSurface},
	}
	for _, tt := range tests {
		if got := RimTone(p, tt.n); got != tt.want {
			t.Errorf("RimTone(%v) = %d, expected %d", tt.n, got, tt.want)
		}
	}

	p.RimOpacity = 0.25
	if got := RimTone(p, core.V(0, 0)); got != core.ColorShadow {
		t.Errorf("faint rim at the light end = %d, expected shadow", got)
	}

	p.RimEnd = p.RimStart
	if got := RimTone(p, core.V(0.9, 0.1)); got != core.ColorShadow {
		t.Errorf("degenerate gradient = %d, expected the mid tone dimmed to shadow", got)
	}
}

func TestRimShadedAcrossSurface(t *testing.T) {
	m := shading.DefaultModel()
	p := Params(m, 1, core.View{TiltX: 1, TiltY: 1})
	if p.RimOpacity < rimThreshold {
		t.Fatalf("rim opacity %v below threshold at full tilt", p.RimOpacity)
	}

	s := core.NewScreen(20, 12)
	r := core.NewRect(6, 4, 8, 4)
	rim(s, r, p)

	ox, oy := p.Rim.Round()
	rr := offset(r, ox, oy)
	first := s.GetCell(rr.X, rr.Y)
	last := s.GetCell(rr.Right()-1, rr.Bottom()-1)
	if first.Rune != RimChar || last.Rune != RimChar {
		t.Fatalf("rim not drawn at %+v", rr)
	}
	if first.Color != RimTone(p, core.V(0, 0)) || last.Color != RimTone(p, core.V(1, 1)) {
		t.Errorf("rim corners colored %d and %d", first.Color, last.Color)
	}
	if first.Color == last.Color {
		t.Errorf("rim corners share tone %d, expected a gradient", first.Color)
	}
}
