package shading

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-fidget/internal/core"
)

var tiltGrid = []float64{-5, -1, -0.6, -0.1, 0, 0.05, 0.3, 0.9, 1, 7, math.NaN(), math.Inf(1)}

func TestShadowOffsetsRestBaseline(t *testing.T) {
	for _, m := range []float64{0, 1, 2.5} {
		light, dark := ShadowOffsets(0, 0, m, false)
		if light != core.V(-m, -m) || dark != core.V(m, m) {
			t.Errorf("m=%v: rest shadows = %+v %+v, expected (-m,-m) (m,m)", m, light, dark)
		}
	}
}

func TestShadowOffsetsDeterministic(t *testing.T) {
	for _, x := range tiltGrid {
		for _, y := range tiltGrid {
			l1, d1 := ShadowOffsets(x, y, 2, false)
			l2, d2 := ShadowOffsets(x, y, 2, false)
			if math.Float64bits(l1.X) != math.Float64bits(l2.X) ||
				math.Float64bits(l1.Y) != math.Float64bits(l2.Y) ||
				math.Float64bits(d1.X) != math.Float64bits(d2.X) ||
				math.Float64bits(d1.Y) != math.Float64bits(d2.Y) {
				t.Fatalf("ShadowOffsets(%v, %v) not bit-identical across calls", x, y)
			}
		}
	}
}

func TestShadowOffsetsMoveAgainstTilt(t *testing.T) {
	light0, dark0 := ShadowOffsets(0, 0, 2, false)
	light, dark := ShadowOffsets(0.5, 0.5, 2, false)

	if light.X >= light0.X || dark.X >= dark0.X {
		t.Errorf("tilting right should move shadows left: %+v %+v", light, dark)
	}
	if light.Y >= light0.Y || dark.Y >= dark0.Y {
		t.Errorf("tilting down should move shadows up: %+v %+v", light, dark)
	}
}

func TestShadowOffsetsClamped(t *testing.T) {
	m := DefaultModel()
	m.Intensity = 10
	const maxOffset = 2.0
	limit := maxOffset * m.MaxSpread

	for _, x := range tiltGrid {
		for _, y := range tiltGrid {
			light, dark := m.ShadowOffsets(x, y, maxOffset, false)
			for _, v := range []float64{light.X, light.Y, dark.X, dark.Y} {
				if !(v >= -limit && v <= limit) {
					t.Fatalf("ShadowOffsets(%v, %v) component %v escapes ±%v", x, y, v, limit)
				}
			}
		}
	}
}

func TestReducedMotionReturnsRest(t *testing.T) {
	rest := Compute(0, 0, 2, false)

	for _, x := range tiltGrid {
		for _, y := range tiltGrid {
			light, dark := ShadowOffsets(x, y, 2, true)
			if light != rest.Light || dark != rest.Dark {
				t.Fatalf("ShadowOffsets(%v, %v, reduced) = %+v %+v", x, y, light, dark)
			}
			if c := ConvexGradientCenter(x, y, true); c != ConvexRest || c != rest.Convex {
				t.Fatalf("ConvexGradientCenter(%v, %v, reduced) = %+v", x, y, c)
			}
			if c := ConcaveGradientCenter(x, y, true); c != ConcaveRest || c != rest.Concave {
				t.Fatalf("ConcaveGradientCenter(%v, %v, reduced) = %+v", x, y, c)
			}
			if r := RimOffset(x, y, true); r != (Point{}) || r != rest.Rim {
				t.Fatalf("RimOffset(%v, %v, reduced) = %+v", x, y, r)
			}
			s, e := RimGradientPoints(x, y, true)
			if s != RimStartRest || e != RimEndRest || s != rest.RimStart || e != rest.RimEnd {
				t.Fatalf("RimGradientPoints(%v, %v, reduced) = %+v %+v", x, y, s, e)
			}
			if o := DefaultModel().RimOpacity(x, y, true); o != 0 {
				t.Fatalf("RimOpacity(%v, %v, reduced) = %v", x, y, o)
			}
		}
	}
}

func TestReducedMotionMatchesLevelForTunedModels(t *testing.T) {
	tests := []struct {
		name  string
		model func(*Model)
	}{
		{"tight spread", func(m *Model) { m.MaxSpread = 0.5 }},
		{"high gradient floor", func(m *Model) { m.GradientMin = 0.4 }},
		{"low gradient ceiling", func(m *Model) { m.GradientMax = 0.6 }},
		{"shallow rim", func(m *Model) { *m = Model{Intensity: 2, MaxSpread: 2, GradientShift: 0.2, GradientMin: 0.15, GradientMax: 0.85, RimDepth: 0.3} }},
		{"flat", func(m *Model) { *m = Model{GradientMax: 1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultModel()
			tt.model(&m)
			level := m.Compute(0, 0, 1.5, false)
			rest := m.Rest(1.5)

			for _, x := range tiltGrid {
				for _, y := range tiltGrid {
					p := m.Compute(x, y, 1.5, true)
					if p != rest {
						t.Fatalf("Compute(%v, %v, reduced) = %+v, rest %+v", x, y, p, rest)
					}
				}
			}
			if rest.Light != level.Light || rest.Dark != level.Dark {
				t.Errorf("rest shadows %+v %+v, level %+v %+v", rest.Light, rest.Dark, level.Light, level.Dark)
			}
			if rest.Convex != level.Convex || rest.Concave != level.Concave {
				t.Errorf("rest centers %+v %+v, level %+v %+v", rest.Convex, rest.Concave, level.Convex, level.Concave)
			}
			if rest.Rim != level.Rim || rest.RimStart != level.RimStart || rest.RimEnd != level.RimEnd {
				t.Errorf("rest rim %+v, level %+v", rest, level)
			}
			if rest.RimOpacity != level.RimOpacity {
				t.Errorf("rest opacity %v, level %v", rest.RimOpacity, level.RimOpacity)
			}
		})
	}
}

func TestRestValues(t *testing.T) {
	p := Compute(0, 0, 1, false)

	if p.Convex != core.V(0.35, 0.35) {
		t.Errorf("convex rest = %+v", p.Convex)
	}
	if p.Concave != core.V(0.65, 0.65) {
		t.Errorf("concave rest = %+v", p.Concave)
	}
	if p.Rim != (Point{}) || p.RimOpacity != 0 {
		t.Errorf("rim should be hidden at rest: %+v opacity %v", p.Rim, p.RimOpacity)
	}
	if math.Abs(p.RimStart.X-0.15) > 1e-12 || math.Abs(p.RimEnd.Y-0.85) > 1e-12 {
		t.Errorf("rim gradient rest = %+v -> %+v", p.RimStart, p.RimEnd)
	}
}

func TestGradientCentersClampedAndOpposed(t *testing.T) {
	m := DefaultModel()
	m.Intensity = 5

	for _, x := range tiltGrid {
		for _, y := range tiltGrid {
			for _, c := range []Point{m.ConvexGradientCenter(x, y, false), m.ConcaveGradientCenter(x, y, false)} {
				if c.X < m.GradientMin || c.X > m.GradientMax || c.Y < m.GradientMin || c.Y > m.GradientMax {
					t.Fatalf("center %+v for tilt (%v, %v) outside [%v, %v]", c, x, y, m.GradientMin, m.GradientMax)
				}
			}
		}
	}

	convex := ConvexGradientCenter(0.5, 0, false)
	concave := ConcaveGradientCenter(0.5, 0, false)
	if convex.X >= ConvexRest.X || concave.X <= ConcaveRest.X {
		t.Errorf("convex should move toward the light and concave away: %+v %+v", convex, concave)
	}
}

func TestRimRevealsWithTilt(t *testing.T) {
	m := DefaultModel()
	if o := m.RimOpacity(0, 0, false); o != 0 {
		t.Errorf("level opacity = %v", o)
	}
	if o := m.RimOpacity(1, 1, false); o != 1 {
		t.Errorf("full tilt opacity = %v, expected 1", o)
	}
	if r := m.RimOffset(1, -1, false); r != core.V(-m.RimDepth, m.RimDepth) {
		t.Errorf("full tilt rim offset = %+v", r)
	}
}

func TestContinuity(t *testing.T) {
	const eps = 1e-4
	m := DefaultModel()

	for x := -1.2; x <= 1.2; x += 0.01 {
		a := m.Compute(x, x/2, 2, false)
		b := m.Compute(x+eps, x/2+eps, 2, false)

		diffs := []float64{
			a.Light.X - b.Light.X, a.Dark.Y - b.Dark.Y,
			a.Convex.X - b.Convex.X, a.Concave.Y - b.Concave.Y,
			a.Rim.X - b.Rim.X, a.RimStart.X - b.RimStart.X,
			a.RimEnd.Y - b.RimEnd.Y, a.RimOpacity - b.RimOpacity,
		}
		for i, d := range diffs {
			if math.Abs(d) > 0.01 {
				t.Fatalf("output %d jumps by %v between tilt %v and %v", i, d, x, x+eps)
			}
		}
	}
}

func TestComputeCarriesTilt(t *testing.T) {
	p := Compute(3, -0.25, 1, false)
	if p.TiltX != 1 || p.TiltY != -0.25 {
		t.Errorf("effective tilt = (%v, %v)", p.TiltX, p.TiltY)
	}

	p = Compute(3, -0.25, 1, true)
	if p.TiltX != 0 || p.TiltY != 0 || !p.ReduceMotion {
		t.Errorf("reduced motion should zero the effective tilt, got %+v", p)
	}
}
