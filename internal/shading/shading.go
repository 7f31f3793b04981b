// Package shading maps tilt to the rendering parameters that fake a light
// source fixed overhead in world space: shadow offsets, radial gradient
// centers and a bevel rim that only shows when the device is tilted.
//
// Everything here is a pure function. Identical inputs give bit-identical
// outputs and every mapping is linear-then-clamped, so small tilt changes
// never produce jumps. With reduceMotion set, each function returns its rest
// value without looking at the tilt at all.
package shading

import (
	"math"

	"github.com/vovakirdan/tui-fidget/internal/core"
)

// Point is a 2D value in either cell offsets or normalized 0..1 surface space.
type Point = core.Vec2

// Model holds the tunable multipliers. The zero value is not useful; start
// from DefaultModel.
type Model struct {
	Intensity     float64 // Tilt response multiplier, 1 is neutral
	MaxSpread     float64 // Shadow components never exceed maxOffset·MaxSpread
	GradientShift float64 // Gradient center travel at full tilt
	GradientMin   float64 // Lower clamp of gradient centers
	GradientMax   float64 // Upper clamp of gradient centers
	RimDepth      float64 // Rim offset at full tilt, in cells
}

// DefaultModel returns the tuned defaults.
func DefaultModel() Model {
	return Model{
		Intensity:     1,
		MaxSpread:     2,
		GradientShift: 0.2,
		GradientMin:   0.15,
		GradientMax:   0.85,
		RimDepth:      1,
	}
}

// rimLight is the light direction of the rim gradient at rest.
var rimLight = core.V(-0.7, -0.7)

// Rest values of DefaultModel. A Model with narrower clamps rests where its
// clamps put these points; see Model.Rest.
var (
	ConvexRest   = core.V(0.35, 0.35)
	ConcaveRest  = core.V(0.65, 0.65)
	RimStartRest = rimStart(rimLight)
	RimEndRest   = rimEnd(rimLight)
)

func rimStart(l Point) Point { return core.V(0.5+0.5*l.X, 0.5+0.5*l.Y) }
func rimEnd(l Point) Point   { return core.V(0.5-0.5*l.X, 0.5-0.5*l.Y) }

// Parameters bundles every shading output for one surface and frame.
type Parameters struct {
	Light, Dark      Point   // Shadow offsets in cells
	Convex, Concave  Point   // Gradient centers, normalized
	Rim              Point   // Rim offset in cells
	RimStart, RimEnd Point   // Rim gradient endpoints, normalized
	RimOpacity       float64 // 0 hidden, 1 fully visible
	TiltX, TiltY     float64 // Clamped effective tilt, zero under reduced motion
	ReduceMotion     bool
}

func (m Model) tilt(x, y float64) (float64, float64) {
	return core.ClampUnit(x), core.ClampUnit(y)
}

// ShadowOffsets returns where the light and dark shadows of a raised surface
// are drawn. At rest the light shadow sits up-left at (-m, -m) and the dark
// one down-right at (m, m); tilting moves both against the tilt.
func (m Model) ShadowOffsets(tiltX, tiltY, maxOffset float64, reduceMotion bool) (light, dark Point) {
	if !core.IsFinite(maxOffset) {
		maxOffset = 0
	}
	limit := math.Abs(maxOffset * m.MaxSpread)
	clamp := func(v float64) float64 { return core.ClampF(v, -limit, limit) }
	if reduceMotion {
		return core.V(clamp(-maxOffset), clamp(-maxOffset)), core.V(clamp(maxOffset), clamp(maxOffset))
	}
	x, y := m.tilt(tiltX, tiltY)
	k := maxOffset * m.Intensity

	light = core.V(clamp(-maxOffset-x*k), clamp(-maxOffset-y*k))
	dark = core.V(clamp(maxOffset-x*k), clamp(maxOffset-y*k))
	return light, dark
}

// ConvexGradientCenter returns the highlight center of a raised surface,
// which moves toward the light as the device tilts.
func (m Model) ConvexGradientCenter(tiltX, tiltY float64, reduceMotion bool) Point {
	if reduceMotion {
		return core.V(m.gradient(ConvexRest.X), m.gradient(ConvexRest.Y))
	}
	x, y := m.tilt(tiltX, tiltY)
	d := m.GradientShift * m.Intensity
	return core.V(m.gradient(ConvexRest.X-x*d), m.gradient(ConvexRest.Y-y*d))
}

// ConcaveGradientCenter returns the shadow pool of a recessed surface,
// which gathers opposite the light.
func (m Model) ConcaveGradientCenter(tiltX, tiltY float64, reduceMotion bool) Point {
	if reduceMotion {
		return core.V(m.gradient(ConcaveRest.X), m.gradient(ConcaveRest.Y))
	}
	x, y := m.tilt(tiltX, tiltY)
	d := m.GradientShift * m.Intensity
	return core.V(m.gradient(ConcaveRest.X+x*d), m.gradient(ConcaveRest.Y+y*d))
}

func (m Model) gradient(v float64) float64 {
	return core.ClampF(v, m.GradientMin, m.GradientMax)
}

// RimOffset returns how far the bevel rim layer is displaced from its
// surface. It is zero at rest so the rim stays hidden.
func (m Model) RimOffset(tiltX, tiltY float64, reduceMotion bool) Point {
	if reduceMotion {
		return Point{}
	}
	x, y := m.tilt(tiltX, tiltY)
	d := m.RimDepth * m.Intensity
	limit := math.Abs(m.RimDepth)
	return core.V(core.ClampF(0-x*d, -limit, limit), core.ClampF(0-y*d, -limit, limit))
}

// RimGradientPoints returns the endpoints of the rim's linear gradient. The
// gradient runs along the light direction, which tilting swings around.
func (m Model) RimGradientPoints(tiltX, tiltY float64, reduceMotion bool) (start, end Point) {
	if reduceMotion {
		return RimStartRest, RimEndRest
	}
	x, y := m.tilt(tiltX, tiltY)
	k := m.Intensity
	l := core.V(core.ClampUnit(rimLight.X-x*k), core.ClampUnit(rimLight.Y-y*k))
	return rimStart(l), rimEnd(l)
}

// RimOpacity returns how visible the rim is: 0 when level, 1 at full tilt.
func (m Model) RimOpacity(tiltX, tiltY float64, reduceMotion bool) float64 {
	if reduceMotion {
		return 0
	}
	x, y := m.tilt(tiltX, tiltY)
	return core.ClampF(math.Hypot(x, y)*m.Intensity, 0, 1)
}

// Rest returns the parameters of a level surface. Reduced motion always
// yields exactly these.
func (m Model) Rest(maxOffset float64) Parameters {
	return m.Compute(0, 0, maxOffset, true)
}

// Compute evaluates every shading function for one surface.
func (m Model) Compute(tiltX, tiltY, maxOffset float64, reduceMotion bool) Parameters {
	p := Parameters{ReduceMotion: reduceMotion}
	if !reduceMotion {
		p.TiltX, p.TiltY = m.tilt(tiltX, tiltY)
	}
	p.Light, p.Dark = m.ShadowOffsets(tiltX, tiltY, maxOffset, reduceMotion)
	p.Convex = m.ConvexGradientCenter(tiltX, tiltY, reduceMotion)
	p.Concave = m.ConcaveGradientCenter(tiltX, tiltY, reduceMotion)
	p.Rim = m.RimOffset(tiltX, tiltY, reduceMotion)
	p.RimStart, p.RimEnd = m.RimGradientPoints(tiltX, tiltY, reduceMotion)
	p.RimOpacity = m.RimOpacity(tiltX, tiltY, reduceMotion)
	return p
}

// ShadowOffsets evaluates Model.ShadowOffsets with DefaultModel.
func ShadowOffsets(tiltX, tiltY, maxOffset float64, reduceMotion bool) (light, dark Point) {
	return DefaultModel().ShadowOffsets(tiltX, tiltY, maxOffset, reduceMotion)
}

// ConvexGradientCenter evaluates Model.ConvexGradientCenter with DefaultModel.
func ConvexGradientCenter(tiltX, tiltY float64, reduceMotion bool) Point {
	return DefaultModel().ConvexGradientCenter(tiltX, tiltY, reduceMotion)
}

// ConcaveGradientCenter evaluates Model.ConcaveGradientCenter with DefaultModel.
func ConcaveGradientCenter(tiltX, tiltY float64, reduceMotion bool) Point {
	return DefaultModel().ConcaveGradientCenter(tiltX, tiltY, reduceMotion)
}

// RimOffset evaluates Model.RimOffset with DefaultModel.
func RimOffset(tiltX, tiltY float64, reduceMotion bool) Point {
	return DefaultModel().RimOffset(tiltX, tiltY, reduceMotion)
}

// RimGradientPoints evaluates Model.RimGradientPoints with DefaultModel.
func RimGradientPoints(tiltX, tiltY float64, reduceMotion bool) (start, end Point) {
	return DefaultModel().RimGradientPoints(tiltX, tiltY, reduceMotion)
}

// Compute evaluates Model.Compute with DefaultModel.
func Compute(tiltX, tiltY, maxOffset float64, reduceMotion bool) Parameters {
	return DefaultModel().Compute(tiltX, tiltY, maxOffset, reduceMotion)
}
