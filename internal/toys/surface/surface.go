// Package surface draws shaded toy surfaces into a core.Screen.
//
// Shading parameters come from the shading package: shadow offsets become
// offset shadow blocks, the gradient centers become a highlight or a shadow
// pool, and the rim is drawn behind the face so only the bevel shows.
package surface

import (
	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/shading"
)

// Visual characters for rendering
const (
	LightShadowChar = '░'
	DarkShadowChar  = '▒'
	FaceChar        = '▓'
	HighlightChar   = '█'
	WellChar        = '░'
	PoolChar        = '▒'
	RimChar         = '▔'
)

// rimThreshold is the opacity below which the rim is not drawn at all.
const rimThreshold = 0.2

// Raised draws a convex surface: two shadows, the rim, the face and a
// highlight toward the light.
func Raised(dst *core.Screen, r core.Rect, p shading.Parameters, face core.Color) {
	lx, ly := p.Light.Round()
	dx, dy := p.Dark.Round()
	dst.DrawRect(offset(r, dx, dy), DarkShadowChar, core.ColorShadow)
	dst.DrawRect(offset(r, lx, ly), LightShadowChar, core.ColorHighlight)
	rim(dst, r, p)
	dst.DrawRect(r, FaceChar, face)

	hx, hy := Spot(r, p.Convex)
	dst.SetColored(hx, hy, HighlightChar, core.ColorHighlight)
}

// Recessed draws a concave well with its shadow pool opposite the light.
func Recessed(dst *core.Screen, r core.Rect, p shading.Parameters) {
	rim(dst, r, p)
	dst.DrawRect(r, WellChar, core.ColorSurface)

	px, py := Spot(r, p.Concave)
	dst.SetColored(px, py, PoolChar, core.ColorShadow)
}

// Frame draws the cell border, brighter when focused.
func Frame(dst *core.Screen, focused bool, pulse float64) {
	c := core.ColorGray
	switch {
	case pulse > 0.5:
		c = core.ColorBrightYellow
	case pulse > 0:
		c = core.ColorYellow
	case focused:
		c = core.ColorBrightCyan
	}
	dst.DrawBox(core.NewRect(0, 0, dst.Width(), dst.Height()), c)
}

// Spot maps a normalized 0..1 point to a cell inside r.
func Spot(r core.Rect, n shading.Point) (x, y int) {
	x = r.X + int(core.ClampF(n.X, 0, 1)*float64(r.W-1)+0.5)
	y = r.Y + int(core.ClampF(n.Y, 0, 1)*float64(r.H-1)+0.5)
	return x, y
}

// Params computes the shading parameters of a toy surface from its view.
func Params(m shading.Model, maxShadow float64, view core.View) shading.Parameters {
	return m.Compute(view.TiltX, view.TiltY, maxShadow, view.ReduceMotion)
}

func rim(dst *core.Screen, r core.Rect, p shading.Parameters) {
	if p.RimOpacity < rimThreshold {
		return
	}
	ox, oy := p.Rim.Round()
	if ox == 0 && oy == 0 {
		return
	}
	rr := offset(r, ox, oy)
	for y := rr.Y; y < rr.Bottom(); y++ {
		for x := rr.X; x < rr.Right(); x++ {
			dst.SetColored(x, y, RimChar, RimTone(p, normalized(rr, x, y)))
		}
	}
}

// RimTone shades a rim cell at normalized position n. The rim is lightest
// at RimStart, darkest at RimEnd and dims with RimOpacity.
func RimTone(p shading.Parameters, n shading.Point) core.Color {
	axis := p.RimEnd.Sub(p.RimStart)
	t := 0.5
	if span := axis.X*axis.X + axis.Y*axis.Y; span > 0 {
		rel := n.Sub(p.RimStart)
		t = core.ClampF((rel.X*axis.X+rel.Y*axis.Y)/span, 0, 1)
	}
	return core.Tone((1 - t) * core.ClampF(p.RimOpacity, 0, 1))
}

// normalized maps a cell of r to 0..1 surface space, the inverse of Spot.
func normalized(r core.Rect, x, y int) shading.Point {
	n := core.V(0.5, 0.5)
	if r.W > 1 {
		n.X = float64(x-r.X) / float64(r.W-1)
	}
	if r.H > 1 {
		n.Y = float64(y-r.Y) / float64(r.H-1)
	}
	return n
}

func offset(r core.Rect, dx, dy int) core.Rect {
	return core.NewRect(r.X+dx, r.Y+dy, r.W, r.H)
}
