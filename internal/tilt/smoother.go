package tilt

import "github.com/vovakirdan/tui-fidget/internal/core"

// Smoother is a single-pole exponential filter run independently per axis.
// It is not safe for concurrent use; the Adapter serializes access.
type Smoother struct {
	alpha float64
	x, y  float64
}

// NewSmoother creates a smoother at rest. An alpha outside (0, 1] falls back
// to DefaultAlpha.
func NewSmoother(alpha float64) *Smoother {
	if !(alpha > 0 && alpha <= 1) {
		alpha = DefaultAlpha
	}
	return &Smoother{alpha: alpha}
}

// Alpha returns the smoothing factor.
func (s *Smoother) Alpha() float64 {
	return s.alpha
}

// Sample feeds one raw sample and returns the smoothed pair. Raw values are
// clamped to [-1, 1] first, so the output can never leave that range.
// A non-finite component is dropped and that axis keeps its previous value.
func (s *Smoother) Sample(rawX, rawY float64) (x, y float64) {
	if core.IsFinite(rawX) {
		s.x += (core.ClampF(rawX, -1, 1) - s.x) * s.alpha
	}
	if core.IsFinite(rawY) {
		s.y += (core.ClampF(rawY, -1, 1) - s.y) * s.alpha
	}
	return s.x, s.y
}

// Value returns the current smoothed pair.
func (s *Smoother) Value() (x, y float64) {
	return s.x, s.y
}

// Reset returns both axes to zero.
func (s *Smoother) Reset() {
	s.x, s.y = 0, 0
}
