// Package physics implements the per-widget simulators that give the toys
// their feel: a tilt-rolling ball, a momentum spinner and a pendulum.
//
// Simulators are plain structs advanced by an explicit Tick(dt) call from
// whatever loop the host provides. Constants are tuned per tick at a 60 Hz
// baseline and every update is scaled by FrameScale so behavior matches on
// 60 and 120 Hz hosts. Simulators never interact with each other.
package physics

import "math"

// BaseRate is the tick rate the tuning constants are expressed in.
const BaseRate = 60.0

// MaxFrameScale caps the catch-up after a stalled frame.
const MaxFrameScale = 2.0

// Phase is the lifecycle state shared by all simulators.
type Phase int

const (
	PhaseIdle   Phase = iota // Not consuming ticks
	PhaseActive              // Integrating every tick
)

// String returns the phase name.
func (p Phase) String() string {
	if p == PhaseActive {
		return "active"
	}
	return "idle"
}

// FrameScale converts elapsed seconds into 60 Hz ticks, capped at
// MaxFrameScale. Negative, NaN or infinite input yields 0.
func FrameScale(dt float64) float64 {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0
	}
	return math.Min(dt*BaseRate, MaxFrameScale)
}

// decay returns the retention factor for a per-tick coefficient over s ticks.
func decay(coeff, s float64) float64 {
	if s == 1 {
		return coeff
	}
	return math.Pow(coeff, s)
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
