package physics

import "math"

// SpinnerConfig holds the tuning constants of a momentum spinner.
// Angles are radians, angular velocities radians per 60 Hz tick.
type SpinnerConfig struct {
	Friction         float64 // Angular velocity retained per tick, in (0, 1]
	DetentAngle      float64 // Angular travel between feedback pulses
	MinFeedbackSpeed float64 // Pulses are muted below this speed
	StopThreshold    float64 // Below this speed the spinner goes idle
	MaxVelocity      float64 // Release speed cap, 0 disables
}

// DefaultSpinnerConfig returns the tuned defaults.
func DefaultSpinnerConfig() SpinnerConfig {
	return SpinnerConfig{
		Friction:         0.985,
		DetentAngle:      math.Pi / 3,
		MinFeedbackSpeed: 0.02,
		StopThreshold:    0.001,
		MaxVelocity:      1.2,
	}
}

// Spinner is a free-spinning rotor with pure exponential friction.
type Spinner struct {
	cfg     SpinnerConfig
	angle   float64
	vel     float64
	phase   Phase
	grabbed bool
	travel  float64
	detents int

	// OnDetent fires each time accumulated travel crosses DetentAngle while
	// the spinner is dragged or spinning faster than MinFeedbackSpeed.
	OnDetent func(count int)
}

// NewSpinner creates an idle spinner at angle zero.
func NewSpinner(cfg SpinnerConfig) *Spinner {
	return &Spinner{cfg: cfg}
}

// Angle returns the rotor angle normalized to [0, 2π).
func (s *Spinner) Angle() float64 {
	return s.angle
}

// AngularVelocity returns the signed angular velocity in radians per tick.
func (s *Spinner) AngularVelocity() float64 {
	return s.vel
}

// Phase returns the lifecycle phase.
func (s *Spinner) Phase() Phase {
	return s.phase
}

// Grabbed reports whether a drag is in progress.
func (s *Spinner) Grabbed() bool {
	return s.grabbed
}

// Grab stops the rotor under the user's finger.
func (s *Spinner) Grab() {
	s.grabbed = true
	s.vel = 0
	s.phase = PhaseIdle
}

// Drag rotates the rotor directly while grabbed.
func (s *Spinner) Drag(delta float64) {
	if !s.grabbed || !finite(delta) {
		return
	}
	s.angle = normalizeAngle(s.angle + delta)
	s.advance(math.Abs(delta), true)
}

// Release lets go of the rotor with the given angular velocity, typically
// derived from the drag speed. A negligible velocity leaves it idle.
func (s *Spinner) Release(angularVelocity float64) {
	s.grabbed = false
	if !finite(angularVelocity) {
		angularVelocity = 0
	}
	if s.cfg.MaxVelocity > 0 {
		angularVelocity = math.Max(-s.cfg.MaxVelocity, math.Min(s.cfg.MaxVelocity, angularVelocity))
	}
	s.vel = angularVelocity
	if math.Abs(s.vel) < s.cfg.StopThreshold {
		s.vel = 0
		s.phase = PhaseIdle
		return
	}
	s.phase = PhaseActive
}

// Flick adds angular velocity without a drag, as a keyboard shortcut.
func (s *Spinner) Flick(delta float64) {
	s.grabbed = false
	s.Release(s.vel + delta)
}

// Stop halts the rotor immediately; the owning toy calls it on disappear.
func (s *Spinner) Stop() {
	s.grabbed = false
	s.vel = 0
	s.phase = PhaseIdle
}

// Tick advances the rotor by dt seconds. It returns false once idle.
func (s *Spinner) Tick(dt float64) bool {
	if s.phase != PhaseActive {
		return false
	}
	k := FrameScale(dt)
	if k == 0 {
		return true
	}

	step := s.vel * k
	s.angle += step
	s.vel *= decay(s.cfg.Friction, k)

	if !finite(s.angle, s.vel) {
		s.reset()
		return false
	}

	s.angle = normalizeAngle(s.angle)
	s.advance(math.Abs(step), math.Abs(s.vel) >= s.cfg.MinFeedbackSpeed)

	if math.Abs(s.vel) < s.cfg.StopThreshold {
		s.vel = 0
		s.phase = PhaseIdle
		return false
	}
	return true
}

// advance accumulates travel and fires one pulse per detent crossed.
func (s *Spinner) advance(d float64, audible bool) {
	if s.cfg.DetentAngle <= 0 {
		return
	}
	s.travel += d
	for s.travel >= s.cfg.DetentAngle {
		s.travel -= s.cfg.DetentAngle
		s.detents++
		if audible && s.OnDetent != nil {
			s.OnDetent(s.detents)
		}
	}
}

func (s *Spinner) reset() {
	s.angle = 0
	s.vel = 0
	s.travel = 0
	s.grabbed = false
	s.phase = PhaseIdle
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
