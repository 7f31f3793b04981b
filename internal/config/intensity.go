package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-fidget/internal/physics"
	"github.com/vovakirdan/tui-fidget/internal/registry"
	"github.com/vovakirdan/tui-fidget/internal/shading"
	"github.com/vovakirdan/tui-fidget/internal/tilt"
)

// IntensityPreset represents a named strength of the tilt response.
type IntensityPreset string

const (
	IntensitySubtle   IntensityPreset = "subtle"
	IntensityNormal   IntensityPreset = "normal"
	IntensityDramatic IntensityPreset = "dramatic"
)

// Presets lists the presets in increasing strength.
func Presets() []IntensityPreset {
	return []IntensityPreset{IntensitySubtle, IntensityNormal, IntensityDramatic}
}

// ParseIntensity parses a preset name, case-insensitively.
func ParseIntensity(s string) (IntensityPreset, error) {
	p := IntensityPreset(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Presets() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown intensity %q (want subtle, normal or dramatic)", ErrInvalid, s)
}

// scaleForPreset returns the shading and gravity multipliers of a preset.
func scaleForPreset(p IntensityPreset) (shade, gravity float64) {
	switch p {
	case IntensitySubtle:
		return 0.5, 0.6
	case IntensityDramatic:
		return 1.6, 1.5
	default:
		return 1, 1
	}
}

// ApplyIntensity scales the shading intensity and ball gravity by a preset.
// It multiplies whatever the file configured, so normal is a no-op.
func ApplyIntensity(cfg *Config, preset IntensityPreset) {
	shade, gravity := scaleForPreset(preset)
	cfg.Shading.Intensity *= shade
	cfg.Ball.Gravity *= gravity
}

// ToyEnv converts the configuration into the tuning injected into toys.
func (c *Config) ToyEnv() registry.Env {
	return registry.Env{
		Ball: physics.BallConfig{
			Gravity:        c.Ball.Gravity,
			Friction:       c.Ball.Friction,
			Restitution:    c.Ball.Restitution,
			MinImpactSpeed: c.Ball.MinImpactSpeed,
			MaxSpeed:       c.Ball.MaxSpeed,
		},
		Spinner: physics.SpinnerConfig{
			Friction:         c.Spinner.Friction,
			DetentAngle:      c.Spinner.DetentAngle,
			MinFeedbackSpeed: c.Spinner.MinFeedbackSpeed,
			StopThreshold:    c.Spinner.StopThreshold,
			MaxVelocity:      c.Spinner.MaxVelocity,
		},
		Pendulum: physics.PendulumConfig{
			Gravity:       c.Pendulum.Gravity,
			Damping:       c.Pendulum.Damping,
			MaxAngle:      c.Pendulum.MaxAngle,
			TickAngle:     c.Pendulum.TickAngle,
			MinTickSpeed:  c.Pendulum.MinTickSpeed,
			SettleAngle:   c.Pendulum.SettleAngle,
			SettleSpeed:   c.Pendulum.SettleSpeed,
			TiltInfluence: c.Pendulum.TiltInfluence,
			DragGain:      c.Pendulum.DragGain,
		},
		Shading:   c.ShadingModel(),
		MaxShadow: c.Shading.MaxShadow,
	}
}

// ShadingModel returns the configured shading multipliers.
func (c *Config) ShadingModel() shading.Model {
	return shading.Model{
		Intensity:     c.Shading.Intensity,
		MaxSpread:     c.Shading.MaxSpread,
		GradientShift: c.Shading.GradientShift,
		GradientMin:   c.Shading.GradientMin,
		GradientMax:   c.Shading.GradientMax,
		RimDepth:      c.Shading.RimDepth,
	}
}

// TiltConfig returns the smoothing settings for the tilt adapter.
func (c *Config) TiltConfig() tilt.Config {
	return tilt.Config{
		Alpha:      c.Tilt.Alpha,
		SampleRate: c.Tilt.SampleRate,
	}
}
