package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/fidget.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors
// defaults/fidget.yaml.
func Default() Config {
	return Config{
		Tilt: TiltConfig{
			Alpha:      0.15,
			SampleRate: 60,
			Source:     "keys",
			KeyStep:    0.25,
		},
		Shading: ShadingConfig{
			Intensity:     1,
			MaxShadow:     1,
			MaxSpread:     2,
			GradientShift: 0.2,
			GradientMin:   0.15,
			GradientMax:   0.85,
			RimDepth:      1,
		},
		Ball: BallConfig{
			Gravity:        0.045,
			Friction:       0.985,
			Restitution:    0.55,
			MinImpactSpeed: 0.05,
			MaxSpeed:       3.0,
		},
		Spinner: SpinnerConfig{
			Friction:         0.985,
			DetentAngle:      math.Pi / 3,
			MinFeedbackSpeed: 0.02,
			StopThreshold:    0.001,
			MaxVelocity:      1.2,
		},
		Pendulum: PendulumConfig{
			Gravity:       0.012,
			Damping:       0.985,
			MaxAngle:      1.2,
			TickAngle:     0.35,
			MinTickSpeed:  0.01,
			SettleAngle:   0.002,
			SettleSpeed:   0.0005,
			TiltInfluence: 0.5,
			DragGain:      0.6,
		},
		Sound: SoundConfig{
			Enabled:    true,
			Volume:     0.8,
			SampleRate: 44100,
			BufferMS:   20,
		},
		Grid: GridConfig{
			Toys:       []string{"knob", "toggle", "slider", "spinner", "pendulum", "tiltball", "keycap"},
			CellWidth:  24,
			CellHeight: 10,
			FPS:        60,
			DBPath:     "~/.fidget/fidget.db",
		},
	}
}

// DefaultYAML returns the embedded default document, for `fidget config`
// style dumps and for seeding a user config file.
func DefaultYAML() []byte {
	return defaultYAML
}
