// Package config provides YAML-based tuning for the fidget grid: physics
// constants, shading, tilt smoothing, sound and grid layout.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned by Validate for non-physical or unusable values.
var ErrInvalid = errors.New("config: invalid")

// Config is the whole fidget.yaml document.
type Config struct {
	Tilt     TiltConfig     `yaml:"tilt"`
	Shading  ShadingConfig  `yaml:"shading"`
	Ball     BallConfig     `yaml:"ball"`
	Spinner  SpinnerConfig  `yaml:"spinner"`
	Pendulum PendulumConfig `yaml:"pendulum"`
	Sound    SoundConfig    `yaml:"sound"`
	Grid     GridConfig     `yaml:"grid"`
}

// TiltConfig defines how orientation samples are read and smoothed.
type TiltConfig struct {
	Alpha        float64 `yaml:"alpha"`         // Smoothing factor, (0, 1]
	SampleRate   float64 `yaml:"sample_rate"`   // Source polling rate, Hz
	Source       string  `yaml:"source"`        // "keys" or a ws:// URL
	KeyStep      float64 `yaml:"key_step"`      // Target change per arrow key press
	ReduceMotion bool    `yaml:"reduce_motion"` // Accessibility: ignore tilt everywhere
}

// ShadingConfig defines the fake-lighting response to tilt.
type ShadingConfig struct {
	Intensity     float64 `yaml:"intensity"`
	MaxShadow     float64 `yaml:"max_shadow"` // Shadow offset at rest, cells
	MaxSpread     float64 `yaml:"max_spread"`
	GradientShift float64 `yaml:"gradient_shift"`
	GradientMin   float64 `yaml:"gradient_min"`
	GradientMax   float64 `yaml:"gradient_max"`
	RimDepth      float64 `yaml:"rim_depth"`
}

// BallConfig defines the tilt-ball physics. Distances are cells,
// velocities cells per 60 Hz tick.
type BallConfig struct {
	Gravity        float64 `yaml:"gravity"`
	Friction       float64 `yaml:"friction"`
	Restitution    float64 `yaml:"restitution"`
	MinImpactSpeed float64 `yaml:"min_impact_speed"`
	MaxSpeed       float64 `yaml:"max_speed"`
}

// SpinnerConfig defines the momentum spinner. Angles are radians.
type SpinnerConfig struct {
	Friction         float64 `yaml:"friction"`
	DetentAngle      float64 `yaml:"detent_angle"`
	MinFeedbackSpeed float64 `yaml:"min_feedback_speed"`
	StopThreshold    float64 `yaml:"stop_threshold"`
	MaxVelocity      float64 `yaml:"max_velocity"`
}

// PendulumConfig defines the pendulum. Angles are radians.
type PendulumConfig struct {
	Gravity       float64 `yaml:"gravity"`
	Damping       float64 `yaml:"damping"`
	MaxAngle      float64 `yaml:"max_angle"`
	TickAngle     float64 `yaml:"tick_angle"`
	MinTickSpeed  float64 `yaml:"min_tick_speed"`
	SettleAngle   float64 `yaml:"settle_angle"`
	SettleSpeed   float64 `yaml:"settle_speed"`
	TiltInfluence float64 `yaml:"tilt_influence"`
	DragGain      float64 `yaml:"drag_gain"`
}

// SoundConfig defines audio output.
type SoundConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0 silent, 1 full scale
	SampleRate int     `yaml:"sample_rate"`
	BufferMS   int     `yaml:"buffer_ms"` // Speaker buffer length
}

// GridConfig defines the grid layout and host loop.
type GridConfig struct {
	Toys       []string `yaml:"toys"`        // Display order
	CellWidth  int      `yaml:"cell_width"`  // Characters per cell
	CellHeight int      `yaml:"cell_height"` // Rows per cell
	FPS        int      `yaml:"fps"`
	DBPath     string   `yaml:"db_path"`
}

// Validate rejects values the simulators cannot run with.
func (c *Config) Validate() error {
	checks := []struct {
		ok   bool
		name string
		val  any
	}{
		{inUnit(c.Tilt.Alpha), "tilt.alpha", c.Tilt.Alpha},
		{positive(c.Tilt.SampleRate), "tilt.sample_rate", c.Tilt.SampleRate},
		{positive(c.Tilt.KeyStep) && c.Tilt.KeyStep <= 1, "tilt.key_step", c.Tilt.KeyStep},
		{nonNegative(c.Shading.Intensity), "shading.intensity", c.Shading.Intensity},
		{nonNegative(c.Shading.MaxShadow), "shading.max_shadow", c.Shading.MaxShadow},
		{nonNegative(c.Shading.MaxSpread), "shading.max_spread", c.Shading.MaxSpread},
		{finite(c.Shading.GradientShift), "shading.gradient_shift", c.Shading.GradientShift},
		{finite(c.Shading.RimDepth), "shading.rim_depth", c.Shading.RimDepth},
		{c.Shading.GradientMin >= 0 && c.Shading.GradientMin <= c.Shading.GradientMax && c.Shading.GradientMax <= 1,
			"shading.gradient_min/max", fmt.Sprintf("%v..%v", c.Shading.GradientMin, c.Shading.GradientMax)},
		{nonNegative(c.Ball.Gravity), "ball.gravity", c.Ball.Gravity},
		{inUnit(c.Ball.Friction), "ball.friction", c.Ball.Friction},
		{c.Ball.Restitution >= 0 && c.Ball.Restitution < 1, "ball.restitution", c.Ball.Restitution},
		{inUnit(c.Spinner.Friction), "spinner.friction", c.Spinner.Friction},
		{positive(c.Spinner.DetentAngle), "spinner.detent_angle", c.Spinner.DetentAngle},
		{positive(c.Spinner.StopThreshold), "spinner.stop_threshold", c.Spinner.StopThreshold},
		{nonNegative(c.Pendulum.Gravity), "pendulum.gravity", c.Pendulum.Gravity},
		{inUnit(c.Pendulum.Damping), "pendulum.damping", c.Pendulum.Damping},
		{positive(c.Pendulum.MaxAngle) && c.Pendulum.MaxAngle < math.Pi/2, "pendulum.max_angle", c.Pendulum.MaxAngle},
		{positive(c.Pendulum.SettleAngle), "pendulum.settle_angle", c.Pendulum.SettleAngle},
		{positive(c.Pendulum.SettleSpeed), "pendulum.settle_speed", c.Pendulum.SettleSpeed},
		{c.Sound.Volume >= 0 && c.Sound.Volume <= 1, "sound.volume", c.Sound.Volume},
		{c.Sound.SampleRate > 0, "sound.sample_rate", c.Sound.SampleRate},
		{c.Sound.BufferMS > 0, "sound.buffer_ms", c.Sound.BufferMS},
		{len(c.Grid.Toys) > 0, "grid.toys", c.Grid.Toys},
		{c.Grid.CellWidth >= MinCellWidth, "grid.cell_width", c.Grid.CellWidth},
		{c.Grid.CellHeight >= MinCellHeight, "grid.cell_height", c.Grid.CellHeight},
		{c.Grid.FPS > 0 && c.Grid.FPS <= 240, "grid.fps", c.Grid.FPS},
	}
	for _, ck := range checks {
		if !ck.ok {
			return fmt.Errorf("%w: %s = %v", ErrInvalid, ck.name, ck.val)
		}
	}
	return nil
}

// Minimum cell size a toy can be drawn in.
const (
	MinCellWidth  = 16
	MinCellHeight = 8
)

func inUnit(v float64) bool      { return v > 0 && v <= 1 }
func positive(v float64) bool    { return v > 0 && !math.IsInf(v, 1) }
func nonNegative(v float64) bool { return v >= 0 && !math.IsInf(v, 1) }
func finite(v float64) bool      { return !math.IsNaN(v) && !math.IsInf(v, 0) }
