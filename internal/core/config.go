package core

// RuntimeConfig contains configuration passed to toys when they appear.
// Toys use this to adapt to the size of their grid cell.
type RuntimeConfig struct {
	ScreenW  int // Cell width in characters
	ScreenH  int // Cell height in characters
	TickRate int // Host ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  24,
		ScreenH:  10,
		TickRate: 60,
	}
}

// ToyState represents the externally visible state of a toy.
type ToyState struct {
	Value   float64 // Toy-specific reading (dial position, slider value, spin speed)
	Active  bool    // Whether a simulation is running
	Touched bool    // Whether the user interacted during the last tick
	Label   string  // Short status for the cell footer
}

// HapticStyle mirrors the impact styles a phone haptic engine offers.
type HapticStyle int

const (
	HapticNone HapticStyle = iota
	HapticSelection
	HapticLight
	HapticMedium
	HapticHeavy
	HapticRigid
	HapticSoft
)

// String returns the style name.
func (h HapticStyle) String() string {
	switch h {
	case HapticSelection:
		return "selection"
	case HapticLight:
		return "light"
	case HapticMedium:
		return "medium"
	case HapticHeavy:
		return "heavy"
	case HapticRigid:
		return "rigid"
	case HapticSoft:
		return "soft"
	default:
		return "none"
	}
}

// Feedback is a one-shot haptic+sound event emitted by a toy.
// Effect is a sound effect identifier; an empty Effect plays no sound.
type Feedback struct {
	Effect string
	Haptic HapticStyle
}

// StepResult is returned by Toy.Step() after each simulation tick.
type StepResult struct {
	State    ToyState
	Feedback []Feedback
}

// View carries per-frame presentation inputs to Toy.Render.
type View struct {
	TiltX, TiltY float64
	ReduceMotion bool
	Focused      bool
	Pulse        float64 // Haptic pulse intensity in [0, 1], decays per frame
}
