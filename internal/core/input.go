package core

// Action represents a semantic toy action, abstracted from physical key presses.
// This allows toys to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionPrimary         // Space, Enter - press, flip, flick
	ActionIncrease        // ] - turn clockwise, slide right
	ActionDecrease        // [ - turn counter-clockwise, slide left
	ActionRelease         // Key-up equivalent for toys that latch (keycap)
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPrimary:
		return "Primary"
	case ActionIncrease:
		return "Increase"
	case ActionDecrease:
		return "Decrease"
	case ActionRelease:
		return "Release"
	default:
		return "Unknown"
	}
}

// InputFrame represents the discrete actions triggered for one toy during one tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// PointerPhase is the stage of a touch-like drag gesture.
type PointerPhase int

const (
	PointerNone PointerPhase = iota
	PointerDown
	PointerMove
	PointerUp
)

// Pointer is a touch/drag sample in the toy's own cell coordinates.
// Coordinates may fall outside the toy when a drag leaves its cell.
type Pointer struct {
	Phase PointerPhase
	X, Y  float64
}

// Active reports whether the pointer carries a gesture sample.
func (p Pointer) Active() bool {
	return p.Phase != PointerNone
}

// Frame is everything a toy receives for one simulation tick.
type Frame struct {
	Input        InputFrame
	Pointer      Pointer
	TiltX, TiltY float64 // Smoothed tilt in [-1, 1]
	ReduceMotion bool
	DT           float64 // Elapsed real time since the previous tick, seconds
}
