// Package sound synthesizes the short tactile sound effects of the toys and
// plays them through an audio engine.
//
// Every effect is a small sum of decaying sine partials, generated once on
// first use and cached for the life of the process. Playback is cosmetic:
// when sound is disabled or the audio device cannot be opened, Play quietly
// does nothing.
package sound

import (
	"errors"
	"fmt"
	"time"
)

// Effect identifies one of the fixed set of sound effects.
type Effect string

const (
	KnobTick     Effect = "knobTick"
	DetentClick  Effect = "detentClick"
	SwitchOn     Effect = "switchOn"
	SwitchOff    Effect = "switchOff"
	SliderTick   Effect = "sliderTick"
	KeyThock     Effect = "keyThock"
	SpinnerTick  Effect = "spinnerTick"
	PendulumTick Effect = "pendulumTick"
	BallBounce   Effect = "ballBounce"
	Chime        Effect = "chime"
)

// ErrUnknownEffect is returned for an effect id outside the fixed set.
var ErrUnknownEffect = errors.New("sound: unknown effect")

var allEffects = []Effect{
	KnobTick, DetentClick, SwitchOn, SwitchOff, SliderTick,
	KeyThock, SpinnerTick, PendulumTick, BallBounce, Chime,
}

// All returns every effect in a stable order.
func All() []Effect {
	out := make([]Effect, len(allEffects))
	copy(out, allEffects)
	return out
}

// Parse looks up an effect by id.
func Parse(name string) (Effect, error) {
	e := Effect(name)
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return e, nil
}

// Valid reports whether e is one of the known effects.
func (e Effect) Valid() bool {
	_, ok := recipes[e]
	return ok
}

// String returns the effect id.
func (e Effect) String() string {
	return string(e)
}

// Partial is one sine component of an effect.
type Partial struct {
	Freq  float64 // Hz
	Amp   float64 // Peak amplitude before gain
	Decay float64 // Exponential decay rate, 1/s
}

// Recipe is the closed-form definition of an effect.
type Recipe struct {
	Duration time.Duration
	Gain     float64
	Partials []Partial
}

// RecipeFor returns the recipe of e.
func RecipeFor(e Effect) (Recipe, bool) {
	r, ok := recipes[e]
	return r, ok
}

var recipes = map[Effect]Recipe{
	KnobTick: {
		Duration: 18 * time.Millisecond,
		Gain:     0.5,
		Partials: []Partial{
			{Freq: 3200, Amp: 0.6, Decay: 260},
			{Freq: 5400, Amp: 0.3, Decay: 400},
			{Freq: 1800, Amp: 0.2, Decay: 200},
		},
	},
	DetentClick: {
		Duration: 25 * time.Millisecond,
		Gain:     0.6,
		Partials: []Partial{
			{Freq: 2200, Amp: 0.7, Decay: 180},
			{Freq: 4100, Amp: 0.4, Decay: 300},
			{Freq: 900, Amp: 0.3, Decay: 120},
		},
	},
	SwitchOn: {
		Duration: 40 * time.Millisecond,
		Gain:     0.6,
		Partials: []Partial{
			{Freq: 1400, Amp: 0.6, Decay: 90},
			{Freq: 2800, Amp: 0.35, Decay: 140},
			{Freq: 700, Amp: 0.3, Decay: 60},
			{Freq: 4200, Amp: 0.15, Decay: 220},
		},
	},
	SwitchOff: {
		Duration: 40 * time.Millisecond,
		Gain:     0.6,
		Partials: []Partial{
			{Freq: 1100, Amp: 0.6, Decay: 100},
			{Freq: 2200, Amp: 0.35, Decay: 150},
			{Freq: 550, Amp: 0.3, Decay: 70},
			{Freq: 3300, Amp: 0.15, Decay: 240},
		},
	},
	SliderTick: {
		Duration: 12 * time.Millisecond,
		Gain:     0.4,
		Partials: []Partial{
			{Freq: 4000, Amp: 0.5, Decay: 350},
			{Freq: 6200, Amp: 0.3, Decay: 500},
		},
	},
	KeyThock: {
		Duration: 70 * time.Millisecond,
		Gain:     0.7,
		Partials: []Partial{
			{Freq: 180, Amp: 0.8, Decay: 45},
			{Freq: 360, Amp: 0.4, Decay: 70},
			{Freq: 95, Amp: 0.5, Decay: 35},
			{Freq: 1200, Amp: 0.2, Decay: 150},
			{Freq: 2400, Amp: 0.1, Decay: 220},
		},
	},
	SpinnerTick: {
		Duration: 15 * time.Millisecond,
		Gain:     0.45,
		Partials: []Partial{
			{Freq: 2600, Amp: 0.6, Decay: 300},
			{Freq: 5100, Amp: 0.3, Decay: 450},
		},
	},
	PendulumTick: {
		Duration: 30 * time.Millisecond,
		Gain:     0.5,
		Partials: []Partial{
			{Freq: 1800, Amp: 0.6, Decay: 150},
			{Freq: 3600, Amp: 0.3, Decay: 250},
			{Freq: 900, Amp: 0.2, Decay: 100},
		},
	},
	BallBounce: {
		Duration: 50 * time.Millisecond,
		Gain:     0.6,
		Partials: []Partial{
			{Freq: 240, Amp: 0.7, Decay: 70},
			{Freq: 480, Amp: 0.35, Decay: 110},
			{Freq: 1500, Amp: 0.2, Decay: 200},
		},
	},
	Chime: {
		Duration: 120 * time.Millisecond,
		Gain:     0.5,
		Partials: []Partial{
			{Freq: 1046.5, Amp: 0.5, Decay: 18},
			{Freq: 1568, Amp: 0.35, Decay: 24},
			{Freq: 2093, Amp: 0.25, Decay: 30},
			{Freq: 3136, Amp: 0.1, Decay: 40},
		},
	},
}
