// Package feedback routes the one-shot events toys emit to the sound player
// and a haptic sink.
package feedback

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-fidget/internal/core"
	"github.com/vovakirdan/tui-fidget/internal/sound"
)

// Haptics receives impact events. A terminal has no vibration motor, so the
// grid implements this as a short visual pulse.
type Haptics interface {
	Impact(toyID string, style core.HapticStyle)
}

// HapticsFunc adapts a function to Haptics.
type HapticsFunc func(toyID string, style core.HapticStyle)

// Impact implements Haptics.
func (f HapticsFunc) Impact(toyID string, style core.HapticStyle) {
	f(toyID, style)
}

// NopHaptics discards impacts.
type NopHaptics struct{}

// Impact implements Haptics.
func (NopHaptics) Impact(string, core.HapticStyle) {}

// Sounder plays sound effects; *sound.Player satisfies it.
type Sounder interface {
	Play(e sound.Effect) bool
}

// Dispatcher fans feedback out to sound and haptics.
type Dispatcher struct {
	sounder Sounder
	haptics Haptics
	logger  *log.Logger
}

// NewDispatcher creates a dispatcher. Nil collaborators are replaced with
// no-ops.
func NewDispatcher(s Sounder, h Haptics, logger *log.Logger) *Dispatcher {
	if h == nil {
		h = NopHaptics{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{sounder: s, haptics: h, logger: logger}
}

// Dispatch delivers every event for toyID and returns how many sounds were
// scheduled.
func (d *Dispatcher) Dispatch(toyID string, events []core.Feedback) int {
	played := 0
	for _, ev := range events {
		if ev.Haptic != core.HapticNone {
			d.haptics.Impact(toyID, ev.Haptic)
		}
		if ev.Effect == "" || d.sounder == nil {
			continue
		}
		if d.sounder.Play(sound.Effect(ev.Effect)) {
			played++
		}
	}
	if len(events) > 0 {
		d.logger.Debug("feedback", "toy", toyID, "events", len(events), "sounds", played)
	}
	return played
}
