// Package tui hosts the toys in a Bubble Tea program.
// It owns the tick loop, input mapping, haptic pulses and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDT converts the gap between two ticks into seconds. The first tick,
// and any clock that went backwards, gets one nominal frame.
func frameDT(last, now time.Time, tickRate int) float64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	nominal := 1 / float64(tickRate)
	if last.IsZero() || !now.After(last) {
		return nominal
	}
	return now.Sub(last).Seconds()
}
