package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-fidget/internal/core"
)

// KeyMap defines the key bindings of the toy hosts.
type KeyMap struct {
	Quit         key.Binding
	NextToy      key.Binding
	PrevToy      key.Binding
	Primary      key.Binding
	Increase     key.Binding
	Decrease     key.Binding
	TiltUp       key.Binding
	TiltDown     key.Binding
	TiltLeft     key.Binding
	TiltRight    key.Binding
	Level        key.Binding
	Sound        key.Binding
	ReduceMotion key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	Help         key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextToy, k.Primary, k.Increase, k.TiltUp, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextToy, k.PrevToy, k.NextPage, k.PrevPage},
		{k.Primary, k.Increase, k.Decrease},
		{k.TiltUp, k.TiltDown, k.TiltLeft, k.TiltRight, k.Level},
		{k.Sound, k.ReduceMotion, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextToy: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next toy"),
		),
		PrevToy: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev toy"),
		),
		Primary: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "press"),
		),
		Increase: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "turn up"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "turn down"),
		),
		TiltUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("arrows", "tilt"),
		),
		TiltDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "tilt toward you"),
		),
		TiltLeft: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "tilt left"),
		),
		TiltRight: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "tilt right"),
		),
		Level: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "level"),
		),
		Sound: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sound"),
		),
		ReduceMotion: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reduce motion"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "prev page"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ToyAction translates a key message to the action it sends to the focused toy.
func (k KeyMap) ToyAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Primary):
		return core.ActionPrimary
	case key.Matches(msg, k.Increase):
		return core.ActionIncrease
	case key.Matches(msg, k.Decrease):
		return core.ActionDecrease
	}
	return core.ActionNone
}

// TiltStep translates an arrow key to a direction of the manual tilt target.
// ok is false for any other key.
func (k KeyMap) TiltStep(msg tea.KeyMsg) (dx, dy float64, ok bool) {
	switch {
	case key.Matches(msg, k.TiltUp):
		return 0, -1, true
	case key.Matches(msg, k.TiltDown):
		return 0, 1, true
	case key.Matches(msg, k.TiltLeft):
		return -1, 0, true
	case key.Matches(msg, k.TiltRight):
		return 1, 0, true
	}
	return 0, 0, false
}
