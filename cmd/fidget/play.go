package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fidget/internal/platform/tui"
	"github.com/vovakirdan/tui-fidget/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <toy>",
	Short: "Open one toy full screen",
	Long: `Open a single toy sized to the whole terminal.

Controls are the same as the grid; Tab does nothing with only one toy.

Examples:
  fidget play spinner
  fidget play tiltball --tilt ws://localhost:8765/tilt
  fidget play knob --no-sound`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	toyID := args[0]

	// Check if toy exists
	if !registry.Exists(toyID) {
		return fmt.Errorf("%w %q; run 'fidget list' to see available toys", registry.ErrUnknownToy, toyID)
	}

	a, err := newApp(cmd, true, true)
	if err != nil {
		return err
	}
	defer a.Close()

	toy, err := registry.Create(toyID, a.cfg.ToyEnv())
	if err != nil {
		return err
	}

	return a.runHost(cmd.Context(), func(opts tui.Options) closer {
		return tui.NewToyModel(toy, opts)
	})
}
