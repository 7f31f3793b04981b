package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fidget/internal/platform/tui"
)

var gridCmd = &cobra.Command{
	Use:   "grid",
	Short: "Open the toy grid",
	Long: `Lay every configured toy out in a grid. When the terminal is too small
the toys are split into pages.

Controls:
  Tab/Shift+Tab  - Focus next/previous toy
  Space/Enter    - Press, flip or flick the focused toy
  [ ]            - Turn the focused toy down/up
  Arrows         - Tilt the desk
  0              - Level the desk
  Mouse          - Press and drag any toy
  M              - Sound on/off
  R              - Reduced motion on/off
  PgUp/PgDn      - Previous/next page
  ?              - Full help
  Q/Esc          - Quit

Examples:
  fidget grid
  fidget grid --intensity subtle --fps 30`,
	Args: cobra.NoArgs,
	RunE: runGrid,
}

func runGrid(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true, true)
	if err != nil {
		return err
	}
	defer a.Close()

	toys, err := tui.BuildToys(a.cfg.Grid.Toys, a.cfg.ToyEnv())
	if err != nil {
		return fmt.Errorf("grid.toys: %w; run 'fidget list' to see available toys", err)
	}

	return a.runHost(cmd.Context(), func(opts tui.Options) closer {
		return tui.NewGridModel(toys, opts)
	})
}
