// fidget is a box of tactile desk toys for the terminal: knobs, switches,
// a spinner, a pendulum and a ball that rolls when you tilt.
//
// Usage:
//
//	fidget                        - Open the toy grid
//	fidget play <toy>             - Open one toy full screen
//	fidget list                   - List available toys
//	fidget sounds                 - List sound effects
//	fidget sounds play <effect>   - Play one effect
//	fidget sounds export <effect> <file.wav>
//	fidget feed                   - Serve a synthetic tilt feed over websocket
//	fidget serve                  - Serve the grid over SSH
//	fidget stats                  - Show interaction stats
//
// Global flags:
//
//	--config <path>        - Config file (default: search ~/.fidget, ./configs)
//	--intensity <preset>   - subtle, normal or dramatic
//	--fps <rate>           - Tick rate
//	--db <path>            - Database path (default: ~/.fidget/fidget.db)
//	--tilt <source>        - "keys" or a ws:// orientation feed
//	--no-sound             - Start muted
//	--reduce-motion        - Render every surface at rest
//	--log-level <level>    - debug, info, warn or error
//	--log-file <path>      - Log file for interactive modes
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	// Import toys to register them
	_ "github.com/vovakirdan/tui-fidget/internal/toys/keycap"
	_ "github.com/vovakirdan/tui-fidget/internal/toys/knob"
	_ "github.com/vovakirdan/tui-fidget/internal/toys/pendulum"
	_ "github.com/vovakirdan/tui-fidget/internal/toys/slider"
	_ "github.com/vovakirdan/tui-fidget/internal/toys/spinner"
	_ "github.com/vovakirdan/tui-fidget/internal/toys/tiltball"
	_ "github.com/vovakirdan/tui-fidget/internal/toys/toggle"
)

var (
	// Global flags
	flagConfig       string
	flagIntensity    string
	flagFPS          int
	flagDBPath       string
	flagTilt         string
	flagNoSound      bool
	flagReduceMotion bool
	flagLogLevel     string
	flagLogFile      string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, rootCmd); err != nil {
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fidget",
	Short: "Tactile desk toys for your terminal",
	Long: `fidget is a grid of small tactile toys: a detented knob, a toggle, a
slider, a spinner, a pendulum, a tilt ball and a mechanical key.

Surfaces are shaded from the current tilt, every click has a synthesized
sound, and arrow keys tilt the desk.

Available commands:
  grid     - Open the toy grid (default)
  play     - Open one toy full screen
  list     - Show all available toys
  sounds   - List, play or export sound effects
  feed     - Serve a synthetic tilt feed over websocket
  serve    - Serve the grid over SSH
  stats    - Show interaction stats

Examples:
  fidget
  fidget play spinner
  fidget --intensity dramatic --tilt ws://phone.local:8765/tilt
  fidget sounds export chime chime.wav
  fidget serve --ssh :23235`,
	Args: cobra.NoArgs,
	RunE: runGrid,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to a fidget config YAML")
	pf.StringVar(&flagIntensity, "intensity", "", "Tilt response preset: subtle, normal, dramatic")
	pf.IntVar(&flagFPS, "fps", 0, "Tick rate (0 = from config)")
	pf.StringVar(&flagDBPath, "db", "", "Path to the fidget database (default from config)")
	pf.StringVar(&flagTilt, "tilt", "", `Tilt source: "keys" or a ws:// feed URL`)
	pf.BoolVar(&flagNoSound, "no-sound", false, "Start with sound off")
	pf.BoolVar(&flagReduceMotion, "reduce-motion", false, "Render surfaces at rest and ignore tilt")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file for interactive modes (default ~/.fidget/fidget.log)")

	// Add subcommands
	rootCmd.AddCommand(gridCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(soundsCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}
