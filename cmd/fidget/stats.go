package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fidget/internal/platform/tui"
	"github.com/vovakirdan/tui-fidget/internal/storage"
)

var (
	flagStatsPlain bool
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show interaction stats",
	Long: `Show how often each toy has been touched, across local and SSH sessions.

On a terminal this opens an interactive table; use --plain for text output.

Examples:
  fidget stats
  fidget stats --plain
  fidget stats --clear`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&flagStatsPlain, "plain", false, "Print plain text instead of the interactive table")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete all recorded interactions")
}

func runStats(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.store == nil {
		return fmt.Errorf("stats: database %s is unavailable", a.cfg.Grid.DBPath)
	}

	if flagStatsClear {
		if err := a.store.ClearInteractions(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Interaction history cleared.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagStatsPlain && term.IsTerminal(fd) {
		width, height, err := term.GetSize(fd)
		if err != nil {
			width, height = 80, 24
		}
		return tui.RunStats(a.store, width, height)
	}

	stats, err := a.store.Interactions()
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), stats, time.Now())
	return nil
}

func printStats(w io.Writer, stats []storage.InteractionStat, now time.Time) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No touches recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'fidget' and play with a toy!")
		return
	}

	total := 0
	fmt.Fprintf(w, "  %-10s  %9s  %8s  %s\n", "Toy", "Touches", "Sessions", "Last used")
	fmt.Fprintf(w, "  %-10s  %9s  %8s  %s\n", "---", "-------", "--------", "---------")
	for _, st := range stats {
		total += st.Count
		fmt.Fprintf(w, "  %-10s  %9s  %8s  %s\n",
			st.ToyID,
			humanize.Comma(int64(st.Count)),
			humanize.Comma(int64(st.Sessions)),
			humanize.RelTime(st.LastUsed, now, "ago", "from now"),
		)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s touches in total.\n", humanize.Comma(int64(total)))
}
