package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fidget/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available toys",
	Long:  `Shows a list of all toys registered in fidget.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		printToys(cmd.OutOrStdout(), registry.List())
	},
}

func printToys(w io.Writer, toys []registry.ToyInfo) {
	if len(toys) == 0 {
		fmt.Fprintln(w, "No toys available.")
		return
	}

	fmt.Fprintln(w, "Available toys:")
	fmt.Fprintln(w)

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, t := range toys {
		maxIDLen = max(maxIDLen, len(t.ID))
	}

	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, t := range toys {
		fmt.Fprintf(w, "  %-*s  %s\n", maxIDLen, t.ID, t.Title)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'fidget play <id>' to open a toy on its own.")
}
