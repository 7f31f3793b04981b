package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-fidget/internal/sound"
)

var soundsCmd = &cobra.Command{
	Use:   "sounds",
	Short: "List, play or export sound effects",
	Long: `Every toy sound is synthesized from a few decaying sine partials.
Without a subcommand, lists the effects.

Examples:
  fidget sounds
  fidget sounds play knobTick
  fidget sounds export chime chime.wav`,
	Args: cobra.NoArgs,
	RunE: runSoundsList,
}

var soundsPlayCmd = &cobra.Command{
	Use:   "play <effect>",
	Short: "Play one sound effect",
	Args:  cobra.ExactArgs(1),
	RunE:  runSoundsPlay,
}

var soundsExportCmd = &cobra.Command{
	Use:   "export <effect> <file.wav>",
	Short: "Write a sound effect as a 16-bit mono WAV file",
	Args:  cobra.ExactArgs(2),
	RunE:  runSoundsExport,
}

func init() {
	soundsCmd.AddCommand(soundsPlayCmd)
	soundsCmd.AddCommand(soundsExportCmd)
}

func runSoundsList(cmd *cobra.Command, _ []string) error {
	printEffects(cmd.OutOrStdout())
	return nil
}

func printEffects(w io.Writer) {
	fmt.Fprintf(w, "  %-14s  %8s  %s\n", "Effect", "Length", "Partials")
	fmt.Fprintf(w, "  %-14s  %8s  %s\n", "------", "------", "--------")
	for _, e := range sound.All() {
		r, _ := sound.RecipeFor(e)
		fmt.Fprintf(w, "  %-14s  %8s  %d\n", e, r.Duration, len(r.Partials))
	}
}

func runSoundsPlay(cmd *cobra.Command, args []string) error {
	effect, err := sound.Parse(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd, false, false)
	if err != nil {
		return err
	}
	defer a.Close()

	engine := sound.NewSpeakerEngine(time.Duration(a.cfg.Sound.BufferMS) * time.Millisecond)
	player := sound.NewPlayer(sound.NewSynth(a.cfg.Sound.SampleRate), engine, true, a.logger)
	player.SetVolume(a.cfg.Sound.Volume)
	defer player.Close()

	if !player.Play(effect) {
		return errors.New("sound: audio output unavailable")
	}

	// Let the mixer drain, plus one speaker buffer for the tail.
	ctx := cmd.Context()
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for engine.Active() > 0 {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
	time.Sleep(time.Duration(a.cfg.Sound.BufferMS) * time.Millisecond)
	return nil
}

func runSoundsExport(cmd *cobra.Command, args []string) error {
	effect, err := sound.Parse(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd, false, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := exportEffect(effect, a.cfg.Sound.SampleRate, args[1]); err != nil {
		return err
	}
	a.logger.Info("exported", "effect", effect, "file", args[1])
	return nil
}

// exportEffect synthesizes effect and writes it to path.
func exportEffect(effect sound.Effect, sampleRate int, path string) error {
	buf, err := sound.NewSynth(sampleRate).Buffer(effect)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if err := sound.WriteWAV(f, buf); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
