package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-fidget/internal/config"
	"github.com/vovakirdan/tui-fidget/internal/platform/tui"
	"github.com/vovakirdan/tui-fidget/internal/sound"
	"github.com/vovakirdan/tui-fidget/internal/storage"
	"github.com/vovakirdan/tui-fidget/internal/tilt"
)

const defaultLogFile = "~/.fidget/fidget.log"

// app bundles what a command resolves from flags, environment, config and
// stored settings.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	store   *storage.Store
	logFile *os.File
}

// newApp builds the logger and the effective config. Interactive commands
// own the terminal, so they log to a file. withStore opens the database;
// failing to open it is logged and the command continues without it.
func newApp(cmd *cobra.Command, interactive, withStore bool) (*app, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	a := &app{}
	var w io.Writer = os.Stderr
	if interactive {
		w = a.openLogFile()
	}
	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "fidget",
		Level:           level,
	})

	cfg, err := config.Load(flagConfig)
	if err != nil {
		a.Close()
		return nil, err
	}
	if flagIntensity != "" {
		preset, err := config.ParseIntensity(flagIntensity)
		if err != nil {
			a.Close()
			return nil, err
		}
		config.ApplyIntensity(&cfg, preset)
	}
	if cmd.Flags().Changed("db") {
		cfg.Grid.DBPath = flagDBPath
	}

	if withStore {
		store, err := storage.Open(cfg.Grid.DBPath)
		if err != nil {
			a.logger.Warn("could not open database, continuing without it", "error", err)
		} else {
			a.store = store
			applyStored(&cfg, store, a.logger)
		}
	}

	if err := config.ApplyEnv(&cfg, os.Getenv); err != nil {
		a.Close()
		return nil, err
	}
	applyFlags(&cfg, cmd.Flags().Changed)
	if err := cfg.Validate(); err != nil {
		a.Close()
		return nil, err
	}

	a.cfg = cfg
	a.logger.Debug("config resolved",
		"toys", len(cfg.Grid.Toys),
		"fps", cfg.Grid.FPS,
		"tilt", cfg.Tilt.Source,
		"sound", cfg.Sound.Enabled,
	)
	return a, nil
}

// openLogFile opens the interactive log file, or discards logs when it
// cannot be created.
func (a *app) openLogFile() io.Writer {
	path := flagLogFile
	if path == "" {
		path = defaultLogFile
	}
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return io.Discard
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return io.Discard
	}
	a.logFile = f
	return f
}

// applyStored restores the toggles the user last set in the grid. The
// config file supplies the defaults; environment and flags still win.
func applyStored(cfg *config.Config, store *storage.Store, logger *log.Logger) {
	if on, err := store.BoolSetting(storage.KeySound, cfg.Sound.Enabled); err != nil {
		logger.Warn("could not read sound setting", "error", err)
	} else {
		cfg.Sound.Enabled = on
	}
	if on, err := store.BoolSetting(storage.KeyReduceMotion, cfg.Tilt.ReduceMotion); err != nil {
		logger.Warn("could not read reduced motion setting", "error", err)
	} else {
		cfg.Tilt.ReduceMotion = on
	}
}

// applyFlags overrides cfg with the global flags the user set.
func applyFlags(cfg *config.Config, changed func(name string) bool) {
	if changed("fps") {
		cfg.Grid.FPS = flagFPS
	}
	if changed("tilt") {
		cfg.Tilt.Source = flagTilt
	}
	if changed("no-sound") && flagNoSound {
		cfg.Sound.Enabled = false
	}
	if changed("reduce-motion") {
		cfg.Tilt.ReduceMotion = flagReduceMotion
	}
}

// Close releases the database and the log file.
func (a *app) Close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Debug("closing database", "error", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// newPlayer creates the local sound player. The audio device is opened on
// the first enabled play.
func (a *app) newPlayer() *sound.Player {
	synth := sound.NewSynth(a.cfg.Sound.SampleRate)
	engine := sound.NewSpeakerEngine(time.Duration(a.cfg.Sound.BufferMS) * time.Millisecond)
	p := sound.NewPlayer(synth, engine, a.cfg.Sound.Enabled, a.logger)
	p.SetVolume(a.cfg.Sound.Volume)
	return p
}

// newTilt creates the adapter for the configured source. The manual source
// is returned when arrow keys drive the tilt.
func (a *app) newTilt() (*tilt.Adapter, *tilt.ManualSource) {
	var src tilt.Source
	var manual *tilt.ManualSource

	switch s := a.cfg.Tilt.Source; {
	case strings.HasPrefix(s, "ws://"), strings.HasPrefix(s, "wss://"):
		src = tilt.NewWebSocketSource(s, a.logger)
	default:
		if s != "" && s != "keys" {
			a.logger.Warn("unknown tilt source, using arrow keys", "source", s)
		}
		manual = tilt.NewManualSource()
		src = manual
	}

	adapter := tilt.NewAdapter(src, a.cfg.TiltConfig(), a.logger)
	adapter.SetReduceMotion(a.cfg.Tilt.ReduceMotion)
	return adapter, manual
}

// closer is implemented by the toy hosts.
type closer interface {
	tea.Model
	Close()
}

// runHost runs an interactive toy host until the user quits or ctx ends.
func (a *app) runHost(ctx context.Context, build func(tui.Options) closer) error {
	adapter, manual := a.newTilt()
	adapter.Start(ctx)
	defer adapter.Stop()

	player := a.newPlayer()
	defer player.Close()
	go func() {
		if err := player.Synth().Preload(); err != nil {
			a.logger.Debug("preload failed", "error", err)
		}
	}()

	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	model := build(tui.Options{
		Config:    a.cfg,
		Adapter:   adapter,
		Manual:    manual,
		Player:    player,
		Store:     a.store,
		SessionID: uuid.NewString(),
		Logger:    a.logger,
		Width:     width,
		Height:    height,
	})
	defer model.Close()

	err := tui.Run(model, tea.WithContext(ctx))
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
