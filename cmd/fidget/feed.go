package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-fidget/internal/tilt"
)

const feedPath = "/tilt"

var (
	flagFeedListen    string
	flagFeedAmplitude float64
	flagFeedPeriod    time.Duration
	flagFeedRate      float64
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Serve a synthetic tilt feed over websocket",
	Long: `Stream a gentle wobble in the same JSON format a phone orientation
bridge sends, so the tilt path can be exercised without hardware.

Each client gets its own clock starting at connect time.

Examples:
  fidget feed
  fidget feed --listen :9000 --amplitude 0.9 --period 2s

Then, in another terminal:
  fidget --tilt ws://localhost:8765/tilt`,
	Args: cobra.NoArgs,
	RunE: runFeed,
}

func init() {
	def := tilt.DefaultFeedConfig()
	feedCmd.Flags().StringVar(&flagFeedListen, "listen", ":8765", "HTTP listen address (host:port)")
	feedCmd.Flags().Float64Var(&flagFeedAmplitude, "amplitude", def.Amplitude, "Peak tilt per axis, in (0, 1]")
	feedCmd.Flags().DurationVar(&flagFeedPeriod, "period", def.Period, "Duration of one full x swing")
	feedCmd.Flags().Float64Var(&flagFeedRate, "rate", def.Rate, "Messages per second")
}

func runFeed(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false, false)
	if err != nil {
		return err
	}
	defer a.Close()

	mux := http.NewServeMux()
	mux.Handle(feedPath, tilt.NewFeedServer(tilt.FeedConfig{
		Amplitude: flagFeedAmplitude,
		Period:    flagFeedPeriod,
		Rate:      flagFeedRate,
	}, a.logger))

	srv := &http.Server{
		Addr:              flagFeedListen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Tilt feed on ws://localhost:%s%s\n", portOf(flagFeedListen), feedPath)
	return serveHTTP(cmd.Context(), srv, a)
}

// serveHTTP runs srv until ctx is canceled or the listener fails.
func serveHTTP(ctx context.Context, srv *http.Server, a *app) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("serving tilt feed", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("feed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.logger.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
