package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phanxgames/arbor"
	"github.com/phanxgames/arbor/internal/metrics"
	"github.com/phanxgames/arbor/screen"
	"github.com/spf13/cobra"
)

func newGrowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Open a window and grow the tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("fps") {
				cfg.ShowFPS, _ = flags.GetBool("fps")
			}
			if flags.Changed("metrics-addr") {
				cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
			}
			if flags.Changed("script") {
				cfg.ScriptFile, _ = flags.GetString("script")
			}
			debug, _ := flags.GetBool("debug")

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			tree, total, err := plant(cfg, log)
			if err != nil {
				return err
			}

			var ground *arbor.Ground
			if cfg.Ground {
				ground = arbor.NewGround()
			}
			game := screen.NewGame(tree, ground, log)
			game.Debug = debug
			game.ScreenshotDir = cfg.ScreenshotDir

			if cfg.ScriptFile != "" {
				script, err := screen.LoadScript(cfg.ScriptFile)
				if err != nil {
					return err
				}
				game.SetScript(script)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			var errCh <-chan error
			if cfg.MetricsAddr != "" {
				rec := metrics.NewRecorder()
				rec.SetTotal(total)
				game.OnFrame = rec.Observe
				errCh = serveMetrics(ctx, cfg.MetricsAddr, rec, log)
			}

			log.Info("growing", "instructions", total, "trees", max(len(cfg.Forest), 1), "duration", cfg.Duration)
			runErr := screen.Run(game, screen.RunConfig{
				Title:     cfg.Title,
				Width:     cfg.Width,
				Height:    cfg.Height,
				ShowFPS:   cfg.ShowFPS,
				Resizable: true,
			})
			cancel()
			if errCh != nil {
				if err := <-errCh; err != nil {
					runErr = errors.Join(runErr, err)
				}
			}
			return runErr
		},
	}
	cmd.Flags().Int("width", 0, "Window width")
	cmd.Flags().Int("height", 0, "Window height")
	cmd.Flags().Duration("duration", 0, "Growth duration")
	cmd.Flags().Uint64("seed", 0, "Noise seed")
	cmd.Flags().Bool("no-ground", false, "Leave out the grass strip")
	cmd.Flags().Bool("fps", false, "Show the FPS overlay")
	cmd.Flags().Bool("debug", false, "Print per-frame stats to stderr")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")
	cmd.Flags().String("script", "", "JSON frame script for unattended capture")
	return cmd
}

// serveMetrics runs the metrics server in the background. A server that
// stops before ctx is cancelled, such as one that cannot bind, is logged at
// once rather than when the window closes. The returned channel yields the
// server's final error.
func serveMetrics(ctx context.Context, addr string, rec *metrics.Recorder, log *slog.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		err := metrics.Serve(ctx, addr, rec, log)
		if err != nil && ctx.Err() == nil {
			log.Error("metrics server stopped", "addr", addr, "error", err)
		}
		errCh <- err
	}()
	return errCh
}
