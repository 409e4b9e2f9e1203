package main

import (
	"fmt"
	"io"
	"os"

	"github.com/phanxgames/arbor/raster"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single frame to PNG without opening a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			tree, _, err := plant(cfg, log)
			if err != nil {
				return err
			}

			at, _ := cmd.Flags().GetDuration("at")
			if !cmd.Flags().Changed("at") {
				at = cfg.Duration
			}
			out, _ := cmd.Flags().GetString("out")

			frame, err := raster.Render(tree, raster.Options{
				Width:  cfg.Width,
				Height: cfg.Height,
				At:     at,
				Ground: cfg.Ground,
			})
			if err != nil {
				return err
			}

			if err := writeImage(cmd.OutOrStdout(), out, frame); err != nil {
				return err
			}
			log.Info("frame rendered", "out", out, "at", at,
				"progress", frame.Stats.Progress, "fruits", frame.Stats.Fruit.Fruits)
			return nil
		},
	}
	cmd.Flags().Duration("at", 0, "Time since growth started (default: the full growth duration)")
	cmd.Flags().StringP("out", "o", "tree.png", `Output PNG path, or "-" for stdout`)
	cmd.Flags().Int("width", 0, "Image width")
	cmd.Flags().Int("height", 0, "Image height")
	cmd.Flags().Duration("duration", 0, "Growth duration")
	cmd.Flags().Uint64("seed", 0, "Noise seed")
	cmd.Flags().Bool("no-ground", false, "Leave out the grass strip")
	return cmd
}

func writeImage(stdout io.Writer, path string, frame *raster.Frame) error {
	if path == "-" {
		return raster.EncodePNG(stdout, frame.Image)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := raster.EncodePNG(f, frame.Image); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
