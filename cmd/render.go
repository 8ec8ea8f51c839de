package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/okian/debtfx/internal/adapters/render"
	"github.com/okian/debtfx/internal/domain/frame"
	"github.com/okian/debtfx/pkg/logger"
	"github.com/okian/debtfx/pkg/metrics"
	"github.com/spf13/cobra"
)

func newRenderCmd(c *cli) *cobra.Command {
	var play bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the animation to a GIF",
		Long: `Render reads the three input files, builds one frame per year and writes
an animated GIF that plays once. With --frames-dir each frame is also written
as <year>.png. With --play the per-year summaries are printed at the frame
pause instead of all at once.`,
		Example: `  debtfx render
  debtfx render --output out/debt.gif --frames-dir out/frames
  debtfx render --first-year 2000 --last-year 2010 --pause 250 --play`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			overrideString(fs, "output", &c.cfg.Output)
			overrideString(fs, "frames-dir", &c.cfg.FramesDir)
			overrideString(fs, "metrics-file", &c.cfg.MetricsFile)
			overrideInt(fs, "first-year", &c.cfg.FirstYear)
			overrideInt(fs, "last-year", &c.cfg.LastYear)
			overrideInt(fs, "pause", &c.cfg.FramePauseMS)
			overrideInt(fs, "dpi", &c.cfg.DPI)
			overrideInt(fs, "workers", &c.cfg.RenderWorkers)
			overrideFloat(fs, "width", &c.cfg.WidthIn)
			overrideFloat(fs, "height", &c.cfg.HeightIn)
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			return c.render(cmd, play)
		},
	}
	f := cmd.Flags()
	f.StringP("output", "o", "", "GIF output path")
	f.String("frames-dir", "", "also write one PNG per year into this directory")
	f.String("metrics-file", "", "write pipeline metrics in Prometheus text format")
	f.Int("first-year", 0, "first year to draw")
	f.Int("last-year", 0, "last year to draw")
	f.Int("pause", 0, "pause between frames in milliseconds")
	f.Int("dpi", 0, "output resolution")
	f.Int("workers", 0, "frames rasterized concurrently, 0 for one per CPU")
	f.Float64("width", 0, "figure width in inches")
	f.Float64("height", 0, "figure height in inches")
	f.BoolVar(&play, "play", false, "print frame summaries at the frame pause")
	return cmd
}

func (c *cli) render(cmd *cobra.Command, play bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	svc := c.service()

	res, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	pause := c.cfg.Pause()
	if !play {
		pause = 0
	}
	if err := svc.Play(ctx, res.Frames, pause, func(f frame.Frame) error {
		printSummary(out, f.Summary())
		return nil
	}); err != nil {
		return err
	}

	if err := render.WriteGIF(c.cfg.Output, res.Rendered, c.cfg.Pause()); err != nil {
		return err
	}
	printf(out, "%s wrote %s (%d frames)\n", color.GreenString("✓"), c.cfg.Output, len(res.Rendered))

	if c.cfg.FramesDir != "" {
		paths, err := render.WritePNGs(c.cfg.FramesDir, res.Rendered)
		if err != nil {
			return err
		}
		printf(out, "%s wrote %d frames to %s\n", color.GreenString("✓"), len(paths), c.cfg.FramesDir)
	}

	if c.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(c.cfg.MetricsFile); err != nil {
			return err
		}
		c.log.Debug(ctx, "metrics written", logger.String("path", c.cfg.MetricsFile))
	}
	return nil
}

// printSummary writes one line per frame: year, drawn count, Euro band and
// skipped economies.
func printSummary(w io.Writer, s frame.Summary) {
	faint := color.New(color.Faint)
	line := fmt.Sprintf("%s  %2d drawn", color.New(color.Bold).Sprint(s.Year), s.Drawn)
	if s.EuroMin != nil && s.EuroMax != nil {
		line += color.BlueString("  euro %.2f..%.2f", *s.EuroMin, *s.EuroMax)
	}
	if len(s.Skipped) > 0 {
		line += faint.Sprintf("  skipped %s", strings.Join(s.Skipped, ","))
	}
	printf(w, "%s\n", line)
}
