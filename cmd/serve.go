package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/okian/debtfx/internal/adapters/http/api"
	"github.com/okian/debtfx/internal/adapters/http/site"
	"github.com/okian/debtfx/internal/adapters/http/swagger"
	"github.com/okian/debtfx/internal/adapters/repository"
	"github.com/okian/debtfx/pkg/logger"
	"github.com/spf13/cobra"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Render the frames and serve them to a browser",
		Long: `Serve runs the same pipeline as render, keeps the frames in memory and
serves a viewer at / that steps through them at the frame pause and stops
on the last year.

ENDPOINTS:

  GET /                   viewer
  GET /frames             frame list and pause
  GET /frames/{year}.png  one frame
  GET /healthz            ok once frames are published
  GET /metrics            Prometheus metrics
  GET /api-docs           API documentation
  GET /openapi.yaml       OpenAPI document`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fs := cmd.Flags()
			overrideString(fs, "addr", &c.cfg.Addr)
			overrideInt(fs, "pause", &c.cfg.FramePauseMS)
			overrideInt(fs, "first-year", &c.cfg.FirstYear)
			overrideInt(fs, "last-year", &c.cfg.LastYear)
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			return c.serve(cmd)
		},
	}
	f := cmd.Flags()
	f.String("addr", "", "listen address")
	f.Int("pause", 0, "pause between frames in milliseconds")
	f.Int("first-year", 0, "first year to draw")
	f.Int("last-year", 0, "last year to draw")
	return cmd
}

func (c *cli) serve(cmd *cobra.Command) error {
	ctx := cmd.Context()
	svc := c.service()

	res, err := svc.Run(ctx)
	if err != nil {
		return err
	}
	if err := svc.Publish(ctx, res); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              c.cfg.Addr,
		Handler:           newMux(ctx, svc.Store(), c.cfg.Pause()),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		c.log.Info(ctx, "starting HTTP server", logger.String("addr", c.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	printf(cmd.OutOrStdout(), "%s serving %d frames on %s\n", color.GreenString("✓"), len(res.Rendered), c.cfg.Addr)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}
	c.log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		c.log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	c.log.Info(ctx, "server stopped")
	return nil
}

// newMux wires the viewer, the frame API and the API docs.
func newMux(ctx context.Context, frames repository.Store, pause time.Duration) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(frames, api.WithPause(pause)).Register(ctx, mux)
	site.Register(ctx, mux)
	return mux
}
