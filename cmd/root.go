package main

import (
	"fmt"
	"io"

	"github.com/okian/debtfx/internal/adapters/render"
	service "github.com/okian/debtfx/internal/app"
	"github.com/okian/debtfx/internal/config"
	"github.com/okian/debtfx/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"
)

// cli carries state shared by the subcommands once the root pre-run has
// loaded configuration.
type cli struct {
	cfg *config.Config
	log logger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "debtfx",
		Short: "Animate G18 government debt against purchasing power",
		Long: `debtfx draws one scatter frame per year from 1994 to 2021: scaled central
government debt on the x axis, scaled USD purchasing power of each currency
on the y axis. USA, China and Brazil leave a trail; a dashed line marks the
Euro rate across the members' debt band from 1998.

INPUTS (under --data-dir):

  country_codes_ISO_3166-1_alpha-3.xlsx   code and country name
  exchange_rates.csv                      LOCATION, TIME, Value
  central_government_debt.xlsx            one row per country, one column per year

QUICK START:

  $ debtfx sample                # write a synthetic dataset to ./data
  $ debtfx render                # write debt_vs_purchasing_power.gif
  $ debtfx serve --addr :9080    # watch it in a browser

CONFIGURATION:

  Defaults, then the YAML file named by DEBTFX_CONFIG, then DEBTFX_* environment
  variables (DEBTFX_FRAME_PAUSE_MS=250), then flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return logger.Sync()
		},
	}
	pf := root.PersistentFlags()
	pf.String("data-dir", "", "directory holding the input files")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.Bool("log-json", false, "log JSON lines")

	root.AddCommand(newRenderCmd(c), newServeCmd(c), newSampleCmd(c))
	return root
}

// init loads configuration, applies flag overrides and starts logging.
func (c *cli) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fs := cmd.Flags()
	overrideString(fs, "data-dir", &cfg.DataDir)
	overrideString(fs, "log-level", &cfg.LogLevel)
	overrideBool(fs, "log-json", &cfg.LogJSON)
	c.cfg = cfg

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithJSON(cfg.LogJSON)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.log = logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		c.log.Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}

// service builds the pipeline from the loaded configuration.
func (c *cli) service() *service.Service {
	plotter := render.New(
		render.WithSize(vg.Length(c.cfg.WidthIn)*vg.Inch, vg.Length(c.cfg.HeightIn)*vg.Inch),
		render.WithDPI(c.cfg.DPI),
		render.WithLogger(c.log.Named("render")),
	)
	return service.New(
		service.WithLogger(c.log),
		service.WithFiles(service.Files{
			CountryCodes:  c.cfg.CountryCodesPath(),
			ExchangeRates: c.cfg.ExchangeRatesPath(),
			Debt:          c.cfg.DebtPath(),
		}),
		service.WithYears(c.cfg.FirstYear, c.cfg.LastYear),
		service.WithEuroAdoptionYear(c.cfg.EuroAdoptionYear),
		service.WithPlotter(plotter),
		service.WithWorkers(c.cfg.RenderWorkers),
	)
}

func overrideString(fs *pflag.FlagSet, name string, dst *string) {
	if fs.Changed(name) {
		*dst, _ = fs.GetString(name)
	}
}

func overrideBool(fs *pflag.FlagSet, name string, dst *bool) {
	if fs.Changed(name) {
		*dst, _ = fs.GetBool(name)
	}
}

func overrideInt(fs *pflag.FlagSet, name string, dst *int) {
	if fs.Changed(name) {
		*dst, _ = fs.GetInt(name)
	}
}

func overrideFloat(fs *pflag.FlagSet, name string, dst *float64) {
	if fs.Changed(name) {
		*dst, _ = fs.GetFloat64(name)
	}
}

// printf writes to w, dropping the error like fmt.Print on a terminal.
func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
