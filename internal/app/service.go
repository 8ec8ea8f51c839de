// Package service runs the debt vs purchasing power pipeline: load the
// inputs, reshape and scale them, then build and render one frame per year.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/okian/debtfx/internal/adapters/mq/worker"
	"github.com/okian/debtfx/internal/adapters/render"
	repository "github.com/okian/debtfx/internal/adapters/repository"
	"github.com/okian/debtfx/internal/adapters/source"
	"github.com/okian/debtfx/internal/domain/debt"
	"github.com/okian/debtfx/internal/domain/exchange"
	"github.com/okian/debtfx/internal/domain/frame"
	model "github.com/okian/debtfx/internal/domain/model"
	"github.com/okian/debtfx/internal/domain/reference"
	"github.com/okian/debtfx/internal/domain/scale"
	"github.com/okian/debtfx/pkg/logger"
	"github.com/okian/debtfx/pkg/metrics"
)

// Interpolated cell patched after scaling.
const (
	patchCode = model.IND
	patchYear = 1997
)

// Files are the three input paths.
type Files struct {
	CountryCodes  string
	ExchangeRates string
	Debt          string
}

// Dataset is the prepared, immutable input of the frame builder.
type Dataset struct {
	Lookup   *reference.Lookup
	RawRates *model.Table
	RawDebt  *model.Table
	Rates    *model.Table
	Debt     *model.Table
	// Order is the per-frame iteration order of economies.
	Order []string
}

// Result holds everything one run produced.
type Result struct {
	Dataset  *Dataset
	Frames   []frame.Frame
	Rendered []*render.Rendered
}

// Service wires the pipeline stages.
type Service struct {
	files    Files
	scope    model.Scope
	adoption int
	plotter  *render.Plotter
	workers  int
	store    repository.Store
	runID    string
	logger   logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		files: Files{
			CountryCodes:  "data/country_codes_ISO_3166-1_alpha-3.xlsx",
			ExchangeRates: "data/exchange_rates.csv",
			Debt:          "data/central_government_debt.xlsx",
		},
		scope:    model.DefaultScope(),
		adoption: frame.EuroAdoptionYear,
		workers:  1,
		runID:    uuid.NewString(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("pipeline").With(logger.String("run_id", s.runID))
	if s.plotter == nil {
		s.plotter = render.New(render.WithLogger(s.logger))
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	return s
}

// RunID identifies this service's runs in logs.
func (s *Service) RunID() string { return s.runID }

// Store returns where frames are published.
func (s *Service) Store() repository.Store { return s.store }

// Prepare loads the inputs and produces the scaled tables. Any failure
// aborts the whole run.
func (s *Service) Prepare(ctx context.Context) (*Dataset, error) {
	codes, err := s.read(ctx, "country_codes", s.files.CountryCodes)
	if err != nil {
		return nil, err
	}
	lookup, err := reference.Build(codes)
	if err != nil {
		return nil, fmt.Errorf("%w: country codes: %w", ErrTransform, err)
	}

	rateSheet, err := s.read(ctx, "exchange_rates", s.files.ExchangeRates)
	if err != nil {
		return nil, err
	}
	obs, err := exchange.Observations(rateSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange rates: %w", ErrTransform, err)
	}
	rawRates, err := exchange.Pivot(obs, lookup, exchange.WithScope(s.scope))
	if err != nil {
		recordLookupFailure(err)
		return nil, fmt.Errorf("%w: exchange rates: %w", ErrTransform, err)
	}

	debtSheet, err := s.read(ctx, "debt", s.files.Debt)
	if err != nil {
		return nil, err
	}
	rawDebt, err := debt.Reindex(debtSheet, lookup, debt.WithScope(s.scope))
	if err != nil {
		recordLookupFailure(err)
		return nil, fmt.Errorf("%w: debt: %w", ErrTransform, err)
	}

	rates, err := scale.MinMax(rawRates)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange rates: %w", ErrScale, err)
	}
	metrics.RecordColumnsScaled("exchange_rates", len(rates.Years()))
	scaledDebt, err := scale.MinMax(rawDebt)
	if err != nil {
		return nil, fmt.Errorf("%w: debt: %w", ErrScale, err)
	}
	metrics.RecordColumnsScaled("debt", len(scaledDebt.Years()))

	if canPatch(scaledDebt) {
		if err := scale.Midpoint(scaledDebt, patchCode, patchYear); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScale, err)
		}
	} else {
		s.logger.Debug(ctx, "interpolation skipped", logger.String("code", patchCode), logger.Int("year", patchYear))
	}

	ds := &Dataset{
		Lookup:   lookup,
		RawRates: rawRates,
		RawDebt:  rawDebt,
		Rates:    rates,
		Debt:     scaledDebt,
		Order:    frame.Order(lookup.Codes(), rates),
	}
	s.logger.Info(ctx, "dataset prepared",
		logger.Int("economies", len(ds.Order)),
		logger.Int("years", len(rates.Years())),
		logger.Strings("order", ds.Order))
	return ds, nil
}

// Frames builds one frame per scope year in increasing order.
func (s *Service) Frames(ctx context.Context, ds *Dataset) ([]frame.Frame, error) {
	b, err := frame.NewBuilder(ds.Debt, ds.Rates, ds.Order,
		frame.WithYears(s.scope.Years()),
		frame.WithEuroAdoptionYear(s.adoption))
	if err != nil {
		return nil, fmt.Errorf("%w: frames: %w", ErrTransform, err)
	}
	var out []frame.Frame
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		f, ok := b.Next()
		if !ok {
			return out, nil
		}
		for _, code := range f.Skipped {
			metrics.RecordCountrySkipped(code)
		}
		if len(f.Skipped) > 0 {
			s.logger.Debug(ctx, "economies skipped", logger.Int("year", f.Year), logger.Strings("codes", f.Skipped))
		}
		out = append(out, f)
	}
}

// Run prepares the dataset, builds the frames and renders them.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	ds, err := s.Prepare(ctx)
	if err != nil {
		return nil, err
	}
	frames, err := s.Frames(ctx, ds)
	if err != nil {
		return nil, err
	}
	rendered, err := worker.NewPool(s.workers, s.plotter, s.logger.Named("render")).Render(ctx, frames)
	if err != nil {
		return nil, err
	}
	metrics.RecordRun(time.Since(start))
	s.logger.Info(ctx, "frames rendered", logger.Int("frames", len(rendered)), logger.String("elapsed", time.Since(start).String()))
	return &Result{Dataset: ds, Frames: frames, Rendered: rendered}, nil
}

// Publish stores the rendered frames for serving.
func (s *Service) Publish(ctx context.Context, res *Result) error {
	entries := make([]repository.Entry, 0, len(res.Rendered))
	for i, r := range res.Rendered {
		body, err := r.PNG()
		if err != nil {
			return err
		}
		entries = append(entries, repository.Entry{Summary: res.Frames[i].Summary(), PNG: body})
	}
	if err := s.store.Publish(ctx, entries); err != nil {
		return err
	}
	s.logger.Info(ctx, "frames published", logger.Int("frames", len(entries)))
	return nil
}

// Play calls fn for each frame in order, waiting pause between frames.
// It returns early if ctx is cancelled or fn fails.
func (s *Service) Play(ctx context.Context, frames []frame.Frame, pause time.Duration, fn func(frame.Frame) error) error {
	for i, f := range frames {
		if err := fn(f); err != nil {
			return err
		}
		if i == len(frames)-1 || pause <= 0 {
			continue
		}
		t := time.NewTimer(pause)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}

func (s *Service) read(ctx context.Context, kind, path string) (model.Sheet, error) {
	if err := ctx.Err(); err != nil {
		return model.Sheet{}, err
	}
	sheet, err := source.Read(path)
	if err != nil {
		return model.Sheet{}, fmt.Errorf("%w: %s: %w", ErrLoad, kind, err)
	}
	metrics.RecordRowsLoaded(kind, len(sheet.Rows))
	s.logger.Debug(ctx, "input loaded", logger.String("kind", kind), logger.String("path", path), logger.Int("rows", len(sheet.Rows)))
	return sheet, nil
}

// canPatch reports whether the interpolated cell and both neighbours are
// inside the table.
func canPatch(t *model.Table) bool {
	return t.Has(patchCode) && t.HasYear(patchYear-1) && t.HasYear(patchYear) && t.HasYear(patchYear+1)
}

func recordLookupFailure(err error) {
	switch {
	case errors.Is(err, reference.ErrUnknownCode):
		metrics.RecordLookupFailure("code")
	case errors.Is(err, reference.ErrUnknownName):
		metrics.RecordLookupFailure("name")
	}
}
