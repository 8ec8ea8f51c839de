package service

import (
	"github.com/okian/debtfx/internal/adapters/render"
	repository "github.com/okian/debtfx/internal/adapters/repository"
	model "github.com/okian/debtfx/internal/domain/model"
	"github.com/okian/debtfx/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFiles sets the three input paths.
func WithFiles(files Files) Option {
	return func(s *Service) {
		if files.CountryCodes != "" {
			s.files.CountryCodes = files.CountryCodes
		}
		if files.ExchangeRates != "" {
			s.files.ExchangeRates = files.ExchangeRates
		}
		if files.Debt != "" {
			s.files.Debt = files.Debt
		}
	}
}

// WithYears narrows or widens the year range; the economy set stays G18.
func WithYears(first, last int) Option {
	return func(s *Service) {
		if first > 0 && first <= last {
			s.scope.First, s.scope.Last = first, last
		}
	}
}

// WithEuroAdoptionYear moves the first year of Euro membership.
func WithEuroAdoptionYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.adoption = year
		}
	}
}

// WithPlotter sets the frame renderer.
func WithPlotter(p *render.Plotter) Option {
	return func(s *Service) {
		if p != nil {
			s.plotter = p
		}
	}
}

// WithWorkers sets how many frames render concurrently. Zero means one per
// CPU.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.workers = n
		}
	}
}

// WithStore sets where rendered frames are published.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithScope replaces the economy set and year range.
func WithScope(scope model.Scope) Option {
	return func(s *Service) {
		if len(scope.Economies) > 0 && scope.First <= scope.Last {
			s.scope = scope
		}
	}
}
