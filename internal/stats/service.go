package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/marcodallan/biblio/internal/platform/apperr"
	"github.com/marcodallan/biblio/internal/platform/constants"
)

// Service computes the library summary, optionally behind a short-TTL cache.
type Service struct {
	repo   Repository
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// Option configures optional Service behaviour.
type Option func(*Service)

// WithCache puts a snapshot cache with the given TTL in front of the store.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(service *Service) {
		service.cache = cache
		service.ttl = ttl
	}
}

// WithClock replaces the wall clock used for the overdue cutoff.
func WithClock(now func() time.Time) Option {
	return func(service *Service) {
		service.now = now
	}
}

func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	service := &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Summary returns the current library statistics.
//
// With a cache configured, a fresh snapshot is served without touching the
// store. A failing store degrades to a zero-value summary together with the
// error; cache failures are never fatal.
func (service *Service) Summary(context context.Context) (*Stats, error) {
	if service.cache != nil {
		cached, err := service.cache.Get(context)
		if err == nil {
			return cached, nil
		}
		if !apperr.IsCode(err, "NOT_FOUND") {
			service.logger.Warn("stats_cache_read_failed", slog.Any("error", err))
		}
	}

	summary, err := service.compute(context)
	if err != nil {
		service.logger.Warn("stats_degraded", slog.Any("error", err))
		return &Stats{TopBooks: []TopBook{}}, err
	}

	if service.cache != nil {
		if err := service.cache.Set(context, summary, service.ttl); err != nil {
			service.logger.Warn("stats_cache_write_failed", slog.Any("error", err))
		}
	}

	return summary, nil
}

func (service *Service) compute(context context.Context) (*Stats, error) {
	summary := &Stats{}
	var err error

	if summary.TotalBooks, err = service.repo.CountBooks(context); err != nil {
		return nil, err
	}
	if summary.AvailableBooks, err = service.repo.CountAvailableBooks(context); err != nil {
		return nil, err
	}
	if summary.ActiveLoans, err = service.repo.CountActiveLoans(context); err != nil {
		return nil, err
	}
	if summary.OverdueLoans, err = service.repo.CountOverdueLoans(context, service.now().UTC()); err != nil {
		return nil, err
	}
	if summary.ActiveMembers, err = service.repo.CountActiveMembers(context); err != nil {
		return nil, err
	}
	if summary.TopBooks, err = service.repo.TopBorrowedBooks(context, constants.TopBorrowedLimit); err != nil {
		return nil, err
	}
	if summary.TopBooks == nil {
		summary.TopBooks = []TopBook{}
	}

	return summary, nil
}
