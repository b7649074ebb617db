package city

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-typeahead/app/observability/metrics"
	"github.com/FACorreiaa/go-typeahead/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Search(ctx context.Context, prefix string, offset int) ([]types.CityLite, error)
	GetByID(ctx context.Context, id int) (*types.CityLite, error)
}

// ServiceOptions tunes paging and result caching.
type ServiceOptions struct {
	PageSize     int
	CacheTTL     time.Duration
	CacheCleanup time.Duration
}

type ServiceImpl struct {
	logger   *slog.Logger
	repo     CityRepository
	cache    *cache.Cache
	metrics  *metrics.AppMetrics
	pageSize int
}

func NewCityService(repo CityRepository, opts ServiceOptions, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		repo:     repo,
		cache:    cache.New(opts.CacheTTL, opts.CacheCleanup),
		metrics:  m,
		pageSize: opts.PageSize,
	}
}

func (s *ServiceImpl) Search(ctx context.Context, prefix string, offset int) ([]types.CityLite, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("search.prefix", prefix),
		attribute.Int("search.offset", offset),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Search"), slog.String("prefix", prefix))
	start := time.Now()

	cacheKey := fmt.Sprintf("city:%s:%d", strings.ToLower(prefix), offset)
	if cached, found := s.cache.Get(cacheKey); found {
		s.metrics.RecordSearch(ctx, "city", true, start)
		span.SetStatus(codes.Ok, "Cache hit")
		return cached.([]types.CityLite), nil
	}

	cities, err := s.repo.FindCitiesByPrefix(ctx, prefix, s.pageSize, offset)
	if err != nil {
		l.ErrorContext(ctx, "Failed to search cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to search cities")
		return nil, fmt.Errorf("error searching cities: %w", err)
	}

	s.cache.Set(cacheKey, cities, cache.DefaultExpiration)
	s.metrics.RecordSearch(ctx, "city", false, start)
	l.InfoContext(ctx, "City search complete", slog.Int("count", len(cities)))
	span.SetStatus(codes.Ok, "Cities searched")
	return cities, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, id int) (*types.CityLite, error) {
	ctx, span := otel.Tracer("CityService").Start(ctx, "GetByID", trace.WithAttributes(
		attribute.Int("city.id", id),
	))
	defer span.End()

	c, err := s.repo.FindCityByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load city")
		return nil, fmt.Errorf("error loading city: %w", err)
	}
	span.SetStatus(codes.Ok, "City loaded")
	return c, nil
}
