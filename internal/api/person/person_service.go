package person

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
	Search(ctx context.Context, prefix string, offset int) ([]types.PersonLite, error)
	GetByID(ctx context.Context, id int) (*types.PersonLite, error)
}

// ServiceOptions tunes paging and result caching.
type ServiceOptions struct {
	PageSize     int
	CacheTTL     time.Duration
	CacheCleanup time.Duration
}

type ServiceImpl struct {
	logger   *slog.Logger
	repo     Repository
	cache    *cache.Cache
	metrics  *metrics.AppMetrics
	pageSize int
}

func NewPersonService(repo Repository, opts ServiceOptions, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:   logger,
		repo:     repo,
		cache:    cache.New(opts.CacheTTL, opts.CacheCleanup),
		metrics:  m,
		pageSize: opts.PageSize,
	}
}

func (s *ServiceImpl) Search(ctx context.Context, prefix string, offset int) ([]types.PersonLite, error) {
	ctx, span := otel.Tracer("PersonService").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("search.prefix", prefix),
		attribute.Int("search.offset", offset),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Search"), slog.String("prefix", prefix))
	start := time.Now()

	cacheKey := fmt.Sprintf("person:%s:%d", strings.ToLower(prefix), offset)
	span.SetAttributes(attribute.String("cache.key", cacheKey))
	if cached, found := s.cache.Get(cacheKey); found {
		l.DebugContext(ctx, "Person search served from cache")
		s.metrics.RecordSearch(ctx, "person", true, start)
		span.SetStatus(codes.Ok, "Cache hit")
		return cached.([]types.PersonLite), nil
	}

	people, err := s.repo.SearchByNamePrefix(ctx, prefix, s.pageSize, offset)
	if err != nil {
		l.ErrorContext(ctx, "Failed to search people", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to search people")
		return nil, fmt.Errorf("error searching people: %w", err)
	}

	s.cache.Set(cacheKey, people, cache.DefaultExpiration)
	s.metrics.RecordSearch(ctx, "person", false, start)
	l.InfoContext(ctx, "People search complete", slog.Int("count", len(people)))
	span.SetStatus(codes.Ok, "People searched")
	return people, nil
}

func (s *ServiceImpl) GetByID(ctx context.Context, id int) (*types.PersonLite, error) {
	ctx, span := otel.Tracer("PersonService").Start(ctx, "GetByID", trace.WithAttributes(
		attribute.Int("person.id", id),
	))
	defer span.End()

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to load person")
		return nil, fmt.Errorf("error loading person: %w", err)
	}
	span.SetStatus(codes.Ok, "Person loaded")
	return p, nil
}
