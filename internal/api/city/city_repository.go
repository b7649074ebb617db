package city

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-typeahead/app/db"
	"github.com/FACorreiaa/go-typeahead/app/observability/metrics"
	"github.com/FACorreiaa/go-typeahead/internal/api"
	"github.com/FACorreiaa/go-typeahead/internal/types"
)

var _ CityRepository = (*PostgresCityRepository)(nil)

type CityRepository interface {
	FindCitiesByPrefix(ctx context.Context, prefix string, limit, offset int) ([]types.CityLite, error)
	FindCityByID(ctx context.Context, id int) (*types.CityLite, error)
}

type PostgresCityRepository struct {
	logger  *slog.Logger
	db      database.Querier
	metrics *metrics.AppMetrics
}

func NewCityRepository(db database.Querier, m *metrics.AppMetrics, logger *slog.Logger) *PostgresCityRepository {
	return &PostgresCityRepository{
		logger:  logger,
		db:      db,
		metrics: m,
	}
}

func (r *PostgresCityRepository) FindCitiesByPrefix(ctx context.Context, prefix string, limit, offset int) ([]types.CityLite, error) {
	ctx, span := otel.Tracer("CityRepo").Start(ctx, "FindCitiesByPrefix", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "city_view"),
		attribute.String("search.prefix", prefix),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FindCitiesByPrefix"), slog.String("prefix", prefix))
	l.DebugContext(ctx, "Searching cities by prefix")

	query := `
        SELECT city_id, city_name, region_code, country_code
        FROM city_view
        WHERE LOWER(city_name) LIKE $1
        ORDER BY city_name, country_code, region_code
        LIMIT $2 OFFSET $3`

	start := time.Now()
	rows, err := r.db.Query(ctx, query, database.PrefixPattern(prefix), limit, offset)
	if err != nil {
		r.metrics.RecordQuery(ctx, "city_view", start, err)
		l.ErrorContext(ctx, "Failed to query cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error searching cities: %w", err)
	}
	defer rows.Close()

	cities := []types.CityLite{}
	for rows.Next() {
		var c types.CityLite
		if err := rows.Scan(&c.Id, &c.Name, &c.RegionAbbr, &c.CountryAbbr); err != nil {
			r.metrics.RecordQuery(ctx, "city_view", start, err)
			l.ErrorContext(ctx, "Failed to scan city row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning city: %w", err)
		}
		cities = append(cities, c)
	}
	err = rows.Err()
	r.metrics.RecordQuery(ctx, "city_view", start, err)
	if err != nil {
		l.ErrorContext(ctx, "Error iterating city rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading cities: %w", err)
	}

	l.DebugContext(ctx, "City search complete", slog.Int("count", len(cities)))
	span.SetStatus(codes.Ok, "Cities fetched")
	return cities, nil
}

func (r *PostgresCityRepository) FindCityByID(ctx context.Context, id int) (*types.CityLite, error) {
	ctx, span := otel.Tracer("CityRepo").Start(ctx, "FindCityByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "city_view"),
		attribute.Int("city.id", id),
	))
	defer span.End()

	query := `
        SELECT city_id, city_name, region_code, country_code
        FROM city_view
        WHERE city_id = $1`

	start := time.Now()
	var c types.CityLite
	err := r.db.QueryRow(ctx, query, id).Scan(&c.Id, &c.Name, &c.RegionAbbr, &c.CountryAbbr)
	if errors.Is(err, pgx.ErrNoRows) {
		r.metrics.RecordQuery(ctx, "city_view", start, nil)
		span.SetStatus(codes.Error, "City not found")
		return nil, fmt.Errorf("city %d: %w", id, api.ErrNotFound)
	}
	r.metrics.RecordQuery(ctx, "city_view", start, err)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to load city", slog.Int("cityID", id), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error loading city: %w", err)
	}

	span.SetStatus(codes.Ok, "City fetched")
	return &c, nil
}
