package person

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

var _ Repository = (*PostgresPersonRepository)(nil)

type Repository interface {
	// SearchByNamePrefix returns people whose first, last, nick or
	// "first last" name starts with prefix, ordered by last then first name.
	SearchByNamePrefix(ctx context.Context, prefix string, limit, offset int) ([]types.PersonLite, error)
	FindByID(ctx context.Context, id int) (*types.PersonLite, error)
}

type PostgresPersonRepository struct {
	logger  *slog.Logger
	db      database.Querier
	metrics *metrics.AppMetrics
}

func NewPersonRepository(db database.Querier, m *metrics.AppMetrics, logger *slog.Logger) *PostgresPersonRepository {
	return &PostgresPersonRepository{
		logger:  logger,
		db:      db,
		metrics: m,
	}
}

const searchPeopleQuery = `
        SELECT id, first_name, middle_name, last_name, nick_name, gender
        FROM people
        WHERE LOWER(first_name) LIKE $1
           OR LOWER(last_name) LIKE $1
           OR LOWER(nick_name) LIKE $1
           OR LOWER(first_name || ' ' || last_name) LIKE $1
        ORDER BY last_name, first_name, middle_name
        LIMIT $2 OFFSET $3`

func (r *PostgresPersonRepository) SearchByNamePrefix(ctx context.Context, prefix string, limit, offset int) ([]types.PersonLite, error) {
	ctx, span := otel.Tracer("PersonRepo").Start(ctx, "SearchByNamePrefix", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "people"),
		attribute.String("search.prefix", prefix),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SearchByNamePrefix"), slog.String("prefix", prefix))
	l.DebugContext(ctx, "Searching people by name prefix")

	start := time.Now()
	rows, err := r.db.Query(ctx, searchPeopleQuery, database.PrefixPattern(prefix), limit, offset)
	if err != nil {
		r.metrics.RecordQuery(ctx, "people", start, err)
		l.ErrorContext(ctx, "Failed to query people", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error searching people: %w", err)
	}
	defer rows.Close()

	people := []types.PersonLite{}
	for rows.Next() {
		p, err := scanPersonLite(rows)
		if err != nil {
			r.metrics.RecordQuery(ctx, "people", start, err)
			l.ErrorContext(ctx, "Failed to scan person row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning person: %w", err)
		}
		people = append(people, p)
	}
	err = rows.Err()
	r.metrics.RecordQuery(ctx, "people", start, err)
	if err != nil {
		l.ErrorContext(ctx, "Error iterating person rows", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("database error reading people: %w", err)
	}

	l.DebugContext(ctx, "People search complete", slog.Int("count", len(people)))
	span.SetStatus(codes.Ok, "People fetched")
	return people, nil
}

func (r *PostgresPersonRepository) FindByID(ctx context.Context, id int) (*types.PersonLite, error) {
	ctx, span := otel.Tracer("PersonRepo").Start(ctx, "FindByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "people"),
		attribute.Int("person.id", id),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "FindByID"), slog.Int("personID", id))

	query := `
        SELECT id, first_name, middle_name, last_name, nick_name, gender
        FROM people
        WHERE id = $1`

	start := time.Now()
	p, err := scanPersonLite(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		r.metrics.RecordQuery(ctx, "people", start, nil)
		l.DebugContext(ctx, "Person not found")
		span.SetStatus(codes.Error, "Person not found")
		return nil, fmt.Errorf("person %d: %w", id, api.ErrNotFound)
	}
	r.metrics.RecordQuery(ctx, "people", start, err)
	if err != nil {
		l.ErrorContext(ctx, "Failed to load person", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error loading person: %w", err)
	}

	span.SetStatus(codes.Ok, "Person fetched")
	return &p, nil
}

func scanPersonLite(row pgx.Row) (types.PersonLite, error) {
	var (
		id                                        int
		firstName, middleName, lastName, nickName string
		gender                                    string
	)
	if err := row.Scan(&id, &firstName, &middleName, &lastName, &nickName, &gender); err != nil {
		return types.PersonLite{}, err
	}
	return types.PersonLite{
		Id:     id,
		Name:   types.BuildFullName(firstName, middleName, lastName, nickName),
		Gender: types.GenderName(gender),
	}, nil
}
