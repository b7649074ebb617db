package container

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	database "github.com/FACorreiaa/go-typeahead/app/db"
	"github.com/FACorreiaa/go-typeahead/app/observability/metrics"
	"github.com/FACorreiaa/go-typeahead/config"
	"github.com/FACorreiaa/go-typeahead/internal/api/city"
	"github.com/FACorreiaa/go-typeahead/internal/api/person"
)

var errDatabaseNotReady = errors.New("database not ready after waiting")

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *slog.Logger
	Pool          *pgxpool.Pool
	PersonHandler *person.Handler
	CityHandler   *city.Handler
}

// NewContainer opens the database pool and wires repositories, services and
// handlers on top of it.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	if !database.WaitForDB(ctx, pool, logger) {
		pool.Close()
		return nil, errDatabaseNotReady
	}

	return New(cfg, pool, metrics.Get(), logger), nil
}

// New wires the handlers on an existing querier. Tests pass a pgxmock pool.
func New(cfg *config.Config, db database.Querier, m *metrics.AppMetrics, logger *slog.Logger) *Container {
	c := &Container{Config: cfg, Logger: logger}
	if pool, ok := db.(*pgxpool.Pool); ok {
		c.Pool = pool
	}

	personRepo := person.NewPersonRepository(db, m, logger)
	personService := person.NewPersonService(personRepo, person.ServiceOptions{
		PageSize:     cfg.Search.PageSize,
		CacheTTL:     cfg.Search.CacheTTL,
		CacheCleanup: cfg.Search.CacheCleanup,
	}, m, logger)
	c.PersonHandler = person.NewPersonHandler(personService, logger)

	cityRepo := city.NewCityRepository(db, m, logger)
	cityService := city.NewCityService(cityRepo, city.ServiceOptions{
		PageSize:     cfg.Search.PageSize,
		CacheTTL:     cfg.Search.CacheTTL,
		CacheCleanup: cfg.Search.CacheCleanup,
	}, m, logger)
	c.CityHandler = city.NewCityHandler(cityService, logger)

	return c
}

// Close releases the database pool.
func (c *Container) Close() {
	if c.Pool != nil {
		c.Pool.Close()
	}
}
