package metrics

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	SearchRequestsTotal    metric.Int64Counter
	SearchDurationSeconds  metric.Float64Histogram
	SearchCacheHitsTotal   metric.Int64Counter
	DbQueryDurationSeconds metric.Float64Histogram
	DbQueryErrorsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates the instruments on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.SearchRequestsTotal, err = meter.Int64Counter(
		"search_requests_total",
		metric.WithDescription("Total number of typeahead search requests served"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("search_requests_total: %w", err)
	}

	m.SearchDurationSeconds, err = meter.Float64Histogram(
		"search_duration_seconds",
		metric.WithDescription("Duration of typeahead searches in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("search_duration_seconds: %w", err)
	}

	m.SearchCacheHitsTotal, err = meter.Int64Counter(
		"search_cache_hits_total",
		metric.WithDescription("Searches answered from the result cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("search_cache_hits_total: %w", err)
	}

	m.DbQueryDurationSeconds, err = meter.Float64Histogram(
		"db_query_duration_seconds",
		metric.WithDescription("Duration of database queries in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("db_query_duration_seconds: %w", err)
	}

	m.DbQueryErrorsTotal, err = meter.Int64Counter(
		"db_query_errors_total",
		metric.WithDescription("Total number of database query errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("db_query_errors_total: %w", err)
	}
	return m, nil
}

// InitAppMetrics initializes the global instruments once from the global MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("go-typeahead"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		appMetrics = m
	})
}

// Get returns the global instruments. InitAppMetrics must be called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// RecordSearch counts one search for the given kind and records its latency.
func (m *AppMetrics) RecordSearch(ctx context.Context, kind string, cached bool, start time.Time) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("kind", kind))
	m.SearchRequestsTotal.Add(ctx, 1, attrs)
	m.SearchDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if cached {
		m.SearchCacheHitsTotal.Add(ctx, 1, attrs)
	}
}

// RecordQuery records a database query's latency and, if err is set, an error.
func (m *AppMetrics) RecordQuery(ctx context.Context, table string, start time.Time, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("db.sql.table", table))
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}
