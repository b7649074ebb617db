package tracer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/FACorreiaa/go-typeahead/app/observability/metrics"
)

func TestInitTracingAndMetrics(t *testing.T) {
	providers, err := InitTracingAndMetrics("go-typeahead-test")
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	m, err := metrics.New(otel.GetMeterProvider().Meter("test"))
	require.NoError(t, err)
	m.SearchRequestsTotal.Add(context.Background(), 1)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	providers.MetricsHandler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "search_requests_total")
}
