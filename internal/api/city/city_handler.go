package city

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-typeahead/internal/api"
)

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewCityHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// Search handles GET /city/json/search?prefix=&offset=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "Search")
	defer span.End()

	prefix := api.TrimmedPrefixParam(r)
	l := h.logger.With(slog.String("method", "Search"), slog.String("prefix", prefix))

	cities, err := h.service.Search(ctx, prefix, api.OffsetParam(r))
	if err != nil {
		l.ErrorContext(ctx, "Failed to search cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error loading cities")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, cities)
	l.DebugContext(ctx, "Returned cities", slog.Int("count", len(cities)))
	span.SetStatus(codes.Ok, "Cities returned")
}

// GetByID handles GET /city/json/{cityID}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetByID")
	defer span.End()

	id, err := strconv.Atoi(chi.URLParam(r, "cityID"))
	if err != nil {
		span.SetStatus(codes.Error, "Invalid city id")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Error parsing cityId")
		return
	}

	c, err := h.service.GetByID(ctx, id)
	switch {
	case errors.Is(err, api.ErrNotFound):
		span.SetStatus(codes.Error, "City not found")
		api.ErrorResponse(w, r, http.StatusNotFound, "City not found")
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "Failed to load city", slog.Int("cityID", id), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error loading city")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, c)
	span.SetStatus(codes.Ok, "City returned")
}
