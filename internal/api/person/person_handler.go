package person

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

func NewPersonHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// Search handles GET /person/json/search?prefix=&offset=
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PersonHandler").Start(r.Context(), "Search")
	defer span.End()

	prefix := api.PrefixParam(r)
	offset := api.OffsetParam(r)
	l := h.logger.With(slog.String("method", "Search"), slog.String("prefix", prefix))

	people, err := h.service.Search(ctx, prefix, offset)
	if err != nil {
		l.ErrorContext(ctx, "Failed to search people", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error loading people")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, people)
	span.SetStatus(codes.Ok, "People returned")
}

// GetByID handles GET /person/json/{personID}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PersonHandler").Start(r.Context(), "GetByID")
	defer span.End()

	id, err := strconv.Atoi(chi.URLParam(r, "personID"))
	if err != nil {
		span.SetStatus(codes.Error, "Invalid person id")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Could not parse person id")
		return
	}

	p, err := h.service.GetByID(ctx, id)
	if errors.Is(err, api.ErrNotFound) {
		span.SetStatus(codes.Error, "Person not found")
		api.ErrorResponse(w, r, http.StatusNotFound, "Person not found")
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to load person", slog.Int("personID", id), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Error loading person")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, p)
	span.SetStatus(codes.Ok, "Person returned")
}
