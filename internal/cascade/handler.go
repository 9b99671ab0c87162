package cascade

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/odyssey-console/internal/lookup"
	"github.com/odyssey-erp/odyssey-console/internal/platform/httpx"
)

// Lookups provides the parent collections a cascade resolves against.
type Lookups interface {
	Cities(ctx context.Context) ([]lookup.City, error)
	Provinces(ctx context.Context) ([]lookup.Province, error)
	Countries(ctx context.Context) ([]lookup.Country, error)
	Channels(ctx context.Context) ([]lookup.Channel, error)
}

// Handler serves cascade patches as JSON for in-form autofill.
type Handler struct {
	logger  *slog.Logger
	lookups Lookups
}

// NewHandler constructs the cascade handler.
func NewHandler(logger *slog.Logger, lookups Lookups) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, lookups: lookups}
}

// MountRoutes registers the cascade endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/cities/{id}", h.city)
	r.Get("/channels/{id}", h.channel)
}

func (h *Handler) city(w http.ResponseWriter, r *http.Request) {
	places, err := LoadPlaces(r.Context(), h.lookups)
	if err != nil {
		h.logger.Error("load cities for cascade", slog.Any("error", err))
		httpx.RespondError(w, fmt.Errorf("%w: cities could not be loaded", httpx.ErrUpstream))
		return
	}
	httpx.JSON(w, http.StatusOK, ResolveCity(chi.URLParam(r, "id"), places))
}

func (h *Handler) channel(w http.ResponseWriter, r *http.Request) {
	channels, err := h.lookups.Channels(r.Context())
	if err != nil {
		h.logger.Error("load channels for cascade", slog.Any("error", err))
		httpx.RespondError(w, fmt.Errorf("%w: channels could not be loaded", httpx.ErrUpstream))
		return
	}
	httpx.JSON(w, http.StatusOK, ResolveChannel(chi.URLParam(r, "id"), r.URL.Query().Get("sku"), channels))
}
