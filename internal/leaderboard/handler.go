package leaderboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vantage-crm/vantage-crm/internal/platform/httpx"
)

// Handler exposes the leaderboard endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a leaderboard Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes attaches leaderboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/leaderboard", h.Top)
}

func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.Top(r.Context())
	if err != nil {
		h.logger.Error("load leaderboard failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, board)
}
