package backup

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orcamenta/orcamenta/internal/platform/httpx"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Export(r.Context())
	if err != nil {
		h.logger.Error("export backup failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, snap)
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	var snap Snapshot
	if err := httpx.DecodeJSON(r, &snap); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}

	if err := h.service.Restore(r.Context(), &snap); err != nil {
		if errors.Is(err, ErrVersionMismatch) {
			httpx.Problem(w, http.StatusUnprocessableEntity, "Unsupported Version", err.Error())
			return
		}
		h.logger.Error("restore backup failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/backup", func(r chi.Router) {
		r.Get("/", h.Export)
		r.Post("/restore", h.Restore)
	})
}
