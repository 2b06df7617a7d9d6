package settings

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/orcamenta/orcamenta/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/quote", h.ShowQuoteSettings)
		r.Put("/quote", h.SaveQuoteSettings)
		r.Get("/company", h.ShowCompanyInfo)
		r.Put("/company", h.SaveCompanyInfo)
	})
}

func (h *Handler) ShowQuoteSettings(w http.ResponseWriter, r *http.Request) {
	qs, err := h.service.QuoteSettings(r.Context())
	if err != nil {
		h.logger.Error("load quote settings failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, qs)
}

func (h *Handler) SaveQuoteSettings(w http.ResponseWriter, r *http.Request) {
	var qs QuoteSettings
	if err := httpx.DecodeJSON(r, &qs); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(qs); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if err := h.service.SaveQuoteSettings(r.Context(), qs); err != nil {
		h.logger.Error("save quote settings failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, qs)
}

func (h *Handler) ShowCompanyInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.CompanyInfo(r.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "company info not configured")
			return
		}
		h.logger.Error("load company info failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}

func (h *Handler) SaveCompanyInfo(w http.ResponseWriter, r *http.Request) {
	var info CompanyInfo
	if err := httpx.DecodeJSON(r, &info); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(info); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if err := h.service.SaveCompanyInfo(r.Context(), info); err != nil {
		h.logger.Error("save company info failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}
