package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListClientsRequest{Limit: 50}
	if search := r.URL.Query().Get("search"); search != "" {
		req.Search = &search
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			req.Offset = parsed
		}
	}

	clients, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list clients failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"clients": clients,
		"total":   total,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "client id must be a UUID")
		return
	}

	client, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get client", err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	client, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, "create client", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, client)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "client id must be a UUID")
		return
	}

	var req UpdateClientRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	client, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.respondError(w, "update client", err)
		return
	}
	httpx.JSON(w, http.StatusOK, client)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "client id must be a UUID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "client not found")
	case errors.Is(err, ErrAlreadyExists):
		httpx.Problem(w, http.StatusConflict, "Duplicate", "client already exists")
	default:
		h.logger.Error(op+" failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
