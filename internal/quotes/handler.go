package quotes

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/orcamenta/orcamenta/internal/clients"
	"github.com/orcamenta/orcamenta/internal/platform/httpx"
	"github.com/orcamenta/orcamenta/internal/stock"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	exporter *WhatsAppExporter
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, exporter *WhatsAppExporter) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		exporter: exporter,
		validate: validator.New(),
	}
}

func parseID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListQuotesRequest{Limit: 50}
	q := r.URL.Query()
	if raw := q.Get("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", "client_id must be a UUID")
			return
		}
		req.ClientID = &id
	}
	for key, target := range map[string]**time.Time{"from": &req.From, "to": &req.To} {
		if raw := q.Get(key); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				httpx.Problem(w, http.StatusBadRequest, "Invalid Filter", key+" must be RFC3339")
				return
			}
			*target = &t
		}
	}
	if l := q.Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			req.Limit = parsed
		}
	}
	if o := q.Get("offset"); o != "" {
		if parsed, err := strconv.Atoi(o); err == nil && parsed >= 0 {
			req.Offset = parsed
		}
	}

	quotes, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list quotes failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"quotes": quotes,
		"total":  total,
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "quote id must be a UUID")
		return
	}
	quote, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	var req CommitQuoteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	quote, err := h.service.Commit(r.Context(), req)
	if err != nil {
		h.respondError(w, "commit quote", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, quote)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "quote id must be a UUID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "delete quote", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Edit removes the saved quote and moves its content into the draft slot.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "quote id must be a UUID")
		return
	}
	draft, err := h.service.Edit(r.Context(), id)
	if err != nil {
		h.respondError(w, "edit quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

func (h *Handler) WhatsApp(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid ID", "quote id must be a UUID")
		return
	}
	quote, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, "get quote", err)
		return
	}
	msg, err := h.exporter.Export(r.Context(), quote)
	if err != nil {
		h.respondError(w, "export quote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, msg)
}

func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req SaveDraftRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	draft, err := h.service.SaveDraft(r.Context(), req)
	if err != nil {
		h.logger.Error("save draft failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

func (h *Handler) ShowDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.service.Draft(r.Context())
	if err != nil {
		h.respondError(w, "load draft", err)
		return
	}
	httpx.JSON(w, http.StatusOK, draft)
}

func (h *Handler) ClearDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearDraft(r.Context()); err != nil {
		h.logger.Error("clear draft failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	var insufficient *stock.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		httpx.ProblemWithMeta(w, http.StatusUnprocessableEntity, "Insufficient Stock",
			"one or more items exceed the available stock",
			map[string]any{"shortfalls": insufficient.Shortfalls})
	case errors.Is(err, stock.ErrInvalidQuantity):
		httpx.Problem(w, http.StatusBadRequest, "Invalid Quantity", err.Error())
	case errors.Is(err, ErrUnknownClient), errors.Is(err, ErrUnknownItem):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Unknown Reference", err.Error())
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "quote not found")
	case errors.Is(err, ErrNoDraft):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no draft saved")
	case errors.Is(err, clients.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", "client not found")
	case errors.Is(err, ErrClientHasNoPhone):
		httpx.Problem(w, http.StatusUnprocessableEntity, "No Phone", "client has no phone number registered")
	default:
		h.logger.Error(op+" failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
