package quotes

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/quotes", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Commit)

		// Draft routes come before /{id} so "draft" is never parsed as an ID.
		r.Get("/draft", h.ShowDraft)
		r.Put("/draft", h.SaveDraft)
		r.Delete("/draft", h.ClearDraft)

		r.Get("/{id}", h.Show)
		r.Delete("/{id}", h.Delete)
		r.Post("/{id}/edit", h.Edit)
		r.Get("/{id}/whatsapp", h.WhatsApp)
	})
}
