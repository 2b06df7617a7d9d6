package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/orcamenta/orcamenta/internal/backup"
	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/clients"
	"github.com/orcamenta/orcamenta/internal/observability"
	"github.com/orcamenta/orcamenta/internal/quotes"
	"github.com/orcamenta/orcamenta/internal/settings"
	"github.com/orcamenta/orcamenta/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	ClientsHandler  *clients.Handler
	CatalogHandler  *catalog.Handler
	QuotesHandler   *quotes.Handler
	SettingsHandler *settings.Handler
	BackupHandler   *backup.Handler
	JobHandler      *jobs.Handler
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}
	if params.Metrics != nil {
		r.Use(params.Metrics.Middleware)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.ClientsHandler.MountRoutes(r)
	params.CatalogHandler.MountRoutes(r)
	params.QuotesHandler.MountRoutes(r)
	params.SettingsHandler.MountRoutes(r)
	params.BackupHandler.MountRoutes(r)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
