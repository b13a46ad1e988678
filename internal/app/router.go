package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vantage-crm/vantage-crm/internal/auth"
	"github.com/vantage-crm/vantage-crm/internal/authz"
	"github.com/vantage-crm/vantage-crm/internal/crm/accounts"
	"github.com/vantage-crm/vantage-crm/internal/crm/contacts"
	"github.com/vantage-crm/vantage-crm/internal/crm/demos"
	"github.com/vantage-crm/vantage-crm/internal/crm/notes"
	"github.com/vantage-crm/vantage-crm/internal/crm/opportunities"
	"github.com/vantage-crm/vantage-crm/internal/leaderboard"
	"github.com/vantage-crm/vantage-crm/internal/observability"
	"github.com/vantage-crm/vantage-crm/internal/users"
	"github.com/vantage-crm/vantage-crm/internal/view"
	"github.com/vantage-crm/vantage-crm/jobs"
	"github.com/vantage-crm/vantage-crm/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger    *slog.Logger
	Config    *Config
	Templates *view.Engine

	AuthMiddleware *auth.Middleware
	Owner          authz.Middleware

	AuthHandler          *auth.Handler
	AccountsHandler      *accounts.Handler
	ContactsHandler      *contacts.Handler
	DemosHandler         *demos.Handler
	NotesHandler         *notes.Handler
	OpportunitiesHandler *opportunities.Handler
	LeaderboardHandler   *leaderboard.Handler
	UsersHandler         *users.Handler
	JobsHandler          *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with Vantage defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Auth:    params.AuthMiddleware,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		data := view.TemplateData{Title: "Vantage CRM", CurrentPath: r.URL.Path}
		if err := params.Templates.Render(w, "pages/landing.html", data); err != nil {
			params.Logger.Error("render landing", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})

	r.Get("/app", func(w http.ResponseWriter, r *http.Request) {
		data := view.TemplateData{Title: "Vantage CRM", CurrentPath: r.URL.Path}
		if err := params.Templates.Render(w, "pages/app.html", data); err != nil {
			params.Logger.Error("render app shell", slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			if params.AuthMiddleware != nil {
				r.Use(params.AuthMiddleware.RequireAuthenticated)
			}
			params.AccountsHandler.MountRoutes(r)
			params.ContactsHandler.MountRoutes(r)
			params.DemosHandler.MountRoutes(r)
			params.NotesHandler.MountRoutes(r, params.Owner)
			params.OpportunitiesHandler.MountRoutes(r, params.Owner)
			params.LeaderboardHandler.MountRoutes(r)
			if params.UsersHandler != nil {
				params.UsersHandler.MountRoutes(r)
			}
		})
	})

	if params.JobsHandler != nil {
		r.Route("/jobs", params.JobsHandler.MountRoutes)
	}

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
