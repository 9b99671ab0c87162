package app

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/observability"
	"github.com/odyssey-erp/odyssey-console/internal/platform/httpx"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/view"
	"github.com/odyssey-erp/odyssey-console/jobs"
	"github.com/odyssey-erp/odyssey-console/web"
)

// LookupRefresher reloads the shared lookup collections.
type LookupRefresher interface {
	Refresh(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	Templates      *view.Engine
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Metrics        *observability.Metrics

	// Proxy forwards /api/* to the backend.
	Proxy      http.Handler
	Pages      []Mount
	Nav        []view.NavSection
	Cascade    *cascade.Handler
	Lookups    LookupRefresher
	JobHandler *jobs.Handler
	// Ping reports dependency health for /healthz.
	Ping func(ctx context.Context) error
}

// NewRouter constructs the chi.Router with console defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if params.Ping != nil {
			if err := params.Ping(r.Context()); err != nil {
				params.Logger.Warn("health check", slog.Any("error", err))
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		var flash *shared.FlashMessage
		if sess := shared.SessionFromContext(r.Context()); sess != nil {
			flash = sess.PopFlash()
		}
		data := view.TemplateData{
			Title:       "Odyssey Console",
			CSRFToken:   params.CSRFManager.PageToken(r.Context()),
			Flash:       flash,
			CurrentPath: r.URL.Path,
			Nav:         params.Nav,
		}
		if err := params.Templates.Render(w, "pages/home.html", data); err != nil {
			params.Logger.Error("render home", slog.Any("error", err))
		}
	})

	if params.Proxy != nil {
		r.Handle("/api/*", params.Proxy)
	}
	for _, m := range params.Pages {
		r.Route(m.Path, m.Handler.MountRoutes)
	}
	if params.Cascade != nil {
		r.Route("/cascade", params.Cascade.MountRoutes)
	}
	if params.Lookups != nil {
		r.Post("/lookups/refresh", refreshLookups(params.Lookups, params.Logger))
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := web.StaticFS()
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// refreshLookups reloads the lookup cache and returns to the referring page.
func refreshLookups(lookups LookupRefresher, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		back := sameOriginReferer(r)
		if err := lookups.Refresh(r.Context()); err != nil {
			logger.Error("refresh lookups", slog.Any("error", err))
			shared.Notify(r.Context(), shared.FlashAlert, "Failed to refresh lookups")
			http.Redirect(w, r, back, http.StatusSeeOther)
			return
		}
		shared.Notify(r.Context(), shared.FlashSuccess, "Lookups refreshed")
		http.Redirect(w, r, back, http.StatusSeeOther)
	}
}

func sameOriginReferer(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return "/"
	}
	if ref.RawQuery != "" {
		return ref.Path + "?" + ref.RawQuery
	}
	return ref.Path
}

// staticCacheHandler caches embedded assets in the browser for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
