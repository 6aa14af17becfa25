// Package httpserver assembles the chi router, middleware stack and routes
// for the catalog web server.
package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"dragonfield.org/catalog-web/internal/browse"
	"dragonfield.org/catalog-web/internal/dbapi"
	custommw "dragonfield.org/catalog-web/internal/httpserver/middleware"
	"dragonfield.org/catalog-web/internal/httpserver/ui"
	"dragonfield.org/catalog-web/internal/observability"
	appsession "dragonfield.org/catalog-web/internal/session"
	"dragonfield.org/catalog-web/public"
)

// Config holds runtime options for the catalog HTTP server.
type Config struct {
	Address  string
	BasePath string

	Service  dbapi.Service
	Screens  *browse.Registry
	Sessions custommw.SessionStore
	Logger   *zap.Logger
}

// New constructs the HTTP server with the middleware stack and embedded assets.
func New(cfg Config) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := cfg.Service
	if svc == nil {
		svc = dbapi.NewStaticService()
	}
	screens := cfg.Screens
	if screens == nil {
		screens = browse.NewRegistry(svc, 0)
	}
	sessions := cfg.Sessions
	if sessions == nil {
		mgr, err := appsession.NewManager(appsession.Config{
			HashKey: []byte(strings.Repeat("0", 32)),
		})
		if err != nil {
			panic(err)
		}
		sessions = mgr
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware(logger))
	router.Use(chimw.Compress(5))
	router.Use(chimw.Timeout(30 * time.Second))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	staticContent, err := public.StaticFS()
	if err != nil {
		logger.Fatal("embed static", zap.Error(err))
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))

	basePath := normalizeBasePath(cfg.BasePath)
	handlers := ui.NewHandlers(ui.Dependencies{Service: svc, Screens: screens})

	mountCatalogRoutes(router, basePath, handlers, sessions)

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func mountCatalogRoutes(router chi.Router, base string, handlers *ui.Handlers, sessions custommw.SessionStore) {
	router.Route(base, func(r chi.Router) {
		r.Use(custommw.HTMX())
		r.Use(custommw.NoStore())
		r.Use(custommw.RequestInfoMiddleware(base))
		r.Use(custommw.Session(sessions))

		r.Get("/", handlers.CharactersPage)
		r.Get("/characters", handlers.CharactersPage)
		r.Get("/characters/{id}", handlers.DetailPage)
		r.Get("/planets", handlers.PlanetsPage)

		RegisterFragment(r, "/fragments/characters", handlers.ListFragment)
		RegisterFragment(r, "/fragments/characters/more", handlers.MoreFragment)
		RegisterFragment(r, "/fragments/characters/search", handlers.SearchFragment)
		RegisterFragment(r, "/fragments/characters/retry", handlers.RetryFragment)
		RegisterFragment(r, "/fragments/characters/{id}", handlers.DetailFragment)
	})
}

func normalizeBasePath(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	if p == "" {
		return "/"
	}
	return p
}

// RegisterFragment registers a GET handler intended for htmx fragment rendering.
func RegisterFragment(r chi.Router, pattern string, handler http.HandlerFunc) {
	r.With(custommw.RequireHTMX()).Get(pattern, handler)
}
