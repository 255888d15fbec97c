// Package handlers holds the HTTP handlers for the web frontend.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/docshore/web/internal/metrics"
	"github.com/docshore/web/internal/middleware"
	"github.com/docshore/web/internal/pages"
	"github.com/docshore/web/internal/session"
	"github.com/docshore/web/internal/urls"
)

// FeaturedSource supplies the projects highlighted on the homepage. The list
// is ordered; an empty list means the featured section is omitted.
type FeaturedSource interface {
	Featured(ctx context.Context) ([]pages.ProjectSummary, error)
}

// StaticFeatured is a FeaturedSource over a fixed list.
type StaticFeatured []pages.ProjectSummary

// Featured returns the list as-is.
func (s StaticFeatured) Featured(_ context.Context) ([]pages.ProjectSummary, error) {
	return s, nil
}

// Handlers wires the page layer to HTTP.
type Handlers struct {
	site     *pages.Site
	sessions *session.Store
	reverser *urls.Reverser
	featured FeaturedSource
	logger   *slog.Logger
}

// New constructs the handler set.
func New(site *pages.Site, sessions *session.Store, reverser *urls.Reverser, featured FeaturedSource, logger *slog.Logger) *Handlers {
	return &Handlers{
		site:     site,
		sessions: sessions,
		reverser: reverser,
		featured: featured,
		logger:   logger,
	}
}

// RouterOptions configures the middleware around the routes.
type RouterOptions struct {
	Unresolver      *urls.Unresolver
	PlatformDomain  string
	SkipDomainGuard bool
}

// Router assembles the chi router with the full middleware stack.
func (h *Handlers) Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(h.logger))
	r.Use(middleware.Recovery(h.logger))
	if opts.Unresolver != nil {
		r.Use(middleware.DomainGuard(opts.Unresolver, opts.PlatformDomain, opts.SkipDomainGuard, h.logger))
	}
	r.Use(session.Middleware(h.sessions))

	fileServer := http.FileServer(http.Dir("static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	r.Get("/", h.Home)

	return r
}
