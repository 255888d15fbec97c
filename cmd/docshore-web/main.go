// Command docshore-web serves the Docshore platform's web frontend.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docshore/web/internal/config"
	"github.com/docshore/web/internal/fragcache"
	"github.com/docshore/web/internal/handlers"
	"github.com/docshore/web/internal/metrics"
	"github.com/docshore/web/internal/pages"
	"github.com/docshore/web/internal/session"
	"github.com/docshore/web/internal/urls"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	catalog, err := pages.LoadCatalog(cfg.DefaultLanguage)
	if err != nil {
		log.Fatalf("failed to load locale catalogs: %v", err)
	}

	store, err := fragcache.NewBuntStore(cfg.CachePath)
	if err != nil {
		log.Fatalf("failed to open fragment cache: %v", err)
	}
	defer store.Close()
	gate := fragcache.NewGate(store, logger)
	gate.OnLookup = func(hit bool) {
		result := "miss"
		if hit {
			result = "hit"
		}
		metrics.FragmentLookups.WithLabelValues(result).Inc()
	}

	site := pages.NewSite(catalog, gate)

	sessions := session.NewStore(
		cfg.SessionSecret,
		cfg.SessionMaxAge,
		cfg.IsProduction(),
	)

	reverser := urls.NewReverser()
	reverser.Add("donate", cfg.DonateURL)

	unresolver := urls.NewUnresolver(cfg.PlatformDomain, cfg.PublicDomain, cfg.ExternalDomain, nil)

	featured := handlers.StaticFeatured{
		{Name: "Quill", Slug: "quill", Description: "A fast Markdown documentation builder.", DocsURL: "https://quill.docshore.io/"},
		{Name: "Harbormaster", Slug: "harbormaster", Description: "Deployment orchestration for small fleets.", DocsURL: "https://harbormaster.docshore.io/"},
		{Name: "Lanternfish", Slug: "lanternfish", Description: "Structured logging you can actually read.", DocsURL: "https://lanternfish.docshore.io/"},
	}

	h := handlers.New(site, sessions, reverser, featured, logger)
	router := h.Router(handlers.RouterOptions{
		Unresolver:      unresolver,
		PlatformDomain:  cfg.PlatformDomain,
		SkipDomainGuard: cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
