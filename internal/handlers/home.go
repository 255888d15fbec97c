package handlers

import (
	"net/http"
	"time"

	"github.com/docshore/web/internal/metrics"
	"github.com/docshore/web/internal/pages"
	"github.com/docshore/web/internal/session"
	"github.com/docshore/web/render"
)

// Home serves the platform homepage. Authenticated visitors get the standard
// header; everyone else gets the splash presentation.
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := render.LoggingContext(r.Context(), h.logger)

	user := pages.User{}
	if sess := session.FromContext(ctx); sess != nil {
		user = pages.User{IsAuthenticated: true, Username: sess.Username}
	}

	language := h.site.Catalog.Match(r.Header.Get("Accept-Language"))

	donateURL, err := h.reverser.Reverse("donate")
	if err != nil {
		// a missing route registration shouldn't break the page
		h.logger.Warn("donate route not registered", "error", err)
		donateURL = "#"
	}

	featured, err := h.featured.Featured(ctx)
	if err != nil {
		// degrade to a homepage without the featured section
		h.logger.Warn("featured projects unavailable", "error", err)
		featured = nil
	}

	page := pages.BuildHome(ctx, h.site, pages.HomeParams{
		User:      user,
		Language:  language,
		DonateURL: donateURL,
		Featured:  featured,
	})

	start := time.Now()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	render.Render(ctx, w, h.site, page)
	metrics.RenderDuration.WithLabelValues("home").Observe(time.Since(start).Seconds())
}
