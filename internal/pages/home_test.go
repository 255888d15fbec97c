package pages_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docshore/web/internal/fragcache"
	"github.com/docshore/web/internal/pages"
	"github.com/docshore/web/render"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func newTestSite(t *testing.T) *pages.Site {
	t.Helper()
	catalog, err := pages.LoadCatalog("en")
	require.NoError(t, err)
	gate := fragcache.NewGate(fragcache.NewMemoryStore(), nil)
	return pages.NewSite(catalog, gate)
}

func testFeatured() []pages.ProjectSummary {
	return []pages.ProjectSummary{
		{Name: "Quill", Slug: "quill", Description: "A fast Markdown documentation builder.", DocsURL: "https://quill.docshore.io/"},
		{Name: "Harbormaster", Slug: "harbormaster", Description: "Deployment orchestration for small fleets.", DocsURL: "https://harbormaster.docshore.io/"},
	}
}

func renderHome(t *testing.T, site *pages.Site, params pages.HomeParams) string {
	t.Helper()
	ctx := render.LoggingContext(context.Background(), slog.New(slog.DiscardHandler))
	page := pages.BuildHome(ctx, site, params)
	var out bytes.Buffer
	render.Render(ctx, &out, site, page)
	return out.String()
}

func TestHomeAuthenticatedHeader(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	html := renderHome(t, site, pages.HomeParams{
		User:      pages.User{IsAuthenticated: true, Username: "reader"},
		Language:  "en",
		DonateURL: "/sustainability/",
	})

	assert.Contains(t, html, `class="site-header"`)
	assert.NotContains(t, html, `class="splash-header"`)
	assert.Contains(t, html, `<body class="home">`)
	assert.Contains(t, html, `<span class="username">reader</span>`)
}

func TestHomeAnonymousSplash(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	html := renderHome(t, site, pages.HomeParams{
		Language:  "en",
		DonateURL: "/sustainability/",
	})

	assert.Contains(t, html, `class="splash-header"`)
	assert.NotContains(t, html, `class="site-header"`)
	assert.Contains(t, html, `<body class="home splash">`)
	assert.Contains(t, html, `class="wide-search"`)
}

func TestHomeEmptyFeaturedOmitsSection(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	html := renderHome(t, site, pages.HomeParams{Language: "en", DonateURL: "/sustainability/"})

	assert.NotContains(t, html, "featured-projects")
	assert.NotContains(t, html, "Featured Projects")
}

func TestHomeFeaturedSection(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	html := renderHome(t, site, pages.HomeParams{
		Language:  "en",
		DonateURL: "/sustainability/",
		Featured:  testFeatured(),
	})

	assert.Contains(t, html, "Featured Projects")
	assert.Contains(t, html, `<a href="https://quill.docshore.io/">Quill</a>`)
	assert.Contains(t, html, "Harbormaster")
}

func TestHomeFeaturedFragmentStaysCachedPerLanguage(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)
	ctx := render.LoggingContext(context.Background(), slog.New(slog.DiscardHandler))

	first := pages.BuildHome(ctx, site, pages.HomeParams{
		Language: "en",
		Featured: testFeatured(),
	})
	assert.Contains(t, string(first.FeaturedHTML), "Quill")

	// the featured data changes, but within the TTL the same fragment is
	// served for the same language
	changed := []pages.ProjectSummary{
		{Name: "Lanternfish", Slug: "lanternfish", DocsURL: "https://lanternfish.docshore.io/"},
	}
	second := pages.BuildHome(ctx, site, pages.HomeParams{
		Language: "en",
		Featured: changed,
	})
	assert.Equal(t, first.FeaturedHTML, second.FeaturedHTML)

	// a different language is a different cache key
	other := pages.BuildHome(ctx, site, pages.HomeParams{
		Language: "es",
		Featured: changed,
	})
	assert.Contains(t, string(other.FeaturedHTML), "Lanternfish")
	assert.Contains(t, string(other.FeaturedHTML), "Proyectos destacados")
}

func TestHomeEmptyFeaturedSkipsCache(t *testing.T) {
	t.Parallel()

	catalog, err := pages.LoadCatalog("en")
	require.NoError(t, err)
	store := fragcache.NewMemoryStore()
	gate := fragcache.NewGate(store, nil)
	looked := false
	gate.OnLookup = func(bool) { looked = true }
	site := pages.NewSite(catalog, gate)

	renderHome(t, site, pages.HomeParams{Language: "en"})

	// the empty-list check happens before the cache boundary
	assert.False(t, looked)
}

func TestHomeBlockTranslationsKeepAnchors(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	html := renderHome(t, site, pages.HomeParams{Language: "en", DonateURL: "/sustainability/"})

	assert.Contains(t, html, `<a href="https://docs.docshore.org/tutorial/">tutorial</a>`)
	assert.Contains(t, html, `<a href="https://www.nodehaven.example/">Node Haven</a>`)
	assert.NotContains(t, html, "&lt;a href")
}

func TestHomeDonateAnchorTarget(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	html := renderHome(t, site, pages.HomeParams{Language: "en", DonateURL: "/donate/"})

	assert.Contains(t, html, `<a href="/donate/">donating to the project</a>`)
}

func TestHomeSpanishLocale(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	html := renderHome(t, site, pages.HomeParams{Language: "es", DonateURL: "/sustainability/"})

	assert.Contains(t, html, `<html lang="es">`)
	assert.Contains(t, html, "Inicio | Docshore")
	assert.Contains(t, html, "Explorar proyectos")
}

func TestHomeMissingTranslationFallsBack(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)

	// fr.yml deliberately lacks some community link messages
	html := renderHome(t, site, pages.HomeParams{Language: "fr", DonateURL: "/sustainability/"})

	assert.Contains(t, html, "Ethical advertising")
	assert.Contains(t, html, "Contribuer")
}

func TestServerErrorPage(t *testing.T) {
	t.Parallel()
	site := newTestSite(t)
	ctx := render.LoggingContext(context.Background(), slog.New(slog.DiscardHandler))

	var out bytes.Buffer
	render.Render(ctx, &out, site, site.ServerErrorPage(ctx))

	assert.Contains(t, out.String(), "Server error")
}

func TestHomeSnapshot(t *testing.T) {
	site := newTestSite(t)

	html := renderHome(t, site, pages.HomeParams{
		User:      pages.User{IsAuthenticated: false},
		Language:  "en",
		DonateURL: "/sustainability/",
		Featured:  testFeatured(),
	})

	snaps.WithConfig(snaps.Ext(".html")).MatchSnapshot(t, html)
}
