// Package pages defines the Docshore web frontend's pages and the components
// they're composed from. Templates and locale catalogs are embedded; the
// render engine in the render package does the actual composition.
package pages

import (
	"context"
	"html/template"

	"github.com/docshore/web/internal/fragcache"
	"github.com/docshore/web/internal/i18n"
	"github.com/docshore/web/render"
)

// Site holds everything the frontend's pages need across requests: the
// embedded templates (with parse caching via the embedded CachedSite), the
// translation catalog, and the fragment cache gate.
type Site struct {
	*render.CachedSite

	// Name is the platform name used in titles and copy.
	Name string

	Catalog *i18n.Catalog
	Gate    *fragcache.Gate
}

var _ render.Site = &Site{}
var _ render.TemplateCacher = &Site{}
var _ render.FuncMapExtender = &Site{}
var _ render.ServerErrorPager = &Site{}

// LoadCatalog loads the embedded locale catalogs, with fallback naming the
// locale used when a message or the visitor's locale is missing.
func LoadCatalog(fallback string) (*i18n.Catalog, error) {
	return i18n.Load(assetFS, "locales", fallback)
}

// NewSite builds the Site over the embedded templates.
func NewSite(catalog *i18n.Catalog, gate *fragcache.Gate) *Site {
	return &Site{
		CachedSite: render.NewCachedSite(assetFS),
		Name:       "Docshore",
		Catalog:    catalog,
		Gate:       gate,
	}
}

// FuncMap exposes the translation helpers to every template. The helpers
// take the Translator as their first argument rather than closing over
// per-request state, so parsed templates stay safe to cache across requests.
func (s *Site) FuncMap(_ context.Context) template.FuncMap {
	return template.FuncMap{
		"t": func(tr *i18n.Translator, key string) string {
			return tr.T(key)
		},
		"tblock": func(tr *i18n.Translator, key string) template.HTML {
			return tr.Block(key)
		},
		"tblockf": func(tr *i18n.Translator, key string, args ...any) template.HTML {
			return tr.Blockf(key, args...)
		},
	}
}

// ServerErrorPage returns the page rendered when another page fails.
func (s *Site) ServerErrorPage(_ context.Context) render.Page {
	return &ServerError{Translator: s.Catalog.Translator(s.Catalog.Fallback())}
}

// ProjectSummary is what the homepage knows about a featured project: enough
// to render a list entry linking to its docs.
type ProjectSummary struct {
	Name        string
	Slug        string
	Description string
	DocsURL     string
}
