package pages

import (
	"context"

	"github.com/docshore/web/render"
)

// BaseLayout is the document shell every page executes: the <html> skeleton,
// the navigation bar, the footer, and the named blocks pages override.
type BaseLayout struct{}

func (b BaseLayout) Templates(_ context.Context) []string {
	return []string{b.BaseTemplate()}
}

// BaseTemplate names the layout template pages execute against.
func (BaseLayout) BaseTemplate() string {
	return "templates/base.html.tmpl"
}

func (BaseLayout) LinkStyles(_ context.Context) []string {
	return []string{"/static/core/css/core.css"}
}

func (BaseLayout) LinkScripts(_ context.Context) []string {
	return []string{"/static/core/js/site.js"}
}

// Header is the navigation header shown to signed-in visitors.
type Header struct {
	Username string
}

func (Header) Templates(_ context.Context) []string {
	return []string{"templates/header.html.tmpl"}
}

// SplashHeader is the hero-style header shown to anonymous visitors. It
// carries the wide search bar.
type SplashHeader struct {
	SearchBar SearchBar
}

func (SplashHeader) Templates(_ context.Context) []string {
	return []string{"templates/home_header.html.tmpl"}
}

func (h SplashHeader) UseComponents(_ context.Context) []render.Component {
	return []render.Component{h.SearchBar}
}

// SearchBar is the wide documentation search form.
type SearchBar struct{}

func (SearchBar) Templates(_ context.Context) []string {
	return []string{"templates/searchbar.html.tmpl"}
}
