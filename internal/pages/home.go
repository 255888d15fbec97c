package pages

import (
	"context"
	"html/template"
	"strings"
	"time"

	"github.com/docshore/web/internal/i18n"
	"github.com/docshore/web/render"
)

// featuredTTL bounds how stale the cached featured-projects fragment may be.
const featuredTTL = 10 * time.Minute

// User is the slice of visitor state the homepage branches on.
type User struct {
	IsAuthenticated bool
	Username        string
}

// Home is the platform homepage. It's built once per request and discarded
// after rendering; output is deterministic for fixed fields and locale,
// except the featured fragment, which may be served up to featuredTTL stale.
type Home struct {
	Layout       BaseLayout
	Header       Header
	SplashHeader SplashHeader

	User       User
	Language   string
	DonateURL  string
	Translator *i18n.Translator

	// FeaturedHTML is the pre-rendered featured-projects section. Empty
	// means the section is omitted entirely.
	FeaturedHTML template.HTML
}

var _ render.Page = &Home{}

// HomeParams is the per-request input for building the homepage.
type HomeParams struct {
	User      User
	Language  string
	DonateURL string
	Featured  []ProjectSummary
}

// BuildHome assembles the homepage for one request. The featured-projects
// section is rendered through the site's fragment gate, keyed by language;
// an empty featured list skips the section, and the gate, entirely. A
// fragment render failure degrades to omitting the section rather than
// failing the page.
func BuildHome(ctx context.Context, site *Site, params HomeParams) *Home {
	tr := site.Catalog.Translator(params.Language)
	home := &Home{
		Header:       Header{Username: params.User.Username},
		SplashHeader: SplashHeader{},
		User:         params.User,
		Language:     params.Language,
		DonateURL:    params.DonateURL,
		Translator:   tr,
	}

	if len(params.Featured) == 0 {
		return home
	}

	fragment, err := site.Gate.Fragment(ctx, "home:featured:"+params.Language, featuredTTL,
		func(ctx context.Context) (string, error) {
			var buf strings.Builder
			page := &FeaturedProjects{Projects: params.Featured, Translator: tr}
			if err := render.Execute(ctx, &buf, site, page); err != nil {
				return "", err
			}
			return buf.String(), nil
		})
	if err != nil {
		// degrade to a blank section, never a failed page
		return home
	}
	home.FeaturedHTML = template.HTML(fragment)
	return home
}

func (h *Home) Templates(_ context.Context) []string {
	// the layout must parse before home.html.tmpl so the page's defines
	// replace the layout's non-empty block defaults
	return []string{h.Layout.BaseTemplate(), "templates/home.html.tmpl"}
}

func (h *Home) UseComponents(_ context.Context) []render.Component {
	return []render.Component{h.Layout, h.Header, h.SplashHeader}
}

func (h *Home) Key(_ context.Context) string {
	return "home"
}

func (h *Home) ExecutedTemplate(_ context.Context) string {
	return h.Layout.BaseTemplate()
}

func (h *Home) LinkScripts(_ context.Context) []string {
	return []string{"/static/core/js/home.js"}
}

// FeaturedProjects is the cacheable featured-projects fragment: the section
// heading plus one list item per project. It renders standalone so its
// output can be stored by the fragment gate.
type FeaturedProjects struct {
	Projects   []ProjectSummary
	Translator *i18n.Translator
}

var _ render.Page = &FeaturedProjects{}

func (f *FeaturedProjects) Templates(_ context.Context) []string {
	return []string{"templates/featured.html.tmpl"}
}

func (f *FeaturedProjects) Key(_ context.Context) string {
	return "home/featured"
}

func (f *FeaturedProjects) ExecutedTemplate(_ context.Context) string {
	return "templates/featured.html.tmpl"
}
