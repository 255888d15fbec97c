// Package render provides the HTML composition engine for the Docshore web
// frontend, built on top of the html/template package.
//
// render is organized around Components and Pages. A Component is some piece
// of the HTML document that you want included in the output. A Page is a
// Component that gets rendered itself rather than being included in another
// Component. The homepage is a Page; the site header, the search bar, and the
// base layout that all pages share are Components.
//
// Every server holds a Site, a singleton that provides the fs.FS containing
// the templates Components parse. The Site is also available at render time,
// as .Site, so it can hold configuration shared across all pages.
//
// Pages compose with the base layout through named blocks: the layout
// declares {{ block }} regions (title, extra_metas, body_class, nav_browse,
// header_wrapper, extra_scripts, content) with default bodies, and a page's
// templates {{ define }} whichever of those regions it wants to override.
// Blocks a page leaves undefined fall back to the layout's defaults, each
// block independently of the others.
//
// To render a page, pass it to the Render function. The page is available as
// .Page within the template and the Site as .Site. Render never surfaces an
// error to the caller: a failed render logs the failure and falls back to the
// Site's server error page.
package render
