package pages

import (
	"context"

	"github.com/docshore/web/internal/i18n"
	"github.com/docshore/web/render"
)

// ServerError is the minimal page rendered when another page fails. It
// deliberately depends on as little as possible.
type ServerError struct {
	Translator *i18n.Translator
}

var _ render.Page = &ServerError{}

func (e *ServerError) Templates(_ context.Context) []string {
	return []string{"templates/server_error.html.tmpl"}
}

func (e *ServerError) Key(_ context.Context) string {
	return "server_error"
}

func (e *ServerError) ExecutedTemplate(_ context.Context) string {
	return "templates/server_error.html.tmpl"
}
