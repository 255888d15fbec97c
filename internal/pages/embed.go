package pages

import "embed"

// assetFS contains the HTML templates and locale catalogs bundled with the
// binary.
//
//go:embed templates/* locales/*
var assetFS embed.FS
