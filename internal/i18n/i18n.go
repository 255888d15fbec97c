// Package i18n resolves user-facing strings to locale-specific text at render
// time.
//
// A Catalog holds every message for every supported locale, loaded from YAML
// files. A Translator is a Catalog bound to one locale; it's built per
// request and handed to the page being rendered, so rendering stays a pure
// function of its inputs rather than of ambient global state.
//
// Lookups come in two forms. T treats the resolved value as inert text, which
// html/template escapes as usual. Block is for multi-sentence messages that
// embed literal markup (anchors, emphasis); it returns template.HTML so the
// markup survives to the output. Block values come from the compiled-in
// catalog, never from request data.
package i18n

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"
)

// Catalog holds the translated messages for every locale the site supports.
type Catalog struct {
	fallback string
	messages map[string]map[string]string
	tags     []language.Tag
	matcher  language.Matcher
}

// Load reads every *.yml file under dir in fsys into a Catalog. The base name
// of each file is its locale ("en.yml" holds the "en" messages), and each
// file is a flat mapping from message key to translated text.
//
// fallback names the locale used when a message is missing from the requested
// locale; a locale file for it must be present.
func Load(fsys fs.FS, dir, fallback string) (*Catalog, error) {
	files, err := fs.Glob(fsys, path.Join(dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("error listing locale files in %q: %w", dir, err)
	}
	if len(files) < 1 {
		return nil, fmt.Errorf("no locale files found in %q", dir)
	}

	c := &Catalog{
		messages: map[string]map[string]string{},
	}
	for _, file := range files {
		locale := strings.TrimSuffix(path.Base(file), ".yml")
		contents, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("error reading locale file %q: %w", file, err)
		}
		msgs := map[string]string{}
		if err := yaml.Unmarshal(contents, &msgs); err != nil {
			return nil, fmt.Errorf("error parsing locale file %q: %w", file, err)
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("locale file %q has an unparseable locale: %w", file, err)
		}
		// key by the canonical form so Match output always finds its
		// messages, whatever the file was named
		c.messages[tag.String()] = msgs
		c.tags = append(c.tags, tag)
	}
	fallbackTag := language.Make(fallback)
	c.fallback = fallbackTag.String()
	if _, ok := c.messages[c.fallback]; !ok {
		return nil, fmt.Errorf("no locale file for fallback locale %q", fallback)
	}

	// the fallback tag must come first; language.NewMatcher treats the
	// first tag as the default when nothing else matches
	ordered := []language.Tag{fallbackTag}
	for _, tag := range c.tags {
		if tag != fallbackTag {
			ordered = append(ordered, tag)
		}
	}
	c.tags = ordered
	c.matcher = language.NewMatcher(ordered)

	return c, nil
}

// Fallback returns the catalog's fallback locale in canonical form.
func (c *Catalog) Fallback() string {
	return c.fallback
}

// Locales returns the locales the Catalog has messages for.
func (c *Catalog) Locales() []string {
	locales := make([]string, 0, len(c.messages))
	for _, tag := range c.tags {
		locales = append(locales, tag.String())
	}
	return locales
}

// Match negotiates the best supported locale for an Accept-Language header
// value. An empty or unparseable header yields the fallback locale.
func (c *Catalog) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return c.fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.fallback
	}
	_, index, _ := c.matcher.Match(tags...)
	return c.tags[index].String()
}

// Translator returns a Translator bound to the passed locale. A locale the
// Catalog has no messages for resolves everything through the fallback
// locale.
func (c *Catalog) Translator(locale string) *Translator {
	return &Translator{catalog: c, locale: locale}
}

// Translator resolves message keys for a single locale. The zero value
// resolves every key to itself, so templates render their source text when
// no Translator was wired in.
type Translator struct {
	catalog *Catalog
	locale  string
}

// Locale returns the locale this Translator resolves for.
func (t *Translator) Locale() string {
	return t.locale
}

// T resolves a message key to its translation as inert text. Missing keys
// fall back to the fallback locale, then to the key itself, never to an
// error or a placeholder marker.
func (t *Translator) T(key string) string {
	if t == nil || t.catalog == nil {
		return key
	}
	if msg, ok := t.catalog.messages[t.locale][key]; ok {
		return msg
	}
	if msg, ok := t.catalog.messages[t.catalog.fallback][key]; ok {
		return msg
	}
	return key
}

// Block resolves a message key whose translation embeds literal HTML. The
// result is marked safe so anchors inside translated paragraphs render as
// live markup rather than escaped text. Fallback behavior matches T.
func (t *Translator) Block(key string) template.HTML {
	return template.HTML(t.T(key))
}

// Blockf is Block with fmt.Sprintf-style substitution, for block messages
// that interpolate a value the catalog can't know, like a resolved URL
// inside an anchor's href. Arguments must be trusted values.
func (t *Translator) Blockf(key string, args ...any) template.HTML {
	return template.HTML(fmt.Sprintf(t.T(key), args...))
}
