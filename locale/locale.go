// Package locale localizes the presentation chrome (buttons, progress
// labels, error pages). Slide content is never translated.
package locale

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Bundle holds every loaded message file.
type Bundle struct {
	bundle  *i18n.Bundle
	matcher language.Matcher
}

// New loads the embedded message files. English is the fallback language.
func New() (*Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("locale: list messages: %w", err)
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			return nil, fmt.Errorf("locale: read %s: %w", f.Name(), err)
		}
		if _, err := b.ParseMessageFileBytes(data, f.Name()); err != nil {
			return nil, fmt.Errorf("locale: parse %s: %w", f.Name(), err)
		}
	}
	return &Bundle{bundle: b, matcher: language.NewMatcher(b.LanguageTags())}, nil
}

// Languages lists the loaded language tags.
func (b *Bundle) Languages() []string {
	tags := b.bundle.LanguageTags()
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.String()
	}
	return out
}

// Translator resolves messages for the first supported language in langs.
// Each entry may be a tag ("zh") or a full Accept-Language header value.
func (b *Bundle) Translator(langs ...string) *Translator {
	tags := b.bundle.LanguageTags()
	_, i := language.MatchStrings(b.matcher, langs...)
	return &Translator{
		localizer: i18n.NewLocalizer(b.bundle, langs...),
		lang:      tags[i].String(),
	}
}

// Translator localizes message ids for one request or session.
type Translator struct {
	localizer *i18n.Localizer
	lang      string
}

// Lang is the matched language tag, suitable for <html lang>.
func (t *Translator) Lang() string { return t.lang }

// T returns the message for id rendered with data. Unknown ids come back
// unchanged so a missing translation is visible but harmless.
func (t *Translator) T(id string, data ...map[string]any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id}
	if len(data) > 0 {
		cfg.TemplateData = data[0]
	}
	msg, err := t.localizer.Localize(cfg)
	if err != nil {
		return id
	}
	return msg
}
