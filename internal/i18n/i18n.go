package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

// DefaultLanguage matches the wording operators see in the dashboard.
var DefaultLanguage = language.Spanish

// NewBundle loads every embedded message file.
func NewBundle() (*goi18n.Bundle, error) {
	bundle := goi18n.NewBundle(DefaultLanguage)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := locales.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		name := path.Join("locales", e.Name())
		buf, err := locales.ReadFile(name)
		if err != nil {
			return nil, err
		}
		if _, err := bundle.ParseMessageFileBytes(buf, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}
	return bundle, nil
}

// Translator renders message IDs for one locale, falling back to the default
// language for anything missing.
type Translator struct {
	localizer *goi18n.Localizer
}

func NewTranslator(bundle *goi18n.Bundle, langs ...string) *Translator {
	return &Translator{localizer: goi18n.NewLocalizer(bundle, langs...)}
}

// MustTranslator builds a translator over the embedded bundle and panics if
// the embedded files are broken, which only happens on a bad build.
func MustTranslator(langs ...string) *Translator {
	bundle, err := NewBundle()
	if err != nil {
		panic(err)
	}
	return NewTranslator(bundle, langs...)
}

// T renders id with data. Unknown IDs come back as the ID itself so a missing
// translation never hides the underlying event.
func (t *Translator) T(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
