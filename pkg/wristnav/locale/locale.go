// Package locale resolves the user visible strings of the menus.
//
// Message files are embedded TOML files named active.<tag>.toml. Lookups
// never fail: a missing message falls back to the default language and
// then to the message ID itself.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"golang.org/x/text/language"
)

//go:embed messages/*.toml
var messages embed.FS

// Default is the language used when nothing else matches.
var Default = language.English

// Localizer translates message IDs for the current language. The language
// can be switched at runtime; views resolve their strings on every render.
type Localizer struct {
	bundle *i18n.Bundle
	logger *slog.Logger

	mu        sync.RWMutex
	tag       language.Tag
	localizer *i18n.Localizer
}

// New loads the embedded messages and selects lang. An empty or unknown
// lang selects Default.
func New(lang string) (*Localizer, error) {
	bundle := i18n.NewBundle(Default)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	files, err := fs.Glob(messages, "messages/*.toml")
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		if _, err := bundle.LoadMessageFileFS(messages, name); err != nil {
			return nil, fmt.Errorf("locale: load %s: %w", path.Base(name), err)
		}
	}

	l := &Localizer{
		bundle: bundle,
		logger: internal.Component("locale"),
	}
	l.SetLanguage(lang)
	return l, nil
}

// Languages lists the languages messages exist for.
func (l *Localizer) Languages() []language.Tag {
	return l.bundle.LanguageTags()
}

// Language returns the selected language.
func (l *Localizer) Language() language.Tag {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tag
}

// SetLanguage selects the best match for lang among the loaded languages.
func (l *Localizer) SetLanguage(lang string) {
	tag := Default
	if lang != "" {
		supported := l.bundle.LanguageTags()
		if parsed, err := language.Parse(lang); err == nil {
			_, idx, conf := language.NewMatcher(supported).Match(parsed)
			if conf != language.No {
				tag = supported[idx]
			}
		} else {
			l.logger.Warn("ignoring invalid language", "language", lang, "error", err)
		}
	}

	l.mu.Lock()
	l.tag = tag
	l.localizer = i18n.NewLocalizer(l.bundle, tag.String())
	l.mu.Unlock()
	l.logger.Debug("language selected", "language", tag.String())
}

// T returns the translation of id, or id when no translation exists.
func (l *Localizer) T(id string) string {
	if l == nil {
		return id
	}
	l.mu.RLock()
	loc := l.localizer
	l.mu.RUnlock()

	s, err := loc.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || s == "" {
		return id
	}
	return s
}
