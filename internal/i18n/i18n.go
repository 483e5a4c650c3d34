// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package i18n provides translated UI strings for pathograde.
// It uses the go-i18n library to load the embedded YAML locale files.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	lang      string
)

// Init loads every embedded locale and activates lang. Unknown languages
// fall back to English through the bundle's default.
func Init(l string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		_, _ = b.ParseMessageFileBytes(data, f.Name())
	}

	if l == "" {
		l = "en"
	}

	mu.Lock()
	bundle = b
	localizer = i18n.NewLocalizer(b, l)
	lang = l
	mu.Unlock()
}

// SetLang changes the active language.
func SetLang(l string) {
	Init(l)
}

// GetLang returns the active language tag as passed to Init.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return lang
}

// GetAvailableLocales maps every embedded locale tag to its display name.
func GetAvailableLocales() map[string]string {
	out := map[string]string{}
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		tag := strings.TrimSuffix(f.Name(), ".yaml")
		out[tag] = displayName(tag)
	}
	return out
}

// SortedLocales returns the available locale tags in a stable order.
func SortedLocales() []string {
	av := GetAvailableLocales()
	keys := make([]string, 0, len(av))
	for k := range av {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func displayName(tag string) string {
	switch tag {
	case "en":
		return "English"
	case "de":
		return "Deutsch"
	default:
		return tag
	}
}

// T translates messageID. A single map argument is passed as template data;
// any other arguments are applied fmt-style to the translated text. Missing
// IDs come back unchanged.
func T(messageID string, args ...any) string {
	mu.RLock()
	loc := localizer
	mu.RUnlock()
	if loc == nil {
		Init("en")
		mu.RLock()
		loc = localizer
		mu.RUnlock()
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}

	msg, err := loc.Localize(cfg)
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
