// Package i18n translates user-facing response messages. Locales are
// resolved per request from the Accept-Language header; English is the
// fallback when nothing matches.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Persian,
}

var matcher = language.NewMatcher(supported)

// Localizer renders catalog messages for one resolved locale.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// Match resolves the best supported locale for an Accept-Language header
// value. An empty or unparseable header yields the fallback locale.
func Match(acceptLanguage string) *Localizer {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		tags = []language.Tag{supported[0]}
	}
	tag, _, _ := matcher.Match(tags...)
	return ForTag(tag)
}

// ForTag returns a localizer for an already resolved tag.
func ForTag(tag language.Tag) *Localizer {
	return &Localizer{
		tag:     tag,
		printer: message.NewPrinter(tag),
	}
}

// Default returns the fallback-locale localizer.
func Default() *Localizer {
	return ForTag(supported[0])
}

// Tag returns the resolved language tag.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T translates a catalog key. Unknown keys fall through to the key text
// itself, so English message text doubles as the key.
func (l *Localizer) T(key string, args ...interface{}) string {
	return l.printer.Sprintf(key, args...)
}
