// Package i18n selects a response language per request and renders message
// keys through golang.org/x/text catalogs. Russian is the default, matching
// the audience of the course site; English is available on request.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangParam is the query parameter used to force a language.
const LangParam = "lang"

var supportedTags = []language.Tag{
	language.Russian,
	language.English,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Default returns the default language tag.
func Default() language.Tag {
	return language.Russian
}

// ResolveTag determines the best language for r from ?lang= or
// Accept-Language.
func ResolveTag(r *http.Request) language.Tag {
	if r == nil {
		return Default()
	}
	if v := strings.TrimSpace(r.URL.Query().Get(LangParam)); v != "" {
		if tag, err := language.Parse(v); err == nil {
			matched, _, conf := tagMatcher.Match(tag)
			if conf != language.No {
				return base(matched)
			}
		}
	}
	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil && len(tags) > 0 {
			matched, _, conf := tagMatcher.Match(tags...)
			if conf != language.No {
				return base(matched)
			}
		}
	}
	return Default()
}

// base strips the -u-rg extension the matcher may add so catalog lookups hit.
func base(tag language.Tag) language.Tag {
	b, _ := tag.Base()
	t, err := language.Compose(b)
	if err != nil {
		return Default()
	}
	return t
}

// Printer returns a message printer for tag.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// T renders key in the language of tag. Unknown keys render as themselves.
func T(tag language.Tag, key string, args ...any) string {
	return Printer(tag).Sprintf(key, args...)
}
