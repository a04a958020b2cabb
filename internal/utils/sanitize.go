package utils

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes markup from user supplied text and trims the result.
// Entities are decoded once by the tokenizer; the handlers emit JSON so no
// re-escaping is needed.
func StripTags(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return strings.TrimSpace(s)
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
