package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestResolveTag(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, "ru", ResolveTag(r).String())

	r = httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Accept-Language", "en-US,en;q=0.9")
	assert.Equal(t, "en", ResolveTag(r).String())

	r = httptest.NewRequest("GET", "/?lang=ru", nil)
	r.Header.Set("Accept-Language", "en")
	assert.Equal(t, "ru", ResolveTag(r).String())

	assert.Equal(t, "ru", ResolveTag(nil).String())
}

func TestCatalogsCoverSameKeys(t *testing.T) {
	for key := range ru {
		_, ok := en[key]
		assert.True(t, ok, "missing english message %q", key)
	}
	for key := range en {
		_, ok := ru[key]
		assert.True(t, ok, "missing russian message %q", key)
	}
}

func TestT(t *testing.T) {
	assert.Equal(t, "Заявка не найдена", T(language.Russian, "application.not_found"))
	assert.Equal(t, "Application not found", T(language.English, "application.not_found"))
	assert.Equal(t, "File too large. Maximum 5 MB", T(language.English, "profile.avatar_size", 5))
}
