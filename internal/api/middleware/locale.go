package middleware

import (
	"net/http"

	"github.com/phrazzld/taskal/internal/api/shared"
	"github.com/phrazzld/taskal/internal/i18n"
	"golang.org/x/text/language"
)

// Locale picks the language for user-facing messages. An explicit "lang"
// query parameter wins over Accept-Language; fallback applies when neither
// names a supported language.
func Locale(fallback language.Tag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := fallback
			if q, ok := i18n.ParseTag(r.URL.Query().Get("lang")); ok {
				tag = q
			} else if prefs, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language")); err == nil {
				tag = i18n.Match(fallback, prefs...)
			}

			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(shared.SetLocale(r.Context(), tag)))
		})
	}
}
