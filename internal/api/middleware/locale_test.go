package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskal/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestLocale(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		acceptLanguage string
		want           language.Tag
	}{
		{name: "default", want: language.Japanese},
		{name: "query wins", query: "en", acceptLanguage: "ja", want: language.English},
		{name: "accept language", acceptLanguage: "en-US,en;q=0.9", want: language.English},
		{name: "unsupported accept language", acceptLanguage: "fr-FR", want: language.Japanese},
		{name: "unsupported query falls through", query: "xx", acceptLanguage: "en", want: language.English},
		{name: "malformed header", acceptLanguage: ";;;", want: language.Japanese},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got language.Tag
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = shared.GetLocale(r.Context())
			})

			target := "/api/tasks"
			if tc.query != "" {
				target += "?lang=" + tc.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tc.acceptLanguage != "" {
				req.Header.Set("Accept-Language", tc.acceptLanguage)
			}
			rec := httptest.NewRecorder()

			Locale(language.Japanese)(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want.String(), rec.Header().Get("Content-Language"))
		})
	}
}
