package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// APIKey exige la clave en X-Api-Key o en Authorization: Bearer.
// - key vacía => modo dev, no se exige nada.
// - los paths con alguno de los prefijos public pasan sin clave.
func APIKey(key string, public ...string) func(http.Handler) http.Handler {
	key = strings.TrimSpace(key)
	return func(next http.Handler) http.Handler {
		if key == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range public {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			got := strings.TrimSpace(r.Header.Get("X-Api-Key"))
			if got == "" {
				got = bearerToken(r.Header.Get("Authorization"))
			}
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
