package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Auth requires "Authorization: Bearer <token>" on every request,
// except the paths listed in exclude. An empty token disables auth.
func Auth(token string, exclude ...string) Middleware {
	excluded := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		excluded[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := excluded[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			if !checkBearerToken(r, token) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func checkBearerToken(r *http.Request, expected string) bool {
	authHeader := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1
}
