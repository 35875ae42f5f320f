package middleware

import (
	"net/http"
	"strings"
)

type Authenticator interface {
	IsAuthorized(token string) bool
}

// Auth rejects requests whose bearer token the authenticator does not know.
func Auth(a Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !a.IsAuthorized(token) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
