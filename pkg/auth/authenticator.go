package auth

import (
	"crypto/subtle"
	"log/slog"
)

type authenticator struct {
	apiTokens []string
}

// NewAuthenticator accepts the bearer tokens allowed to call the API. An empty
// list disables authentication, which is only sensible for local development.
func NewAuthenticator(apiTokens []string) *authenticator {
	slog.Info("api authenticator configured", "tokens", len(apiTokens))

	return &authenticator{
		apiTokens: apiTokens,
	}
}

func (a *authenticator) IsAuthorized(token string) bool {
	if len(a.apiTokens) == 0 {
		return true
	}
	for _, t := range a.apiTokens {
		if subtle.ConstantTimeCompare([]byte(token), []byte(t)) == 1 {
			return true
		}
	}
	return false
}
