package httpapi

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"sortable/internal/application"
	"sortable/internal/ports"
)

// TokenAuthorizer allows reordering to holders of one shared bearer token
type TokenAuthorizer struct {
	token string
}

var _ ports.Authorizer = (*TokenAuthorizer)(nil)

// NewTokenAuthorizer creates a TokenAuthorizer. An empty token allows everyone.
func NewTokenAuthorizer(token string) *TokenAuthorizer {
	return &TokenAuthorizer{token: token}
}

// CanReorder checks the credential against the configured token
func (a *TokenAuthorizer) CanReorder(_ context.Context, scope, credential string) error {
	if a.token == "" {
		return nil
	}
	if credential == "" {
		return &application.PermissionError{Scope: scope, Reason: "missing bearer token"}
	}
	if subtle.ConstantTimeCompare([]byte(credential), []byte(a.token)) != 1 {
		return &application.PermissionError{Scope: scope, Reason: "invalid bearer token"}
	}
	return nil
}

func bearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func (s *Server) authorize(r *http.Request, scope string) error {
	if s.authz == nil {
		return nil
	}
	return s.authz.CanReorder(r.Context(), scope, bearerToken(r))
}
