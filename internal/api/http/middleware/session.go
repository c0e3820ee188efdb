package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// Resolver resolves a session token to an identity, returning nil for
// unknown or expired tokens.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// Session resolves the caller's identity and injects it into the request
// context. Requests without a valid token proceed as anonymous; gating is
// decided per route by the handlers.
type Session struct {
	resolver       Resolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewSession creates a new Session middleware instance.
func NewSession(resolver Resolver, contextManager model.ContextManager, logger *logger.Logger) *Session {
	return &Session{resolver: resolver, contextManager: contextManager, logger: logger}
}

// Handle wraps next with identity resolution.
func (m *Session) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.resolver.Resolve(r.Context(), token)
		if err != nil {
			m.logger.Error("Session middleware: failed to resolve token", "error", err.Error())
			http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			return
		}
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.WithUser(r.Context(), user)))
	})
}

// TokenFromRequest extracts the session token from the dedicated cookie or
// a bearer-style Authorization header. The cookie wins when both are set.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}

	return ""
}
