// Package httpcontext carries the resolved identity through request contexts.
package httpcontext

import (
	"context"

	"github.com/maaylex/maaylex-server/internal/model"
)

type contextKey struct{}

var userKey contextKey

// Manager implements model.ContextManager for HTTP requests.
type Manager struct{}

// NewManager creates a new context Manager.
func NewManager() *Manager {
	return &Manager{}
}

// WithUser returns a context carrying the resolved user. A nil user is
// stored as-is and reads back as anonymous.
func (m *Manager) WithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the resolved user and whether one is present.
func (m *Manager) UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
