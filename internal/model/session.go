package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionDuration is the lifetime of an issued session token. The cookie
// max-age set by the HTTP layer must match this value.
const SessionDuration = 7 * 24 * time.Hour

// SessionStore persists bearer sessions.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByToken(ctx context.Context, token string) (Session, error)
	DeleteByToken(ctx context.Context, token string) error
}

// Session is a time-boxed bearer credential bound to one user. An identity
// may hold multiple concurrent sessions.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
// Validity is evaluated at resolution time; there is no background sweep.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
