package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, picture *string) error
	SetRole(ctx context.Context, id uuid.UUID, role Role) error
	Count(ctx context.Context) (int64, error)
}

// User represents a registered or externally-authenticated identity.
// Password fields are nil for identities created through the external
// identity provider; those users can never privilege-escalate via that path.
type User struct {
	ID            uuid.UUID
	Email         string
	DisplayName   string
	Picture       *string
	PasswordHash  []byte
	PasswordSalt  []byte
	IsAdmin       bool
	IsContributor bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
