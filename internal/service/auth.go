package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/security"
)

// Auth manages identities and bearer sessions.
type Auth struct {
	userStore        model.UserStore
	sessionStore     model.SessionStore
	identityProvider model.IdentityProvider
	logger           *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	sessionStore model.SessionStore,
	identityProvider model.IdentityProvider,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:        userStore,
		sessionStore:     sessionStore,
		identityProvider: identityProvider,
		logger:           logger,
	}
}

// Register creates a password-backed identity and issues its first session.
// A taken email fails with ErrConflict.
func (a *Auth) Register(ctx context.Context, email, displayName, password string) (model.User, model.Session, error) {
	a.logger.Debug("Auth service: registering user", "email", email)

	hash, salt, err := security.HashPassword(password)
	if err != nil {
		return model.User{}, model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrConflict) {
		a.logger.Info("Auth service: email already taken", "email", email)
		return model.User{}, model.Session{}, model.ErrConflict
	}
	if err != nil {
		return model.User{}, model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	session, err := a.Issue(ctx, user.ID)
	if err != nil {
		return model.User{}, model.Session{}, err
	}

	a.logger.Info("Auth service: user registered", "email", email, "user_id", user.ID)

	return user, session, nil
}

// Login verifies a password and issues a session. Unknown email and wrong
// password are indistinguishable: both fail with ErrUnauthenticated.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, model.Session, error) {
	a.logger.Debug("Auth service: login attempt", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.Session{}, model.ErrUnauthenticated
	}
	if err != nil {
		return model.User{}, model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !security.VerifyPassword(password, user.PasswordHash, user.PasswordSalt) {
		a.logger.Info("Auth service: invalid credentials", "email", email)
		return model.User{}, model.Session{}, model.ErrUnauthenticated
	}

	session, err := a.Issue(ctx, user.ID)
	if err != nil {
		return model.User{}, model.Session{}, err
	}

	a.logger.Info("Auth service: login successful", "email", email, "user_id", user.ID)

	return user, session, nil
}

// ExchangeProviderSession trades an external-provider session ID for a local
// session, creating the identity on first sight. Re-authentication updates
// display name and picture only: the provider path can never touch password
// credentials or role flags.
func (a *Auth) ExchangeProviderSession(ctx context.Context, providerSessionID string) (model.User, model.Session, error) {
	assertion, err := a.identityProvider.Exchange(ctx, providerSessionID)
	if err != nil {
		a.logger.Error("Auth service: provider exchange failed", "error", err.Error())
		return model.User{}, model.Session{}, fmt.Errorf("failed to exchange provider session: %w", err)
	}

	user, err := a.userStore.GetByEmail(ctx, assertion.Email)
	switch {
	case errors.Is(err, model.ErrNotFound):
		now := time.Now().UTC()
		user, err = a.userStore.Create(ctx, model.User{
			ID:          uuid.New(),
			Email:       assertion.Email,
			DisplayName: assertion.Name,
			Picture:     assertion.Picture,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return model.User{}, model.Session{}, fmt.Errorf("failed to create user: %w", err)
		}
		a.logger.Info("Auth service: created user from provider assertion",
			"email", assertion.Email,
			"user_id", user.ID)
	case err != nil:
		return model.User{}, model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	default:
		if err := a.userStore.UpdateProfile(ctx, user.ID, assertion.Name, assertion.Picture); err != nil {
			return model.User{}, model.Session{}, fmt.Errorf("failed to update user profile: %w", err)
		}
		user.DisplayName = assertion.Name
		if assertion.Picture != nil {
			user.Picture = assertion.Picture
		}
	}

	session, err := a.issueWithToken(ctx, user.ID, assertion.SessionToken)
	if err != nil {
		return model.User{}, model.Session{}, err
	}

	return user, session, nil
}

// Issue creates a session with a fresh unguessable token.
func (a *Auth) Issue(ctx context.Context, userID uuid.UUID) (model.Session, error) {
	return a.issueWithToken(ctx, userID, "")
}

func (a *Auth) issueWithToken(ctx context.Context, userID uuid.UUID, token string) (model.Session, error) {
	if token == "" {
		var err error
		token, err = security.NewSessionToken()
		if err != nil {
			return model.Session{}, fmt.Errorf("failed to generate token: %w", err)
		}
	}

	now := time.Now().UTC()
	session := model.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(model.SessionDuration),
		CreatedAt: now,
	}

	if err := a.sessionStore.Create(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return session, nil
}

// Resolve returns the identity bound to a token, or nil without error when
// the token is empty, unknown or expired. An expired session is
// indistinguishable from one that never existed.
func (a *Auth) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := a.sessionStore.GetByToken(ctx, token)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session by token: %w", err)
	}

	if session.Expired(time.Now().UTC()) {
		return nil, nil
	}

	user, err := a.userStore.GetByID(ctx, session.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

// Logout revokes a session. Revoking a nonexistent token is not an error.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := a.sessionStore.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
