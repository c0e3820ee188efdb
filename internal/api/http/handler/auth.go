package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/api/http/middleware"
	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
)

// AuthService covers credential and session operations used by the HTTP
// layer.
type AuthService interface {
	Register(ctx context.Context, email, displayName, password string) (model.User, model.Session, error)
	Login(ctx context.Context, email, password string) (model.User, model.Session, error)
	ExchangeProviderSession(ctx context.Context, providerSessionID string) (model.User, model.Session, error)
	Logout(ctx context.Context, token string) error
}

// Auth handles registration, login, provider exchange, identity lookup and
// logout.
type Auth struct {
	service        AuthService
	contextManager model.ContextManager
	secureCookies  bool
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler instance.
func NewAuth(service AuthService, contextManager model.ContextManager, secureCookies bool, logger *logger.Logger) *Auth {
	return &Auth{
		service:        service,
		contextManager: contextManager,
		secureCookies:  secureCookies,
		logger:         logger,
	}
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type providerSessionRequest struct {
	SessionID string `json:"session_id"`
}

type userResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Picture       *string   `json:"picture,omitempty"`
	IsAdmin       bool      `json:"is_admin"`
	IsContributor bool      `json:"is_contributor"`
}

type sessionResponse struct {
	User         userResponse `json:"user"`
	SessionToken string       `json:"session_token"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.DisplayName,
		Picture:       user.Picture,
		IsAdmin:       user.IsAdmin,
		IsContributor: user.IsContributor,
	}
}

// Register creates a local credential account and starts a session.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		badRequest(w, "valid email is required")
		return
	}
	if len(req.Password) < 8 {
		badRequest(w, "password must be at least 8 characters")
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		req.DisplayName = req.Email
	}

	user, session, err := h.service.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: failed to register", "error", err.Error())
		handleError(w, err)
		return
	}

	h.setSessionCookie(w, session)
	writeJSON(w, http.StatusCreated, sessionResponse{User: toUserResponse(user), SessionToken: session.Token})
}

// Login verifies a password credential and starts a session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		badRequest(w, "email and password are required")
		return
	}

	user, session, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	h.setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(user), SessionToken: session.Token})
}

// ProviderSession exchanges an external identity provider session for a
// local one, provisioning the account on first sight.
func (h *Auth) ProviderSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get("X-Session-ID")
	if sessionID == "" {
		var req providerSessionRequest
		if err := decodeJSON(r, &req); err == nil {
			sessionID = req.SessionID
		}
	}
	if sessionID == "" {
		badRequest(w, "session ID is required")
		return
	}

	user, session, err := h.service.ExchangeProviderSession(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("Auth handler: provider exchange failed", "error", err.Error())
		handleError(w, err)
		return
	}

	h.setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, sessionResponse{User: toUserResponse(user), SessionToken: session.Token})
}

// Me returns the caller's identity.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleUser)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(*user))
}

// Logout revokes the presented session token and clears the cookie. It
// succeeds even when the token is already gone.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token != "" {
		if err := h.service.Logout(r.Context(), token); err != nil {
			handleError(w, err)
			return
		}
	}

	h.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

func (h *Auth) setSessionCookie(w http.ResponseWriter, session model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(model.SessionDuration / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Auth) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteNoneMode,
	})
}
