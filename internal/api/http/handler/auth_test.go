package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maaylex/maaylex-server/internal/api/http/httpcontext"
	"github.com/maaylex/maaylex-server/internal/api/http/middleware"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/testutil"
)

// mockAuthService mocks the AuthService interface.
type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, email, displayName, password string) (model.User, model.Session, error) {
	args := m.Called(ctx, email, displayName, password)
	return args.Get(0).(model.User), args.Get(1).(model.Session), args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (model.User, model.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.User), args.Get(1).(model.Session), args.Error(2)
}

func (m *mockAuthService) ExchangeProviderSession(ctx context.Context, providerSessionID string) (model.User, model.Session, error) {
	args := m.Called(ctx, providerSessionID)
	return args.Get(0).(model.User), args.Get(1).(model.Session), args.Error(2)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func findSessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestAuth_Register_SetsCookie(t *testing.T) {
	svc := &mockAuthService{}
	user := model.User{ID: uuid.New(), Email: "a@b.c", DisplayName: "Someone"}
	session := model.Session{Token: "fresh-token", UserID: user.ID}

	svc.On("Register", mock.Anything, "a@b.c", "Someone", "password123").Return(user, session, nil)

	h := NewAuth(svc, httpcontext.NewManager(), true, testutil.MakeNoopLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"A@B.C","name":"Someone","password":"password123"}`))
	w := httptest.NewRecorder()

	h.Register(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)

	cookie := findSessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Equal(t, "fresh-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	assert.Equal(t, int(model.SessionDuration.Seconds()), cookie.MaxAge)

	var resp sessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a@b.c", resp.User.Email)
	assert.Equal(t, "fresh-token", resp.SessionToken)
}

func TestAuth_Register_ShortPassword(t *testing.T) {
	svc := &mockAuthService{}

	h := NewAuth(svc, httpcontext.NewManager(), true, testutil.MakeNoopLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"a@b.c","name":"Someone","password":"short"}`))
	w := httptest.NewRecorder()

	h.Register(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Register")
}

func TestAuth_Register_EmailTaken(t *testing.T) {
	svc := &mockAuthService{}

	svc.On("Register", mock.Anything, "taken@b.c", mock.Anything, mock.Anything).
		Return(model.User{}, model.Session{}, model.ErrConflict)

	h := NewAuth(svc, httpcontext.NewManager(), true, testutil.MakeNoopLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"taken@b.c","name":"Someone","password":"password123"}`))
	w := httptest.NewRecorder()

	h.Register(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuth_Login_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{}

	svc.On("Login", mock.Anything, "a@b.c", "wrong").
		Return(model.User{}, model.Session{}, model.ErrUnauthenticated)

	h := NewAuth(svc, httpcontext.NewManager(), true, testutil.MakeNoopLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"a@b.c","password":"wrong"}`))
	w := httptest.NewRecorder()

	h.Login(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, findSessionCookie(t, w))
}

func TestAuth_ProviderSession_HeaderPreferred(t *testing.T) {
	svc := &mockAuthService{}
	user := model.User{ID: uuid.New(), Email: "o@b.c"}
	session := model.Session{Token: "provider-token"}

	svc.On("ExchangeProviderSession", mock.Anything, "header-sid").Return(user, session, nil)

	h := NewAuth(svc, httpcontext.NewManager(), true, testutil.MakeNoopLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/session", strings.NewReader(`{"session_id":"body-sid"}`))
	r.Header.Set("X-Session-ID", "header-sid")
	w := httptest.NewRecorder()

	h.ProviderSession(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	cookie := findSessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Equal(t, "provider-token", cookie.Value)
}

func TestAuth_Me_Anonymous(t *testing.T) {
	h := NewAuth(&mockAuthService{}, httpcontext.NewManager(), true, testutil.MakeNoopLogger())

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()

	h.Me(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Me_Authenticated(t *testing.T) {
	cm := httpcontext.NewManager()
	h := NewAuth(&mockAuthService{}, cm, true, testutil.MakeNoopLogger())

	user := &model.User{ID: uuid.New(), Email: "a@b.c", IsContributor: true}
	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r = r.WithContext(cm.WithUser(r.Context(), user))
	w := httptest.NewRecorder()

	h.Me(w, r)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a@b.c", resp.Email)
	assert.True(t, resp.IsContributor)
}

func TestAuth_Logout_ClearsCookie(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("Logout", mock.Anything, "tok").Return(nil)

	h := NewAuth(svc, httpcontext.NewManager(), true, testutil.MakeNoopLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "tok"})
	w := httptest.NewRecorder()

	h.Logout(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	cookie := findSessionCookie(t, w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuth_Logout_NoToken(t *testing.T) {
	svc := &mockAuthService{}

	h := NewAuth(svc, httpcontext.NewManager(), true, testutil.MakeNoopLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()

	h.Logout(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertNotCalled(t, "Logout")
}
