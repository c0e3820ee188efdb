package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/maaylex/maaylex-server/internal/api/http/httpcontext"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/service"
	"github.com/maaylex/maaylex-server/internal/testutil"
)

// mockGrammarService mocks the GrammarService interface.
type mockGrammarService struct {
	mock.Mock
}

func (m *mockGrammarService) Create(ctx context.Context, params service.CreateGrammarRuleParams) (model.GrammarRule, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.GrammarRule), args.Error(1)
}

func (m *mockGrammarService) Get(ctx context.Context, id uuid.UUID) (model.GrammarRule, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.GrammarRule), args.Error(1)
}

func (m *mockGrammarService) List(ctx context.Context, filter model.GrammarFilter) ([]model.GrammarRule, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.GrammarRule), args.Error(1)
}

func TestGrammar_Create_AdminAllowed(t *testing.T) {
	svc := &mockGrammarService{}
	cm := httpcontext.NewManager()
	h := NewGrammar(svc, cm, testutil.MakeNoopLogger())

	svc.On("Create", mock.Anything, mock.MatchedBy(func(p service.CreateGrammarRuleParams) bool {
		return p.Category == "verbs" && p.Title == "Past tense"
	})).Return(model.GrammarRule{ID: uuid.New(), Category: "verbs", Title: "Past tense"}, nil)

	r := httptest.NewRequest(http.MethodPost, "/api/grammar",
		strings.NewReader(`{"category":"verbs","title":"Past tense","content":"Suffix -ey marks the past."}`))
	r = withUser(cm, r, &model.User{ID: uuid.New(), IsAdmin: true})
	w := httptest.NewRecorder()

	h.Create(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestGrammar_Create_ContributorForbidden(t *testing.T) {
	svc := &mockGrammarService{}
	cm := httpcontext.NewManager()
	h := NewGrammar(svc, cm, testutil.MakeNoopLogger())

	r := httptest.NewRequest(http.MethodPost, "/api/grammar",
		strings.NewReader(`{"category":"verbs","title":"Past tense","content":"Suffix -ey marks the past."}`))
	r = withUser(cm, r, &model.User{ID: uuid.New(), IsContributor: true})
	w := httptest.NewRecorder()

	h.Create(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Create")
}

func TestGrammar_Get_Anonymous(t *testing.T) {
	svc := &mockGrammarService{}
	cm := httpcontext.NewManager()
	h := NewGrammar(svc, cm, testutil.MakeNoopLogger())

	id := uuid.New()
	svc.On("Get", mock.Anything, id).Return(model.GrammarRule{ID: id, Category: "nouns"}, nil)

	r := httptest.NewRequest(http.MethodGet, "/api/grammar/"+id.String(), nil)
	r.SetPathValue("id", id.String())
	w := httptest.NewRecorder()

	h.Get(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}
