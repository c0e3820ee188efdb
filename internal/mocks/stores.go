// Package mocks provides testify mocks for the model interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/maaylex/maaylex-server/internal/model"
)

// UserStore mocks the model.UserStore interface.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) UpdateProfile(ctx context.Context, id uuid.UUID, displayName string, picture *string) error {
	args := m.Called(ctx, id, displayName, picture)
	return args.Error(0)
}

func (m *UserStore) SetRole(ctx context.Context, id uuid.UUID, role model.Role) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *UserStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// SessionStore mocks the model.SessionStore interface.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) Create(ctx context.Context, session model.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionStore) GetByToken(ctx context.Context, token string) (model.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *SessionStore) DeleteByToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// EntryStore mocks the model.EntryStore interface.
type EntryStore struct {
	mock.Mock
}

func (m *EntryStore) Create(ctx context.Context, entry model.Entry) (model.Entry, error) {
	args := m.Called(ctx, entry)
	return args.Get(0).(model.Entry), args.Error(1)
}

func (m *EntryStore) GetByID(ctx context.Context, id uuid.UUID) (model.Entry, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Entry), args.Error(1)
}

func (m *EntryStore) Search(ctx context.Context, filter model.EntryFilter) ([]model.Entry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Entry), args.Error(1)
}

func (m *EntryStore) Update(ctx context.Context, id uuid.UUID, changes model.EntryChanges, editorID uuid.UUID) (model.Entry, error) {
	args := m.Called(ctx, id, changes, editorID)
	return args.Get(0).(model.Entry), args.Error(1)
}

func (m *EntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EntryStore) Verify(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EntryStore) SetAudioKey(ctx context.Context, id uuid.UUID, key string, editorID uuid.UUID) error {
	args := m.Called(ctx, id, key, editorID)
	return args.Error(0)
}

func (m *EntryStore) Count(ctx context.Context, verifiedOnly bool) (int64, error) {
	args := m.Called(ctx, verifiedOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EntryStore) ListUnverified(ctx context.Context, limit int) ([]model.Entry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]model.Entry), args.Error(1)
}

// SuggestionStore mocks the model.SuggestionStore interface.
type SuggestionStore struct {
	mock.Mock
}

func (m *SuggestionStore) Create(ctx context.Context, suggestion model.Suggestion) (model.Suggestion, error) {
	args := m.Called(ctx, suggestion)
	return args.Get(0).(model.Suggestion), args.Error(1)
}

func (m *SuggestionStore) GetByID(ctx context.Context, id uuid.UUID) (model.Suggestion, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Suggestion), args.Error(1)
}

func (m *SuggestionStore) ListByStatus(ctx context.Context, status model.ReviewStatus, limit int) ([]model.Suggestion, error) {
	args := m.Called(ctx, status, limit)
	return args.Get(0).([]model.Suggestion), args.Error(1)
}

func (m *SuggestionStore) SetStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// GapStore mocks the model.GapStore interface.
type GapStore struct {
	mock.Mock
}

func (m *GapStore) UpsertPending(ctx context.Context, gap model.Gap) (model.Gap, error) {
	args := m.Called(ctx, gap)
	return args.Get(0).(model.Gap), args.Error(1)
}

func (m *GapStore) GetByID(ctx context.Context, id uuid.UUID) (model.Gap, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Gap), args.Error(1)
}

func (m *GapStore) List(ctx context.Context, status model.ReviewStatus, limit int) ([]model.Gap, error) {
	args := m.Called(ctx, status, limit)
	return args.Get(0).([]model.Gap), args.Error(1)
}

func (m *GapStore) SetSuggestion(ctx context.Context, id uuid.UUID, suggested string) error {
	args := m.Called(ctx, id, suggested)
	return args.Error(0)
}

func (m *GapStore) SetStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *GapStore) CountPending(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// ConversationStore mocks the model.ConversationStore interface.
type ConversationStore struct {
	mock.Mock
}

func (m *ConversationStore) Create(ctx context.Context, conversation model.Conversation) (model.Conversation, error) {
	args := m.Called(ctx, conversation)
	return args.Get(0).(model.Conversation), args.Error(1)
}

func (m *ConversationStore) GetByID(ctx context.Context, id uuid.UUID) (model.Conversation, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Conversation), args.Error(1)
}

func (m *ConversationStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Conversation, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]model.Conversation), args.Error(1)
}

func (m *ConversationStore) AppendMessages(ctx context.Context, id uuid.UUID, messages []model.Message) error {
	args := m.Called(ctx, id, messages)
	return args.Error(0)
}

// GrammarStore mocks the model.GrammarStore interface.
type GrammarStore struct {
	mock.Mock
}

func (m *GrammarStore) Create(ctx context.Context, rule model.GrammarRule) (model.GrammarRule, error) {
	args := m.Called(ctx, rule)
	return args.Get(0).(model.GrammarRule), args.Error(1)
}

func (m *GrammarStore) GetByID(ctx context.Context, id uuid.UUID) (model.GrammarRule, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.GrammarRule), args.Error(1)
}

func (m *GrammarStore) List(ctx context.Context, filter model.GrammarFilter) ([]model.GrammarRule, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.GrammarRule), args.Error(1)
}

func (m *GrammarStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
