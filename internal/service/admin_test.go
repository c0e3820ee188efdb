package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maaylex/maaylex-server/internal/mocks"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/testutil"
)

func TestAdmin_Stats(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}
	entryStore := &mocks.EntryStore{}
	gapStore := &mocks.GapStore{}
	grammarStore := &mocks.GrammarStore{}

	entryStore.On("Count", mock.Anything, false).Return(int64(120), nil)
	entryStore.On("Count", mock.Anything, true).Return(int64(90), nil)
	userStore.On("Count", mock.Anything).Return(int64(15), nil)
	gapStore.On("CountPending", mock.Anything).Return(int64(4), nil)
	grammarStore.On("Count", mock.Anything).Return(int64(7), nil)

	s := NewAdmin(userStore, entryStore, gapStore, grammarStore, testutil.MakeNoopLogger())

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(120), stats.DictionaryEntries)
	assert.Equal(t, int64(90), stats.VerifiedEntries)
	assert.Equal(t, int64(30), stats.PendingEntries)
	assert.Equal(t, int64(15), stats.Users)
	assert.Equal(t, int64(4), stats.PendingGaps)
	assert.Equal(t, int64(7), stats.GrammarRules)
}

func TestAdmin_GrantRole_Contributor(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}

	userID := uuid.New()
	userStore.On("SetRole", mock.Anything, userID, model.RoleContributor).Return(nil)

	s := NewAdmin(userStore, &mocks.EntryStore{}, &mocks.GapStore{}, &mocks.GrammarStore{}, testutil.MakeNoopLogger())

	require.NoError(t, s.GrantRole(ctx, userID, model.RoleContributor))
}

func TestAdmin_GrantRole_UnknownUser(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}

	userID := uuid.New()
	userStore.On("SetRole", mock.Anything, userID, model.RoleAdmin).Return(model.ErrNotFound)

	s := NewAdmin(userStore, &mocks.EntryStore{}, &mocks.GapStore{}, &mocks.GrammarStore{}, testutil.MakeNoopLogger())

	assert.ErrorIs(t, s.GrantRole(ctx, userID, model.RoleAdmin), model.ErrNotFound)
}

func TestAdmin_GrantRole_InvalidTier(t *testing.T) {
	ctx := context.Background()
	userStore := &mocks.UserStore{}

	s := NewAdmin(userStore, &mocks.EntryStore{}, &mocks.GapStore{}, &mocks.GrammarStore{}, testutil.MakeNoopLogger())

	assert.ErrorIs(t, s.GrantRole(ctx, uuid.New(), model.RoleUser), model.ErrInvalidState)
	assert.ErrorIs(t, s.GrantRole(ctx, uuid.New(), model.RoleAnonymous), model.ErrInvalidState)
	userStore.AssertNotCalled(t, "SetRole")
}

func TestAdmin_PendingEntries(t *testing.T) {
	ctx := context.Background()
	entryStore := &mocks.EntryStore{}

	entryStore.On("ListUnverified", mock.Anything, 100).Return([]model.Entry{
		{ID: uuid.New(), MaayWord: "eey"},
	}, nil)

	s := NewAdmin(&mocks.UserStore{}, entryStore, &mocks.GapStore{}, &mocks.GrammarStore{}, testutil.MakeNoopLogger())

	entries, err := s.PendingEntries(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
