package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/maaylex/maaylex-server/internal/mocks"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/testutil"
)

func TestGap_Ingest_DetectsMarkers(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}

	gapStore.On("UpsertPending", mock.Anything, mock.MatchedBy(func(g model.Gap) bool {
		return g.Term == "waterfall" && g.Context == "how do I say waterfall?"
	})).Return(model.Gap{Term: "waterfall", Frequency: 1}, nil)
	gapStore.On("UpsertPending", mock.Anything, mock.MatchedBy(func(g model.Gap) bool {
		return g.Term == "glacier"
	})).Return(model.Gap{Term: "glacier", Frequency: 3}, nil)

	s := NewGap(gapStore, &mocks.EntryStore{}, testutil.MakeNoopLogger())

	terms := s.Ingest(ctx, "Biyo dhaca Waterfall (untranslated) iyo glacier (needs verification)", "how do I say waterfall?")
	assert.Equal(t, []string{"waterfall", "glacier"}, terms)
	gapStore.AssertNumberOfCalls(t, "UpsertPending", 2)
}

func TestGap_Ingest_NoMarkers(t *testing.T) {
	gapStore := &mocks.GapStore{}

	s := NewGap(gapStore, &mocks.EntryStore{}, testutil.MakeNoopLogger())

	terms := s.Ingest(context.Background(), "Biyo waa nadiif.", "is the water clean?")
	assert.Empty(t, terms)
	gapStore.AssertNotCalled(t, "UpsertPending")
}

func TestGap_Ingest_StoreFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}

	gapStore.On("UpsertPending", mock.Anything, mock.Anything).Return(model.Gap{}, errors.New("db down"))

	s := NewGap(gapStore, &mocks.EntryStore{}, testutil.MakeNoopLogger())

	terms := s.Ingest(ctx, "river (untranslated)", "river")
	// Detection is still reported; storage is advisory.
	assert.Equal(t, []string{"river"}, terms)
}

func TestGap_Suggest(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}

	id := uuid.New()
	gapStore.On("SetSuggestion", mock.Anything, id, "biyo-dhac").Return(nil)

	s := NewGap(gapStore, &mocks.EntryStore{}, testutil.MakeNoopLogger())

	require.NoError(t, s.Suggest(ctx, id, "biyo-dhac"))
}

func TestGap_Suggest_AlreadyDecided(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}

	id := uuid.New()
	gapStore.On("SetSuggestion", mock.Anything, id, "biyo-dhac").Return(model.ErrInvalidState)

	s := NewGap(gapStore, &mocks.EntryStore{}, testutil.MakeNoopLogger())

	assert.ErrorIs(t, s.Suggest(ctx, id, "biyo-dhac"), model.ErrInvalidState)
}

func TestGap_Approve_CreatesVerifiedEntry(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}
	entryStore := &mocks.EntryStore{}

	id := uuid.New()
	approver := model.User{ID: uuid.New(), IsAdmin: true}
	suggested := "biyo-dhac"

	gapStore.On("GetByID", mock.Anything, id).Return(model.Gap{
		ID:            id,
		Term:          "waterfall",
		SuggestedMaay: &suggested,
		Status:        model.StatusPending,
	}, nil)
	entryStore.On("Create", mock.Anything, mock.MatchedBy(func(e model.Entry) bool {
		return e.MaayWord == "biyo-dhac" &&
			e.EnglishTranslation == "waterfall" &&
			e.Verified &&
			e.ContributorID != nil && *e.ContributorID == approver.ID
	})).Return(model.Entry{ID: uuid.New(), MaayWord: "biyo-dhac", Verified: true}, nil)
	gapStore.On("SetStatus", mock.Anything, id, model.StatusApproved).Return(nil)

	s := NewGap(gapStore, entryStore, testutil.MakeNoopLogger())

	entry, err := s.Approve(ctx, id, approver)
	require.NoError(t, err)
	assert.True(t, entry.Verified)
	assert.Equal(t, "biyo-dhac", entry.MaayWord)
}

func TestGap_Approve_LosingConcurrentApproverCreatesNothing(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}
	entryStore := &mocks.EntryStore{}

	id := uuid.New()
	suggested := "biyo-dhac"

	// The gap still reads pending, but another approval wins the
	// conditional transition before ours lands.
	gapStore.On("GetByID", mock.Anything, id).Return(model.Gap{
		ID:            id,
		Term:          "waterfall",
		SuggestedMaay: &suggested,
		Status:        model.StatusPending,
	}, nil)
	gapStore.On("SetStatus", mock.Anything, id, model.StatusApproved).Return(model.ErrInvalidState)

	s := NewGap(gapStore, entryStore, testutil.MakeNoopLogger())

	_, err := s.Approve(ctx, id, model.User{ID: uuid.New(), IsAdmin: true})
	assert.ErrorIs(t, err, model.ErrInvalidState)
	entryStore.AssertNotCalled(t, "Create")
}

func TestGap_Approve_NoSuggestion(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}
	entryStore := &mocks.EntryStore{}

	id := uuid.New()
	gapStore.On("GetByID", mock.Anything, id).Return(model.Gap{
		ID:     id,
		Term:   "waterfall",
		Status: model.StatusPending,
	}, nil)

	s := NewGap(gapStore, entryStore, testutil.MakeNoopLogger())

	_, err := s.Approve(ctx, id, model.User{ID: uuid.New(), IsAdmin: true})
	assert.ErrorIs(t, err, model.ErrInvalidState)
	entryStore.AssertNotCalled(t, "Create")
	gapStore.AssertNotCalled(t, "SetStatus")
}

func TestGap_Approve_AlreadyDecided(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}
	entryStore := &mocks.EntryStore{}

	id := uuid.New()
	suggested := "biyo-dhac"
	gapStore.On("GetByID", mock.Anything, id).Return(model.Gap{
		ID:            id,
		Term:          "waterfall",
		SuggestedMaay: &suggested,
		Status:        model.StatusApproved,
	}, nil)

	s := NewGap(gapStore, entryStore, testutil.MakeNoopLogger())

	_, err := s.Approve(ctx, id, model.User{ID: uuid.New(), IsAdmin: true})
	assert.ErrorIs(t, err, model.ErrInvalidState)
	// A second approval must not mint a second entry.
	entryStore.AssertNotCalled(t, "Create")
}

func TestGap_Approve_NotFound(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}

	id := uuid.New()
	gapStore.On("GetByID", mock.Anything, id).Return(model.Gap{}, model.ErrNotFound)

	s := NewGap(gapStore, &mocks.EntryStore{}, testutil.MakeNoopLogger())

	_, err := s.Approve(ctx, id, model.User{ID: uuid.New(), IsAdmin: true})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGap_Reject_NoSuggestionRequired(t *testing.T) {
	ctx := context.Background()
	gapStore := &mocks.GapStore{}

	id := uuid.New()
	gapStore.On("SetStatus", mock.Anything, id, model.StatusRejected).Return(nil)

	s := NewGap(gapStore, &mocks.EntryStore{}, testutil.MakeNoopLogger())

	require.NoError(t, s.Reject(ctx, id))
}
