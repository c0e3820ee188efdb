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

// fakeIngester records ingest calls without touching storage.
type fakeIngester struct {
	generated string
	terms     []string
}

func (f *fakeIngester) Ingest(_ context.Context, generated, _ string) []string {
	f.generated = generated
	return f.terms
}

func newAssistantForTest(
	entryStore model.EntryStore,
	conversationStore model.ConversationStore,
	gaps GapIngester,
	generator model.TextGenerator,
	speech model.SpeechClient,
) *Assistant {
	return NewAssistant(entryStore, conversationStore, gaps, generator, speech, testutil.MakeNoopLogger())
}

func TestAssistant_Translate(t *testing.T) {
	ctx := context.Background()
	entryStore := &mocks.EntryStore{}
	generator := &mocks.TextGenerator{}
	ingester := &fakeIngester{terms: []string{"waterfall"}}

	entryStore.On("Search", mock.Anything, mock.MatchedBy(func(f model.EntryFilter) bool {
		return f.VerifiedOnly && f.Limit > 0
	})).Return([]model.Entry{
		{MaayWord: "biyo", EnglishTranslation: "water"},
	}, nil)
	generator.On("Generate", mock.Anything, mock.MatchedBy(func(system string) bool {
		return len(system) > 0
	}), mock.Anything).Return("Biyo dhaca waterfall (untranslated)", nil)

	s := newAssistantForTest(entryStore, &mocks.ConversationStore{}, ingester, generator, &mocks.SpeechClient{})

	result, err := s.Translate(ctx, "the waterfall water", "english", "maay")
	require.NoError(t, err)
	assert.Equal(t, "the waterfall water", result.OriginalText)
	assert.Equal(t, "Biyo dhaca waterfall (untranslated)", result.TranslatedText)
	assert.Equal(t, []string{"waterfall"}, result.VocabularyGaps)
	assert.Equal(t, "Biyo dhaca waterfall (untranslated)", ingester.generated)
}

func TestAssistant_Translate_GeneratorFailure(t *testing.T) {
	ctx := context.Background()
	entryStore := &mocks.EntryStore{}
	generator := &mocks.TextGenerator{}

	entryStore.On("Search", mock.Anything, mock.Anything).Return([]model.Entry{}, nil)
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", model.ErrUpstream)

	s := newAssistantForTest(entryStore, &mocks.ConversationStore{}, &fakeIngester{}, generator, &mocks.SpeechClient{})

	_, err := s.Translate(ctx, "hello", "english", "maay")
	assert.ErrorIs(t, err, model.ErrUpstream)
}

func TestAssistant_Chat_CreatesConversation(t *testing.T) {
	ctx := context.Background()
	entryStore := &mocks.EntryStore{}
	conversationStore := &mocks.ConversationStore{}
	generator := &mocks.TextGenerator{}

	userID := uuid.New()
	conversationID := uuid.New()

	entryStore.On("Search", mock.Anything, mock.Anything).Return([]model.Entry{}, nil)
	conversationStore.On("Create", mock.Anything, mock.MatchedBy(func(c model.Conversation) bool {
		return c.UserID == userID
	})).Return(model.Conversation{ID: conversationID, UserID: userID}, nil)
	generator.On("Generate", mock.Anything, mock.Anything, "hello").Return("Maalin wanaagsan!", nil)
	conversationStore.On("AppendMessages", mock.Anything, conversationID, mock.MatchedBy(func(ms []model.Message) bool {
		return len(ms) == 2 && ms[0].Role == "user" && ms[1].Role == "assistant"
	})).Return(nil)

	s := newAssistantForTest(entryStore, conversationStore, &fakeIngester{}, generator, &mocks.SpeechClient{})

	result, err := s.Chat(ctx, userID, nil, "hello")
	require.NoError(t, err)
	assert.Equal(t, conversationID, result.ConversationID)
	assert.Equal(t, "Maalin wanaagsan!", result.Response)
}

func TestAssistant_Chat_ContinuesExistingConversation(t *testing.T) {
	ctx := context.Background()
	entryStore := &mocks.EntryStore{}
	conversationStore := &mocks.ConversationStore{}
	generator := &mocks.TextGenerator{}

	userID := uuid.New()
	conversationID := uuid.New()

	entryStore.On("Search", mock.Anything, mock.Anything).Return([]model.Entry{}, nil)
	conversationStore.On("GetByID", mock.Anything, conversationID).
		Return(model.Conversation{ID: conversationID, UserID: userID}, nil)
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("Haa.", nil)
	conversationStore.On("AppendMessages", mock.Anything, conversationID, mock.Anything).Return(nil)

	s := newAssistantForTest(entryStore, conversationStore, &fakeIngester{}, generator, &mocks.SpeechClient{})

	result, err := s.Chat(ctx, userID, &conversationID, "yes?")
	require.NoError(t, err)
	assert.Equal(t, conversationID, result.ConversationID)
	conversationStore.AssertNotCalled(t, "Create")
}

func TestAssistant_GetConversation_OwnerScoped(t *testing.T) {
	ctx := context.Background()
	conversationStore := &mocks.ConversationStore{}

	owner := uuid.New()
	other := uuid.New()
	conversationID := uuid.New()

	conversationStore.On("GetByID", mock.Anything, conversationID).
		Return(model.Conversation{ID: conversationID, UserID: owner}, nil)

	s := newAssistantForTest(&mocks.EntryStore{}, conversationStore, &fakeIngester{}, &mocks.TextGenerator{}, &mocks.SpeechClient{})

	conversation, err := s.GetConversation(ctx, owner, conversationID)
	require.NoError(t, err)
	assert.Equal(t, conversationID, conversation.ID)

	// Someone else's conversation looks like a missing one.
	_, err = s.GetConversation(ctx, other, conversationID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestAssistant_Transcribe(t *testing.T) {
	ctx := context.Background()
	speech := &mocks.SpeechClient{}

	speech.On("Transcribe", mock.Anything, "clip.webm", []byte("audio")).Return("biyo", nil)

	s := newAssistantForTest(&mocks.EntryStore{}, &mocks.ConversationStore{}, &fakeIngester{}, &mocks.TextGenerator{}, speech)

	text, err := s.Transcribe(ctx, "clip.webm", []byte("audio"))
	require.NoError(t, err)
	assert.Equal(t, "biyo", text)
}

func TestAssistant_Synthesize_UpstreamFailure(t *testing.T) {
	ctx := context.Background()
	speech := &mocks.SpeechClient{}

	speech.On("Synthesize", mock.Anything, "biyo", "").Return(nil, model.ErrUpstream)

	s := newAssistantForTest(&mocks.EntryStore{}, &mocks.ConversationStore{}, &fakeIngester{}, &mocks.TextGenerator{}, speech)

	_, err := s.Synthesize(ctx, "biyo", "")
	assert.ErrorIs(t, err, model.ErrUpstream)
}
