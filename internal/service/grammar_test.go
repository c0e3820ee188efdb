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

func TestGrammar_Create_DefaultsDifficulty(t *testing.T) {
	ctx := context.Background()
	grammarStore := &mocks.GrammarStore{}

	grammarStore.On("Create", mock.Anything, mock.MatchedBy(func(r model.GrammarRule) bool {
		return r.Difficulty == "beginner" && r.Category == "pronouns"
	})).Return(model.GrammarRule{ID: uuid.New(), Difficulty: "beginner"}, nil)

	s := NewGrammar(grammarStore, testutil.MakeNoopLogger())

	rule, err := s.Create(ctx, CreateGrammarRuleParams{
		Category: "pronouns",
		Title:    "Personal pronouns",
		Content:  "Af Maay personal pronouns...",
	})
	require.NoError(t, err)
	assert.Equal(t, "beginner", rule.Difficulty)
}

func TestGrammar_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	grammarStore := &mocks.GrammarStore{}

	id := uuid.New()
	grammarStore.On("GetByID", mock.Anything, id).Return(model.GrammarRule{}, model.ErrNotFound)

	s := NewGrammar(grammarStore, testutil.MakeNoopLogger())

	_, err := s.Get(ctx, id)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestGrammar_List_PassesFilter(t *testing.T) {
	ctx := context.Background()
	grammarStore := &mocks.GrammarStore{}

	filter := model.GrammarFilter{Category: "verbs", Difficulty: "advanced"}
	grammarStore.On("List", mock.Anything, filter).Return([]model.GrammarRule{{ID: uuid.New()}}, nil)

	s := NewGrammar(grammarStore, testutil.MakeNoopLogger())

	rules, err := s.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}
