package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
)

// Grammar manages the grammar reference library.
type Grammar struct {
	grammarStore model.GrammarStore
	logger       *logger.Logger
}

func NewGrammar(grammarStore model.GrammarStore, logger *logger.Logger) *Grammar {
	return &Grammar{grammarStore: grammarStore, logger: logger}
}

// CreateGrammarRuleParams contains caller-provided rule fields.
type CreateGrammarRuleParams struct {
	Category   string
	Title      string
	Content    string
	Examples   []model.GrammarExample
	Difficulty string
}

func (s *Grammar) Create(ctx context.Context, params CreateGrammarRuleParams) (model.GrammarRule, error) {
	difficulty := params.Difficulty
	if difficulty == "" {
		difficulty = "beginner"
	}

	rule, err := s.grammarStore.Create(ctx, model.GrammarRule{
		ID:         uuid.New(),
		Category:   params.Category,
		Title:      params.Title,
		Content:    params.Content,
		Examples:   params.Examples,
		Difficulty: difficulty,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return model.GrammarRule{}, fmt.Errorf("failed to create grammar rule: %w", err)
	}

	s.logger.Info("Grammar service: rule created", "rule_id", rule.ID, "category", rule.Category)

	return rule, nil
}

func (s *Grammar) Get(ctx context.Context, id uuid.UUID) (model.GrammarRule, error) {
	rule, err := s.grammarStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.GrammarRule{}, model.ErrNotFound
		}
		return model.GrammarRule{}, fmt.Errorf("failed to get grammar rule: %w", err)
	}
	return rule, nil
}

func (s *Grammar) List(ctx context.Context, filter model.GrammarFilter) ([]model.GrammarRule, error) {
	rules, err := s.grammarStore.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list grammar rules: %w", err)
	}
	return rules, nil
}
