package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GrammarStore defines persistence operations for grammar rules.
type GrammarStore interface {
	Create(ctx context.Context, rule GrammarRule) (GrammarRule, error)
	GetByID(ctx context.Context, id uuid.UUID) (GrammarRule, error)
	List(ctx context.Context, filter GrammarFilter) ([]GrammarRule, error)
	Count(ctx context.Context) (int64, error)
}

// GrammarExample pairs a Maay sentence with its English rendering.
type GrammarExample struct {
	Maay    string `json:"maay"`
	English string `json:"english"`
}

// GrammarRule documents one aspect of Maay grammar.
type GrammarRule struct {
	ID         uuid.UUID
	Category   string
	Title      string
	Content    string
	Examples   []GrammarExample
	Difficulty string
	CreatedAt  time.Time
}

// GrammarFilter selects grammar rules; empty fields are ignored. Search is
// a case-insensitive substring match on title or content.
type GrammarFilter struct {
	Category   string
	Difficulty string
	Search     string
	Limit      int
}
