package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GapStore defines persistence operations for vocabulary gaps.
type GapStore interface {
	// UpsertPending records a detection of the canonical term: it inserts a
	// new pending gap with frequency 1 or atomically increments the
	// frequency of the existing pending gap for the same term. The
	// implementation must be a single conditional upsert, not a
	// read-then-write pair.
	UpsertPending(ctx context.Context, gap Gap) (Gap, error)
	GetByID(ctx context.Context, id uuid.UUID) (Gap, error)
	List(ctx context.Context, status ReviewStatus, limit int) ([]Gap, error)
	// SetSuggestion overwrites the suggested Maay equivalent of a pending
	// gap. ErrNotFound when absent, ErrInvalidState when terminal.
	SetSuggestion(ctx context.Context, id uuid.UUID, suggested string) error
	// SetStatus transitions a pending gap to a terminal status.
	// ErrNotFound when absent, ErrInvalidState when already terminal.
	SetStatus(ctx context.Context, id uuid.UUID, status ReviewStatus) error
	CountPending(ctx context.Context) (int64, error)
}

// Gap is a term the AI collaborator could not confidently render, tracked
// for future dictionary inclusion. Term is the case-folded canonical form
// used as the dedup key while the gap is pending.
type Gap struct {
	ID            uuid.UUID
	Term          string
	Context       string
	Frequency     int
	SuggestedMaay *string
	Status        ReviewStatus
	CreatedAt     time.Time
}
