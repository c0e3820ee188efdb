package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the lifecycle state of a suggestion or vocabulary gap.
// Approved and rejected are terminal; records are never reopened.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"
)

// Terminal reports whether the status permits no further transitions.
func (s ReviewStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// SuggestionStore defines persistence operations for edit suggestions.
type SuggestionStore interface {
	Create(ctx context.Context, suggestion Suggestion) (Suggestion, error)
	GetByID(ctx context.Context, id uuid.UUID) (Suggestion, error)
	ListByStatus(ctx context.Context, status ReviewStatus, limit int) ([]Suggestion, error)
	// SetStatus transitions a pending suggestion to the given terminal
	// status. It returns ErrNotFound when the suggestion does not exist
	// and ErrInvalidState when it is already terminal.
	SetStatus(ctx context.Context, id uuid.UUID, status ReviewStatus) error
}

// Suggestion is a proposed change to an existing dictionary entry, queued
// for admin review.
type Suggestion struct {
	ID         uuid.UUID
	EntryID    uuid.UUID
	ProposerID uuid.UUID
	Changes    EntryChanges
	Rationale  *string
	Status     ReviewStatus
	CreatedAt  time.Time
}
