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

// Suggestion runs the edit-suggestion approval pipeline: a single forward
// path from pending to approved or rejected, with no cycles.
type Suggestion struct {
	suggestionStore model.SuggestionStore
	entryStore      model.EntryStore
	logger          *logger.Logger
}

func NewSuggestion(suggestionStore model.SuggestionStore, entryStore model.EntryStore, logger *logger.Logger) *Suggestion {
	return &Suggestion{
		suggestionStore: suggestionStore,
		entryStore:      entryStore,
		logger:          logger,
	}
}

// Propose queues a change set against an existing entry. A missing entry
// fails with ErrNotFound and creates nothing.
func (s *Suggestion) Propose(ctx context.Context, entryID uuid.UUID, changes model.EntryChanges, rationale *string, proposer model.User) (model.Suggestion, error) {
	if changes.Empty() {
		return model.Suggestion{}, fmt.Errorf("%w: suggestion has no changes", model.ErrInvalidState)
	}

	if _, err := s.entryStore.GetByID(ctx, entryID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Suggestion{}, model.ErrNotFound
		}
		return model.Suggestion{}, fmt.Errorf("failed to get entry: %w", err)
	}

	suggestion, err := s.suggestionStore.Create(ctx, model.Suggestion{
		ID:         uuid.New(),
		EntryID:    entryID,
		ProposerID: proposer.ID,
		Changes:    changes,
		Rationale:  rationale,
		Status:     model.StatusPending,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("failed to create suggestion: %w", err)
	}

	s.logger.Info("Suggestion service: suggestion proposed",
		"suggestion_id", suggestion.ID,
		"entry_id", entryID,
		"proposer_id", proposer.ID)

	return suggestion, nil
}

func (s *Suggestion) ListPending(ctx context.Context, limit int) ([]model.Suggestion, error) {
	if limit <= 0 {
		limit = 100
	}
	suggestions, err := s.suggestionStore.ListByStatus(ctx, model.StatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending suggestions: %w", err)
	}
	return suggestions, nil
}

// Approve applies the recorded changes to the referenced entry and marks
// the suggestion approved. The entry is re-checked at approval time: if it
// was deleted in the meantime, approval fails with ErrNotFound and the
// suggestion stays pending for an explicit admin retry or reject. The
// pending-only status transition runs before the entry update, so of two
// concurrent approvals only the one that flips the status edits the entry.
func (s *Suggestion) Approve(ctx context.Context, id uuid.UUID, approver model.User) (model.Entry, error) {
	suggestion, err := s.suggestionStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Entry{}, model.ErrNotFound
		}
		return model.Entry{}, fmt.Errorf("failed to get suggestion: %w", err)
	}

	if suggestion.Status.Terminal() {
		return model.Entry{}, model.ErrInvalidState
	}

	if _, err := s.entryStore.GetByID(ctx, suggestion.EntryID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Info("Suggestion service: target entry gone, suggestion stays pending",
				"suggestion_id", id,
				"entry_id", suggestion.EntryID)
			return model.Entry{}, model.ErrNotFound
		}
		return model.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}

	if err := s.suggestionStore.SetStatus(ctx, id, model.StatusApproved); err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidState) {
			return model.Entry{}, err
		}
		return model.Entry{}, fmt.Errorf("failed to set suggestion status: %w", err)
	}

	// The entry carries the approver as last editor, not the proposer.
	entry, err := s.entryStore.Update(ctx, suggestion.EntryID, suggestion.Changes, approver.ID)
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to apply suggestion: %w", err)
	}

	s.logger.Info("Suggestion service: suggestion approved",
		"suggestion_id", id,
		"entry_id", suggestion.EntryID,
		"approver_id", approver.ID)

	return entry, nil
}

// Reject marks the suggestion rejected with no side effect on the entry.
func (s *Suggestion) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.suggestionStore.SetStatus(ctx, id, model.StatusRejected); err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidState) {
			return err
		}
		return fmt.Errorf("failed to reject suggestion: %w", err)
	}

	s.logger.Info("Suggestion service: suggestion rejected", "suggestion_id", id)

	return nil
}
