package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
)

// markerPattern matches a term immediately followed by an inline
// uncertainty annotation emitted by the AI collaborator.
var markerPattern = regexp.MustCompile(`(?i)(\w+)\s*\((?:untranslated|needs verification)\)`)

// Gap tracks vocabulary gaps surfaced by AI translation failures and folds
// approved ones back into the dictionary.
type Gap struct {
	gapStore   model.GapStore
	entryStore model.EntryStore
	logger     *logger.Logger
}

func NewGap(gapStore model.GapStore, entryStore model.EntryStore, logger *logger.Logger) *Gap {
	return &Gap{
		gapStore:   gapStore,
		entryStore: entryStore,
		logger:     logger,
	}
}

// Ingest scans AI-generated text for uncertainty markers and records each
// detected term as a pending gap, incrementing the frequency of terms seen
// before. Ingestion is advisory telemetry riding on a successful response:
// storage errors are logged and swallowed, never surfaced. The detected
// canonical terms are returned for response payloads.
func (s *Gap) Ingest(ctx context.Context, generated, sourceContext string) []string {
	matches := markerPattern.FindAllStringSubmatch(generated, -1)
	if len(matches) == 0 {
		return nil
	}

	var terms []string
	for _, match := range matches {
		term := strings.ToLower(match[1])
		terms = append(terms, term)

		_, err := s.gapStore.UpsertPending(ctx, model.Gap{
			ID:        uuid.New(),
			Term:      term,
			Context:   sourceContext,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			s.logger.Error("Gap service: failed to record gap",
				"term", term,
				"error", err.Error())
		}
	}

	return terms
}

func (s *Gap) List(ctx context.Context, status model.ReviewStatus, limit int) ([]model.Gap, error) {
	if limit <= 0 {
		limit = 100
	}
	gaps, err := s.gapStore.List(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list gaps: %w", err)
	}
	return gaps, nil
}

// Suggest records a Maay equivalent on a pending gap. Overwriting an
// earlier suggestion is deliberate and idempotent.
func (s *Gap) Suggest(ctx context.Context, id uuid.UUID, suggested string) error {
	if err := s.gapStore.SetSuggestion(ctx, id, suggested); err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidState) {
			return err
		}
		return fmt.Errorf("failed to set gap suggestion: %w", err)
	}

	s.logger.Info("Gap service: suggestion recorded", "gap_id", id)

	return nil
}

// Approve creates a pre-verified dictionary entry from the gap's suggestion
// and marks the gap approved. A gap without a suggestion, or one already
// decided, fails with ErrInvalidState and creates nothing. The pending-only
// status transition runs first: of two concurrent approvals only the one
// that flips the status creates an entry.
func (s *Gap) Approve(ctx context.Context, id uuid.UUID, approver model.User) (model.Entry, error) {
	gap, err := s.gapStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Entry{}, model.ErrNotFound
		}
		return model.Entry{}, fmt.Errorf("failed to get gap: %w", err)
	}

	if gap.Status.Terminal() {
		return model.Entry{}, model.ErrInvalidState
	}
	if gap.SuggestedMaay == nil || *gap.SuggestedMaay == "" {
		return model.Entry{}, fmt.Errorf("%w: gap has no suggested equivalent", model.ErrInvalidState)
	}

	if err := s.gapStore.SetStatus(ctx, id, model.StatusApproved); err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidState) {
			return model.Entry{}, err
		}
		return model.Entry{}, fmt.Errorf("failed to set gap status: %w", err)
	}

	now := time.Now().UTC()
	entry, err := s.entryStore.Create(ctx, model.Entry{
		ID:                 uuid.New(),
		MaayWord:           *gap.SuggestedMaay,
		EnglishTranslation: gap.Term,
		PartOfSpeech:       "noun",
		Verified:           true,
		ContributorID:      &approver.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	})
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to create entry from gap: %w", err)
	}

	s.logger.Info("Gap service: gap approved",
		"gap_id", id,
		"entry_id", entry.ID,
		"approver_id", approver.ID)

	return entry, nil
}

// Reject marks a pending gap rejected. A suggestion need not be present.
func (s *Gap) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.gapStore.SetStatus(ctx, id, model.StatusRejected); err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrInvalidState) {
			return err
		}
		return fmt.Errorf("failed to reject gap: %w", err)
	}

	s.logger.Info("Gap service: gap rejected", "gap_id", id)

	return nil
}
