package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
)

// Admin serves moderation dashboards and role grants.
type Admin struct {
	userStore    model.UserStore
	entryStore   model.EntryStore
	gapStore     model.GapStore
	grammarStore model.GrammarStore
	logger       *logger.Logger
}

func NewAdmin(
	userStore model.UserStore,
	entryStore model.EntryStore,
	gapStore model.GapStore,
	grammarStore model.GrammarStore,
	logger *logger.Logger,
) *Admin {
	return &Admin{
		userStore:    userStore,
		entryStore:   entryStore,
		gapStore:     gapStore,
		grammarStore: grammarStore,
		logger:       logger,
	}
}

// Stats summarizes platform content for the admin dashboard.
type Stats struct {
	DictionaryEntries int64
	VerifiedEntries   int64
	PendingEntries    int64
	Users             int64
	PendingGaps       int64
	GrammarRules      int64
}

func (s *Admin) Stats(ctx context.Context) (Stats, error) {
	total, err := s.entryStore.Count(ctx, false)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count entries: %w", err)
	}
	verified, err := s.entryStore.Count(ctx, true)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count verified entries: %w", err)
	}
	users, err := s.userStore.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count users: %w", err)
	}
	gaps, err := s.gapStore.CountPending(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count pending gaps: %w", err)
	}
	rules, err := s.grammarStore.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count grammar rules: %w", err)
	}

	return Stats{
		DictionaryEntries: total,
		VerifiedEntries:   verified,
		PendingEntries:    total - verified,
		Users:             users,
		PendingGaps:       gaps,
		GrammarRules:      rules,
	}, nil
}

// PendingEntries lists unverified entries awaiting review.
func (s *Admin) PendingEntries(ctx context.Context, limit int) ([]model.Entry, error) {
	if limit <= 0 {
		limit = 100
	}
	entries, err := s.entryStore.ListUnverified(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unverified entries: %w", err)
	}
	return entries, nil
}

// GrantRole raises a user's capability tier. Only admin and contributor
// grants exist; there is no demotion path in this core.
func (s *Admin) GrantRole(ctx context.Context, userID uuid.UUID, role model.Role) error {
	if role != model.RoleAdmin && role != model.RoleContributor {
		return fmt.Errorf("%w: role %q is not grantable", model.ErrInvalidState, role)
	}

	if err := s.userStore.SetRole(ctx, userID, role); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to set role: %w", err)
	}

	s.logger.Info("Admin service: role granted", "user_id", userID, "role", role.String())

	return nil
}
