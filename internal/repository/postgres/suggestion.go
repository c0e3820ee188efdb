package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maaylex/maaylex-server/internal/model"
)

var _ model.SuggestionStore = (*SuggestionRepository)(nil)

type SuggestionRepository struct {
	db *Connection
}

func NewSuggestionRepository(db *Connection) *SuggestionRepository {
	return &SuggestionRepository{db: db}
}

const suggestionColumns = `id, entry_id, proposer_id, maay_word, english_translation, part_of_speech,
			  sound_group, example_maay, example_english, rationale, status, created_at`

func scanSuggestion(row pgx.Row) (model.Suggestion, error) {
	var s model.Suggestion
	err := row.Scan(
		&s.ID, &s.EntryID, &s.ProposerID,
		&s.Changes.MaayWord, &s.Changes.EnglishTranslation, &s.Changes.PartOfSpeech,
		&s.Changes.SoundGroup, &s.Changes.ExampleMaay, &s.Changes.ExampleEnglish,
		&s.Rationale, &s.Status, &s.CreatedAt,
	)
	return s, err
}

func (r *SuggestionRepository) Create(ctx context.Context, suggestion model.Suggestion) (model.Suggestion, error) {
	query := `INSERT INTO edit_suggestions (id, entry_id, proposer_id, maay_word, english_translation,
			  part_of_speech, sound_group, example_maay, example_english, rationale, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + suggestionColumns

	saved, err := scanSuggestion(r.db.QueryRow(ctx, query,
		suggestion.ID, suggestion.EntryID, suggestion.ProposerID,
		suggestion.Changes.MaayWord, suggestion.Changes.EnglishTranslation, suggestion.Changes.PartOfSpeech,
		suggestion.Changes.SoundGroup, suggestion.Changes.ExampleMaay, suggestion.Changes.ExampleEnglish,
		suggestion.Rationale, suggestion.Status, suggestion.CreatedAt,
	))
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("failed to create suggestion: %w", err)
	}

	return saved, nil
}

func (r *SuggestionRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM edit_suggestions WHERE id = $1`

	suggestion, err := scanSuggestion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Suggestion{}, model.ErrNotFound
		}
		return model.Suggestion{}, fmt.Errorf("failed to get suggestion by id: %w", err)
	}

	return suggestion, nil
}

func (r *SuggestionRepository) ListByStatus(ctx context.Context, status model.ReviewStatus, limit int) ([]model.Suggestion, error) {
	query := `SELECT ` + suggestionColumns + ` FROM edit_suggestions WHERE status = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []model.Suggestion
	for rows.Next() {
		suggestion, err := scanSuggestion(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, suggestion)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suggestions: %w", err)
	}

	return suggestions, nil
}

// SetStatus transitions only pending suggestions, so a terminal decision
// can never be overwritten by a concurrent moderator.
func (r *SuggestionRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) error {
	const query = `UPDATE edit_suggestions SET status = $2 WHERE id = $1 AND status = 'pending'`

	cmd, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to set suggestion status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return model.ErrInvalidState
	}
	return nil
}
