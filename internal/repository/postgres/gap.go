package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maaylex/maaylex-server/internal/model"
)

var _ model.GapStore = (*GapRepository)(nil)

type GapRepository struct {
	db *Connection
}

func NewGapRepository(db *Connection) *GapRepository {
	return &GapRepository{db: db}
}

const gapColumns = `id, term, context, frequency, suggested_maay, status, created_at`

func scanGap(row pgx.Row) (model.Gap, error) {
	var g model.Gap
	err := row.Scan(&g.ID, &g.Term, &g.Context, &g.Frequency, &g.SuggestedMaay, &g.Status, &g.CreatedAt)
	return g, err
}

// UpsertPending inserts a new pending gap or bumps the frequency of the
// existing pending gap for the same term. The partial unique index on
// (term) WHERE status = 'pending' makes this a single atomic statement, so
// two concurrent detections of one term can never create duplicate rows.
func (r *GapRepository) UpsertPending(ctx context.Context, gap model.Gap) (model.Gap, error) {
	query := `INSERT INTO vocabulary_gaps (id, term, context, frequency, status, created_at)
			  VALUES ($1, $2, $3, 1, 'pending', $4)
			  ON CONFLICT (term) WHERE status = 'pending'
			  DO UPDATE SET frequency = vocabulary_gaps.frequency + 1
			  RETURNING ` + gapColumns

	saved, err := scanGap(r.db.QueryRow(ctx, query, gap.ID, gap.Term, gap.Context, gap.CreatedAt))
	if err != nil {
		return model.Gap{}, fmt.Errorf("failed to upsert gap: %w", err)
	}

	return saved, nil
}

func (r *GapRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Gap, error) {
	query := `SELECT ` + gapColumns + ` FROM vocabulary_gaps WHERE id = $1`

	gap, err := scanGap(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Gap{}, model.ErrNotFound
		}
		return model.Gap{}, fmt.Errorf("failed to get gap by id: %w", err)
	}

	return gap, nil
}

func (r *GapRepository) List(ctx context.Context, status model.ReviewStatus, limit int) ([]model.Gap, error) {
	query := `SELECT ` + gapColumns + ` FROM vocabulary_gaps`
	args := []any{limit}
	if status != "" {
		query += ` WHERE status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY frequency DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list gaps: %w", err)
	}
	defer rows.Close()

	var gaps []model.Gap
	for rows.Next() {
		gap, err := scanGap(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gap: %w", err)
		}
		gaps = append(gaps, gap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate gaps: %w", err)
	}

	return gaps, nil
}

func (r *GapRepository) SetSuggestion(ctx context.Context, id uuid.UUID, suggested string) error {
	const query = `UPDATE vocabulary_gaps SET suggested_maay = $2 WHERE id = $1 AND status = 'pending'`

	cmd, err := r.db.Exec(ctx, query, id, suggested)
	if err != nil {
		return fmt.Errorf("failed to set gap suggestion: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrTerminal(ctx, id)
	}
	return nil
}

func (r *GapRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.ReviewStatus) error {
	const query = `UPDATE vocabulary_gaps SET status = $2 WHERE id = $1 AND status = 'pending'`

	cmd, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to set gap status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return r.missingOrTerminal(ctx, id)
	}
	return nil
}

func (r *GapRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM vocabulary_gaps WHERE status = 'pending'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending gaps: %w", err)
	}
	return count, nil
}

// missingOrTerminal distinguishes why a pending-only update touched no rows.
func (r *GapRepository) missingOrTerminal(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); errors.Is(err, model.ErrNotFound) {
		return model.ErrNotFound
	}
	return model.ErrInvalidState
}
