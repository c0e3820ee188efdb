package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maaylex/maaylex-server/internal/model"
)

var _ model.GrammarStore = (*GrammarRepository)(nil)

type GrammarRepository struct {
	db *Connection
}

func NewGrammarRepository(db *Connection) *GrammarRepository {
	return &GrammarRepository{db: db}
}

func scanGrammarRule(row pgx.Row) (model.GrammarRule, error) {
	var rule model.GrammarRule
	var raw []byte
	if err := row.Scan(&rule.ID, &rule.Category, &rule.Title, &rule.Content, &raw, &rule.Difficulty, &rule.CreatedAt); err != nil {
		return model.GrammarRule{}, err
	}
	if err := json.Unmarshal(raw, &rule.Examples); err != nil {
		return model.GrammarRule{}, fmt.Errorf("failed to decode examples: %w", err)
	}
	return rule, nil
}

func (r *GrammarRepository) Create(ctx context.Context, rule model.GrammarRule) (model.GrammarRule, error) {
	examples := rule.Examples
	if examples == nil {
		examples = []model.GrammarExample{}
	}
	raw, err := json.Marshal(examples)
	if err != nil {
		return model.GrammarRule{}, fmt.Errorf("failed to encode examples: %w", err)
	}

	const query = `INSERT INTO grammar_rules (id, category, title, content, examples, difficulty, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, category, title, content, examples, difficulty, created_at`

	saved, err := scanGrammarRule(r.db.QueryRow(ctx, query,
		rule.ID, rule.Category, rule.Title, rule.Content, raw, rule.Difficulty, rule.CreatedAt,
	))
	if err != nil {
		return model.GrammarRule{}, fmt.Errorf("failed to create grammar rule: %w", err)
	}

	return saved, nil
}

func (r *GrammarRepository) GetByID(ctx context.Context, id uuid.UUID) (model.GrammarRule, error) {
	const query = `SELECT id, category, title, content, examples, difficulty, created_at FROM grammar_rules WHERE id = $1`

	rule, err := scanGrammarRule(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.GrammarRule{}, model.ErrNotFound
		}
		return model.GrammarRule{}, fmt.Errorf("failed to get grammar rule by id: %w", err)
	}

	return rule, nil
}

func (r *GrammarRepository) List(ctx context.Context, filter model.GrammarFilter) ([]model.GrammarRule, error) {
	query := `SELECT id, category, title, content, examples, difficulty, created_at FROM grammar_rules WHERE true`
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Category != "" {
		query += fmt.Sprintf(" AND category = %s", arg(filter.Category))
	}
	if filter.Difficulty != "" {
		query += fmt.Sprintf(" AND difficulty = %s", arg(filter.Difficulty))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		query += fmt.Sprintf(" AND (title ILIKE %s OR content ILIKE %s)", p, p)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(" LIMIT %s", arg(limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list grammar rules: %w", err)
	}
	defer rows.Close()

	var rules []model.GrammarRule
	for rows.Next() {
		rule, err := scanGrammarRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan grammar rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate grammar rules: %w", err)
	}

	return rules, nil
}

func (r *GrammarRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM grammar_rules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count grammar rules: %w", err)
	}
	return count, nil
}
