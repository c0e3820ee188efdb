package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maaylex/maaylex-server/internal/model"
)

var _ model.EntryStore = (*EntryRepository)(nil)

type EntryRepository struct {
	db *Connection
}

func NewEntryRepository(db *Connection) *EntryRepository {
	return &EntryRepository{
		db: db,
	}
}

const entryColumns = `id, maay_word, english_translation, part_of_speech, sound_group,
			  example_maay, example_english, audio_key, verified,
			  contributor_id, last_editor_id, created_at, updated_at`

func scanEntry(row pgx.Row) (model.Entry, error) {
	var e model.Entry
	err := row.Scan(
		&e.ID, &e.MaayWord, &e.EnglishTranslation, &e.PartOfSpeech, &e.SoundGroup,
		&e.ExampleMaay, &e.ExampleEnglish, &e.AudioKey, &e.Verified,
		&e.ContributorID, &e.LastEditorID, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *EntryRepository) Create(ctx context.Context, entry model.Entry) (model.Entry, error) {
	query := `INSERT INTO dictionary_entries (id, maay_word, english_translation, part_of_speech, sound_group,
			  example_maay, example_english, audio_key, verified, contributor_id, last_editor_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING ` + entryColumns

	saved, err := scanEntry(r.db.QueryRow(ctx, query,
		entry.ID, entry.MaayWord, entry.EnglishTranslation, entry.PartOfSpeech, entry.SoundGroup,
		entry.ExampleMaay, entry.ExampleEnglish, entry.AudioKey, entry.Verified,
		entry.ContributorID, entry.LastEditorID, entry.CreatedAt, entry.UpdatedAt,
	))
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to create entry: %w", err)
	}

	return saved, nil
}

func (r *EntryRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM dictionary_entries WHERE id = $1`

	entry, err := scanEntry(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Entry{}, model.ErrNotFound
		}
		return model.Entry{}, fmt.Errorf("failed to get entry by id: %w", err)
	}

	return entry, nil
}

// Search applies the filter as a conjunction. No ordering is guaranteed
// beyond the skip/limit window.
func (r *EntryRepository) Search(ctx context.Context, filter model.EntryFilter) ([]model.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM dictionary_entries WHERE true`
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.AnyTerm != "" {
		p := arg("%" + filter.AnyTerm + "%")
		query += fmt.Sprintf(" AND (maay_word ILIKE %s OR english_translation ILIKE %s)", p, p)
	}
	if filter.MaayWord != "" {
		query += fmt.Sprintf(" AND maay_word ILIKE %s", arg("%"+filter.MaayWord+"%"))
	}
	if filter.English != "" {
		query += fmt.Sprintf(" AND english_translation ILIKE %s", arg("%"+filter.English+"%"))
	}
	if filter.SoundGroup != "" {
		query += fmt.Sprintf(" AND sound_group = %s", arg(filter.SoundGroup))
	}
	if filter.VerifiedOnly {
		query += " AND verified"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = model.DefaultSearchLimit
	}
	query += fmt.Sprintf(" OFFSET %s LIMIT %s", arg(filter.Skip), arg(limit))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// Update overwrites only the non-nil change fields and always stamps
// updated_at and last_editor_id.
func (r *EntryRepository) Update(ctx context.Context, id uuid.UUID, changes model.EntryChanges, editorID uuid.UUID) (model.Entry, error) {
	query := `UPDATE dictionary_entries SET
			  maay_word = COALESCE($2, maay_word),
			  english_translation = COALESCE($3, english_translation),
			  part_of_speech = COALESCE($4, part_of_speech),
			  sound_group = COALESCE($5, sound_group),
			  example_maay = COALESCE($6, example_maay),
			  example_english = COALESCE($7, example_english),
			  last_editor_id = $8,
			  updated_at = now()
			  WHERE id = $1
			  RETURNING ` + entryColumns

	entry, err := scanEntry(r.db.QueryRow(ctx, query,
		id, changes.MaayWord, changes.EnglishTranslation, changes.PartOfSpeech,
		changes.SoundGroup, changes.ExampleMaay, changes.ExampleEnglish, editorID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Entry{}, model.ErrNotFound
		}
		return model.Entry{}, fmt.Errorf("failed to update entry: %w", err)
	}

	return entry, nil
}

func (r *EntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM dictionary_entries WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *EntryRepository) Verify(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE dictionary_entries SET verified = true, updated_at = now() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to verify entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *EntryRepository) SetAudioKey(ctx context.Context, id uuid.UUID, key string, editorID uuid.UUID) error {
	const query = `UPDATE dictionary_entries SET audio_key = $2, last_editor_id = $3, updated_at = now() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, key, editorID)
	if err != nil {
		return fmt.Errorf("failed to set entry audio key: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *EntryRepository) Count(ctx context.Context, verifiedOnly bool) (int64, error) {
	query := `SELECT count(*) FROM dictionary_entries`
	if verifiedOnly {
		query += ` WHERE verified`
	}

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

func (r *EntryRepository) ListUnverified(ctx context.Context, limit int) ([]model.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM dictionary_entries WHERE NOT verified ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unverified entries: %w", err)
	}
	defer rows.Close()

	var entries []model.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}
