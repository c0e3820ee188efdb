package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
)

// Dictionary manages the canonical entry registry and its verification state.
type Dictionary struct {
	entryStore model.EntryStore
	storage    model.Storage
	logger     *logger.Logger
}

func NewDictionary(entryStore model.EntryStore, storage model.Storage, logger *logger.Logger) *Dictionary {
	return &Dictionary{
		entryStore: entryStore,
		storage:    storage,
		logger:     logger,
	}
}

// CreateEntryParams contains caller-provided entry fields.
type CreateEntryParams struct {
	MaayWord           string
	EnglishTranslation string
	PartOfSpeech       string
	SoundGroup         *string
	ExampleMaay        *string
	ExampleEnglish     *string
}

// Create adds an entry; it is verified only when the creator is an admin.
func (s *Dictionary) Create(ctx context.Context, params CreateEntryParams, creator model.User) (model.Entry, error) {
	now := time.Now().UTC()
	entry := model.Entry{
		ID:                 uuid.New(),
		MaayWord:           params.MaayWord,
		EnglishTranslation: params.EnglishTranslation,
		PartOfSpeech:       params.PartOfSpeech,
		SoundGroup:         params.SoundGroup,
		ExampleMaay:        params.ExampleMaay,
		ExampleEnglish:     params.ExampleEnglish,
		Verified:           creator.IsAdmin,
		ContributorID:      &creator.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	saved, err := s.entryStore.Create(ctx, entry)
	if err != nil {
		return model.Entry{}, fmt.Errorf("failed to create entry: %w", err)
	}

	s.logger.Info("Dictionary service: entry created",
		"entry_id", saved.ID,
		"contributor_id", creator.ID,
		"verified", saved.Verified)

	return saved, nil
}

func (s *Dictionary) Get(ctx context.Context, id uuid.UUID) (model.Entry, error) {
	entry, err := s.entryStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Entry{}, model.ErrNotFound
		}
		return model.Entry{}, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

func (s *Dictionary) Search(ctx context.Context, filter model.EntryFilter) ([]model.Entry, error) {
	entries, err := s.entryStore.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return entries, nil
}

// Update applies the non-nil change fields and stamps the editor.
func (s *Dictionary) Update(ctx context.Context, id uuid.UUID, changes model.EntryChanges, editor model.User) (model.Entry, error) {
	entry, err := s.entryStore.Update(ctx, id, changes, editor.ID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Entry{}, model.ErrNotFound
		}
		return model.Entry{}, fmt.Errorf("failed to update entry: %w", err)
	}

	s.logger.Info("Dictionary service: entry updated", "entry_id", id, "editor_id", editor.ID)

	return entry, nil
}

// Delete removes the entry and its pronunciation clip. A failed clip
// removal is logged but does not resurrect the already deleted entry.
func (s *Dictionary) Delete(ctx context.Context, id uuid.UUID) error {
	entry, err := s.entryStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get entry: %w", err)
	}

	if err := s.entryStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	if entry.AudioKey != nil {
		if err := s.storage.Delete(ctx, *entry.AudioKey); err != nil {
			s.logger.Error("Dictionary service: failed to delete audio clip",
				"entry_id", id,
				"key", *entry.AudioKey,
				"error", err.Error())
		}
	}

	s.logger.Info("Dictionary service: entry deleted", "entry_id", id)

	return nil
}

func (s *Dictionary) Verify(ctx context.Context, id uuid.UUID) error {
	if err := s.entryStore.Verify(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to verify entry: %w", err)
	}

	s.logger.Info("Dictionary service: entry verified", "entry_id", id)

	return nil
}

// BulkImport creates one entry per row, each independently verified. A row
// is rejected only when both term fields are empty. There is no
// all-or-nothing guarantee; the created count reports partial success.
func (s *Dictionary) BulkImport(ctx context.Context, rows []CreateEntryParams, importer model.User) (int, error) {
	created := 0
	for _, row := range rows {
		if row.MaayWord == "" && row.EnglishTranslation == "" {
			continue
		}
		if row.PartOfSpeech == "" {
			row.PartOfSpeech = "noun"
		}

		now := time.Now().UTC()
		_, err := s.entryStore.Create(ctx, model.Entry{
			ID:                 uuid.New(),
			MaayWord:           row.MaayWord,
			EnglishTranslation: row.EnglishTranslation,
			PartOfSpeech:       row.PartOfSpeech,
			SoundGroup:         row.SoundGroup,
			ExampleMaay:        row.ExampleMaay,
			ExampleEnglish:     row.ExampleEnglish,
			Verified:           true,
			ContributorID:      &importer.ID,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
		if err != nil {
			s.logger.Error("Dictionary service: bulk import row failed",
				"maay_word", row.MaayWord,
				"error", err.Error())
			continue
		}
		created++
	}

	s.logger.Info("Dictionary service: bulk import finished", "created", created, "rows", len(rows))

	return created, nil
}

// AttachAudio stores a pronunciation clip and records its key on the
// entry. A replaced clip is removed from storage best-effort.
func (s *Dictionary) AttachAudio(ctx context.Context, id uuid.UUID, audio []byte, editor model.User) (string, error) {
	entry, err := s.entryStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get entry: %w", err)
	}

	key := fmt.Sprintf("entries/%s/pronunciation-%s", id, uuid.NewString())
	if err := s.storage.Upload(ctx, key, bytes.NewReader(audio)); err != nil {
		return "", fmt.Errorf("failed to upload audio: %w", err)
	}

	if err := s.entryStore.SetAudioKey(ctx, id, key, editor.ID); err != nil {
		return "", fmt.Errorf("failed to set audio key: %w", err)
	}

	if entry.AudioKey != nil {
		if err := s.storage.Delete(ctx, *entry.AudioKey); err != nil {
			s.logger.Error("Dictionary service: failed to delete replaced audio clip",
				"entry_id", id,
				"key", *entry.AudioKey,
				"error", err.Error())
		}
	}

	s.logger.Info("Dictionary service: audio attached", "entry_id", id, "key", key)

	return key, nil
}

// GetAudio streams the entry's pronunciation clip.
func (s *Dictionary) GetAudio(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	entry, err := s.entryStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if entry.AudioKey == nil {
		return nil, model.ErrNotFound
	}

	reader, err := s.storage.Download(ctx, *entry.AudioKey)
	if err != nil {
		return nil, fmt.Errorf("failed to download audio: %w", err)
	}

	return reader, nil
}
