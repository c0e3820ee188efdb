package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EntryStore defines persistence operations for dictionary entries.
type EntryStore interface {
	Create(ctx context.Context, entry Entry) (Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (Entry, error)
	Search(ctx context.Context, filter EntryFilter) ([]Entry, error)
	Update(ctx context.Context, id uuid.UUID, changes EntryChanges, editorID uuid.UUID) (Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Verify(ctx context.Context, id uuid.UUID) error
	SetAudioKey(ctx context.Context, id uuid.UUID, key string, editorID uuid.UUID) error
	Count(ctx context.Context, verifiedOnly bool) (int64, error)
	ListUnverified(ctx context.Context, limit int) ([]Entry, error)
}

// Entry is a dictionary entry mapping a Maay word to its English
// translation. Multiple entries may map the same word pair (synonyms).
type Entry struct {
	ID                 uuid.UUID
	MaayWord           string
	EnglishTranslation string
	PartOfSpeech       string
	SoundGroup         *string
	ExampleMaay        *string
	ExampleEnglish     *string
	AudioKey           *string
	Verified           bool
	ContributorID      *uuid.UUID
	LastEditorID       *uuid.UUID
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// EntryChanges is the closed set of entry fields a partial update or an
// edit suggestion may touch. Nil fields are left untouched on apply.
type EntryChanges struct {
	MaayWord           *string
	EnglishTranslation *string
	PartOfSpeech       *string
	SoundGroup         *string
	ExampleMaay        *string
	ExampleEnglish     *string
}

// Empty reports whether no field is set.
func (c EntryChanges) Empty() bool {
	return c.MaayWord == nil && c.EnglishTranslation == nil && c.PartOfSpeech == nil &&
		c.SoundGroup == nil && c.ExampleMaay == nil && c.ExampleEnglish == nil
}

// EntryFilter is a conjunction of optional search criteria. String matches
// are case-insensitive substrings; SoundGroup is an exact match. AnyTerm
// matches either the Maay word or the English translation.
type EntryFilter struct {
	AnyTerm      string
	MaayWord     string
	English      string
	SoundGroup   string
	VerifiedOnly bool
	Skip         int
	Limit        int
}

// DefaultSearchLimit bounds a search when the caller does not set one.
const DefaultSearchLimit = 50
