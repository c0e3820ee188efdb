package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/service"
)

// maxAudioUploadBytes bounds pronunciation clip uploads.
const maxAudioUploadBytes = 10 << 20

// DictionaryService covers entry registry operations used by the HTTP layer.
type DictionaryService interface {
	Create(ctx context.Context, params service.CreateEntryParams, creator model.User) (model.Entry, error)
	Get(ctx context.Context, id uuid.UUID) (model.Entry, error)
	Search(ctx context.Context, filter model.EntryFilter) ([]model.Entry, error)
	Update(ctx context.Context, id uuid.UUID, changes model.EntryChanges, editor model.User) (model.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Verify(ctx context.Context, id uuid.UUID) error
	AttachAudio(ctx context.Context, id uuid.UUID, audio []byte, editor model.User) (string, error)
	GetAudio(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)
}

// Dictionary handles dictionary entry CRUD, verification and audio.
type Dictionary struct {
	service        DictionaryService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewDictionary creates a new Dictionary handler instance.
func NewDictionary(service DictionaryService, contextManager model.ContextManager, logger *logger.Logger) *Dictionary {
	return &Dictionary{service: service, contextManager: contextManager, logger: logger}
}

type createEntryRequest struct {
	MaayWord           string  `json:"maay_word"`
	EnglishTranslation string  `json:"english_translation"`
	PartOfSpeech       string  `json:"part_of_speech"`
	SoundGroup         *string `json:"sound_group"`
	ExampleMaay        *string `json:"example_maay"`
	ExampleEnglish     *string `json:"example_english"`
}

type updateEntryRequest struct {
	MaayWord           *string `json:"maay_word"`
	EnglishTranslation *string `json:"english_translation"`
	PartOfSpeech       *string `json:"part_of_speech"`
	SoundGroup         *string `json:"sound_group"`
	ExampleMaay        *string `json:"example_maay"`
	ExampleEnglish     *string `json:"example_english"`
}

func (r updateEntryRequest) changes() model.EntryChanges {
	return model.EntryChanges{
		MaayWord:           r.MaayWord,
		EnglishTranslation: r.EnglishTranslation,
		PartOfSpeech:       r.PartOfSpeech,
		SoundGroup:         r.SoundGroup,
		ExampleMaay:        r.ExampleMaay,
		ExampleEnglish:     r.ExampleEnglish,
	}
}

type entryResponse struct {
	ID                 uuid.UUID  `json:"id"`
	MaayWord           string     `json:"maay_word"`
	EnglishTranslation string     `json:"english_translation"`
	PartOfSpeech       string     `json:"part_of_speech"`
	SoundGroup         *string    `json:"sound_group,omitempty"`
	ExampleMaay        *string    `json:"example_maay,omitempty"`
	ExampleEnglish     *string    `json:"example_english,omitempty"`
	HasAudio           bool       `json:"has_audio"`
	Verified           bool       `json:"verified"`
	ContributorID      *uuid.UUID `json:"contributor_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toEntryResponse(entry model.Entry) entryResponse {
	return entryResponse{
		ID:                 entry.ID,
		MaayWord:           entry.MaayWord,
		EnglishTranslation: entry.EnglishTranslation,
		PartOfSpeech:       entry.PartOfSpeech,
		SoundGroup:         entry.SoundGroup,
		ExampleMaay:        entry.ExampleMaay,
		ExampleEnglish:     entry.ExampleEnglish,
		HasAudio:           entry.AudioKey != nil,
		Verified:           entry.Verified,
		ContributorID:      entry.ContributorID,
		CreatedAt:          entry.CreatedAt,
		UpdatedAt:          entry.UpdatedAt,
	}
}

func toEntryResponses(entries []model.Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryResponse(entry))
	}
	return out
}

// Create adds a dictionary entry. Any authenticated user may contribute;
// only admin-created entries are born verified.
func (h *Dictionary) Create(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleUser)
	if err != nil {
		handleError(w, err)
		return
	}

	var req createEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.MaayWord) == "" || strings.TrimSpace(req.EnglishTranslation) == "" {
		badRequest(w, "maay_word and english_translation are required")
		return
	}
	if req.PartOfSpeech == "" {
		req.PartOfSpeech = "noun"
	}

	entry, err := h.service.Create(r.Context(), service.CreateEntryParams{
		MaayWord:           strings.TrimSpace(req.MaayWord),
		EnglishTranslation: strings.TrimSpace(req.EnglishTranslation),
		PartOfSpeech:       req.PartOfSpeech,
		SoundGroup:         req.SoundGroup,
		ExampleMaay:        req.ExampleMaay,
		ExampleEnglish:     req.ExampleEnglish,
	}, *user)
	if err != nil {
		h.logger.Error("Dictionary handler: failed to create entry", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// Search lists entries matching the query parameters. Open to anonymous
// callers.
func (h *Dictionary) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.EntryFilter{
		AnyTerm:      q.Get("search"),
		MaayWord:     q.Get("maay_word"),
		English:      q.Get("english"),
		SoundGroup:   q.Get("sound_group"),
		VerifiedOnly: q.Get("verified_only") == "true",
	}
	if skip, err := strconv.Atoi(q.Get("skip")); err == nil && skip > 0 {
		filter.Skip = skip
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	entries, err := h.service.Search(r.Context(), filter)
	if err != nil {
		h.logger.Error("Dictionary handler: search failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

// Get returns one entry by ID.
func (h *Dictionary) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid entry ID")
		return
	}

	entry, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Update applies a direct partial edit. Contributor or above.
func (h *Dictionary) Update(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleContributor)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid entry ID")
		return
	}

	var req updateEntryRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	changes := req.changes()
	if changes.Empty() {
		badRequest(w, "no fields to update")
		return
	}

	entry, err := h.service.Update(r.Context(), id, changes, *user)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Delete removes an entry. Admin only.
func (h *Dictionary) Delete(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid entry ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "entry deleted"})
}

// Verify marks an entry as reviewed. Admin only, idempotent.
func (h *Dictionary) Verify(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid entry ID")
		return
	}

	if err := h.service.Verify(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "entry verified"})
}

// AttachAudio stores a pronunciation clip for an entry. Contributor or
// above.
func (h *Dictionary) AttachAudio(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleContributor)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid entry ID")
		return
	}

	audio, err := io.ReadAll(io.LimitReader(r.Body, maxAudioUploadBytes))
	if err != nil {
		badRequest(w, "failed to read audio body")
		return
	}
	if len(audio) == 0 {
		badRequest(w, "audio body is empty")
		return
	}

	key, err := h.service.AttachAudio(r.Context(), id, audio, *user)
	if err != nil {
		h.logger.Error("Dictionary handler: failed to attach audio", "entry_id", id, "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"audio_key": key})
}

// GetAudio streams the pronunciation clip of an entry.
func (h *Dictionary) GetAudio(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid entry ID")
		return
	}

	reader, err := h.service.GetAudio(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}
