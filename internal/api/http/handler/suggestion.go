package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
)

// SuggestionService covers the edit suggestion review pipeline.
type SuggestionService interface {
	Propose(ctx context.Context, entryID uuid.UUID, changes model.EntryChanges, rationale *string, proposer model.User) (model.Suggestion, error)
	ListPending(ctx context.Context, limit int) ([]model.Suggestion, error)
	Approve(ctx context.Context, id uuid.UUID, approver model.User) (model.Entry, error)
	Reject(ctx context.Context, id uuid.UUID) error
}

// Suggestion handles proposing and reviewing edit suggestions.
type Suggestion struct {
	service        SuggestionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewSuggestion creates a new Suggestion handler instance.
func NewSuggestion(service SuggestionService, contextManager model.ContextManager, logger *logger.Logger) *Suggestion {
	return &Suggestion{service: service, contextManager: contextManager, logger: logger}
}

type proposeRequest struct {
	EntryID   uuid.UUID          `json:"entry_id"`
	Changes   updateEntryRequest `json:"changes"`
	Rationale *string            `json:"rationale"`
}

type suggestionResponse struct {
	ID         uuid.UUID          `json:"id"`
	EntryID    uuid.UUID          `json:"entry_id"`
	ProposerID uuid.UUID          `json:"proposer_id"`
	Changes    updateEntryRequest `json:"changes"`
	Rationale  *string            `json:"rationale,omitempty"`
	Status     string             `json:"status"`
	CreatedAt  time.Time          `json:"created_at"`
}

func toSuggestionResponse(s model.Suggestion) suggestionResponse {
	return suggestionResponse{
		ID:         s.ID,
		EntryID:    s.EntryID,
		ProposerID: s.ProposerID,
		Changes: updateEntryRequest{
			MaayWord:           s.Changes.MaayWord,
			EnglishTranslation: s.Changes.EnglishTranslation,
			PartOfSpeech:       s.Changes.PartOfSpeech,
			SoundGroup:         s.Changes.SoundGroup,
			ExampleMaay:        s.Changes.ExampleMaay,
			ExampleEnglish:     s.Changes.ExampleEnglish,
		},
		Rationale: s.Rationale,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
	}
}

// Propose queues an edit suggestion on an existing entry. Any authenticated
// user may propose.
func (h *Suggestion) Propose(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleUser)
	if err != nil {
		handleError(w, err)
		return
	}

	var req proposeRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if req.EntryID == uuid.Nil {
		badRequest(w, "entry_id is required")
		return
	}
	changes := req.Changes.changes()
	if changes.Empty() {
		badRequest(w, "changes must set at least one field")
		return
	}

	suggestion, err := h.service.Propose(r.Context(), req.EntryID, changes, req.Rationale, *user)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSuggestionResponse(suggestion))
}

// ListPending returns suggestions awaiting review. Admin only.
func (h *Suggestion) ListPending(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	limit := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	suggestions, err := h.service.ListPending(r.Context(), limit)
	if err != nil {
		h.logger.Error("Suggestion handler: failed to list pending", "error", err.Error())
		handleError(w, err)
		return
	}

	out := make([]suggestionResponse, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, toSuggestionResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

// Approve applies a pending suggestion to its entry. Admin only.
func (h *Suggestion) Approve(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleAdmin)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid suggestion ID")
		return
	}

	entry, err := h.service.Approve(r.Context(), id, *user)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(entry))
}

// Reject declines a pending suggestion. Admin only.
func (h *Suggestion) Reject(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid suggestion ID")
		return
	}

	if err := h.service.Reject(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "suggestion rejected"})
}
