package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
)

// GapService covers the vocabulary gap review pipeline.
type GapService interface {
	List(ctx context.Context, status model.ReviewStatus, limit int) ([]model.Gap, error)
	Suggest(ctx context.Context, id uuid.UUID, suggested string) error
	Approve(ctx context.Context, id uuid.UUID, approver model.User) (model.Entry, error)
	Reject(ctx context.Context, id uuid.UUID) error
}

// Gap handles review of tracked vocabulary gaps.
type Gap struct {
	service        GapService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewGap creates a new Gap handler instance.
func NewGap(service GapService, contextManager model.ContextManager, logger *logger.Logger) *Gap {
	return &Gap{service: service, contextManager: contextManager, logger: logger}
}

type gapResponse struct {
	ID            uuid.UUID `json:"id"`
	Term          string    `json:"term"`
	Context       string    `json:"context,omitempty"`
	Frequency     int       `json:"frequency"`
	SuggestedMaay *string   `json:"suggested_maay,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

func toGapResponse(g model.Gap) gapResponse {
	return gapResponse{
		ID:            g.ID,
		Term:          g.Term,
		Context:       g.Context,
		Frequency:     g.Frequency,
		SuggestedMaay: g.SuggestedMaay,
		Status:        string(g.Status),
		CreatedAt:     g.CreatedAt,
	}
}

type suggestGapRequest struct {
	SuggestedMaay string `json:"suggested_maay"`
}

// List returns gaps by status, pending by default. Admin only.
func (h *Gap) List(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	status := model.StatusPending
	switch r.URL.Query().Get("status") {
	case "", "pending":
	case "approved":
		status = model.StatusApproved
	case "rejected":
		status = model.StatusRejected
	default:
		badRequest(w, "invalid status")
		return
	}

	limit := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	gaps, err := h.service.List(r.Context(), status, limit)
	if err != nil {
		h.logger.Error("Gap handler: failed to list gaps", "error", err.Error())
		handleError(w, err)
		return
	}

	out := make([]gapResponse, 0, len(gaps))
	for _, g := range gaps {
		out = append(out, toGapResponse(g))
	}
	writeJSON(w, http.StatusOK, out)
}

// Suggest records a Maay equivalent for a pending gap. Any signed-in
// user may propose one; the review itself stays admin-gated.
func (h *Gap) Suggest(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleUser); err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid gap ID")
		return
	}

	var req suggestGapRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.SuggestedMaay) == "" {
		badRequest(w, "suggested_maay is required")
		return
	}

	if err := h.service.Suggest(r.Context(), id, strings.TrimSpace(req.SuggestedMaay)); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "suggestion recorded"})
}

// Approve promotes a suggested gap into a verified dictionary entry.
// Admin only.
func (h *Gap) Approve(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleAdmin)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid gap ID")
		return
	}

	entry, err := h.service.Approve(r.Context(), id, *user)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(entry))
}

// Reject closes a pending gap without creating an entry. Admin only.
func (h *Gap) Reject(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid gap ID")
		return
	}

	if err := h.service.Reject(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "gap rejected"})
}
