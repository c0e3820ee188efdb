package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/service"
)

// AdminService covers platform administration operations.
type AdminService interface {
	Stats(ctx context.Context) (service.Stats, error)
	PendingEntries(ctx context.Context, limit int) ([]model.Entry, error)
	GrantRole(ctx context.Context, userID uuid.UUID, role model.Role) error
}

// BulkImporter loads dictionary rows in one call.
type BulkImporter interface {
	BulkImport(ctx context.Context, rows []service.CreateEntryParams, importer model.User) (int, error)
}

// Admin handles moderation statistics, role grants and bulk imports.
type Admin struct {
	service        AdminService
	importer       BulkImporter
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAdmin creates a new Admin handler instance.
func NewAdmin(service AdminService, importer BulkImporter, contextManager model.ContextManager, logger *logger.Logger) *Admin {
	return &Admin{
		service:        service,
		importer:       importer,
		contextManager: contextManager,
		logger:         logger,
	}
}

type statsResponse struct {
	DictionaryEntries int64 `json:"dictionary_entries"`
	VerifiedEntries   int64 `json:"verified_entries"`
	PendingEntries    int64 `json:"pending_entries"`
	Users             int64 `json:"users"`
	PendingGaps       int64 `json:"pending_vocabulary_gaps"`
	GrammarRules      int64 `json:"grammar_rules"`
}

// Stats returns platform-wide counters. Admin only.
func (h *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("Admin handler: failed to collect stats", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		DictionaryEntries: stats.DictionaryEntries,
		VerifiedEntries:   stats.VerifiedEntries,
		PendingEntries:    stats.PendingEntries,
		Users:             stats.Users,
		PendingGaps:       stats.PendingGaps,
		GrammarRules:      stats.GrammarRules,
	})
}

// PendingEntries lists unverified dictionary entries for review. Admin only.
func (h *Admin) PendingEntries(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	limit := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	entries, err := h.service.PendingEntries(r.Context(), limit)
	if err != nil {
		h.logger.Error("Admin handler: failed to list pending entries", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponses(entries))
}

type bulkUploadRequest struct {
	Entries []createEntryRequest `json:"entries"`
}

type bulkUploadResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}

// BulkUpload imports dictionary rows in one shot. Admin only; rows missing
// both terms are skipped rather than failing the batch.
func (h *Admin) BulkUpload(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleAdmin)
	if err != nil {
		handleError(w, err)
		return
	}

	var req bulkUploadRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if len(req.Entries) == 0 {
		badRequest(w, "entries must not be empty")
		return
	}

	rows := make([]service.CreateEntryParams, 0, len(req.Entries))
	for _, e := range req.Entries {
		rows = append(rows, service.CreateEntryParams{
			MaayWord:           e.MaayWord,
			EnglishTranslation: e.EnglishTranslation,
			PartOfSpeech:       e.PartOfSpeech,
			SoundGroup:         e.SoundGroup,
			ExampleMaay:        e.ExampleMaay,
			ExampleEnglish:     e.ExampleEnglish,
		})
	}

	created, err := h.importer.BulkImport(r.Context(), rows, *user)
	if err != nil {
		h.logger.Error("Admin handler: bulk upload failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bulkUploadResponse{Created: created, Skipped: len(rows) - created})
}

type grantRoleRequest struct {
	Role string `json:"role"`
}

// GrantRole elevates a user to contributor or admin. Admin only.
func (h *Admin) GrantRole(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	userID, err := uuid.Parse(r.PathValue("userID"))
	if err != nil {
		badRequest(w, "invalid user ID")
		return
	}

	var req grantRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	var role model.Role
	switch req.Role {
	case "admin":
		role = model.RoleAdmin
	case "contributor":
		role = model.RoleContributor
	default:
		badRequest(w, "role must be admin or contributor")
		return
	}

	if err := h.service.GrantRole(r.Context(), userID, role); err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "role granted"})
}
