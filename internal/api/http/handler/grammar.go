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
	"github.com/maaylex/maaylex-server/internal/service"
)

// GrammarService covers grammar reference operations.
type GrammarService interface {
	Create(ctx context.Context, params service.CreateGrammarRuleParams) (model.GrammarRule, error)
	Get(ctx context.Context, id uuid.UUID) (model.GrammarRule, error)
	List(ctx context.Context, filter model.GrammarFilter) ([]model.GrammarRule, error)
}

// Grammar handles the grammar reference section.
type Grammar struct {
	service        GrammarService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewGrammar creates a new Grammar handler instance.
func NewGrammar(service GrammarService, contextManager model.ContextManager, logger *logger.Logger) *Grammar {
	return &Grammar{service: service, contextManager: contextManager, logger: logger}
}

type createGrammarRuleRequest struct {
	Category   string                 `json:"category"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	Examples   []model.GrammarExample `json:"examples"`
	Difficulty string                 `json:"difficulty"`
}

type grammarRuleResponse struct {
	ID         uuid.UUID              `json:"id"`
	Category   string                 `json:"category"`
	Title      string                 `json:"title"`
	Content    string                 `json:"content"`
	Examples   []model.GrammarExample `json:"examples"`
	Difficulty string                 `json:"difficulty"`
	CreatedAt  time.Time              `json:"created_at"`
}

func toGrammarRuleResponse(rule model.GrammarRule) grammarRuleResponse {
	examples := rule.Examples
	if examples == nil {
		examples = []model.GrammarExample{}
	}
	return grammarRuleResponse{
		ID:         rule.ID,
		Category:   rule.Category,
		Title:      rule.Title,
		Content:    rule.Content,
		Examples:   examples,
		Difficulty: rule.Difficulty,
		CreatedAt:  rule.CreatedAt,
	}
}

// Create adds a grammar rule. Admin only.
func (h *Grammar) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := identityAtLeast(h.contextManager, r, model.RoleAdmin); err != nil {
		handleError(w, err)
		return
	}

	var req createGrammarRuleRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Category) == "" || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		badRequest(w, "category, title and content are required")
		return
	}

	rule, err := h.service.Create(r.Context(), service.CreateGrammarRuleParams{
		Category:   req.Category,
		Title:      req.Title,
		Content:    req.Content,
		Examples:   req.Examples,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		h.logger.Error("Grammar handler: failed to create rule", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGrammarRuleResponse(rule))
}

// Get returns one grammar rule by ID.
func (h *Grammar) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid rule ID")
		return
	}

	rule, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toGrammarRuleResponse(rule))
}

// List returns grammar rules matching the query parameters. Open to
// anonymous callers.
func (h *Grammar) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.GrammarFilter{
		Category:   q.Get("category"),
		Difficulty: q.Get("difficulty"),
		Search:     q.Get("search"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	rules, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("Grammar handler: failed to list rules", "error", err.Error())
		handleError(w, err)
		return
	}

	out := make([]grammarRuleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toGrammarRuleResponse(rule))
	}
	writeJSON(w, http.StatusOK, out)
}
