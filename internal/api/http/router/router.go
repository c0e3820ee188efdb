package router

import (
	"net/http"

	"github.com/maaylex/maaylex-server/internal/api/http/handler"
	"github.com/maaylex/maaylex-server/internal/api/http/middleware"
	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/service"
)

// Router assembles the HTTP API from services and middleware.
// Authorization is decided per route by the handlers; the session
// middleware only resolves identity.
type Router struct {
	authService       *service.Auth
	dictionaryService *service.Dictionary
	suggestionService *service.Suggestion
	gapService        *service.Gap
	assistantService  *service.Assistant
	grammarService    *service.Grammar
	adminService      *service.Admin
	contextManager    model.ContextManager
	secureCookies     bool
	logger            *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	dictionaryService *service.Dictionary,
	suggestionService *service.Suggestion,
	gapService *service.Gap,
	assistantService *service.Assistant,
	grammarService *service.Grammar,
	adminService *service.Admin,
	contextManager model.ContextManager,
	secureCookies bool,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:       authService,
		dictionaryService: dictionaryService,
		suggestionService: suggestionService,
		gapService:        gapService,
		assistantService:  assistantService,
		grammarService:    grammarService,
		adminService:      adminService,
		contextManager:    contextManager,
		secureCookies:     secureCookies,
		logger:            logger,
	}
}

// Register wires all routes and middleware and returns the root handler.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()

	r.registerAuthRoutes(mux)
	r.registerDictionaryRoutes(mux)
	r.registerSuggestionRoutes(mux)
	r.registerGapRoutes(mux)
	r.registerAssistantRoutes(mux)
	r.registerGrammarRoutes(mux)
	r.registerAdminRoutes(mux)

	healthHandler := handler.NewHealth()
	mux.HandleFunc("GET /api/health", healthHandler.Check)

	logging := middleware.NewLogging(r.logger)
	session := middleware.NewSession(r.authService, r.contextManager, r.logger)

	return logging.Handle(session.Handle(mux))
}

func (r *Router) registerAuthRoutes(mux *http.ServeMux) {
	h := handler.NewAuth(r.authService, r.contextManager, r.secureCookies, r.logger)

	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/session", h.ProviderSession)
	mux.HandleFunc("GET /api/auth/me", h.Me)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
}

func (r *Router) registerDictionaryRoutes(mux *http.ServeMux) {
	h := handler.NewDictionary(r.dictionaryService, r.contextManager, r.logger)

	mux.HandleFunc("GET /api/dictionary", h.Search)
	mux.HandleFunc("POST /api/dictionary", h.Create)
	mux.HandleFunc("GET /api/dictionary/{id}", h.Get)
	mux.HandleFunc("PUT /api/dictionary/{id}", h.Update)
	mux.HandleFunc("DELETE /api/dictionary/{id}", h.Delete)
	mux.HandleFunc("POST /api/dictionary/{id}/verify", h.Verify)
	mux.HandleFunc("POST /api/dictionary/{id}/audio", h.AttachAudio)
	mux.HandleFunc("GET /api/dictionary/{id}/audio", h.GetAudio)
}

func (r *Router) registerSuggestionRoutes(mux *http.ServeMux) {
	h := handler.NewSuggestion(r.suggestionService, r.contextManager, r.logger)

	mux.HandleFunc("POST /api/suggestions", h.Propose)
	mux.HandleFunc("GET /api/suggestions", h.ListPending)
	mux.HandleFunc("POST /api/suggestions/{id}/approve", h.Approve)
	mux.HandleFunc("POST /api/suggestions/{id}/reject", h.Reject)
}

func (r *Router) registerGapRoutes(mux *http.ServeMux) {
	h := handler.NewGap(r.gapService, r.contextManager, r.logger)

	mux.HandleFunc("GET /api/vocabulary-gaps", h.List)
	mux.HandleFunc("POST /api/vocabulary-gaps/{id}/suggest", h.Suggest)
	mux.HandleFunc("POST /api/vocabulary-gaps/{id}/approve", h.Approve)
	mux.HandleFunc("POST /api/vocabulary-gaps/{id}/reject", h.Reject)
}

func (r *Router) registerAssistantRoutes(mux *http.ServeMux) {
	h := handler.NewAssistant(r.assistantService, r.contextManager, r.logger)

	mux.HandleFunc("POST /api/translate", h.Translate)
	mux.HandleFunc("POST /api/chat", h.Chat)
	mux.HandleFunc("GET /api/conversations", h.ListConversations)
	mux.HandleFunc("GET /api/conversations/{id}", h.GetConversation)
	mux.HandleFunc("POST /api/voice/transcribe", h.Transcribe)
	mux.HandleFunc("POST /api/voice/synthesize", h.Synthesize)
}

func (r *Router) registerGrammarRoutes(mux *http.ServeMux) {
	h := handler.NewGrammar(r.grammarService, r.contextManager, r.logger)

	mux.HandleFunc("GET /api/grammar", h.List)
	mux.HandleFunc("POST /api/grammar", h.Create)
	mux.HandleFunc("GET /api/grammar/{id}", h.Get)
}

func (r *Router) registerAdminRoutes(mux *http.ServeMux) {
	h := handler.NewAdmin(r.adminService, r.dictionaryService, r.contextManager, r.logger)

	mux.HandleFunc("GET /api/admin/stats", h.Stats)
	mux.HandleFunc("GET /api/admin/pending-entries", h.PendingEntries)
	mux.HandleFunc("POST /api/admin/bulk-upload/dictionary", h.BulkUpload)
	mux.HandleFunc("POST /api/admin/grant-role/{userID}", h.GrantRole)
}
