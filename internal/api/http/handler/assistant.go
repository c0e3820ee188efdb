package handler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
	"github.com/maaylex/maaylex-server/internal/service"
)

// AssistantService covers AI translation, chat and voice operations.
type AssistantService interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (service.TranslationResult, error)
	Chat(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID, message string) (service.ChatResult, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error)
	GetConversation(ctx context.Context, userID, id uuid.UUID) (model.Conversation, error)
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Assistant handles translation, conversational chat and voice endpoints.
type Assistant struct {
	service        AssistantService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAssistant creates a new Assistant handler instance.
func NewAssistant(service AssistantService, contextManager model.ContextManager, logger *logger.Logger) *Assistant {
	return &Assistant{service: service, contextManager: contextManager, logger: logger}
}

type translateRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	OriginalText   string   `json:"original_text"`
	TranslatedText string   `json:"translated_text"`
	SourceLanguage string   `json:"source_language"`
	TargetLanguage string   `json:"target_language"`
	VocabularyGaps []string `json:"vocabulary_gaps"`
}

type chatRequest struct {
	Message        string     `json:"message"`
	ConversationID *uuid.UUID `json:"conversation_id"`
}

type chatResponse struct {
	Response       string    `json:"response"`
	ConversationID uuid.UUID `json:"conversation_id"`
	VocabularyGaps []string  `json:"vocabulary_gaps"`
}

type conversationResponse struct {
	ID        uuid.UUID       `json:"id"`
	Messages  []model.Message `json:"messages"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func toConversationResponse(c model.Conversation) conversationResponse {
	messages := c.Messages
	if messages == nil {
		messages = []model.Message{}
	}
	return conversationResponse{ID: c.ID, Messages: messages, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

// Translate renders text between English and Af Maay. Open to anonymous
// callers.
func (h *Assistant) Translate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = "english"
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = "maay"
	}

	result, err := h.service.Translate(r.Context(), req.Text, req.SourceLanguage, req.TargetLanguage)
	if err != nil {
		h.logger.Error("Assistant handler: translation failed", "error", err.Error())
		handleError(w, err)
		return
	}

	gaps := result.VocabularyGaps
	if gaps == nil {
		gaps = []string{}
	}
	writeJSON(w, http.StatusOK, translateResponse{
		OriginalText:   result.OriginalText,
		TranslatedText: result.TranslatedText,
		SourceLanguage: result.SourceLanguage,
		TargetLanguage: result.TargetLanguage,
		VocabularyGaps: gaps,
	})
}

// Chat answers one message within a conversation. Anonymous callers get
// unowned conversations.
func (h *Assistant) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		badRequest(w, "message is required")
		return
	}

	userID := uuid.Nil
	if user, ok := h.contextManager.UserFromContext(r.Context()); ok && user != nil {
		userID = user.ID
	}

	result, err := h.service.Chat(r.Context(), userID, req.ConversationID, req.Message)
	if err != nil {
		h.logger.Error("Assistant handler: chat failed", "error", err.Error())
		handleError(w, err)
		return
	}

	gaps := result.VocabularyGaps
	if gaps == nil {
		gaps = []string{}
	}
	writeJSON(w, http.StatusOK, chatResponse{
		Response:       result.Response,
		ConversationID: result.ConversationID,
		VocabularyGaps: gaps,
	})
}

// ListConversations returns the caller's recent conversations.
func (h *Assistant) ListConversations(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleUser)
	if err != nil {
		handleError(w, err)
		return
	}

	conversations, err := h.service.ListConversations(r.Context(), user.ID)
	if err != nil {
		h.logger.Error("Assistant handler: failed to list conversations", "error", err.Error())
		handleError(w, err)
		return
	}

	out := make([]conversationResponse, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, toConversationResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetConversation returns one conversation owned by the caller.
func (h *Assistant) GetConversation(w http.ResponseWriter, r *http.Request) {
	user, err := identityAtLeast(h.contextManager, r, model.RoleUser)
	if err != nil {
		handleError(w, err)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		badRequest(w, "invalid conversation ID")
		return
	}

	conversation, err := h.service.GetConversation(r.Context(), user.ID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toConversationResponse(conversation))
}

// Transcribe converts an uploaded audio clip to text.
func (h *Assistant) Transcribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioUploadBytes); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		badRequest(w, "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioUploadBytes))
	if err != nil {
		badRequest(w, "failed to read audio file")
		return
	}

	text, err := h.service.Transcribe(r.Context(), header.Filename, audio)
	if err != nil {
		h.logger.Error("Assistant handler: transcription failed", "error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

type synthesizeRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
}

// Synthesize converts text to speech and streams the audio back.
func (h *Assistant) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req synthesizeRequest
	if err := decodeJSON(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	audio, err := h.service.Synthesize(r.Context(), req.Text, req.Voice)
	if err != nil {
		h.logger.Error("Assistant handler: synthesis failed", "error", err.Error())
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}
