package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maaylex/maaylex-server/internal/logger"
	"github.com/maaylex/maaylex-server/internal/model"
)

const (
	translateContextEntries = 100
	chatContextEntries      = 50
	conversationListLimit   = 20
)

const translateSystemPrompt = `You are an expert translator for Af Maay (also called Maay Maay), a Somali language variant.

Key language rules:
- Af Maay uses SOV (Subject-Object-Verb) word order
- Sound groups: k, t, dh, n, b, r (affects noun declension)
- Verb conjugation follows 7 person system across 3 tenses

Dictionary reference:
%s

If a word cannot be translated, keep it in English and mark it with (untranslated).
Provide natural, grammatically correct translations.`

const chatSystemPrompt = `You are a helpful AI assistant for Af Maay language learning and translation.

About Af Maay:
- Af Maay (also called Maay Maay) is a Somali language variant
- It uses SOV (Subject-Object-Verb) word order
- It has 6 sound groups: k, t, dh, n, b, r
- Verbs conjugate for 7 persons across 3 tenses

Dictionary reference:
%s

Guidelines:
- If the user speaks in Af Maay, respond in Af Maay
- If the user speaks in English, respond in English
- Help with translations, grammar questions, and language learning
- If you don't know a word in Af Maay, say so and keep it in English marked as (untranslated)
- Be encouraging and supportive of language learners`

// GapIngester records uncertainty markers found in generated text.
type GapIngester interface {
	Ingest(ctx context.Context, generated, sourceContext string) []string
}

// Assistant fronts the external AI collaborators: translation, chat with
// conversation history, and voice transforms.
type Assistant struct {
	entryStore        model.EntryStore
	conversationStore model.ConversationStore
	gaps              GapIngester
	generator         model.TextGenerator
	speech            model.SpeechClient
	logger            *logger.Logger
}

func NewAssistant(
	entryStore model.EntryStore,
	conversationStore model.ConversationStore,
	gaps GapIngester,
	generator model.TextGenerator,
	speech model.SpeechClient,
	logger *logger.Logger,
) *Assistant {
	return &Assistant{
		entryStore:        entryStore,
		conversationStore: conversationStore,
		gaps:              gaps,
		generator:         generator,
		speech:            speech,
		logger:            logger,
	}
}

// TranslationResult is the outcome of one translation call.
type TranslationResult struct {
	OriginalText   string
	TranslatedText string
	SourceLanguage string
	TargetLanguage string
	VocabularyGaps []string
}

// Translate renders text between English and Af Maay using the verified
// dictionary as context. Generator failures surface as ErrUpstream with no
// retry; gap ingestion is best-effort and never fails the call.
func (s *Assistant) Translate(ctx context.Context, text, sourceLang, targetLang string) (TranslationResult, error) {
	dictContext, err := s.dictionaryContext(ctx, translateContextEntries)
	if err != nil {
		return TranslationResult{}, err
	}

	system := fmt.Sprintf(translateSystemPrompt, dictContext)
	prompt := fmt.Sprintf("Translate the following from %s to %s:\n\n%s\n\nProvide only the translation.", sourceLang, targetLang, text)

	translated, err := s.generator.Generate(ctx, system, prompt)
	if err != nil {
		s.logger.Error("Assistant service: translation failed", "error", err.Error())
		return TranslationResult{}, fmt.Errorf("failed to generate translation: %w", err)
	}
	translated = strings.TrimSpace(translated)

	gaps := s.gaps.Ingest(ctx, translated, text)

	return TranslationResult{
		OriginalText:   text,
		TranslatedText: translated,
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		VocabularyGaps: gaps,
	}, nil
}

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	Response       string
	ConversationID uuid.UUID
	VocabularyGaps []string
}

// Chat answers one message within a conversation, creating the conversation
// on first use. Anonymous callers pass the nil UUID as userID; their
// conversations are owned by nobody and unreachable via listing.
func (s *Assistant) Chat(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID, message string) (ChatResult, error) {
	conversation, err := s.loadOrCreateConversation(ctx, userID, conversationID)
	if err != nil {
		return ChatResult{}, err
	}

	dictContext, err := s.dictionaryContext(ctx, chatContextEntries)
	if err != nil {
		return ChatResult{}, err
	}

	response, err := s.generator.Generate(ctx, fmt.Sprintf(chatSystemPrompt, dictContext), message)
	if err != nil {
		s.logger.Error("Assistant service: chat generation failed",
			"conversation_id", conversation.ID,
			"error", err.Error())
		return ChatResult{}, fmt.Errorf("failed to generate chat response: %w", err)
	}

	now := time.Now().UTC()
	err = s.conversationStore.AppendMessages(ctx, conversation.ID, []model.Message{
		{Role: "user", Content: message, Timestamp: now},
		{Role: "assistant", Content: response, Timestamp: now},
	})
	if err != nil {
		return ChatResult{}, fmt.Errorf("failed to append messages: %w", err)
	}

	gaps := s.gaps.Ingest(ctx, response, message)

	return ChatResult{
		Response:       response,
		ConversationID: conversation.ID,
		VocabularyGaps: gaps,
	}, nil
}

func (s *Assistant) ListConversations(ctx context.Context, userID uuid.UUID) ([]model.Conversation, error) {
	conversations, err := s.conversationStore.ListByUser(ctx, userID, conversationListLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, nil
}

// GetConversation fetches one conversation, scoped to its owner: someone
// else's conversation is indistinguishable from a missing one.
func (s *Assistant) GetConversation(ctx context.Context, userID, id uuid.UUID) (model.Conversation, error) {
	conversation, err := s.conversationStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Conversation{}, model.ErrNotFound
		}
		return model.Conversation{}, fmt.Errorf("failed to get conversation: %w", err)
	}
	if conversation.UserID != userID {
		return model.Conversation{}, model.ErrNotFound
	}
	return conversation, nil
}

// Transcribe converts speech audio to text via the speech collaborator.
func (s *Assistant) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	text, err := s.speech.Transcribe(ctx, filename, audio)
	if err != nil {
		s.logger.Error("Assistant service: transcription failed", "error", err.Error())
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return text, nil
}

// Synthesize converts text to speech audio via the speech collaborator.
func (s *Assistant) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	audio, err := s.speech.Synthesize(ctx, text, voice)
	if err != nil {
		s.logger.Error("Assistant service: synthesis failed", "error", err.Error())
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	return audio, nil
}

func (s *Assistant) loadOrCreateConversation(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID) (model.Conversation, error) {
	if conversationID != nil {
		conversation, err := s.conversationStore.GetByID(ctx, *conversationID)
		if err == nil {
			return conversation, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return model.Conversation{}, fmt.Errorf("failed to get conversation: %w", err)
		}
	}

	now := time.Now().UTC()
	conversation, err := s.conversationStore.Create(ctx, model.Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return model.Conversation{}, fmt.Errorf("failed to create conversation: %w", err)
	}

	return conversation, nil
}

// dictionaryContext renders verified entries as a prompt excerpt.
func (s *Assistant) dictionaryContext(ctx context.Context, limit int) (string, error) {
	entries, err := s.entryStore.Search(ctx, model.EntryFilter{VerifiedOnly: true, Limit: limit})
	if err != nil {
		return "", fmt.Errorf("failed to load dictionary context: %w", err)
	}

	var b strings.Builder
	for _, entry := range entries {
		fmt.Fprintf(&b, "- %s: %s\n", entry.MaayWord, entry.EnglishTranslation)
	}
	return b.String(), nil
}
