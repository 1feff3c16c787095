package chatbot

import (
	"context"
	"strings"

	"pago_backend/platform/apperr"
	"pago_backend/platform/logger"

	"google.golang.org/genai"
)

// Limits on what a single chat request may carry.
const (
	maxMessageLen  = 1000
	maxHistoryTurn = 6
)

// Turn is one prior exchange message.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Service calls the model with the knowledge-base prompt.
type Service struct {
	client *genai.Client
	model  string
	kb     *KnowledgeBase
	log    *logger.Logger
}

// NewService creates a Service. client may be nil when no API key is
// configured, Reply then reports the feature as disabled.
func NewService(client *genai.Client, model string, kb *KnowledgeBase, log *logger.Logger) *Service {
	return &Service{client: client, model: model, kb: kb, log: log}
}

// Enabled reports whether the chatbot can answer.
func (s *Service) Enabled() bool {
	return s.client != nil && s.kb != nil
}

// Reply answers a visitor message. History is capped to the most
// recent turns and oversized turns are clipped rather than rejected.
func (s *Service) Reply(ctx context.Context, message string, history []Turn) (string, error) {
	if !s.Enabled() {
		return "", apperr.Unavailable("assistente indisponível no momento").WithCode("CHAT_DISABLED")
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "", apperr.Validation("mensagem é obrigatória")
	}
	if len([]rune(message)) > maxMessageLen {
		return "", apperr.Validation("mensagem deve ter no máximo 1000 caracteres")
	}

	contents := buildContents(message, history)

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(s.kb.SystemPrompt(), genai.RoleUser),
	})
	if err != nil {
		s.log.Error("chat generation failed", "error", err)
		return "", apperr.Wrap(apperr.KindInternal, "não foi possível responder agora", err)
	}

	reply := strings.TrimSpace(resp.Text())
	if reply == "" {
		reply = s.kb.Fallback
	}
	return reply, nil
}

func buildContents(message string, history []Turn) []*genai.Content {
	if len(history) > maxHistoryTurn {
		history = history[len(history)-maxHistoryTurn:]
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		text := strings.TrimSpace(turn.Content)
		if text == "" {
			continue
		}
		if runes := []rune(text); len(runes) > maxMessageLen {
			text = string(runes[:maxMessageLen])
		}

		role := genai.Role(genai.RoleUser)
		if turn.Role == "assistant" || turn.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(text, role))
	}

	contents = append(contents, genai.NewContentFromText(message, genai.RoleUser))
	return contents
}
