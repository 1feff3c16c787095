package chatbot

import (
	"context"
	nethttp "net/http"

	"pago_backend/internal/http"
	"pago_backend/platform/config"
	"pago_backend/platform/httpkit"
	"pago_backend/platform/logger"
	"pago_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"google.golang.org/genai"
)

// Module wires the FAQ chatbot.
type Module struct {
	service  *Service
	validate *validator.Validator
}

// NewModule builds the chatbot. Without an API key or knowledge base
// the module still registers its route and answers 503.
func NewModule(ctx context.Context, cfg config.ChatConfig, validate *validator.Validator, log *logger.Logger) *Module {
	var client *genai.Client
	var kb *KnowledgeBase

	if cfg.IsChatEnabled() {
		loaded, err := LoadKnowledgeBase(cfg.GetChatFAQPath())
		if err != nil {
			log.Warn("chatbot disabled, knowledge base unavailable", "path", cfg.GetChatFAQPath(), "error", err)
		} else {
			kb = loaded
		}

		if kb != nil {
			created, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  cfg.GetGeminiAPIKey(),
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				log.Warn("chatbot disabled, client creation failed", "error", err)
			} else {
				client = created
			}
		}
	}

	return &Module{
		service:  NewService(client, cfg.GetChatModel(), kb, log),
		validate: validate,
	}
}

// Name implements http.Module.
func (m *Module) Name() string { return "chatbot" }

// RegisterRoutes implements http.Module.
func (m *Module) RegisterRoutes(ctx *http.RouterContext) {
	ctx.V1.POST("/chat", ctx.Strict, m.chat)
}

type chatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
	History []Turn `json:"history" validate:"omitempty,max=6"`
}

func (m *Module) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, nethttp.StatusBadRequest, "requisição inválida", nil)
		return
	}
	if violation := validator.FirstViolation(m.validate.Struct(req)); violation != nil {
		httpkit.Error(c, nethttp.StatusBadRequest, violation.Reason, violation)
		return
	}

	reply, err := m.service.Reply(c.Request.Context(), req.Message, req.History)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"reply": reply})
}
