package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/russross/blackfriday"

	"github.com/dkovalev/modelmart/pkg/api/response"
	"github.com/dkovalev/modelmart/pkg/domain"
	"github.com/dkovalev/modelmart/pkg/logger"
	"github.com/dkovalev/modelmart/pkg/prompt"
)

const historyWindow = 10

type ModelRegistry interface {
	GetByID(ctx context.Context, id int64) (*domain.Model, error)
}

type HistoryRepository interface {
	RecentTurns(modelID int64, n int) []domain.ChatMessage
}

type ResponseOrchestrator interface {
	GetResponse(ctx context.Context, model domain.Model, userInput string, recentTurns []domain.ChatMessage) domain.AIResponse
}

type chat struct {
	registry     ModelRegistry
	history      HistoryRepository
	orchestrator ResponseOrchestrator
	writer       response.JSONResponseWriter
}

func NewChat(registry ModelRegistry, history HistoryRepository, orchestrator ResponseOrchestrator) *chat {
	return &chat{
		registry:     registry,
		history:      history,
		orchestrator: orchestrator,
	}
}

type chatRequest struct {
	ModelID int64  `json:"modelId"`
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
	IsRealAI bool   `json:"isRealAI"`
	Model    string `json:"model,omitempty"`
	HTML     string `json:"html,omitempty"`
}

// SendMessage serves one chat turn. The response always carries displayable
// text: refusals, offline fallbacks and backend answers all arrive the same
// way, with attribution flags telling them apart.
func (c *chat) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}

	ctx := logger.ContextWithConversationID(r.Context(), req.ModelID)

	model, err := c.registry.GetByID(ctx, req.ModelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.writer.WriteErrorResponse(w, http.StatusNotFound, "model not found")
			return
		}
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	recentTurns := c.history.RecentTurns(req.ModelID, historyWindow)
	aiResp := c.orchestrator.GetResponse(ctx, *model, req.Message, recentTurns)

	resp := chatResponse{
		Response: aiResp.Content,
		IsRealAI: aiResp.IsRealAI,
		Model:    aiResp.SourceLabel,
	}
	if r.URL.Query().Get("format") == "html" {
		resp.HTML = string(blackfriday.MarkdownCommon([]byte(aiResp.Content)))
	}

	c.writer.WriteSuccessResponse(w, resp)
}

// Greeting returns the first-person opening message for a model's chat.
func (c *chat) Greeting(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.URL.Query().Get("modelId"))
	if err != nil {
		c.writer.WriteErrorResponse(w, http.StatusBadRequest, "modelId parameter is missing or invalid")
		return
	}

	model, err := c.registry.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.writer.WriteErrorResponse(w, http.StatusNotFound, "model not found")
			return
		}
		c.writer.WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	c.writer.WriteSuccessResponse(w, map[string]string{
		"greeting": prompt.Greeting(*model),
	})
}
