package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/dkovalev/modelmart/pkg/classifier"
	"github.com/dkovalev/modelmart/pkg/domain"
	"github.com/dkovalev/modelmart/pkg/logger"
	"github.com/dkovalev/modelmart/pkg/prompt"
	"github.com/dkovalev/modelmart/pkg/templates"
)

// historyLimit bounds how many prior turns are replayed to the backend.
const historyLimit = 10

type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, systemPrompt string, messages []domain.ChatMessage, modelName string) (string, error)
}

type FallbackClient interface {
	IsConfigured() bool
	GenerateContent(ctx context.Context, systemPrompt string, recentTurns []domain.ChatMessage, userInput string) (string, error)
}

type HistoryRepository interface {
	AppendTurn(modelID int64, role, content string)
	RecentTurns(modelID int64, n int) []domain.ChatMessage
}

type orchestrator struct {
	completions  CompletionClient
	fallback     FallbackClient
	historyRepo  HistoryRepository
	backendModel string
}

func NewOrchestrator(
	completions CompletionClient,
	fallback FallbackClient,
	historyRepo HistoryRepository,
	backendModel string,
) *orchestrator {
	return &orchestrator{
		completions:  completions,
		fallback:     fallback,
		historyRepo:  historyRepo,
		backendModel: backendModel,
	}
}

// GetResponse runs the full chat pipeline for one user turn: domain gate,
// readiness gate, remote dispatch, then the offline degradation chain. It
// always resolves to displayable text; no error or panic escapes to the
// caller. Exactly one user turn and one assistant turn are appended to the
// conversation history per call, in that order.
func (o *orchestrator) GetResponse(ctx context.Context, model domain.Model, userInput string, recentTurns []domain.ChatMessage) domain.AIResponse {
	o.historyRepo.AppendTurn(model.ID, domain.MessageRoleUser, userInput)

	resp := o.respond(ctx, model, userInput, recentTurns)

	o.historyRepo.AppendTurn(model.ID, domain.MessageRoleAssistant, resp.Content)
	return resp
}

func (o *orchestrator) respond(ctx context.Context, model domain.Model, userInput string, recentTurns []domain.ChatMessage) (resp domain.AIResponse) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "chat pipeline panicked", "model", model.Name, "panic", r)
			resp = domain.AIResponse{Content: offlineApology(model.Category)}
		}
	}()

	if !classifier.IsInDomain(model, userInput, recentTurns) {
		slog.InfoContext(ctx, "message rejected as out of domain",
			"model", model.Name, "category", string(model.Category))
		return domain.AIResponse{Content: refusalMessage(model)}
	}

	if !model.IsReady() {
		return domain.AIResponse{Content: fmt.Sprintf(
			"%s is still training and can't chat yet. Please try again once training completes.", model.Name)}
	}

	systemPrompt := prompt.BuildSystemPrompt(model)
	messages := buildMessages(systemPrompt, recentTurns, userInput)

	// Remote strategies in order; the first success wins.
	var remoteErr error

	raw, err := o.completions.CreateChatCompletion(ctx, systemPrompt, messages, o.backendModel)
	if err == nil {
		return domain.ParseSourceTag(raw)
	}
	remoteErr = multierror.Append(remoteErr, err)

	if o.fallback != nil && o.fallback.IsConfigured() {
		raw, err = o.fallback.GenerateContent(ctx, systemPrompt, recentTurns, userInput)
		if err == nil {
			return domain.ParseSourceTag(raw)
		}
		remoteErr = multierror.Append(remoteErr, err)
	}

	slog.WarnContext(ctx, "remote strategies failed, degrading to offline response",
		"model", model.Name, logger.Err(remoteErr))

	if msg, ok := classifyRemoteFailure(remoteErr); ok {
		return domain.AIResponse{Content: msg}
	}

	return domain.AIResponse{Content: templates.Respond(model, userInput)}
}

func buildMessages(systemPrompt string, recentTurns []domain.ChatMessage, userInput string) []domain.ChatMessage {
	turns := recentTurns
	if len(turns) > historyLimit {
		turns = turns[len(turns)-historyLimit:]
	}

	messages := make([]domain.ChatMessage, 0, len(turns)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.MessageRoleSystem, Content: systemPrompt})
	messages = append(messages, turns...)
	messages = append(messages, domain.ChatMessage{Role: domain.MessageRoleUser, Content: userInput})
	return messages
}

// classifyRemoteFailure maps the two known failure signatures to their
// user-legible offline messages. Anything else falls through to the template
// bank.
func classifyRemoteFailure(err error) (string, bool) {
	text := err.Error()

	if strings.Contains(text, "API key") {
		return "I'm currently unable to process your request because the API key is not configured. Please set your API key in the settings.", true
	}
	if strings.Contains(text, "Supabase configuration") || strings.Contains(text, "supabaseUrl") {
		return "I'm having trouble connecting to my knowledge base right now. Please try again in a moment.", true
	}
	return "", false
}

func refusalMessage(model domain.Model) string {
	label := classifier.DomainLabel(model)
	return fmt.Sprintf("I'm %s and I specialize in %s. Your message looks outside that scope. Could you ask me something related to my specialty instead?",
		model.Name, label)
}

func offlineApology(category domain.Category) string {
	switch category {
	case domain.CategoryDevelopment:
		return "I apologize, but my coding assistance is temporarily offline. Please try again in a moment."
	case domain.CategoryTextGeneration:
		return "I apologize, but my writing tools are temporarily offline. Please try again in a moment."
	case domain.CategoryDataAnalysis:
		return "I apologize, but my analysis tools are temporarily offline. Please try again in a moment."
	default:
		return "I'm having trouble connecting to my knowledge base right now. Please try again in a moment."
	}
}
