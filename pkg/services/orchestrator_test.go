package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalev/modelmart/pkg/domain"
)

type fakeCompletionClient struct {
	response string
	err      error
	calls    int
	messages []domain.ChatMessage
}

func (f *fakeCompletionClient) CreateChatCompletion(_ context.Context, _ string, messages []domain.ChatMessage, _ string) (string, error) {
	f.calls++
	f.messages = messages
	return f.response, f.err
}

type fakeFallbackClient struct {
	configured bool
	response   string
	err        error
	calls      int
}

func (f *fakeFallbackClient) IsConfigured() bool { return f.configured }

func (f *fakeFallbackClient) GenerateContent(_ context.Context, _ string, _ []domain.ChatMessage, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

type recordedTurn struct {
	modelID int64
	role    string
	content string
}

type fakeHistory struct {
	turns []recordedTurn
}

func (f *fakeHistory) AppendTurn(modelID int64, role, content string) {
	f.turns = append(f.turns, recordedTurn{modelID, role, content})
}

func (f *fakeHistory) RecentTurns(int64, int) []domain.ChatMessage { return nil }

func readyModel(category domain.Category) domain.Model {
	return domain.Model{
		ID:          7,
		Name:        "TestModel",
		Category:    category,
		Description: "A general assistant",
		Status:      domain.ModelStatusReady,
	}
}

func TestGetResponse_OutOfDomainRefusal(t *testing.T) {
	completions := &fakeCompletionClient{response: "should not be called"}
	history := &fakeHistory{}
	o := NewOrchestrator(completions, nil, history, "gpt-4o")

	resp := o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "hello", nil)

	assert.Contains(t, resp.Content, "TestModel")
	assert.Contains(t, resp.Content, "coding, debugging, and software topics")
	assert.False(t, resp.IsRealAI)
	assert.Zero(t, completions.calls)
}

func TestGetResponse_ModelStillTraining(t *testing.T) {
	completions := &fakeCompletionClient{response: "should not be called"}
	o := NewOrchestrator(completions, nil, &fakeHistory{}, "gpt-4o")

	m := readyModel(domain.CategoryDevelopment)
	m.Status = domain.ModelStatusTraining

	resp := o.GetResponse(context.Background(), m, "debug this function", nil)

	assert.Equal(t, "TestModel is still training and can't chat yet. Please try again once training completes.", resp.Content)
	assert.Zero(t, completions.calls)
}

func TestGetResponse_RemoteSuccessStripsMarker(t *testing.T) {
	completions := &fakeCompletionClient{response: "[model:gpt-4o] Here is the fix."}
	o := NewOrchestrator(completions, nil, &fakeHistory{}, "gpt-4o")

	resp := o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "debug this function", nil)

	assert.Equal(t, "Here is the fix.", resp.Content)
	assert.True(t, resp.IsRealAI)
	assert.Equal(t, "gpt-4o", resp.SourceLabel)
}

func TestGetResponse_UnmarkedRemoteResponse(t *testing.T) {
	completions := &fakeCompletionClient{response: "Plain answer"}
	o := NewOrchestrator(completions, nil, &fakeHistory{}, "gpt-4o")

	resp := o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "debug this function", nil)

	assert.Equal(t, "Plain answer", resp.Content)
	assert.False(t, resp.IsRealAI)
	assert.Empty(t, resp.SourceLabel)
}

func TestGetResponse_MessageShapeSentToBackend(t *testing.T) {
	completions := &fakeCompletionClient{response: "ok"}
	o := NewOrchestrator(completions, nil, &fakeHistory{}, "gpt-4o")

	history := []domain.ChatMessage{
		{Role: domain.MessageRoleUser, Content: "here is my python code"},
		{Role: domain.MessageRoleAssistant, Content: "looks good"},
	}

	o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "debug this function", history)

	require.Len(t, completions.messages, 4)
	assert.Equal(t, domain.MessageRoleSystem, completions.messages[0].Role)
	assert.Equal(t, "here is my python code", completions.messages[1].Content)
	assert.Equal(t, domain.MessageRoleUser, completions.messages[3].Role)
	assert.Equal(t, "debug this function", completions.messages[3].Content)
}

func TestGetResponse_FallbackUsedAfterPrimaryFailure(t *testing.T) {
	completions := &fakeCompletionClient{err: errors.New("upstream timeout")}
	fallback := &fakeFallbackClient{configured: true, response: "[model:gemini-pro] Fallback answer"}
	o := NewOrchestrator(completions, fallback, &fakeHistory{}, "gpt-4o")

	resp := o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "debug this function", nil)

	assert.Equal(t, 1, fallback.calls)
	assert.Equal(t, "Fallback answer", resp.Content)
	assert.True(t, resp.IsRealAI)
	assert.Equal(t, "gemini-pro", resp.SourceLabel)
}

func TestGetResponse_UnconfiguredFallbackSkipped(t *testing.T) {
	completions := &fakeCompletionClient{err: errors.New("upstream timeout")}
	fallback := &fakeFallbackClient{configured: false, response: "unused"}
	o := NewOrchestrator(completions, fallback, &fakeHistory{}, "gpt-4o")

	o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "debug this function", nil)

	assert.Zero(t, fallback.calls)
}

func TestGetResponse_CredentialFailureMessage(t *testing.T) {
	completions := &fakeCompletionClient{err: errors.New("Gemini API key is not configured")}
	o := NewOrchestrator(completions, nil, &fakeHistory{}, "gpt-4o")

	resp := o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "debug this function", nil)

	assert.Equal(t, "I'm currently unable to process your request because the API key is not configured. Please set your API key in the settings.", resp.Content)
	assert.False(t, resp.IsRealAI)
}

func TestGetResponse_UnreachableBackendMessage(t *testing.T) {
	completions := &fakeCompletionClient{err: errors.New("Supabase configuration is incomplete: supabaseUrl or anon key is missing")}
	o := NewOrchestrator(completions, nil, &fakeHistory{}, "gpt-4o")

	resp := o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "debug this function", nil)

	assert.Equal(t, "I'm having trouble connecting to my knowledge base right now. Please try again in a moment.", resp.Content)
}

func TestGetResponse_UnclassifiedFailureUsesTemplates(t *testing.T) {
	completions := &fakeCompletionClient{err: errors.New("connection reset by peer")}
	o := NewOrchestrator(completions, nil, &fakeHistory{}, "gpt-4o")

	resp := o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "debug this function", nil)

	assert.True(t, strings.Contains(resp.Content, "Here's the code implementation"), "got %q", resp.Content)
	assert.False(t, resp.IsRealAI)
}

func TestGetResponse_HistoryTurnOrder(t *testing.T) {
	completions := &fakeCompletionClient{response: "Sure, here you go."}
	history := &fakeHistory{}
	o := NewOrchestrator(completions, nil, history, "gpt-4o")

	m := readyModel(domain.CategoryDevelopment)
	o.GetResponse(context.Background(), m, "debug this function", nil)

	require.Len(t, history.turns, 2)
	assert.Equal(t, recordedTurn{m.ID, domain.MessageRoleUser, "debug this function"}, history.turns[0])
	assert.Equal(t, recordedTurn{m.ID, domain.MessageRoleAssistant, "Sure, here you go."}, history.turns[1])
}

func TestGetResponse_RefusalStillRecordedInHistory(t *testing.T) {
	history := &fakeHistory{}
	o := NewOrchestrator(&fakeCompletionClient{}, nil, history, "gpt-4o")

	resp := o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "hello", nil)

	require.Len(t, history.turns, 2)
	assert.Equal(t, domain.MessageRoleUser, history.turns[0].role)
	assert.Equal(t, resp.Content, history.turns[1].content)
}

type panickyCompletionClient struct{}

func (panickyCompletionClient) CreateChatCompletion(context.Context, string, []domain.ChatMessage, string) (string, error) {
	panic("backend exploded")
}

func TestGetResponse_PanicDegradesToApology(t *testing.T) {
	o := NewOrchestrator(panickyCompletionClient{}, nil, &fakeHistory{}, "gpt-4o")

	resp := o.GetResponse(context.Background(), readyModel(domain.CategoryDevelopment), "debug this function", nil)

	assert.Equal(t, "I apologize, but my coding assistance is temporarily offline. Please try again in a moment.", resp.Content)
}

func TestGetResponse_PanicApologyByCategory(t *testing.T) {
	tests := []struct {
		category domain.Category
		input    string
		want     string
	}{
		{domain.CategoryTextGeneration, "write me a poem", "I apologize, but my writing tools are temporarily offline. Please try again in a moment."},
		{domain.CategoryDataAnalysis, "run a regression on this dataset", "I apologize, but my analysis tools are temporarily offline. Please try again in a moment."},
		{domain.CategoryComputerVision, "detect objects in this photo", "I'm having trouble connecting to my knowledge base right now. Please try again in a moment."},
	}

	for _, tt := range tests {
		o := NewOrchestrator(panickyCompletionClient{}, nil, &fakeHistory{}, "gpt-4o")
		resp := o.GetResponse(context.Background(), readyModel(tt.category), tt.input, nil)
		assert.Equal(t, tt.want, resp.Content)
	}
}
