package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dkovalev/modelmart/pkg/domain"
)

func model(category domain.Category, description string) domain.Model {
	return domain.Model{
		Name:        "TestModel",
		Category:    category,
		Description: description,
		Status:      domain.ModelStatusReady,
	}
}

func turns(contents ...string) []domain.ChatMessage {
	out := make([]domain.ChatMessage, 0, len(contents))
	for _, c := range contents {
		out = append(out, domain.ChatMessage{Role: domain.MessageRoleUser, Content: c})
	}
	return out
}

func TestIsInDomain_CategoryDispatch(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		input    string
		want     bool
	}{
		{"development refactor request", domain.CategoryDevelopment, "please refactor this function", true},
		{"development debug request", domain.CategoryDevelopment, "debug this function", true},
		{"development named language", domain.CategoryDevelopment, "how do I reverse a list in python", true},
		{"development greeting rejected", domain.CategoryDevelopment, "hello", false},
		{"audio with dev vocabulary rejected", domain.CategoryAudio, "please refactor this function", false},
		{"audio transcription", domain.CategoryAudio, "transcribe this recording for me", true},
		{"audio voice request", domain.CategoryAudio, "can you describe this voice style", true},
		{"text generation summarize", domain.CategoryTextGeneration, "summarize this article please", true},
		{"text generation off topic", domain.CategoryTextGeneration, "what is the capital of France", false},
		{"data analysis regression", domain.CategoryDataAnalysis, "run a regression on this dataset", true},
		{"data analysis off topic", domain.CategoryDataAnalysis, "tell me a joke", false},
		{"computer vision detection", domain.CategoryComputerVision, "detect objects in this photo", true},
		{"computer vision off topic", domain.CategoryComputerVision, "sing me a song", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsInDomain(model(tt.category, "A general assistant"), tt.input, nil)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsInDomain_ImageGenerationShortPrompt(t *testing.T) {
	m := model(domain.CategoryImageGeneration, "A general assistant")

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"two token prompt accepted", "a flower", true},
		{"six token prompt accepted", "red fox in a snowy forest", true},
		{"long prompt without keywords rejected", "tell me about the economic history of medieval trade routes across the continent", false},
		{"long prompt with image keyword accepted", "I would like a detailed painting of a lighthouse on a stormy evening coastline", true},
		{"empty input rejected", "", false},
		{"whitespace only rejected", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInDomain(m, tt.input, nil))
		})
	}
}

func TestIsInDomain_MathTeacherOverride(t *testing.T) {
	m := model(domain.CategoryTextGeneration, "A friendly math teacher for middle school students")

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"arithmetic expression", "what is 2+3?", true},
		{"math keyword", "explain probability to me", true},
		{"math verb", "add these numbers for me", true},
		{"writing request rejected", "write me a poem", false},
		{"generic chat rejected", "how was your day", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInDomain(m, tt.input, nil))
		})
	}
}

func TestIsInDomain_MathOverrideSkippedForDevelopment(t *testing.T) {
	// A "math teacher" description must not hijack a Development model.
	m := model(domain.CategoryDevelopment, "A math teacher turned coding assistant")

	assert.True(t, IsInDomain(m, "debug my code", nil))
	assert.False(t, IsInDomain(m, "write me a poem", nil))
}

func TestIsInDomain_FinanceOverride(t *testing.T) {
	m := model(domain.CategoryTextGeneration, "Your personal finance coach")

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"budgeting", "how should I budget my paycheck", true},
		{"investing", "is an etf better than a single stock", true},
		{"retirement", "explain a roth ira", true},
		{"loans", "should I refinance my mortgage", true},
		{"macro", "how does inflation affect me", true},
		{"taxes", "what deductions can I claim", true},
		{"writing request rejected", "write me a poem", false},
		{"generic chat rejected", "tell me a story", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsInDomain(m, tt.input, nil))
		})
	}
}

func TestIsInDomain_FinanceIgnoresContext(t *testing.T) {
	// Finance is stricter than the other rules: earlier turns about budgets
	// must not rescue an off-topic current message.
	m := model(domain.CategoryTextGeneration, "A financial planning assistant")
	history := turns("help me budget my savings", "sure, let's look at your expenses")

	assert.False(t, IsInDomain(m, "tell me a joke", history))
	assert.True(t, IsInDomain(m, "and what about my savings", history))
}

func TestIsInDomain_DeveloperRoleOverride(t *testing.T) {
	m := model(domain.CategoryTextGeneration, "An experienced software engineer assistant")

	assert.True(t, IsInDomain(m, "fix this bug for me", nil))
	// Writing vocabulary no longer counts once the developer role applies.
	assert.False(t, IsInDomain(m, "draft a birthday card message", nil))
}

func TestIsInDomain_ContextWindowMatches(t *testing.T) {
	m := model(domain.CategoryDevelopment, "A general assistant")

	// The current input alone matches nothing, but a recent turn does.
	assert.True(t, IsInDomain(m, "yes please", turns("here is my python code")))
	assert.False(t, IsInDomain(m, "yes please", nil))
}

func TestIsInDomain_ContextWindowBounded(t *testing.T) {
	m := model(domain.CategoryDevelopment, "A general assistant")

	// Only the last five turns are considered; an old match has aged out.
	history := turns("here is my python code", "a", "b", "c", "d", "e")
	assert.False(t, IsInDomain(m, "yes please", history))
}

func TestIsInDomain_UnknownCategoryDefaultAccepts(t *testing.T) {
	for _, input := range []string{"hello", "", "anything at all"} {
		assert.True(t, IsInDomain(model(domain.CategoryFinance, "A general assistant"), input, nil))
		assert.True(t, IsInDomain(model(domain.Category("Quantum"), "A general assistant"), input, nil))
	}
}

func TestDomainLabel(t *testing.T) {
	tests := []struct {
		name     string
		category domain.Category
		desc     string
		want     string
	}{
		{"development", domain.CategoryDevelopment, "A general assistant", "coding, debugging, and software topics"},
		{"math teacher override", domain.CategoryTextGeneration, "A patient algebra teacher", "math questions and step-by-step problem solving"},
		{"finance override", domain.CategoryTextGeneration, "Your budget planning helper", "personal finance and investing topics"},
		{"developer override", domain.CategoryAudio, "A senior developer assistant", "coding, debugging, and software topics"},
		{"text generation default", domain.CategoryTextGeneration, "A general assistant", "writing and text generation tasks"},
		{"image generation default", domain.CategoryImageGeneration, "A general assistant", "image prompts and visual descriptions"},
		{"audio default", domain.CategoryAudio, "A general assistant", "voice, speech, and audio topics"},
		{"data analysis default", domain.CategoryDataAnalysis, "A general assistant", "data analysis and statistics"},
		{"computer vision default", domain.CategoryComputerVision, "A general assistant", "image analysis and computer vision tasks"},
		{"finance category default", domain.CategoryFinance, "A general assistant", "personal finance and investing topics"},
		{"unknown category", domain.Category("Quantum"), "A general assistant", "its trained specialty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DomainLabel(model(tt.category, tt.desc)))
		})
	}
}

func TestIsInDomain_Deterministic(t *testing.T) {
	m := model(domain.CategoryDevelopment, "A coding assistant")
	history := turns("here is my code", "looks good")

	first := IsInDomain(m, "debug this function", history)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsInDomain(m, "debug this function", history))
	}
}
