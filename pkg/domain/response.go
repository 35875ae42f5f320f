package domain

import (
	"regexp"
	"strings"
)

// AIResponse is what the chat pipeline hands back to the UI. SourceLabel names
// the backend model that produced the content when IsRealAI is true; simulated
// and offline answers leave it empty.
type AIResponse struct {
	Content     string
	IsRealAI    bool
	SourceLabel string
}

// sourceTagRe matches the provider marker some backends prefix to their text,
// e.g. "[model:gemini-pro] ". The marker is an internal attribution channel and
// must never reach the end user.
var sourceTagRe = regexp.MustCompile(`(?i)^\[model:([^\]]+)\]\s*`)

// ParseSourceTag strips a leading provider marker from raw response text.
// Text without a marker comes back unchanged and unattributed.
func ParseSourceTag(raw string) AIResponse {
	m := sourceTagRe.FindStringSubmatch(raw)
	if m == nil {
		return AIResponse{Content: raw}
	}
	return AIResponse{
		Content:     strings.TrimSpace(strings.TrimPrefix(raw, m[0])),
		IsRealAI:    true,
		SourceLabel: m[1],
	}
}
