package naming

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Result is one normalized AI suggestion. NewName always carries the
// original file's extension and Rating is within [1,3].
type Result struct {
	NewName   string `json:"newName"`
	Reasoning string `json:"reasoning"`
	Rating    int    `json:"rating"`
}

// Namer asks a generative model for a file name.
type Namer interface {
	GenerateFileName(ctx context.Context, content []byte, originalName, userPrompt, apiKey, model string) (*Result, error)
}

// NamerFunc adapts a function to Namer.
type NamerFunc func(ctx context.Context, content []byte, originalName, userPrompt, apiKey, model string) (*Result, error)

func (f NamerFunc) GenerateFileName(ctx context.Context, content []byte, originalName, userPrompt, apiKey, model string) (*Result, error) {
	return f(ctx, content, originalName, userPrompt, apiKey, model)
}

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"

	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultModel         = "gemini-2.0-flash-exp"
)

// NewNamer builds the client for provider. An empty baseURL selects the
// provider default; a nil client gets a 120s timeout.
func NewNamer(provider, baseURL string, client *http.Client) (Namer, error) {
	if client == nil {
		client = &http.Client{Timeout: 120 * time.Second}
	}
	switch provider {
	case "", ProviderGemini:
		if baseURL == "" {
			baseURL = DefaultGeminiBaseURL
		}
		return NewGeminiClient(baseURL, client), nil
	case ProviderOllama:
		if baseURL == "" {
			baseURL = DefaultOllamaBaseURL
		}
		return NewOllamaClient(baseURL, client), nil
	default:
		return nil, fmt.Errorf("unsupported naming provider: %s", provider)
	}
}
