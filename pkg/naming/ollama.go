package naming

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"ai-renamer-be/pkg/filename"

	ollama "github.com/ollama/ollama/api"
)

// maxInlineText bounds how much of a text file is pasted into the prompt.
const maxInlineText = 32 * 1024

// OllamaClient talks to a local Ollama server. Images go through the
// multimodal images field; plain text is inlined into the prompt.
type OllamaClient struct {
	BaseURL string
	Client  *http.Client
}

var _ Namer = (*OllamaClient)(nil)

func NewOllamaClient(baseURL string, client *http.Client) *OllamaClient {
	return &OllamaClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

// bearer adds the caller's key, for Ollama servers behind an auth proxy.
type bearer struct {
	key  string
	next http.RoundTripper
}

func (b bearer) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+b.key)
	return b.next.RoundTrip(r)
}

func (o *OllamaClient) api(apiKey string) (*ollama.Client, error) {
	base, err := url.Parse(o.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse ollama url: %w", err)
	}
	hc := o.Client
	if hc == nil {
		hc = http.DefaultClient
	}
	if apiKey != "" {
		next := hc.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		withKey := *hc
		withKey.Transport = bearer{key: apiKey, next: next}
		hc = &withKey
	}
	return ollama.NewClient(base, hc), nil
}

func (o *OllamaClient) GenerateFileName(ctx context.Context, content []byte, originalName, userPrompt, apiKey, model string) (*Result, error) {
	ext, err := filename.ExtensionOf(originalName)
	if err != nil {
		return nil, err
	}

	stream := false
	req := &ollama.GenerateRequest{
		Model:  model,
		Prompt: BuildPrompt(userPrompt),
		Format: json.RawMessage(`"json"`),
		Stream: &stream,
	}

	switch mime := filename.MimeOf(ext); {
	case strings.HasPrefix(mime, "image/"):
		req.Images = []ollama.ImageData{content}
	case mime == "text/plain" && utf8.Valid(content):
		text := content
		if len(text) > maxInlineText {
			text = text[:maxInlineText]
		}
		req.Prompt += "\n\nFile content:\n" + string(text)
	default:
		return nil, &Error{
			Kind:    KindProvider,
			Message: fmt.Sprintf("ollama cannot read %s files", strings.ToUpper(ext)),
		}
	}

	client, err := o.api(apiKey)
	if err != nil {
		return nil, err
	}

	var reply strings.Builder
	err = client.Generate(ctx, req, func(r ollama.GenerateResponse) error {
		reply.WriteString(r.Response)
		return nil
	})
	if err != nil {
		return nil, ollamaError(err)
	}

	return ParseSuggestion(reply.String(), ext)
}

func ollamaError(err error) error {
	var status ollama.StatusError
	if errors.As(err, &status) {
		msg := status.ErrorMessage
		if msg == "" {
			msg = "API error: " + http.StatusText(status.StatusCode)
		}
		return classify(providerFailure{StatusCode: status.StatusCode, Message: msg})
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
		return transportError(err)
	}
	// The server reported a failure inside an otherwise successful reply.
	return classify(providerFailure{Message: err.Error()})
}
