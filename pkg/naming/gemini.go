package naming

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"ai-renamer-be/pkg/filename"
)

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiContent struct {
	Parts []*geminiPart `json:"parts"`
	Role  string        `json:"role,omitempty"`
}

type geminiRequest struct {
	Contents []*geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []*geminiCandidate `json:"candidates"`
}

type geminiErrorBody struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Type   string `json:"@type"`
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

// GeminiClient calls the generateContent endpoint with the file inlined.
type GeminiClient struct {
	BaseURL string
	Client  *http.Client
}

var _ Namer = (*GeminiClient)(nil)

func NewGeminiClient(baseURL string, client *http.Client) *GeminiClient {
	return &GeminiClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}
}

func (g *GeminiClient) GenerateFileName(ctx context.Context, content []byte, originalName, userPrompt, apiKey, model string) (*Result, error) {
	ext, err := filename.ExtensionOf(originalName)
	if err != nil {
		return nil, err
	}

	payload := geminiRequest{
		Contents: []*geminiContent{{
			Parts: []*geminiPart{
				{Text: BuildPrompt(userPrompt)},
				{InlineData: &geminiInlineData{
					MimeType: filename.MimeOf(ext),
					Data:     base64.StdEncoding.EncodeToString(content),
				}},
			},
		}},
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.BaseURL, url.PathEscape(model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	// Request URLs surface in transport errors; the key stays in a header.
	req.Header.Set("x-goog-api-key", apiKey)

	res, err := g.Client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, classify(geminiFailure(res.StatusCode, resBody))
	}

	var geminiRes geminiResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return nil, invalidFormat(fmt.Errorf("decode gemini response: %w", err))
	}
	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return nil, invalidFormat(fmt.Errorf("gemini response has no candidates: %s", string(resBody)))
	}

	return ParseSuggestion(geminiRes.Candidates[0].Content.Parts[0].Text, ext)
}

func geminiFailure(status int, body []byte) providerFailure {
	f := providerFailure{StatusCode: status}

	var errBody geminiErrorBody
	if err := json.Unmarshal(body, &errBody); err == nil && errBody.Error != nil {
		f.Message = errBody.Error.Message
		f.APIStatus = errBody.Error.Status
		for _, d := range errBody.Error.Details {
			if d.Reason != "" {
				f.Reasons = append(f.Reasons, d.Reason)
			}
		}
	}
	if f.Message == "" {
		f.Message = "API error: " + http.StatusText(status)
	}
	return f
}
