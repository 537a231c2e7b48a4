package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// fallbackModels are tried in order after the GEMINI_MODEL override. Working
// through the list is one logical call, not a user-facing retry.
var fallbackModels = []string{
	"gemini-1.5-flash-001",
	"gemini-1.5-flash",
	"gemini-1.5-flash-latest",
	"gemini-1.5-pro",
	"gemini-pro",
}

type GeminiClient struct {
	apiKey     string
	models     []string
	httpClient *http.Client
}

func NewGeminiClient() *GeminiClient {
	models := make([]string, 0, len(fallbackModels)+1)
	if m := os.Getenv("GEMINI_MODEL"); m != "" {
		models = append(models, m)
	}
	models = append(models, fallbackModels...)

	return &GeminiClient{
		apiKey:     os.Getenv("GEMINI_API_KEY"),
		models:     models,
		httpClient: &http.Client{},
	}
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	parts := []map[string]any{{"text": prompt}}
	return g.generate(ctx, parts)
}

func (g *GeminiClient) GenerateWithFile(ctx context.Context, prompt string, data []byte, mimeType string) (string, error) {
	parts := []map[string]any{
		{"text": prompt},
		{"inline_data": map[string]any{
			"mime_type": mimeType,
			"data":      base64.StdEncoding.EncodeToString(data),
		}},
	}
	return g.generate(ctx, parts)
}

func (g *GeminiClient) generate(ctx context.Context, parts []map[string]any) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("missing GEMINI_API_KEY")
	}

	var lastErr error
	for _, model := range g.models {
		output, err := g.call(ctx, model, parts)
		if err == nil {
			return output, nil
		}
		// A dead deadline kills every remaining candidate too.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err
	}
	return "", fmt.Errorf("no model available: %w", lastErr)
}

func (g *GeminiClient) call(ctx context.Context, model string, parts []map[string]any) (string, error) {
	url := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		model,
		g.apiKey,
	)

	payload := map[string]any{
		"contents": []map[string]any{
			{"parts": parts},
		},
		"generationConfig": map[string]any{
			"temperature":      0,
			"responseMimeType": "application/json",
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api error (%s): %s", model, string(raw))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty gemini response")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
