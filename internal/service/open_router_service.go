package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/resume-generator/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterService is the alternative text-generation provider, talking to
// the OpenRouter chat-completions endpoint directly.
type OpenRouterService struct {
	APIKey  string
	Model   string
	BaseURL string
	client  *resty.Client
}

func NewOpenRouterService() *OpenRouterService {
	cfg := config.LoadOpenRouterConfig()
	return &OpenRouterService{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		client:  resty.New().SetTimeout(90 * time.Second),
	}
}

func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	if s.APIKey == "" {
		return "", fmt.Errorf("OPENROUTER_API_KEY not set")
	}

	body := map[string]any{
		"model": s.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": opts.Temperature,
	}
	if opts.MaxOutputTokens > 0 {
		body["max_tokens"] = opts.MaxOutputTokens
	}
	if opts.JSONOutput {
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(s.BaseURL + "/chat/completions")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("openrouter returned %d: %s", resp.StatusCode(), gjson.Get(resp.String(), "error.message").String())
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", fmt.Errorf("no response from LLM")
	}
	return text, nil
}
