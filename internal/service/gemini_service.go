package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fadilmartias/resume-generator/internal/config"
	"google.golang.org/genai"
)

type GeminiService struct {
	Client            *genai.Client
	Model             string
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	RequestTimeout    time.Duration
	consecutiveErrors atomic.Int32
	circuitBreakerMax int32
}

func NewGeminiService(ctx context.Context) (*GeminiService, error) {
	geminiConfig := config.LoadGeminiConfig()
	apiKey := geminiConfig.APIKey
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GeminiService{
		Client:            client,
		Model:             geminiConfig.Model,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          90 * time.Second,
		RequestTimeout:    90 * time.Second,
		circuitBreakerMax: 5,
	}, nil
}

// GenerateText generates text for a prompt, retrying retryable failures with
// exponential backoff. The circuit breaker trips after too many consecutive
// failures so a dead upstream does not burn every request's retry budget.
func (s *GeminiService) GenerateText(ctx context.Context, prompt string, opts GenerationOptions) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	if n := s.consecutiveErrors.Load(); n >= s.circuitBreakerMax {
		return "", fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", n)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	genConfig := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(opts.Temperature),
	}
	if opts.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = opts.MaxOutputTokens
	}
	if opts.JSONOutput {
		genConfig.ResponseMIMEType = "application/json"
	}

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			log.Printf("Retry attempt %d/%d for GenerateText after %v", attempt, s.MaxRetries, delay)

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				return "", fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		result, err := s.Client.Models.GenerateContent(
			timeoutCtx,
			s.Model,
			genai.Text(prompt),
			genConfig,
		)

		if err == nil {
			s.consecutiveErrors.Store(0)
			if err := s.validateGenerateResponse(result); err != nil {
				return "", fmt.Errorf("invalid response: %w", err)
			}
			return result.Text(), nil
		}

		lastErr = err

		if !s.isRetryableError(err) {
			log.Printf("Non-retryable error: %v", err)
			s.consecutiveErrors.Add(1)
			return "", fmt.Errorf("generate text failed: %w", err)
		}

		log.Printf("Retryable error on attempt %d: %v", attempt+1, err)
	}

	s.consecutiveErrors.Add(1)
	return "", fmt.Errorf("max retries (%d) exceeded for GenerateText: %w", s.MaxRetries, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}

	jitter := time.Duration(float64(delay) * 0.25)
	delay = delay - jitter/2 + time.Duration(float64(jitter)*0.5)

	return delay
}

func (s *GeminiService) isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := err.Error()

	if strings.Contains(errMsg, "context canceled") ||
		strings.Contains(errMsg, "context deadline exceeded") {
		return false
	}
	if apiErr, ok := err.(*genai.APIError); ok {
		switch apiErr.Code {
		case 429: // Rate limit
			return true
		case 500, 502, 503, 504: // Server errors
			return true
		case 400, 401, 403, 404: // Client errors
			return false
		}
	}

	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF") {
		return true
	}

	return false
}

func (s *GeminiService) validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}

	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}

	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}

	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}

	return nil
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.consecutiveErrors.Store(0)
	log.Println("Circuit breaker reset")
}

func (s *GeminiService) GetCircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	n := s.consecutiveErrors.Load()
	return int(n), n >= s.circuitBreakerMax
}
