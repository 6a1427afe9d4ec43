// Package llm provides the cloud language-model boundary. A single Service
// fronts both supported providers (Gemini and Claude), applying rate
// limiting and retry/backoff so callers see one blocking Generate call.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/tanushka-102/scholarly/internal/common"
	"github.com/tanushka-102/scholarly/internal/interfaces"
)

// ProviderType represents the AI provider type
type ProviderType string

const (
	// ProviderGemini uses Google Gemini API
	ProviderGemini ProviderType = "gemini"
	// ProviderClaude uses Anthropic Claude API
	ProviderClaude ProviderType = "claude"
)

// Service implements interfaces.LLMService over the configured provider.
type Service struct {
	geminiConfig *common.GeminiConfig
	claudeConfig *common.ClaudeConfig
	llmConfig    *common.LLMConfig
	kvStorage    interfaces.KeyValueStorage
	limiter      *rate.Limiter
	logger       arbor.ILogger

	geminiClient *genai.Client
	claudeClient anthropic.Client
	claudeReady  bool
}

// Compile-time assertion
var _ interfaces.LLMService = (*Service)(nil)

// NewService creates a new LLM service. API keys are resolved from the
// key/value store first, falling back to the static configuration.
func NewService(
	geminiConfig *common.GeminiConfig,
	claudeConfig *common.ClaudeConfig,
	llmConfig *common.LLMConfig,
	kvStorage interfaces.KeyValueStorage,
	logger arbor.ILogger,
) *Service {
	return &Service{
		geminiConfig: geminiConfig,
		claudeConfig: claudeConfig,
		llmConfig:    llmConfig,
		kvStorage:    kvStorage,
		limiter:      rate.NewLimiter(rate.Limit(llmConfig.RequestsPerMin/60.0), llmConfig.Burst),
		logger:       logger,
	}
}

// Provider returns the configured provider type.
func (s *Service) Provider() ProviderType {
	if strings.EqualFold(s.llmConfig.DefaultProvider, string(ProviderClaude)) {
		return ProviderClaude
	}
	return ProviderGemini
}

// Generate produces a completion for the conversation using the configured
// provider, waiting on the rate limiter before each outbound call.
func (s *Service) Generate(ctx context.Context, messages []interfaces.Message) (string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait cancelled: %w", err)
	}

	provider := s.Provider()
	s.logger.Debug().
		Str("provider", string(provider)).
		Int("message_count", len(messages)).
		Msg("Generating content with provider")

	switch provider {
	case ProviderClaude:
		return s.generateWithClaude(ctx, messages)
	default:
		return s.generateWithGemini(ctx, messages)
	}
}

// HealthCheck verifies a provider client can be constructed with the
// resolved credentials.
func (s *Service) HealthCheck(ctx context.Context) error {
	switch s.Provider() {
	case ProviderClaude:
		_, err := s.getClaudeClient(ctx)
		return err
	default:
		_, err := s.getGeminiClient(ctx)
		return err
	}
}

// Close releases provider clients.
func (s *Service) Close() error {
	s.geminiClient = nil
	s.claudeClient = anthropic.Client{}
	s.claudeReady = false
	return nil
}

// resolveAPIKey looks up a key in the KV store, falling back to the config
// value. Missing keys in the store are not an error.
func (s *Service) resolveAPIKey(ctx context.Context, kvKey, configValue string) (string, error) {
	if s.kvStorage != nil {
		if value, err := s.kvStorage.Get(ctx, kvKey); err == nil && value != "" {
			return value, nil
		}
	}
	if configValue != "" {
		return configValue, nil
	}
	return "", fmt.Errorf("no API key configured for %s", kvKey)
}

// getGeminiClient returns a Gemini client, creating one if necessary
func (s *Service) getGeminiClient(ctx context.Context) (*genai.Client, error) {
	if s.geminiClient != nil {
		return s.geminiClient, nil
	}

	apiKey, err := s.resolveAPIKey(ctx, "gemini_api_key", s.geminiConfig.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Gemini API key: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	s.geminiClient = client
	return client, nil
}

// getClaudeClient returns a Claude client, creating one if necessary
func (s *Service) getClaudeClient(ctx context.Context) (anthropic.Client, error) {
	if s.claudeReady {
		return s.claudeClient, nil
	}

	apiKey, err := s.resolveAPIKey(ctx, "anthropic_api_key", s.claudeConfig.APIKey)
	if err != nil {
		return anthropic.Client{}, fmt.Errorf("failed to resolve Anthropic API key: %w", err)
	}

	s.claudeClient = anthropic.NewClient(option.WithAPIKey(apiKey))
	s.claudeReady = true
	return s.claudeClient, nil
}

// generateWithClaude generates content using Claude API
func (s *Service) generateWithClaude(ctx context.Context, messages []interfaces.Message) (string, error) {
	client, err := s.getClaudeClient(ctx)
	if err != nil {
		return "", err
	}

	claudeMessages, systemText, err := convertMessagesToClaude(messages)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages: %w", err)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.claudeConfig.Model),
		MaxTokens: int64(s.claudeConfig.MaxTokens),
		Messages:  claudeMessages,
	}
	if s.claudeConfig.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.claudeConfig.Temperature))
	}
	if systemText != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemText}}
	}

	var resp *anthropic.Message
	var apiErr error
	retryConfig := NewDefaultRetryConfig()

	for attempt := 0; attempt <= retryConfig.MaxRetries; attempt++ {
		resp, apiErr = client.Messages.New(ctx, params)
		if apiErr == nil {
			break
		}
		if attempt == retryConfig.MaxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * 2 * time.Second
		if IsRateLimitError(apiErr) {
			backoff = retryConfig.CalculateBackoff(attempt, 0)
		}

		s.logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(apiErr).
			Msg("Retrying Claude API call")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	if apiErr != nil {
		return "", fmt.Errorf("Claude API call failed after %d retries: %w", retryConfig.MaxRetries, apiErr)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from Claude API")
	}

	return text.String(), nil
}

// generateWithGemini generates content using Gemini API
func (s *Service) generateWithGemini(ctx context.Context, messages []interfaces.Message) (string, error) {
	client, err := s.getGeminiClient(ctx)
	if err != nil {
		return "", err
	}

	geminiContents, systemText, err := convertMessagesToGemini(messages)
	if err != nil {
		return "", fmt.Errorf("failed to convert messages: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if s.geminiConfig.Temperature > 0 {
		config.Temperature = genai.Ptr(s.geminiConfig.Temperature)
	}
	if systemText != "" {
		config.SystemInstruction = genai.NewContentFromText(systemText, genai.RoleUser)
	}

	var resp *genai.GenerateContentResponse
	var apiErr error
	retryConfig := NewDefaultRetryConfig()

	for attempt := 0; attempt <= retryConfig.MaxRetries; attempt++ {
		resp, apiErr = client.Models.GenerateContent(ctx, s.geminiConfig.Model, geminiContents, config)
		if apiErr == nil {
			break
		}
		if attempt == retryConfig.MaxRetries {
			break
		}

		var backoff time.Duration
		if IsRateLimitError(apiErr) {
			backoff = retryConfig.CalculateBackoff(attempt, ExtractRetryDelay(apiErr))
		} else {
			backoff = time.Duration(attempt+1) * 2 * time.Second
		}

		s.logger.Warn().
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(apiErr).
			Msg("Retrying Gemini API call")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
	}

	if apiErr != nil {
		return "", fmt.Errorf("Gemini API call failed after %d retries: %w", retryConfig.MaxRetries, apiErr)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}
	responseText := resp.Text()
	if responseText == "" {
		return "", fmt.Errorf("empty text in Gemini response")
	}

	return responseText, nil
}
