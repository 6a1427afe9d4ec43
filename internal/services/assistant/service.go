// Package assistant orchestrates the document operations: summarize, ask,
// challenge generation, and answer evaluation. The service owns prompt
// construction and truncation on the way into the model boundary, and
// evidence location on the way out; the language understanding itself is
// delegated entirely to the LLM service.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/common"
	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
	"github.com/tanushka-102/scholarly/internal/services/challenge"
	"github.com/tanushka-102/scholarly/internal/services/evidence"
)

// Challenge generation modes. Model mode delegates question writing to one
// LLM call; local mode samples document sentences without a model call.
const (
	ChallengeModeModel = "model"
	ChallengeModeLocal = "local"
)

// Service implements interfaces.AssistantService
type Service struct {
	llmService interfaces.LLMService
	locator    *evidence.Locator
	sampler    *challenge.Sampler
	config     *common.AssistantConfig
	logger     arbor.ILogger
}

// Compile-time assertion
var _ interfaces.AssistantService = (*Service)(nil)

// NewService creates a new assistant service
func NewService(
	llmService interfaces.LLMService,
	locator *evidence.Locator,
	sampler *challenge.Sampler,
	config *common.AssistantConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		llmService: llmService,
		locator:    locator,
		sampler:    sampler,
		config:     config,
		logger:     logger,
	}
}

// Summarize produces a short summary of the document via one model call.
func (s *Service) Summarize(ctx context.Context, documentText string) (string, error) {
	prompt := summarizePrompt(s.truncate(documentText))

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summarize failed: %w", err)
	}

	s.logger.Info().
		Int("document_len", len(documentText)).
		Int("summary_len", len(text)).
		Msg("Generated document summary")

	return text, nil
}

// Ask answers a question grounded in the document, then locates a
// supporting snippet for the model's answer. The locator scans the full
// document, not the truncated prompt text, so evidence beyond the prompt
// window is still found when the answer's prefix occurs there.
func (s *Service) Ask(ctx context.Context, documentText, question, history string) (*interfaces.AnswerResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question is empty")
	}

	prompt := askPrompt(s.truncate(documentText), history, question)

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ask failed: %w", err)
	}

	result := &interfaces.AnswerResult{Answer: answer}

	snippet, err := s.locator.Locate(documentText, answer)
	switch {
	case err == nil:
		result.Snippet = snippet
		result.Found = true
	case errors.Is(err, evidence.ErrNoMatch):
		// A miss is data, not a failure: the answer stands without
		// evidence.
		result.Found = false
	default:
		return nil, fmt.Errorf("snippet location failed: %w", err)
	}

	s.logger.Info().
		Int("answer_len", len(answer)).
		Bool("snippet_found", result.Found).
		Msg("Answered document question")

	return result, nil
}

// GenerateChallenge produces comprehension questions for the document.
func (s *Service) GenerateChallenge(ctx context.Context, documentText string) ([]models.ChallengeQuestion, error) {
	if s.config.ChallengeMode == ChallengeModeLocal {
		return s.sampler.Sample(documentText, s.config.ChallengeCount), nil
	}

	prompt := challengePrompt(s.truncate(documentText), s.config.ChallengeCount)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("challenge generation failed: %w", err)
	}

	var questions []models.ChallengeQuestion
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		questions = append(questions, models.ChallengeQuestion{Prompt: line})
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("challenge generation returned no questions")
	}

	s.logger.Info().
		Int("questions", len(questions)).
		Msg("Generated challenge questions")

	return questions, nil
}

// Evaluate judges a user's answer against the document.
func (s *Service) Evaluate(ctx context.Context, documentText, question, userAnswer string) (string, error) {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(userAnswer) == "" {
		return "", fmt.Errorf("question and answer are required")
	}

	prompt := evaluatePrompt(s.truncate(documentText), question, userAnswer)

	feedback, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("evaluation failed: %w", err)
	}

	return feedback, nil
}

// generate crosses the model boundary with a single user prompt.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	text, err := s.llmService.Generate(ctx, []interfaces.Message{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// truncate bounds document text to the configured prompt budget on a rune
// boundary. The leading portion of a document is assumed to carry the most
// summarizable content.
func (s *Service) truncate(text string) string {
	limit := s.config.MaxPromptChars
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
