package interfaces

import (
	"context"

	"github.com/tanushka-102/scholarly/internal/models"
)

// AnswerResult is the outcome of a grounded question: the model's answer and
// the evidence snippet located for it. Found is false when the locator could
// not match the answer back to the document; Answer is still valid in that
// case.
type AnswerResult struct {
	Answer  string         `json:"answer"`
	Snippet models.Snippet `json:"snippet"`
	Found   bool           `json:"found"`
}

// AssistantService orchestrates the document operations. Every operation
// truncates the document to a bounded prefix before crossing the model
// boundary, and converts model failures into errors the HTTP layer can
// surface; a failed call never damages the caller's session state.
type AssistantService interface {
	// Summarize produces a short summary of the document.
	Summarize(ctx context.Context, documentText string) (string, error)

	// Ask answers a question grounded in the document and locates a
	// supporting snippet for the answer. History carries prior exchanges
	// formatted for the prompt; it may be empty.
	Ask(ctx context.Context, documentText, question, history string) (*AnswerResult, error)

	// GenerateChallenge produces comprehension questions, either via one
	// model call or via local sentence sampling depending on deployment
	// mode.
	GenerateChallenge(ctx context.Context, documentText string) ([]models.ChallengeQuestion, error)

	// Evaluate judges a user's answer to a challenge question against the
	// document and returns feedback text.
	Evaluate(ctx context.Context, documentText, question, userAnswer string) (string, error)
}
