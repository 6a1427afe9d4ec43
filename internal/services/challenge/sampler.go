// Package challenge builds comprehension-challenge questions from document
// sentences without a model call.
package challenge

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/models"
	"github.com/tanushka-102/scholarly/internal/services/textseg"
)

// minSentenceLen filters trivial content: sentences at or under this
// trimmed length rarely support a meaningful comprehension question.
const minSentenceLen = 30

// DefaultCount is the number of questions sampled per call.
const DefaultCount = 3

// SentinelPrompt is the single question returned when a document has no
// qualifying sentences.
const SentinelPrompt = "Not enough substantial content in this document to build challenge questions."

// Sampler selects non-trivial sentences and wraps them into challenge
// prompts.
type Sampler struct {
	rng    *rand.Rand
	logger arbor.ILogger
}

// NewSampler creates a sampler. The random source is injectable so tests
// can pass a seeded source; nil uses a time-seeded one.
func NewSampler(rng *rand.Rand, logger arbor.ILogger) *Sampler {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Sampler{
		rng:    rng,
		logger: logger,
	}
}

// Sample returns up to count challenge questions built from distinct
// document sentences. Fewer qualifying sentences than count returns them
// all; zero returns the single sentinel question.
func (s *Sampler) Sample(documentText string, count int) []models.ChallengeQuestion {
	if count <= 0 {
		count = DefaultCount
	}

	var candidates []string
	for _, sentence := range textseg.Segment(documentText) {
		if len([]rune(sentence)) > minSentenceLen {
			candidates = append(candidates, sentence)
		}
	}

	if len(candidates) == 0 {
		s.logger.Debug().
			Int("document_len", len(documentText)).
			Msg("No sentences qualify for challenge questions")
		return []models.ChallengeQuestion{{
			Prompt:   SentinelPrompt,
			Sentinel: true,
		}}
	}

	if count > len(candidates) {
		count = len(candidates)
	}

	// Partial Fisher-Yates: each sentence selected at most once.
	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	questions := make([]models.ChallengeQuestion, 0, count)
	for _, sentence := range candidates[:count] {
		questions = append(questions, models.ChallengeQuestion{
			Prompt: fmt.Sprintf("Explain: '%s'", sentence),
			Source: sentence,
		})
	}

	s.logger.Debug().
		Int("candidates", len(candidates)).
		Int("selected", len(questions)).
		Msg("Sampled challenge questions")

	return questions
}
