package challenge

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

// richDoc has six sentences over the length threshold.
const richDoc = "The mitochondria is the powerhouse of the cell and produces energy. " +
	"Photosynthesis converts sunlight into chemical energy in plants. " +
	"The circulatory system transports oxygen through the bloodstream. " +
	"Neurons communicate through electrical and chemical signals. " +
	"The immune system defends the body against foreign pathogens. " +
	"Enzymes catalyze biochemical reactions inside living organisms."

func newTestSampler(seed int64) *Sampler {
	return NewSampler(rand.New(rand.NewSource(seed)), arbor.NewLogger())
}

func TestSampleReturnsAtMostCount(t *testing.T) {
	sampler := newTestSampler(1)

	questions := sampler.Sample(richDoc, 3)
	assert.Len(t, questions, 3)
	for _, q := range questions {
		assert.False(t, q.Sentinel)
		assert.True(t, strings.HasPrefix(q.Prompt, "Explain: '"))
		assert.NotEmpty(t, q.Source)
	}
}

func TestSampleFiltersShortSentences(t *testing.T) {
	sampler := newTestSampler(2)

	doc := "Short. Tiny! Also small? " +
		"This sentence is comfortably longer than the thirty character threshold."
	questions := sampler.Sample(doc, 3)

	require.Len(t, questions, 1)
	assert.Contains(t, questions[0].Prompt, "comfortably longer")
	assert.Greater(t, len([]rune(questions[0].Source)), 30)
}

func TestSampleFewerCandidatesThanCount(t *testing.T) {
	sampler := newTestSampler(3)

	doc := "This is the only sentence long enough to qualify as a question. No. Way."
	questions := sampler.Sample(doc, 3)

	assert.Len(t, questions, 1)
	assert.False(t, questions[0].Sentinel)
}

func TestSampleInsufficientContentSentinel(t *testing.T) {
	sampler := newTestSampler(4)

	tests := []string{
		"",
		"Too short. All of them! Tiny?",
	}
	for _, doc := range tests {
		questions := sampler.Sample(doc, 3)
		require.Len(t, questions, 1)
		assert.True(t, questions[0].Sentinel)
		assert.Equal(t, SentinelPrompt, questions[0].Prompt)
	}
}

func TestSampleNoDuplicatesWithinCall(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		sampler := newTestSampler(seed)
		questions := sampler.Sample(richDoc, 3)

		seen := make(map[string]bool)
		for _, q := range questions {
			assert.False(t, seen[q.Source], "duplicate sentence in single call (seed %d)", seed)
			seen[q.Source] = true
		}
	}
}

func TestSampleDeterministicWithSeededSource(t *testing.T) {
	first := newTestSampler(42).Sample(richDoc, 3)
	second := newTestSampler(42).Sample(richDoc, 3)
	assert.Equal(t, first, second)
}

func TestSampleDefaultCount(t *testing.T) {
	sampler := newTestSampler(5)
	questions := sampler.Sample(richDoc, 0)
	assert.Len(t, questions, DefaultCount)
}
