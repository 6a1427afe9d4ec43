package evidence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func TestLocateSentenceStrategy(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategySentence, 0, logger)

	doc := "The cat sat on the mat. It was happy."

	snippet, err := locator.Locate(doc, "The cat sat on the mat")
	require.NoError(t, err)
	assert.Equal(t, "The cat sat on the mat.", snippet.Text)
	assert.Equal(t, snippet.Text, doc[snippet.Start:snippet.End])
}

func TestLocateCaseInsensitive(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategySentence, 0, logger)

	doc := "The Cat Sat On The Mat. It was happy."

	snippet, err := locator.Locate(doc, "the cat sat on the mat")
	require.NoError(t, err)
	assert.Equal(t, "The Cat Sat On The Mat.", snippet.Text)
}

func TestLocateEmptyAnswer(t *testing.T) {
	logger := arbor.NewLogger()

	for _, strategy := range []Strategy{StrategySentence, StrategyWindow} {
		locator := NewLocator(strategy, 0, logger)

		_, err := locator.Locate("Any document at all.", "")
		assert.ErrorIs(t, err, ErrNoMatch)

		_, err = locator.Locate("Any document at all.", "   ")
		assert.ErrorIs(t, err, ErrNoMatch)
	}
}

func TestLocateNoMatch(t *testing.T) {
	logger := arbor.NewLogger()

	for _, strategy := range []Strategy{StrategySentence, StrategyWindow} {
		locator := NewLocator(strategy, 0, logger)

		_, err := locator.Locate("The cat sat on the mat.", "quantum entanglement")
		assert.ErrorIs(t, err, ErrNoMatch)
	}
}

func TestLocatePrefixBounded(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategySentence, 0, logger)

	// Only the first 30 characters of the answer are used as the match
	// key, so a paraphrased tail does not prevent a match.
	doc := "Photosynthesis converts light energy into chemical energy. Plants need it."
	answer := "Photosynthesis converts light into something completely different"

	snippet, err := locator.Locate(doc, answer)
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis converts light energy into chemical energy.", snippet.Text)
}

func TestLocateRegexMetacharactersEscaped(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategyWindow, 0, logger)

	doc := "Cost was $4.99 (roughly)."

	snippet, err := locator.Locate(doc, "$4.99 (roughly)")
	require.NoError(t, err)
	assert.Contains(t, snippet.Text, "$4.99 (roughly)")
}

func TestLocateWindowStrategy(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategyWindow, 40, logger)

	doc := strings.Repeat("x", 100) + " the needle is here " + strings.Repeat("y", 100)

	snippet, err := locator.Locate(doc, "the needle is here")
	require.NoError(t, err)
	assert.Contains(t, snippet.Text, "the needle is here")
	assert.GreaterOrEqual(t, snippet.Start, 0)
	assert.LessOrEqual(t, snippet.End, len(doc))
	assert.Equal(t, snippet.Text, doc[snippet.Start:snippet.End])
}

func TestLocateWindowClampedAtDocumentStart(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategyWindow, 0, logger)

	doc := "needle at position zero, then some trailing content follows here."

	snippet, err := locator.Locate(doc, "needle at position zero")
	require.NoError(t, err)
	assert.Equal(t, 0, snippet.Start)
	assert.LessOrEqual(t, snippet.End, len(doc))
}

func TestLocateWindowClampedAtDocumentEnd(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategyWindow, 0, logger)

	doc := "Some leading content comes first, then the needle"

	snippet, err := locator.Locate(doc, "the needle")
	require.NoError(t, err)
	assert.LessOrEqual(t, snippet.End, len(doc))
	assert.Contains(t, snippet.Text, "the needle")
}

func TestLocateWindowRuneBoundaries(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategyWindow, 10, logger)

	// Multi-byte runes around the match: clamped offsets must not split
	// a rune.
	doc := "éééééééééé needle éééééééééé"

	snippet, err := locator.Locate(doc, "needle")
	require.NoError(t, err)
	assert.True(t, strings.Contains(snippet.Text, "needle"))
	assert.Equal(t, snippet.Text, doc[snippet.Start:snippet.End])
}

func TestLocateShortAnswerUsesWholeString(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategySentence, 0, logger)

	doc := "Short answers work. Long sentences do too."

	snippet, err := locator.Locate(doc, "work")
	require.NoError(t, err)
	assert.Equal(t, "Short answers work.", snippet.Text)
}

func TestLocateFirstMatchWins(t *testing.T) {
	logger := arbor.NewLogger()
	locator := NewLocator(StrategySentence, 0, logger)

	doc := "The answer appears here first. The answer appears here again."

	snippet, err := locator.Locate(doc, "The answer appears here")
	require.NoError(t, err)
	assert.Equal(t, "The answer appears here first.", snippet.Text)
}
