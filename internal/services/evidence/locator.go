// Package evidence maps a model-generated answer back to the contiguous
// span of source text that best supports it. Model output is never
// byte-identical to the document, so matching uses a bounded, escaped
// prefix of the answer rather than exact equality: cheap, deterministic,
// and honest about misses.
package evidence

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/models"
	"github.com/tanushka-102/scholarly/internal/services/textseg"
)

// Strategy selects how a snippet is located.
type Strategy string

const (
	// StrategySentence returns the first whole sentence containing the
	// answer prefix.
	StrategySentence Strategy = "sentence"

	// StrategyWindow returns a fixed-size character window centered on the
	// first occurrence of the answer prefix.
	StrategyWindow Strategy = "window"
)

// matchKeyLen bounds the answer prefix used as the match key. Longer
// patterns become too specific to match paraphrased model output; shorter
// ones match too loosely.
const matchKeyLen = 30

// DefaultWindowSize is the character window used by StrategyWindow when no
// size is configured.
const DefaultWindowSize = 250

// ErrNoMatch is returned when no span of the document contains the answer
// prefix. It is a miss, not a failure: callers present "not found" rather
// than an error.
var ErrNoMatch = errors.New("no matching snippet in document")

// Locator finds supporting snippets for answers.
type Locator struct {
	strategy   Strategy
	windowSize int
	logger     arbor.ILogger
}

// NewLocator creates a locator with the given strategy. A windowSize <= 0
// falls back to DefaultWindowSize.
func NewLocator(strategy Strategy, windowSize int, logger arbor.ILogger) *Locator {
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if strategy != StrategySentence && strategy != StrategyWindow {
		strategy = StrategySentence
	}
	return &Locator{
		strategy:   strategy,
		windowSize: windowSize,
		logger:     logger,
	}
}

// Locate finds the snippet of documentText supporting answerText. An empty
// answer returns ErrNoMatch without scanning. Returned snippet bounds are
// always rune-aligned byte offsets within [0, len(documentText)].
func (l *Locator) Locate(documentText, answerText string) (models.Snippet, error) {
	if strings.TrimSpace(answerText) == "" {
		return models.Snippet{}, ErrNoMatch
	}

	pattern := matchPattern(answerText)

	var snippet models.Snippet
	var err error
	switch l.strategy {
	case StrategyWindow:
		snippet, err = l.locateWindow(documentText, pattern)
	default:
		snippet, err = l.locateSentence(documentText, pattern)
	}

	if err != nil {
		l.logger.Debug().
			Str("strategy", string(l.strategy)).
			Int("document_len", len(documentText)).
			Msg("No supporting snippet found for answer")
		return models.Snippet{}, err
	}
	return snippet, nil
}

// matchPattern builds a case-insensitive literal pattern from the first
// matchKeyLen characters of the answer. The prefix is escaped so regex
// metacharacters in model output are matched literally.
func matchPattern(answer string) *regexp.Regexp {
	runes := []rune(answer)
	if len(runes) > matchKeyLen {
		runes = runes[:matchKeyLen]
	}
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(string(runes)))
}

// locateSentence returns the first sentence, in document order, containing
// the pattern.
func (l *Locator) locateSentence(documentText string, pattern *regexp.Regexp) (models.Snippet, error) {
	for _, span := range textseg.SegmentSpans(documentText) {
		if pattern.MatchString(span.Text) {
			return models.Snippet{
				Text:  span.Text,
				Start: span.Start,
				End:   span.End,
			}, nil
		}
	}
	return models.Snippet{}, ErrNoMatch
}

// locateWindow returns a window of surrounding context centered on the
// first occurrence of the pattern, clamped to document bounds.
func (l *Locator) locateWindow(documentText string, pattern *regexp.Regexp) (models.Snippet, error) {
	loc := pattern.FindStringIndex(documentText)
	if loc == nil {
		return models.Snippet{}, ErrNoMatch
	}

	start := loc[0] - l.windowSize/2
	if start < 0 {
		start = 0
	}
	end := loc[1] + l.windowSize/2
	if end > len(documentText) {
		end = len(documentText)
	}

	// Clamping by byte offset can land mid-rune; move to boundaries.
	for start > 0 && !utf8.RuneStart(documentText[start]) {
		start--
	}
	for end < len(documentText) && !utf8.RuneStart(documentText[end]) {
		end++
	}

	return trimSnippet(documentText, start, end)
}

// trimSnippet strips surrounding whitespace from documentText[start:end],
// keeping the offsets in sync with the trimmed text.
func trimSnippet(documentText string, start, end int) (models.Snippet, error) {
	raw := documentText[start:end]
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return models.Snippet{}, ErrNoMatch
	}
	lead := 0
	for lead < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[lead:])
		if !unicode.IsSpace(r) {
			break
		}
		lead += size
	}
	return models.Snippet{
		Text:  trimmed,
		Start: start + lead,
		End:   start + lead + len(trimmed),
	}, nil
}
