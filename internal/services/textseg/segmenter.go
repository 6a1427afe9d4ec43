// Package textseg splits document text into sentence-like units using
// punctuation boundaries. The segmentation is deliberately heuristic: a
// terminal mark (. ! ?) followed by whitespace ends a sentence, so
// abbreviations like "Dr. Smith" split in two. That trade keeps the
// segmenter deterministic and dependency-free over arbitrary text.
package textseg

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Span is one sentence with its byte offsets into the source text. Offsets
// are rune-boundary byte positions after trimming, so text[Start:End] ==
// Text.
type Span struct {
	Text  string
	Start int
	End   int
}

// isTerminal reports whether r ends a sentence.
func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// SegmentSpans splits text into ordered sentence spans. Empty input yields
// nil; input without terminal punctuation yields a single span covering the
// trimmed text. Returned sentences are trimmed and never empty.
func SegmentSpans(text string) []Span {
	if text == "" {
		return nil
	}

	var spans []Span
	start := 0
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isTerminal(r) {
			next, nextSize := utf8.DecodeRuneInString(text[i+size:])
			if nextSize > 0 && unicode.IsSpace(next) {
				spans = appendTrimmed(spans, text, start, i+size)
				// Skip the whitespace separator entirely.
				j := i + size
				for j < len(text) {
					w, ws := utf8.DecodeRuneInString(text[j:])
					if !unicode.IsSpace(w) {
						break
					}
					j += ws
				}
				start = j
				i = j
				continue
			}
		}
		i += size
	}
	if start < len(text) {
		spans = appendTrimmed(spans, text, start, len(text))
	}
	return spans
}

// Segment splits text into ordered, trimmed sentences.
func Segment(text string) []string {
	spans := SegmentSpans(text)
	if spans == nil {
		return nil
	}
	sentences := make([]string, len(spans))
	for i, s := range spans {
		sentences[i] = s.Text
	}
	return sentences
}

// appendTrimmed appends text[start:end] as a span with surrounding
// whitespace stripped, dropping the span when nothing remains.
func appendTrimmed(spans []Span, text string, start, end int) []Span {
	raw := text[start:end]
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return spans
	}
	lead := 0
	for lead < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[lead:])
		if !unicode.IsSpace(r) {
			break
		}
		lead += size
	}
	return append(spans, Span{
		Text:  trimmed,
		Start: start + lead,
		End:   start + lead + len(trimmed),
	})
}
