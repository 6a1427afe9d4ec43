package models

// ChallengeQuestion is a comprehension prompt generated from a document,
// either by the local sentence sampler or by a model call.
type ChallengeQuestion struct {
	Prompt string `json:"prompt"`

	// Source holds the originating sentence when the question was sampled
	// locally. Empty for model-generated questions.
	Source string `json:"source,omitempty"`

	// Sentinel marks the single placeholder question returned when a
	// document has no sentences substantial enough to build a question
	// from. Callers use it to distinguish "ran, found nothing" from an
	// empty result.
	Sentinel bool `json:"sentinel,omitempty"`
}
