package models

import "time"

// Session owns the extracted text of one uploaded document together with the
// user's accumulated challenge responses. A session is created on upload,
// replaced wholesale on re-upload, and removed when it expires or is deleted.
// Sessions are never shared: all mutation happens through the session service
// for a single session ID.
type Session struct {
	ID           string    `json:"id" badgerhold:"key"`
	DocumentName string    `json:"document_name"`
	MediaType    MediaType `json:"media_type"`

	// DocumentText is the full extracted Unicode text of the uploaded file.
	// It is written once at upload time and never mutated.
	DocumentText string `json:"document_text"`

	// Responses maps challenge question text to the user's submitted answer.
	Responses []Response `json:"responses"`

	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}

// Response is one question/answer pair in the session's response set.
type Response struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Feedback   string    `json:"feedback,omitempty"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Touch updates the session's activity timestamp. Called by every operation
// so idle-TTL pruning only removes genuinely abandoned sessions.
func (s *Session) Touch() {
	s.LastActive = time.Now().UTC()
}

// RecordResponse inserts or updates the answer for a question. The response
// set is keyed by question text, matching how answers are collected: one
// answer slot per generated question, latest submission wins.
func (s *Session) RecordResponse(question, answer, feedback string) {
	now := time.Now().UTC()
	for i := range s.Responses {
		if s.Responses[i].Question == question {
			s.Responses[i].Answer = answer
			if feedback != "" {
				s.Responses[i].Feedback = feedback
			}
			s.Responses[i].AnsweredAt = now
			return
		}
	}
	s.Responses = append(s.Responses, Response{
		Question:   question,
		Answer:     answer,
		Feedback:   feedback,
		AnsweredAt: now,
	})
}
