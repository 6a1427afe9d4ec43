package session

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/tanushka-102/scholarly/internal/common"
	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
)

// Service owns session lifecycle. All document uploads pass through here so
// extraction and persistence stay in one place.
type Service struct {
	extractor interfaces.TextExtractor
	storage   interfaces.SessionStorage
	config    *common.SessionsConfig
	logger    arbor.ILogger
}

var _ interfaces.SessionService = (*Service)(nil)

func NewService(extractor interfaces.TextExtractor, storage interfaces.SessionStorage, config *common.SessionsConfig, logger arbor.ILogger) *Service {
	return &Service{
		extractor: extractor,
		storage:   storage,
		config:    config,
		logger:    logger,
	}
}

// CreateSession extracts text from the upload and persists a fresh session.
func (s *Service) CreateSession(ctx context.Context, name string, mediaType models.MediaType, data []byte) (*models.Session, error) {
	text, err := s.extractor.Extract(ctx, mediaType, data)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &models.Session{
		ID:           common.NewSessionID(),
		DocumentName: name,
		MediaType:    mediaType,
		DocumentText: text,
		CreatedAt:    now,
		LastActive:   now,
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("document", name).
		Str("media_type", string(mediaType)).
		Int("text_length", len(text)).
		Msg("Session created")

	return session, nil
}

// ReplaceDocument swaps a session's document for a new upload. Responses are
// cleared because they refer to questions about the previous document.
func (s *Service) ReplaceDocument(ctx context.Context, id, name string, mediaType models.MediaType, data []byte) (*models.Session, error) {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.Extract(ctx, mediaType, data)
	if err != nil {
		return nil, err
	}

	session.DocumentName = name
	session.MediaType = mediaType
	session.DocumentText = text
	session.Responses = nil
	session.Touch()

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info().
		Str("session_id", id).
		Str("document", name).
		Msg("Session document replaced")

	return session, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (*models.Session, error) {
	return s.storage.GetSession(ctx, id)
}

func (s *Service) DeleteSession(ctx context.Context, id string) error {
	if err := s.storage.DeleteSession(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", id).Msg("Session deleted")
	return nil
}

// Touch refreshes the session's activity timestamp so the idle pruner keeps
// it alive.
func (s *Service) Touch(ctx context.Context, id string) error {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}
	session.Touch()
	return s.storage.SaveSession(ctx, session)
}

func (s *Service) RecordResponse(ctx context.Context, id, question, answer, feedback string) error {
	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return err
	}

	session.RecordResponse(question, answer, feedback)
	session.Touch()

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Debug().
		Str("session_id", id).
		Int("response_count", len(session.Responses)).
		Msg("Response recorded")

	return nil
}

// PruneIdle removes sessions whose last activity predates the idle TTL.
func (s *Service) PruneIdle(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.config.IdleTTL)
	deleted, err := s.storage.DeleteIdleSessions(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		s.logger.Info().
			Int("deleted", deleted).
			Str("idle_ttl", s.config.IdleTTL.String()).
			Msg("Pruned idle sessions")
	}
	return deleted, nil
}
