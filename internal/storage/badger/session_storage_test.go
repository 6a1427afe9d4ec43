package badger

import (
	"context"
	"testing"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/tanushka-102/scholarly/internal/interfaces"
	"github.com/tanushka-102/scholarly/internal/models"
)

func newTestDB(t *testing.T) *BadgerDB {
	t.Helper()

	options := badgerhold.DefaultOptions
	options.Dir = t.TempDir()
	options.ValueDir = options.Dir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return &BadgerDB{store: store, logger: arbor.NewLogger()}
}

func TestSessionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	storage := NewSessionStorage(db, arbor.NewLogger())
	ctx := context.Background()

	session := &models.Session{
		ID:           "sess-1",
		DocumentName: "paper.pdf",
		MediaType:    models.MediaTypePDF,
		DocumentText: "The cat sat on the mat.",
		CreatedAt:    time.Now().UTC(),
		LastActive:   time.Now().UTC(),
	}
	if err := storage.SaveSession(ctx, session); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := storage.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if loaded.DocumentText != session.DocumentText {
		t.Errorf("DocumentText = %q, want %q", loaded.DocumentText, session.DocumentText)
	}
	if loaded.MediaType != models.MediaTypePDF {
		t.Errorf("MediaType = %q, want pdf", loaded.MediaType)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	db := newTestDB(t)
	storage := NewSessionStorage(db, arbor.NewLogger())

	_, err := storage.GetSession(context.Background(), "missing")
	if err != interfaces.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionResponsesPersist(t *testing.T) {
	db := newTestDB(t)
	storage := NewSessionStorage(db, arbor.NewLogger())
	ctx := context.Background()

	session := &models.Session{
		ID:           "sess-2",
		DocumentText: "Doc.",
		CreatedAt:    time.Now().UTC(),
		LastActive:   time.Now().UTC(),
	}
	session.RecordResponse("Q1?", "A1", "")
	session.RecordResponse("Q2?", "A2", "good")
	if err := storage.SaveSession(ctx, session); err != nil {
		t.Fatal(err)
	}

	loaded, err := storage.GetSession(ctx, "sess-2")
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Responses) != 2 {
		t.Fatalf("Responses len = %d, want 2", len(loaded.Responses))
	}
	if loaded.Responses[1].Feedback != "good" {
		t.Errorf("Feedback = %q, want good", loaded.Responses[1].Feedback)
	}
}

func TestDeleteSession(t *testing.T) {
	db := newTestDB(t)
	storage := NewSessionStorage(db, arbor.NewLogger())
	ctx := context.Background()

	session := &models.Session{ID: "sess-3", DocumentText: "Doc.", LastActive: time.Now().UTC()}
	if err := storage.SaveSession(ctx, session); err != nil {
		t.Fatal(err)
	}
	if err := storage.DeleteSession(ctx, "sess-3"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := storage.GetSession(ctx, "sess-3"); err != interfaces.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}

	if err := storage.DeleteSession(ctx, "sess-3"); err != interfaces.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound for double delete, got %v", err)
	}
}

func TestDeleteIdleSessions(t *testing.T) {
	db := newTestDB(t)
	storage := NewSessionStorage(db, arbor.NewLogger())
	ctx := context.Background()

	now := time.Now().UTC()
	stale := &models.Session{ID: "stale", DocumentText: "Doc.", LastActive: now.Add(-3 * time.Hour)}
	fresh := &models.Session{ID: "fresh", DocumentText: "Doc.", LastActive: now}
	if err := storage.SaveSession(ctx, stale); err != nil {
		t.Fatal(err)
	}
	if err := storage.SaveSession(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	deleted, err := storage.DeleteIdleSessions(ctx, now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("DeleteIdleSessions failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if _, err := storage.GetSession(ctx, "stale"); err != interfaces.ErrSessionNotFound {
		t.Errorf("stale session should be gone, got %v", err)
	}
	if _, err := storage.GetSession(ctx, "fresh"); err != nil {
		t.Errorf("fresh session should survive, got %v", err)
	}

	count, err := storage.CountSessions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
