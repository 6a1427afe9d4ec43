package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// API routes - Documents (upload creates a session)
	mux.HandleFunc("/api/documents", s.app.DocumentHandler.UploadHandler)

	// API routes - Sessions (status, operations, transcript, delete)
	mux.HandleFunc("/api/sessions/", s.handleSessionRoutes)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// Catch-all for unknown API paths
	mux.HandleFunc("/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleSessionRoutes dispatches /api/sessions/{id} and its sub-paths.
func (s *Server) handleSessionRoutes(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	if path == "" {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}

	id, op, _ := strings.Cut(path, "/")

	switch op {
	case "":
		RouteByMethod(w, r, MethodRouter{
			http.MethodGet: func(w http.ResponseWriter, r *http.Request) {
				s.app.SessionHandler.StatusHandler(w, r, id)
			},
			http.MethodDelete: func(w http.ResponseWriter, r *http.Request) {
				s.app.SessionHandler.DeleteHandler(w, r, id)
			},
		})
	case "document":
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.app.DocumentHandler.ReplaceHandler(w, r, id)
	case "summarize":
		s.requirePost(w, r, id, s.app.AssistantHandler.SummarizeHandler)
	case "ask":
		s.requirePost(w, r, id, s.app.AssistantHandler.AskHandler)
	case "challenge":
		s.requirePost(w, r, id, s.app.AssistantHandler.ChallengeHandler)
	case "evaluate":
		s.requirePost(w, r, id, s.app.AssistantHandler.EvaluateHandler)
	case "responses":
		s.requirePost(w, r, id, s.app.SessionHandler.RecordResponseHandler)
	case "transcript":
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		s.app.SessionHandler.TranscriptHandler(w, r, id)
	default:
		s.app.APIHandler.NotFoundHandler(w, r)
	}
}

func (s *Server) requirePost(w http.ResponseWriter, r *http.Request, id string, handler func(http.ResponseWriter, *http.Request, string)) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	handler(w, r, id)
}
