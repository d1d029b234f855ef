// Package httpapi exposes the assistant over HTTP: a chat endpoint, health
// and capability probes, and retrieval of generated artifacts.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/doeshing/aimy-go/internal/domain"
	"github.com/doeshing/aimy-go/internal/ports"
)

// Server hosts the HTTP shell around the dispatch pipeline.
type Server struct {
	pipeline  domain.PipelineService
	assistant domain.AssistantSettings
	artifacts []string // directories searched by the retrieval route
	logger    ports.Logger
	router    *mux.Router
}

// New builds the server and its routes. artifactDirs are searched in order
// when serving generated files.
func New(pipeline domain.PipelineService, assistant domain.AssistantSettings, artifactDirs []string, logger ports.Logger) *Server {
	s := &Server{
		pipeline:  pipeline,
		assistant: assistant,
		artifacts: artifactDirs,
		logger:    logger,
		router:    mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/capabilities", s.handleCapabilities).Methods(http.MethodGet)
	s.router.HandleFunc("/generated/{name}", s.handleGenerated).Methods(http.MethodGet)
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv.ListenAndServe()
}

type chatRequest struct {
	Text    string `json:"text"`
	Session string `json:"session,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	result := s.pipeline.Process(domain.Request{
		Context:    r.Context(),
		Text:       req.Text,
		Session:    req.Session,
		ReceivedAt: time.Now(),
		Served:     true,
	})

	status := http.StatusOK
	if !result.Success {
		// Denials and failures are application outcomes, not transport
		// errors; only reasoning_failure maps to a 5xx.
		if result.Type == domain.ResultReasoningFailure {
			status = http.StatusInternalServerError
		}
	}
	writeJSON(w, status, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"name":    s.assistant.Name,
		"version": s.assistant.Version,
	})
}

func (s *Server) handleCapabilities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"name":         s.assistant.Name,
		"type":         s.assistant.Type,
		"version":      s.assistant.Version,
		"capabilities": s.assistant.Capabilities,
		"features":     s.assistant.Features,
	})
}

// handleGenerated serves a previously generated artifact by bare filename,
// searching the configured save directories in order.
func (s *Server) handleGenerated(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		http.Error(w, "invalid artifact name", http.StatusBadRequest)
		return
	}

	for _, dir := range s.artifacts {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		http.ServeFile(w, r, path)
		return
	}
	http.Error(w, "artifact not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		return
	}
}
