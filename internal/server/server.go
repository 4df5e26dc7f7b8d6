// Package server exposes the transcript pipeline over REST and MCP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/transcript"
	"github.com/anatolykoptev/go_transcript/internal/videoid"
)

// Server serves GET /api?video_id=... plus /metrics and /health.
type Server struct {
	bind      string
	logger    *slog.Logger
	retriever *transcript.Retriever

	listener net.Listener
	server   *http.Server
}

// New builds a Server bound to bind (host:port). A nil logger uses slog.Default.
func New(bind string, r *transcript.Retriever, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		bind:      bind,
		logger:    logger.With(slog.String("component", "api-server")),
		retriever: r,
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      engine.Cfg.FetchTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api", s.handleTranscript)
	mux.HandleFunc("/api/", s.handleTranscript)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start listens and serves in the background until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", slog.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down, waiting up to 5s for in-flight requests.
func (s *Server) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	values, ok := r.URL.Query()["video_id"]
	if !ok || len(values) == 0 {
		s.writeError(w, http.StatusBadRequest, "Missing video_id parameter")
		return
	}
	raw := values[0]

	id, ok := videoid.Resolve(raw)
	engine.IncrResolve(ok)
	if !ok {
		s.writeError(w, http.StatusBadRequest, "Invalid video ID format: "+strings.TrimSpace(raw))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), engine.Cfg.FetchTimeout)
	defer cancel()

	s.logger.Info("fetching transcript", slog.String("id", id))
	doc, err := s.retriever.Retrieve(ctx, id)
	if err != nil {
		var ce *transcript.Error
		if !errors.As(err, &ce) {
			ce = transcript.Classify(err)
		}
		s.writeError(w, ce.Kind.Status(), ce.Message)
		return
	}

	formatted := transcript.Render(doc)
	s.logger.Debug("transcript formatted", slog.String("id", id), slog.String("preview", engine.Preview(formatted)))
	s.writeJSON(w, http.StatusOK, map[string]string{"transcript": formatted})
	s.logger.Info("transcript served", slog.String("id", id), slog.Int("entries", len(doc.Entries)))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, engine.FormatMetrics())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.logger.Error("request failed", slog.Int("status", status), slog.String("message", message))
	s.writeJSON(w, status, map[string]string{"error": message})
}
