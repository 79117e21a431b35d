package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/five82/triage/internal/client"
	"github.com/five82/triage/internal/logging"
)

const (
	maxRequestBody = 64 << 10
	// flushThreshold is the buffered size that forces a write even without a
	// newline.
	flushThreshold = 50

	msgInvalidJSON    = "Invalid JSON"
	msgStartFailed    = "Failed to start AI model process"
	msgNotFound       = "Resource not found. Please check the URL."
	msgInternalError  = "Internal server error. Please try again later."
	streamErrorFormat = "\n[Error streaming AI output: %v]"
)

// Options configure a Server.
type Options struct {
	Model  string
	Logger *slog.Logger
}

// Server serves the triage streaming API.
type Server struct {
	gen    Generator
	model  string
	schema *jsonschema.Schema
	logger *slog.Logger
}

// New builds a Server around gen.
func New(gen Generator, opts Options) (*Server, error) {
	schema, err := compileRequestSchema()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{gen: gen, model: opts.Model, schema: schema, logger: logger}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/triage_stream", s.handleTriageStream)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": msgNotFound})
	})
	return s.recoverer(s.logRequests(mux))
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr, "model", s.model)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		_ = srv.Close()
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "model": s.model})
}

func (s *Server) handleTriageStream(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("request_id", r.Header.Get(client.RequestIDHeader))

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeDetail(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	req, err := decodeRequest(s.schema, raw)
	if err != nil {
		if errors.Is(err, errInvalidJSON) {
			writeDetail(w, http.StatusBadRequest, msgInvalidJSON)
			return
		}
		logger.Info("request rejected", "error", err)
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	stream, err := s.gen.Start(r.Context(), Prompt(req))
	if err != nil {
		logger.Error("generator start failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, msgStartFailed)
		return
	}
	defer func() { _ = stream.Close() }()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	written, err := pipe(w, stream)
	if err != nil && r.Context().Err() == nil {
		logger.Warn("stream failed", "error", err, "bytes", written)
		_, _ = fmt.Fprintf(w, streamErrorFormat, err)
		flush(w)
		return
	}
	logger.Info("stream finished", "bytes", written)
}

// pipe copies generated pieces to w, flushing whenever the buffer holds a
// newline or more than flushThreshold bytes. Buffered text is written before
// an error is returned.
func pipe(w http.ResponseWriter, stream Stream) (int, error) {
	var buf strings.Builder
	written := 0
	send := func() error {
		if buf.Len() == 0 {
			return nil
		}
		n, err := io.WriteString(w, buf.String())
		written += n
		buf.Reset()
		flush(w)
		return err
	}

	for {
		text, err := stream.Next()
		if text != "" {
			buf.WriteString(text)
			if buf.Len() > flushThreshold || strings.Contains(buf.String(), "\n") {
				if werr := send(); werr != nil {
					return written, werr
				}
			}
		}
		if errors.Is(err, io.EOF) {
			return written, send()
		}
		if err != nil {
			_ = send()
			return written, err
		}
	}
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"elapsed", time.Since(start),
		)
	})
}

func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				s.logger.Error("handler panic", "panic", v, "path", r.URL.Path)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": msgInternalError})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
