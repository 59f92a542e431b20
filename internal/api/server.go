package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/alexanderramin/stagetrack/internal/contract"
	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/alexanderramin/stagetrack/internal/service"
)

// maxBodyBytes caps request bodies; an import of a large project stays well
// under it.
const maxBodyBytes = 10 << 20

// Services are the use cases the HTTP API dispatches to.
type Services struct {
	Stages   service.StageService
	Tasks    service.TaskService
	Stats    service.StatsService
	Transfer service.TransferService
}

// Options configure the non-API surface of the server.
type Options struct {
	// StaticDir is served on GET / when it exists. Empty disables it.
	StaticDir string
	// CORSOrigin is sent as Access-Control-Allow-Origin. Empty disables CORS.
	CORSOrigin string
	Logger     *slog.Logger
}

// Server is the HTTP API server.
type Server struct {
	svc     Services
	opts    Options
	logger  *slog.Logger
	mux     *http.ServeMux
	handler http.Handler
}

// New creates a new Server.
func New(svc Services, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		svc:    svc,
		opts:   opts,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	s.handler = chain(s.mux,
		s.withRequestID,
		s.withLogging,
		s.withRecover,
		s.withCORS,
	)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	// Stages
	s.mux.HandleFunc("GET /api/stages", s.handleStageList)
	s.mux.HandleFunc("POST /api/stages", s.handleStageCreate)
	s.mux.HandleFunc("PUT /api/stages/{id}", s.handleStageUpdate)
	s.mux.HandleFunc("DELETE /api/stages/{id}", s.handleStageDelete)
	s.mux.HandleFunc("POST /api/stages/{stageId}/tasks", s.handleTaskCreate)

	// Tasks
	s.mux.HandleFunc("PUT /api/tasks/{id}/toggle", s.handleTaskToggle)
	s.mux.HandleFunc("PUT /api/tasks/{id}", s.handleTaskUpdate)
	s.mux.HandleFunc("DELETE /api/tasks/{id}", s.handleTaskDelete)

	// Aggregates and bulk transfer
	s.mux.HandleFunc("GET /api/stats", s.handleStats)
	s.mux.HandleFunc("GET /api/export", s.handleExport)
	s.mux.HandleFunc("POST /api/import", s.handleImport)
	s.mux.HandleFunc("POST /api/reset", s.handleReset)

	// System
	s.mux.HandleFunc("GET /health", s.handleHealth)

	// Static web UI
	if dir := s.opts.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			s.mux.Handle("GET /", http.FileServer(http.Dir(dir)))
		} else {
			s.logger.Warn("static directory not found, web UI disabled", "dir", dir)
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, contract.HealthResponse{Status: "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write json", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, contract.ErrorResponse{Error: msg})
}

// writeServiceError maps validation failures to 400 and everything else,
// store failures included, to 500.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	s.writeError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a JSON body into v, writing a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}

// pathID parses an integer path parameter, writing a 400 on failure.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s %q", name, raw))
		return 0, false
	}
	return id, true
}
