package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recdex/internal/domain"
	"github.com/kailas-cloud/recdex/internal/domain/search/filter"
	healthuc "github.com/kailas-cloud/recdex/internal/usecase/health"
	recorduc "github.com/kailas-cloud/recdex/internal/usecase/record"
)

// Client-facing error messages.
const (
	msgInvalidID       = "Invalid ID format"
	msgNotFound        = "Document not found"
	msgInternal        = "Internal Server Error"
	msgColumnsFailed   = "Failed to fetch columns"
	msgInvalidRequest  = "invalid request"
	msgUnauthenticated = "missing authorization header"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ColumnsResponse is the body of GET /columns.
type ColumnsResponse struct {
	Columns []string `json:"columns"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Server implements ServerInterface over the record and health services.
type Server struct {
	records       *recorduc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates an HTTP API server.
func NewServer(records *recorduc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		records: records,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidIdentifier, http.StatusBadRequest, msgInvalidID),
		sentinelHandler(domain.ErrRecordNotFound, http.StatusNotFound, msgNotFound),
	}
	return s
}

// ListRecords handles GET /data.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request, params ListRecordsParams) {
	req := filter.Request{
		Column:    deref(params.Column),
		Condition: filter.Condition(deref(params.Condition)),
		Search:    deref(params.Search),
	}

	recs, err := s.records.List(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// ListColumns handles GET /columns.
func (s *Server) ListColumns(w http.ResponseWriter, r *http.Request) {
	cols, err := s.records.Columns(r.Context())
	if err != nil {
		s.handleDomainError(w, err, msgColumnsFailed)
		return
	}
	writeJSON(w, http.StatusOK, ColumnsResponse{Columns: cols})
}

// GetRecord handles GET /data/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request, id RecordID) {
	rec, err := s.records.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteRecord handles DELETE /data/{id}.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request, id RecordID) {
	rec, err := s.records.Delete(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err, msgInternal)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// BadRequest is the ChiServerOptions error handler for undecodable parameters.
func BadRequest(w http.ResponseWriter, _ *http.Request, _ error) {
	writeError(w, http.StatusBadRequest, msgInvalidRequest)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

// handleDomainError maps err to a response. Unmatched errors become a 500
// carrying fallback, never the internal error text.
func (s *Server) handleDomainError(w http.ResponseWriter, err error, fallback string) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Debug("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, fallback)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
