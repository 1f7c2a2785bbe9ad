// Package chi wires the HTTP API onto a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/strindex/internal/domain"
	"github.com/kailas-cloud/strindex/internal/domain/query/filter"
	domrec "github.com/kailas-cloud/strindex/internal/domain/record"
	healthuc "github.com/kailas-cloud/strindex/internal/usecase/health"
	nlqueryuc "github.com/kailas-cloud/strindex/internal/usecase/nlquery"
	queryuc "github.com/kailas-cloud/strindex/internal/usecase/query"
	recorduc "github.com/kailas-cloud/strindex/internal/usecase/record"
)

// Error response codes.
const (
	codeBadRequest          = "bad_request"
	codeInvalidInput        = "invalid_input"
	codeNotFound            = "not_found"
	codeAlreadyExists       = "already_exists"
	codeInvalidFilter       = "invalid_filter"
	codeConflictingFilters  = "conflicting_filters"
	codeUpstreamUnparseable = "upstream_unparseable"
	codeUpstreamEmpty       = "upstream_empty"
	codeInternalError       = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server exposes the record store and query pipeline over HTTP.
type Server struct {
	records       *recorduc.Service
	query         *queryuc.Service
	nl            *nlqueryuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	records *recorduc.Service,
	query *queryuc.Service,
	nl *nlqueryuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		records: records,
		query:   query,
		nl:      nl,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		conflictHandler,
		filterValidationHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeInvalidInput),
		sentinelHandler(domain.ErrInvalidFilter, http.StatusBadRequest, codeInvalidFilter),
		sentinelHandler(domain.ErrConflictingFilters, http.StatusUnprocessableEntity, codeConflictingFilters),
		sentinelHandler(domain.ErrUpstreamUnparseable, http.StatusBadGateway, codeUpstreamUnparseable),
		sentinelHandler(domain.ErrUpstreamEmpty, http.StatusBadGateway, codeUpstreamEmpty),
	}
	return s
}

// Routes mounts all API routes on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/strings", s.insertString)
		r.Get("/strings", s.listStrings)
		r.Delete("/strings", s.deleteString)
		r.Get("/strings/{id}", s.getString)
		r.Post("/search/natural-language", s.searchNaturalLanguage)
	})
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", s.metricsHandler)
}

// insertString handles POST /api/v1/strings.
func (s *Server) insertString(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	value, ok := req.Value.(string)
	if !ok {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "value is required and must be a string")
		return
	}

	rec, err := s.records.Insert(r.Context(), value)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, recordToResponse(&rec))
}

// getString handles GET /api/v1/strings/{id}.
func (s *Server) getString(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.records.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recordToResponse(&rec))
}

// listStrings handles GET /api/v1/strings with optional filter query params.
func (s *Server) listStrings(w http.ResponseWriter, r *http.Request) {
	raw := make(map[string]any)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}

	recs, set, err := s.query.Query(r.Context(), raw)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]recordResponse, len(recs))
	for i := range recs {
		items[i] = recordToResponse(&recs[i])
	}

	writeJSON(w, http.StatusOK, listResponse{
		Items:   items,
		Count:   len(items),
		Filters: filtersToResponse(set),
	})
}

// deleteString handles DELETE /api/v1/strings (delete by value).
func (s *Server) deleteString(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	value, ok := req.Value.(string)
	if !ok {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "value is required and must be a string")
		return
	}

	if err := s.records.DeleteByValue(r.Context(), value); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// searchNaturalLanguage handles POST /api/v1/search/natural-language.
func (s *Server) searchNaturalLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query any `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	text, ok := req.Query.(string)
	if !ok {
		writeError(w, http.StatusBadRequest, codeInvalidInput, "query is required and must be a string")
		return
	}

	result, err := s.nl.Search(r.Context(), text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]recordResponse, len(result.Records))
	for i := range result.Records {
		items[i] = recordToResponse(&result.Records[i])
	}

	writeJSON(w, http.StatusOK, nlSearchResponse{
		Items: items,
		Count: len(items),
		Interpretation: interpretation{
			Query:   text,
			Filters: result.RawFilters,
		},
	})
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// metricsHandler handles GET /metrics.
func (s *Server) metricsHandler(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
		domain.ErrInvalidInput,
		domain.ErrInvalidFilter,
		domain.ErrConflictingFilters,
		domain.ErrUpstreamUnparseable,
		domain.ErrUpstreamEmpty,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// conflictHandler handles ErrAlreadyExists with the existing content address.
func conflictHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return false
	}
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Code:       codeAlreadyExists,
			Message:    msg,
			ExistingID: ce.ExistingID,
		})
		return true
	}
	writeError(w, http.StatusConflict, codeAlreadyExists, msg)
	return true
}

// filterValidationHandler handles ErrInvalidFilter with per-field details.
func filterValidationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrInvalidFilter) {
		return false
	}
	var fve *domain.FilterValidationError
	if errors.As(err, &fve) {
		details := make([]fieldErrorResponse, len(fve.Fields))
		for i, f := range fve.Fields {
			details[i] = fieldErrorResponse{Field: f.Field, Message: f.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Code:    codeInvalidFilter,
			Message: msg,
			Details: details,
		})
		return true
	}
	writeError(w, http.StatusBadRequest, codeInvalidFilter, msg)
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// --- Response DTOs ---

type errorResponse struct {
	Code       string               `json:"code"`
	Message    string               `json:"message"`
	Details    []fieldErrorResponse `json:"details,omitempty"`
	ExistingID string               `json:"existing_id,omitempty"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type recordResponse struct {
	ID         string             `json:"id"`
	Value      string             `json:"value"`
	Properties propertiesResponse `json:"properties"`
	CreatedAt  time.Time          `json:"created_at"`
}

type propertiesResponse struct {
	Length        int            `json:"length"`
	IsPalindrome  bool           `json:"is_palindrome"`
	WordCount     int            `json:"word_count"`
	CharFrequency map[string]int `json:"character_frequency_map"`
	UniqueChars   int            `json:"unique_characters"`
	SHA256        string         `json:"sha256_hash"`
}

type listResponse struct {
	Items   []recordResponse `json:"items"`
	Count   int              `json:"count"`
	Filters filtersResponse  `json:"filters"`
}

type filtersResponse struct {
	IsPalindrome      *bool   `json:"is_palindrome,omitempty"`
	MinLength         *int    `json:"min_length,omitempty"`
	MaxLength         *int    `json:"max_length,omitempty"`
	WordCount         *int    `json:"word_count,omitempty"`
	ContainsCharacter *string `json:"contains_character,omitempty"`
}

type nlSearchResponse struct {
	Items          []recordResponse `json:"items"`
	Count          int              `json:"count"`
	Interpretation interpretation   `json:"interpretation"`
}

type interpretation struct {
	Query   string         `json:"query"`
	Filters map[string]any `json:"parsed_filters"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func recordToResponse(rec *domrec.Record) recordResponse {
	p := rec.Properties()
	return recordResponse{
		ID:    rec.ID(),
		Value: rec.Value(),
		Properties: propertiesResponse{
			Length:        p.Length,
			IsPalindrome:  p.IsPalindrome,
			WordCount:     p.WordCount,
			CharFrequency: p.CharFrequency,
			UniqueChars:   p.UniqueChars,
			SHA256:        p.SHA256,
		},
		CreatedAt: rec.CreatedAt(),
	}
}

func filtersToResponse(set filter.Set) filtersResponse {
	resp := filtersResponse{
		IsPalindrome: set.IsPalindrome(),
		MinLength:    set.MinLength(),
		MaxLength:    set.MaxLength(),
		WordCount:    set.WordCount(),
	}
	if c := set.ContainsCharacter(); c != "" {
		resp.ContainsCharacter = &c
	}
	return resp
}
