// Package query compiles raw filter maps and applies them to the record set.
package query

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/strindex/internal/domain/query/filter"
	"github.com/kailas-cloud/strindex/internal/domain/record"
)

// Service is the query engine. Applying a compiled filter set never fails;
// an empty result is a valid outcome.
type Service struct {
	records RecordLister
}

// New creates a query service.
func New(records RecordLister) *Service {
	return &Service{records: records}
}

// Query compiles the raw filter map and returns the matching records together
// with the typed filters actually applied. The result is always a fresh
// slice; the store is never mutated.
func (s *Service) Query(ctx context.Context, raw map[string]any) ([]record.Record, filter.Set, error) {
	set, err := filter.Compile(raw)
	if err != nil {
		return nil, filter.Set{}, fmt.Errorf("compile filters: %w", err)
	}

	recs, err := s.records.List(ctx)
	if err != nil {
		return nil, filter.Set{}, fmt.Errorf("list records: %w", err)
	}

	return Apply(recs, set), set, nil
}

// Apply filters records through the predicate set, preserving store order.
func Apply(recs []record.Record, set filter.Set) []record.Record {
	out := make([]record.Record, 0, len(recs))
	for i := range recs {
		if set.Matches(recs[i].Properties()) {
			out = append(out, recs[i])
		}
	}
	return out
}
