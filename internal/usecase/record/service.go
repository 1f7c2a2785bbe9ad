// Package record implements the record lifecycle use cases.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/strindex/internal/domain/analysis"
	"github.com/kailas-cloud/strindex/internal/domain/record"
)

// Service handles insertion, retrieval and deletion of analysis records.
type Service struct {
	repo Repository
	now  func() time.Time
}

// New creates a record service.
func New(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the insertion timestamp source (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Insert analyzes a value and stores the resulting record.
// If the content is already stored, the existing record wins and a
// domain.ConflictError carrying its id is returned.
func (s *Service) Insert(ctx context.Context, value string) (record.Record, error) {
	rec := record.New(value, s.now())
	if err := s.repo.Insert(ctx, rec); err != nil {
		return record.Record{}, fmt.Errorf("insert record: %w", err)
	}
	return rec, nil
}

// Get returns the record at the given content address.
func (s *Service) Get(ctx context.Context, id string) (record.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return record.Record{}, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// DeleteByValue recomputes the content address of a value and removes the
// record stored there. Deleting the same logical string twice always yields
// domain.ErrNotFound the second time.
func (s *Service) DeleteByValue(ctx context.Context, value string) error {
	id := analysis.Analyze(value).SHA256
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// List returns every stored record.
func (s *Service) List(ctx context.Context) ([]record.Record, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return recs, nil
}
