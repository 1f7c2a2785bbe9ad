package query

import (
	"context"

	"github.com/kailas-cloud/strindex/internal/domain/record"
)

// RecordLister provides the base record sequence the engine filters.
type RecordLister interface {
	List(ctx context.Context) ([]record.Record, error)
}
