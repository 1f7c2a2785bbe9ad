package record

import (
	"context"

	"github.com/kailas-cloud/strindex/internal/domain/record"
)

// Repository defines the storage contract for record operations.
type Repository interface {
	Insert(ctx context.Context, rec record.Record) error
	Get(ctx context.Context, id string) (record.Record, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]record.Record, error)
}
