package nlquery

import (
	"context"

	"github.com/kailas-cloud/strindex/internal/domain/query/filter"
	"github.com/kailas-cloud/strindex/internal/domain/record"
)

// Translator turns free text into a raw filter map.
type Translator interface {
	Translate(ctx context.Context, text string) (map[string]any, error)
}

// Querier compiles a raw filter map and applies it to the record set.
type Querier interface {
	Query(ctx context.Context, raw map[string]any) ([]record.Record, filter.Set, error)
}
