// Package record defines the analysis record aggregate.
package record

import (
	"time"

	"github.com/kailas-cloud/strindex/internal/domain/analysis"
)

// Record is a content-addressed analysis record (immutable value object).
// The id is always the SHA-256 hex digest of the raw value bytes, so two
// records with equal values can never coexist in a store.
type Record struct {
	id        string
	value     string
	props     analysis.Properties
	createdAt time.Time
}

// New analyzes a value and creates a Record addressed by its content.
func New(value string, createdAt time.Time) Record {
	props := analysis.Analyze(value)
	return Record{
		id:        props.SHA256,
		value:     value,
		props:     props,
		createdAt: createdAt.UTC(),
	}
}

// Reconstruct creates a Record from stored parts without re-analysis.
func Reconstruct(id, value string, props analysis.Properties, createdAt time.Time) Record {
	return Record{id: id, value: value, props: props, createdAt: createdAt}
}

// ID returns the content address.
func (r *Record) ID() string { return r.id }

// Value returns the original string, verbatim.
func (r *Record) Value() string { return r.value }

// Properties returns the derived analysis properties.
func (r *Record) Properties() analysis.Properties { return r.props }

// CreatedAt returns the insertion timestamp.
func (r *Record) CreatedAt() time.Time { return r.createdAt }
