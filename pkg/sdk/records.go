package strindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/strindex/internal/domain"
)

// Insert analyzes a value and stores the resulting record.
// Duplicate content returns ErrAlreadyExists; ExistingID reports the address
// of the record that won.
func (c *Client) Insert(ctx context.Context, value string) (Record, error) {
	rec, err := c.records.Insert(ctx, value)
	if err != nil {
		return Record{}, err
	}
	return toRecord(&rec), nil
}

// Get returns the record at the given content address.
func (c *Client) Get(ctx context.Context, id string) (Record, error) {
	rec, err := c.records.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	return toRecord(&rec), nil
}

// DeleteByValue removes the record whose content matches the given value.
// Deleting an absent value returns ErrNotFound.
func (c *Client) DeleteByValue(ctx context.Context, value string) error {
	return c.records.DeleteByValue(ctx, value)
}

// List returns every stored record in insertion order, optionally narrowed by
// a raw filter map (same keys and coercion rules as the HTTP API).
func (c *Client) List(ctx context.Context, rawFilters map[string]any) ([]Record, Filters, error) {
	if rawFilters == nil {
		rawFilters = map[string]any{}
	}
	recs, set, err := c.query.Query(ctx, rawFilters)
	if err != nil {
		return nil, Filters{}, err
	}
	return toRecords(recs), toFilters(set), nil
}

// ExistingID extracts the surviving record's content address from an
// ErrAlreadyExists returned by Insert.
func ExistingID(err error) (string, bool) {
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return ce.ExistingID, true
	}
	return "", false
}

// FieldErrors extracts per-field messages from an ErrInvalidFilter.
func FieldErrors(err error) ([]string, bool) {
	var fve *domain.FilterValidationError
	if !errors.As(err, &fve) {
		return nil, false
	}
	out := make([]string, len(fve.Fields))
	for i, f := range fve.Fields {
		out[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return out, true
}
