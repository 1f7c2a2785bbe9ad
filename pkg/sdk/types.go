package strindex

import (
	"time"

	"github.com/kailas-cloud/strindex/internal/domain/query/filter"
	domrec "github.com/kailas-cloud/strindex/internal/domain/record"
)

// Record is a stored string with its derived properties.
type Record struct {
	ID         string
	Value      string
	Properties Properties
	CreatedAt  time.Time
}

// Properties are the analysis results derived from a record's value.
type Properties struct {
	Length        int
	IsPalindrome  bool
	WordCount     int
	CharFrequency map[string]int
	UniqueChars   int
	SHA256        string
}

// Filters is the typed filter set a query resolved to. Nil fields were not
// requested.
type Filters struct {
	IsPalindrome      *bool
	MinLength         *int
	MaxLength         *int
	WordCount         *int
	ContainsCharacter string
}

// SearchResult is the outcome of a natural-language search.
type SearchResult struct {
	Records    []Record
	Filters    Filters
	RawFilters map[string]any
}

func toRecord(rec *domrec.Record) Record {
	p := rec.Properties()
	return Record{
		ID:    rec.ID(),
		Value: rec.Value(),
		Properties: Properties{
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

func toRecords(recs []domrec.Record) []Record {
	out := make([]Record, len(recs))
	for i := range recs {
		out[i] = toRecord(&recs[i])
	}
	return out
}

func toFilters(set filter.Set) Filters {
	return Filters{
		IsPalindrome:      set.IsPalindrome(),
		MinLength:         set.MinLength(),
		MaxLength:         set.MaxLength(),
		WordCount:         set.WordCount(),
		ContainsCharacter: set.ContainsCharacter(),
	}
}
