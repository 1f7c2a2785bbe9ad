package strindex

import "context"

// Search interprets free text through the configured translator and applies
// the resulting filters to the stored records.
func (c *Client) Search(ctx context.Context, text string) (SearchResult, error) {
	result, err := c.nl.Search(ctx, text)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{
		Records:    toRecords(result.Records),
		Filters:    toFilters(result.Filters),
		RawFilters: result.RawFilters,
	}, nil
}
