package strindex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/strindex/internal/repository/memstore"
	nlqueryuc "github.com/kailas-cloud/strindex/internal/usecase/nlquery"
	queryuc "github.com/kailas-cloud/strindex/internal/usecase/query"
	recorduc "github.com/kailas-cloud/strindex/internal/usecase/record"
)

// Client is the strindex SDK entry point. It runs the full analysis and query
// pipeline in process; no server is involved.
type Client struct {
	records *recorduc.Service
	query   *queryuc.Service
	nl      *nlqueryuc.Service
}

// New creates a Client with an empty in-memory record store.
func New(opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	store := memstore.New()

	recordSvc := recorduc.New(store)
	if cfg.clock != nil {
		recordSvc = recordSvc.WithClock(cfg.clock)
	}

	querySvc := queryuc.New(store)

	var translator nlqueryuc.Translator = nlqueryuc.NewRuleTranslator()
	if cfg.translator != nil {
		translator = &translatorAdapter{inner: cfg.translator}
	}

	return &Client{
		records: recordSvc,
		query:   querySvc,
		nl:      nlqueryuc.New(translator, querySvc),
	}
}

// translatorAdapter wraps the public Translator to satisfy the internal contract.
type translatorAdapter struct {
	inner Translator
}

func (a *translatorAdapter) Translate(ctx context.Context, text string) (map[string]any, error) {
	raw, err := a.inner.Translate(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	return raw, nil
}
