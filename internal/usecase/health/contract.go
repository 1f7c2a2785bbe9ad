package health

import "context"

// CachePinger checks translation cache connectivity.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// TranslatorChecker checks translation provider availability.
type TranslatorChecker interface {
	HealthCheck(ctx context.Context) error
}
