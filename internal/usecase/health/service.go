package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	cache      CachePinger
	translator TranslatorChecker
}

// New creates a Service. Either dependency can be nil when the component is
// not configured (no cache, offline translator).
func New(cache CachePinger, translator TranslatorChecker) *Service {
	return &Service{cache: cache, translator: translator}
}

// Check runs health checks against all configured components.
// The in-memory record store has no failure mode and is always reported ok.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		"store": CheckOK,
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	if s.translator != nil {
		if err := s.translator.HealthCheck(ctx); err != nil {
			checks["translator"] = CheckError
		} else {
			checks["translator"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
