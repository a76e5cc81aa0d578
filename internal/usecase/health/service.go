package health

import (
	"context"

	"github.com/kailas-cloud/pressdex/internal/db"
)

// EnginePinger checks search engine availability.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// IndexReader probes the article index.
type IndexReader interface {
	Info(ctx context.Context) (*db.IndexInfo, error)
}

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the engine is up but the index is missing.
	Degraded Status = "degraded"
	// Unhealthy indicates the engine is unreachable.
	Unhealthy Status = "error"
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
	engine EnginePinger
	index  IndexReader
}

// New creates a Service.
func New(engine EnginePinger, index IndexReader) *Service {
	return &Service{engine: engine, index: index}
}

// Check probes the engine and the article index. An unreachable engine
// is fatal; a missing index only degrades the report since ingestion
// can recreate it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	if err := s.engine.Ping(ctx); err != nil {
		checks["engine"] = CheckError
		checks["index"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["engine"] = CheckOK

	if _, err := s.index.Info(ctx); err != nil {
		checks["index"] = CheckError
		status = Degraded
	} else {
		checks["index"] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
