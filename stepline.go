package stepline

import (
	"context"
	"database/sql"

	"github.com/petrijr/stepline/internal/history"
	"github.com/petrijr/stepline/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Step                 = api.Step
	Action               = api.Action
	Pipeline             = api.Pipeline
	Topology             = api.Topology
	Graph                = api.Graph
	ValidationError      = api.ValidationError
	CycleError           = api.CycleError
	Observer             = api.Observer
	NoopObserver         = api.NoopObserver
	LoggingObserver      = api.LoggingObserver
	CompositeObserver    = api.CompositeObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	Recorder             = api.Recorder
	RunRecord            = api.RunRecord
	StepRecord           = api.StepRecord
	RunListOptions       = api.RunListOptions
	Status               = api.Status
)

// Re-export constructors and error helpers.

var (
	NewStep                 = api.NewStep
	NewPipeline             = api.NewPipeline
	NewPipelineWithObserver = api.NewPipelineWithObserver
	Sequence                = api.Sequence
	NewGraph                = api.NewGraph
	NewLoggingObserver      = api.NewLoggingObserver
	NewCompositeObserver    = api.NewCompositeObserver
	IsValidationError       = api.IsValidationError
	IsCycleError            = api.IsCycleError
)

// Re-export run status values for convenience.

const (
	StatusRunning   = api.StatusRunning
	StatusCompleted = api.StatusCompleted
	StatusFailed    = api.StatusFailed
)

// Recorder constructors
// These wrap the internal/history package so external callers
// never need to import internal packages.

// NewMemoryRecorder returns a Recorder backed entirely by in-memory
// storage. Best for tests and short-lived processes.
func NewMemoryRecorder() Recorder {
	return history.NewRecorder(history.NewMemoryStore())
}

// NewSQLiteRecorder returns a Recorder that persists run history in a
// SQLite database. The schema is created on first use.
func NewSQLiteRecorder(db *sql.DB) (Recorder, error) {
	store, err := history.NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}
	return history.NewRecorder(store), nil
}

// Run runs the pipeline to completion. It is a convenience forwarding
// to p.Run.
func Run(ctx context.Context, p *Pipeline) error {
	return p.Run(ctx)
}
