package api

import (
	"context"
	"time"
)

// Status represents the lifecycle state of one recorded pipeline run.
type Status string

const (
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// RunRecord is the stored history of one Pipeline.Run call.
type RunRecord struct {
	ID         string
	Pipeline   string
	Version    string
	Status     Status
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StepRecord is the stored history of one step invocation within a run.
type StepRecord struct {
	RunID   string
	Step    string
	Version string
	Index   int
	Elapsed time.Duration
	Error   string
}

// RunListOptions controls how run records are listed.
// Zero values mean "no filter" for that field.
type RunListOptions struct {
	// Pipeline, if non-empty, limits results to runs of the given pipeline.
	Pipeline string

	// Status, if non-empty, limits results to runs with the given status.
	Status Status
}

// Recorder is an Observer that keeps a queryable history of pipeline
// runs. Attach it to a pipeline (alone or via NewCompositeObserver)
// and query it afterwards.
//
// A Recorder correlates step events to runs through the pipeline value
// they report, so it supports concurrent runs of distinct pipelines
// but not concurrent runs of the same Pipeline instance.
type Recorder interface {
	Observer

	// GetRun looks up a run record by ID.
	// Returns an error if the run is not found.
	GetRun(ctx context.Context, id string) (*RunRecord, error)

	// ListRuns returns run records matching the given options.
	// If options are zero-valued, all runs are returned.
	ListRuns(ctx context.Context, opts RunListOptions) ([]*RunRecord, error)

	// ListSteps returns the step records of a run in invocation order.
	ListSteps(ctx context.Context, runID string) ([]*StepRecord, error)
}
