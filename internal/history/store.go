// Package history stores pipeline run records.
//
// The engine itself never touches storage; the Recorder in this
// package is an api.Observer that callers attach explicitly when they
// want a queryable run history.
package history

import (
	"errors"

	"github.com/petrijr/stepline/pkg/api"
)

// ErrRunNotFound is returned when a run record is not found.
var ErrRunNotFound = errors.New("run not found")

// RunFilter is used to select run records from the store.
// Empty string / zero status mean "no filter" for that field.
type RunFilter struct {
	Pipeline string
	Status   api.Status
}

// RunStore handles storage of pipeline run and step records.
type RunStore interface {
	SaveRun(rec *api.RunRecord) error
	UpdateRun(rec *api.RunRecord) error
	SaveStep(rec *api.StepRecord) error
	GetRun(id string) (*api.RunRecord, error)
	ListRuns(filter RunFilter) ([]*api.RunRecord, error)
	// ListSteps returns the step records of a run in invocation order.
	ListSteps(runID string) ([]*api.StepRecord, error)
}
