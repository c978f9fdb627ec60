package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/petrijr/stepline/pkg/api"
)

// Recorder implements api.Recorder on top of a RunStore.
//
// It assigns a fresh run ID on every OnPipelineStart and correlates
// later events through the pipeline value they report. Store errors
// inside observer callbacks are swallowed: recording must never alter
// the outcome of a run.
type Recorder struct {
	store RunStore

	mu     sync.Mutex
	nextID int64
	active map[*api.Pipeline]string
}

// NewRecorder creates a Recorder writing through the given store.
func NewRecorder(store RunStore) *Recorder {
	return &Recorder{
		store:  store,
		active: make(map[*api.Pipeline]string),
	}
}

// Ensure Recorder implements the public interface.
var _ api.Recorder = (*Recorder)(nil)

func (r *Recorder) OnPipelineStart(ctx context.Context, p *api.Pipeline) {
	id := r.beginRun(p)

	_ = r.store.SaveRun(&api.RunRecord{
		ID:        id,
		Pipeline:  p.Name(),
		Version:   p.Version(),
		Status:    api.StatusRunning,
		StartedAt: time.Now(),
	})
}

func (r *Recorder) OnPipelineCompleted(ctx context.Context, p *api.Pipeline) {
	r.finishRun(p, api.StatusCompleted, nil)
}

func (r *Recorder) OnPipelineFailed(ctx context.Context, p *api.Pipeline, err error) {
	r.finishRun(p, api.StatusFailed, err)
}

func (r *Recorder) OnStepStart(ctx context.Context, p *api.Pipeline, step *api.Step, i int) {}

func (r *Recorder) OnStepCompleted(ctx context.Context, p *api.Pipeline, step *api.Step, i int, err error, d time.Duration) {
	id, ok := r.lookup(p)
	if !ok {
		return
	}

	errStr := ""
	if err != nil {
		errStr = err.Error()
	}

	_ = r.store.SaveStep(&api.StepRecord{
		RunID:   id,
		Step:    step.Name(),
		Version: step.Version(),
		Index:   i,
		Elapsed: d,
		Error:   errStr,
	})
}

func (r *Recorder) GetRun(ctx context.Context, id string) (*api.RunRecord, error) {
	rec, err := r.store.GetRun(id)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			return nil, fmt.Errorf("run not found: %s", id)
		}
		return nil, err
	}
	return rec, nil
}

func (r *Recorder) ListRuns(ctx context.Context, opts api.RunListOptions) ([]*api.RunRecord, error) {
	return r.store.ListRuns(RunFilter{
		Pipeline: opts.Pipeline,
		Status:   opts.Status,
	})
}

func (r *Recorder) ListSteps(ctx context.Context, runID string) ([]*api.StepRecord, error) {
	return r.store.ListSteps(runID)
}

func (r *Recorder) beginRun(p *api.Pipeline) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	id := fmt.Sprintf("run-%d", r.nextID)
	r.active[p] = id
	return id
}

func (r *Recorder) lookup(p *api.Pipeline) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.active[p]
	return id, ok
}

// finishRun closes out the active run for p. A run can fail before it
// ever started (cycle detected during plan resolution); in that case a
// record is created on the spot so the failure still shows up in the
// history.
func (r *Recorder) finishRun(p *api.Pipeline, status api.Status, err error) {
	r.mu.Lock()
	id, ok := r.active[p]
	if ok {
		delete(r.active, p)
	} else {
		r.nextID++
		id = fmt.Sprintf("run-%d", r.nextID)
	}
	r.mu.Unlock()

	errStr := ""
	if err != nil {
		errStr = err.Error()
	}
	now := time.Now()

	if !ok {
		_ = r.store.SaveRun(&api.RunRecord{
			ID:         id,
			Pipeline:   p.Name(),
			Version:    p.Version(),
			Status:     status,
			StartedAt:  now,
			FinishedAt: now,
			Error:      errStr,
		})
		return
	}

	rec, getErr := r.store.GetRun(id)
	if getErr != nil {
		return
	}
	rec.Status = status
	rec.FinishedAt = now
	rec.Error = errStr
	_ = r.store.UpdateRun(rec)
}
