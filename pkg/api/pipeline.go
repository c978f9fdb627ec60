package api

import (
	"context"
	"time"
)

// Pipeline is an immutable named, versioned collection of steps plus
// the topology that orders them.
type Pipeline struct {
	name        string
	version     string
	description string
	topology    Topology
	observer    Observer
}

// NewPipeline builds a Pipeline with the default (no-op) observer.
// It returns a *ValidationError if any identity field is empty, the
// topology is nil, or the topology contains nil steps. Acyclicity is
// deliberately not checked here: the plan is resolved fresh on every
// Run, so a cycle surfaces as a *CycleError from Run.
func NewPipeline(name, version, description string, topo Topology) (*Pipeline, error) {
	return NewPipelineWithObserver(name, version, description, topo, nil)
}

// NewPipelineWithObserver is NewPipeline with a progress observer
// attached. A nil observer falls back to NoopObserver.
func NewPipelineWithObserver(name, version, description string, topo Topology, obs Observer) (*Pipeline, error) {
	if name == "" {
		return nil, &ValidationError{Field: "pipeline name", Reason: "must not be empty"}
	}
	if version == "" {
		return nil, &ValidationError{Field: "pipeline version", Reason: "must not be empty"}
	}
	if description == "" {
		return nil, &ValidationError{Field: "pipeline description", Reason: "must not be empty"}
	}
	if topo == nil {
		return nil, &ValidationError{Field: "topology", Reason: "must not be nil"}
	}
	if err := topo.validate(); err != nil {
		return nil, err
	}

	if obs == nil {
		obs = NoopObserver{}
	}

	return &Pipeline{
		name:        name,
		version:     version,
		description: description,
		topology:    topo,
		observer:    obs,
	}, nil
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string { return p.name }

// Version returns the pipeline version.
func (p *Pipeline) Version() string { return p.version }

// Description returns the pipeline description.
func (p *Pipeline) Description() string { return p.description }

// Run resolves the execution plan and invokes each planned step in
// order, one at a time, on the calling goroutine.
//
// The plan is resolved on every call with its own bookkeeping and is
// never cached, so concurrent Runs of the same Pipeline are safe as
// long as the topology is not mutated between them.
//
// The first step error halts the run: later steps do not execute and
// the error is returned unwrapped, so errors.Is and errors.As reach
// the original. A cycle in a graph topology returns a *CycleError
// before any step runs. The context is checked between steps only;
// within a step, control belongs entirely to the action.
func (p *Pipeline) Run(ctx context.Context) error {
	planned, err := p.topology.resolve()
	if err != nil {
		p.observer.OnPipelineFailed(ctx, p, err)
		return err
	}

	p.observer.OnPipelineStart(ctx, p)

	for i, step := range planned {
		if err := ctx.Err(); err != nil {
			p.observer.OnPipelineFailed(ctx, p, err)
			return err
		}

		p.observer.OnStepStart(ctx, p, step, i)

		start := time.Now()
		err := step.Invoke()
		elapsed := time.Since(start)

		p.observer.OnStepCompleted(ctx, p, step, i, err, elapsed)

		if err != nil {
			p.observer.OnPipelineFailed(ctx, p, err)
			return err
		}
	}

	p.observer.OnPipelineCompleted(ctx, p)
	return nil
}
