package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from a running pipeline for logging,
// metrics and run recording.
//
// Implementations should be fast and non-blocking; heavy work should
// be done asynchronously so as not to delay step execution.
type Observer interface {
	// OnPipelineStart is called once per Run, after the execution plan
	// has been resolved and before the first step is invoked.
	OnPipelineStart(ctx context.Context, p *Pipeline)

	// OnPipelineCompleted is called when every planned step has
	// finished without error.
	OnPipelineCompleted(ctx context.Context, p *Pipeline)

	// OnPipelineFailed is called when a Run fails, whether during plan
	// resolution (cycle) or because a step returned an error.
	OnPipelineFailed(ctx context.Context, p *Pipeline, err error)

	// OnStepStart is called before invoking a step action.
	// index is the 0-based position of the step in the execution plan.
	OnStepStart(ctx context.Context, p *Pipeline, step *Step, index int)

	// OnStepCompleted is called after a step action returns, for both
	// successes and failures (err != nil).
	OnStepCompleted(ctx context.Context, p *Pipeline, step *Step, index int, err error, duration time.Duration)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnPipelineStart(ctx context.Context, p *Pipeline)                {}
func (NoopObserver) OnPipelineCompleted(ctx context.Context, p *Pipeline)            {}
func (NoopObserver) OnPipelineFailed(ctx context.Context, p *Pipeline, err error)    {}
func (NoopObserver) OnStepStart(ctx context.Context, p *Pipeline, step *Step, i int) {}
func (NoopObserver) OnStepCompleted(ctx context.Context, p *Pipeline, step *Step, i int, err error, d time.Duration) {
}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to
// each non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnPipelineStart(ctx context.Context, p *Pipeline) {
	for _, o := range c.observers {
		o.OnPipelineStart(ctx, p)
	}
}

func (c *CompositeObserver) OnPipelineCompleted(ctx context.Context, p *Pipeline) {
	for _, o := range c.observers {
		o.OnPipelineCompleted(ctx, p)
	}
}

func (c *CompositeObserver) OnPipelineFailed(ctx context.Context, p *Pipeline, err error) {
	for _, o := range c.observers {
		o.OnPipelineFailed(ctx, p, err)
	}
}

func (c *CompositeObserver) OnStepStart(ctx context.Context, p *Pipeline, step *Step, i int) {
	for _, o := range c.observers {
		o.OnStepStart(ctx, p, step, i)
	}
}

func (c *CompositeObserver) OnStepCompleted(ctx context.Context, p *Pipeline, step *Step, i int, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnStepCompleted(ctx, p, step, i, err, d)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs pipeline / step
// lifecycle events using the provided slog.Logger. If logger is nil,
// slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnPipelineStart(ctx context.Context, p *Pipeline) {
	o.Logger.InfoContext(ctx, "pipeline_start",
		slog.String("pipeline", p.Name()),
		slog.String("version", p.Version()),
	)
}

func (o *LoggingObserver) OnPipelineCompleted(ctx context.Context, p *Pipeline) {
	o.Logger.InfoContext(ctx, "pipeline_completed",
		slog.String("pipeline", p.Name()),
		slog.String("version", p.Version()),
	)
}

func (o *LoggingObserver) OnPipelineFailed(ctx context.Context, p *Pipeline, err error) {
	o.Logger.ErrorContext(ctx, "pipeline_failed",
		slog.String("pipeline", p.Name()),
		slog.String("version", p.Version()),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnStepStart(ctx context.Context, p *Pipeline, step *Step, i int) {
	o.Logger.DebugContext(ctx, "step_start",
		slog.String("pipeline", p.Name()),
		slog.String("step", step.Name()),
		slog.Int("step_index", i),
	)
}

func (o *LoggingObserver) OnStepCompleted(ctx context.Context, p *Pipeline, step *Step, i int, err error, d time.Duration) {
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelError
	}
	o.Logger.Log(ctx, level, "step_completed",
		slog.String("pipeline", p.Name()),
		slog.String("step", step.Name()),
		slog.Int("step_index", i),
		slog.Duration("duration", d),
		slog.Any("error", err),
	)
}

// BasicMetrics collects simple counters and aggregate step durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	runsStarted       atomic.Int64
	runsCompleted     atomic.Int64
	runsFailed        atomic.Int64
	stepsCompleted    atomic.Int64
	totalStepDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	RunsStarted   int64
	RunsCompleted int64
	RunsFailed    int64

	StepsCompleted  int64
	AvgStepDuration time.Duration
}

func (m *BasicMetrics) OnPipelineStart(ctx context.Context, p *Pipeline) {
	m.runsStarted.Add(1)
}

func (m *BasicMetrics) OnPipelineCompleted(ctx context.Context, p *Pipeline) {
	m.runsCompleted.Add(1)
}

func (m *BasicMetrics) OnPipelineFailed(ctx context.Context, p *Pipeline, err error) {
	m.runsFailed.Add(1)
}

func (m *BasicMetrics) OnStepCompleted(ctx context.Context, p *Pipeline, step *Step, i int, err error, d time.Duration) {
	// Only count successful steps for average duration.
	if err == nil {
		m.stepsCompleted.Add(1)
		m.totalStepDuration.Add(d.Nanoseconds())
	}
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	steps := m.stepsCompleted.Load()
	totalNs := m.totalStepDuration.Load()

	var avg time.Duration
	if steps > 0 {
		avg = time.Duration(totalNs / steps)
	}

	return BasicMetricsSnapshot{
		RunsStarted:     m.runsStarted.Load(),
		RunsCompleted:   m.runsCompleted.Load(),
		RunsFailed:      m.runsFailed.Load(),
		StepsCompleted:  steps,
		AvgStepDuration: avg,
	}
}
