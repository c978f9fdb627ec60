// Package stepline provides a minimal, embeddable pipeline runner for Go.
//
// Stepline lets an application declare named, versioned steps, compose
// them into a pipeline (either a strict linear sequence or a
// dependency graph) and run them in order, one at a time, on the
// calling goroutine. It runs fully in-process: no network, no queues, no
// background workers. Steps own all of their I/O, retries and side
// effects; stepline only sequences them.
//
// # Core Concepts
//
// The programming model is intentionally small:
//
//  1. Step
//  2. Topology (Sequence / Graph)
//  3. Pipeline
//  4. Observer
//  5. Recorder
//
// # Step
//
// A Step binds a name, a version and a description to a zero-argument
// action:
//
//	extract, err := stepline.NewStep("extract", "1.0.0", "Pull source data", func() error {
//	    return pullSourceData()
//	})
//
// Steps are immutable and compared by identity: two steps with the same
// name are still distinct nodes in a graph topology.
//
// # Topology
//
// A Topology is the shape that orders steps. It has exactly two forms.
// Sequence runs steps in the given order, verbatim:
//
//	topo := stepline.Sequence(extract, transform, load)
//
// Graph maps a step to the steps that run after it. Declaration order
// breaks ties between otherwise unconstrained steps, so identical
// input always yields the identical plan:
//
//	topo := stepline.NewGraph().
//	    Successors(extract, transform, validate).
//	    Successors(transform, load)
//
// A cycle in a graph is reported as a *CycleError when the pipeline
// runs; nothing executes.
//
// # Pipeline
//
// A Pipeline pairs identity fields with a topology. Run resolves the
// execution plan fresh on every call and invokes each planned step
// exactly once, measuring elapsed time per step. The first step error
// halts the run and propagates unwrapped.
//
//	pipe, err := stepline.NewPipeline("nightly-etl", "1.0.0", "Nightly data load", topo)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := pipe.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Linear pipelines can also be declared fluently with PipelineBuilder;
// see New.
//
// # Observer
//
// Pipelines never print. Progress is reported through an Observer
// attached at construction: pipeline start/completed/failed and
// per-step start/completed events with durations. LoggingObserver
// writes structured logs via log/slog, BasicMetrics keeps counters,
// and NewCompositeObserver fans out to several observers at once.
//
// # Recorder
//
// A Recorder is an Observer that keeps a queryable history of runs,
// either in memory or in a SQLite database:
//
//	rec, err := stepline.NewSQLiteRecorder(db)
//
// Recording is strictly opt-in; the engine itself holds no state
// between runs.
package stepline
