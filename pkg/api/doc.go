// Package api contains the core building blocks of the stepline
// pipeline runner: steps, topologies, pipelines, typed errors and the
// Observer interface.
//
// Most users interact with the higher-level stepline package, which
// re-exports selected types and helpers from this package. The api
// package is intended for custom integrations or contributors
// extending the runner itself.
//
// # Steps
//
// A Step is a named, versioned unit of work wrapping a zero-argument
// action. Steps are immutable once constructed and identified by
// pointer, so two steps with equal names remain distinct graph nodes.
//
// # Topologies
//
// A Topology orders steps in one of exactly two forms: Sequence, where
// the declaration order is the execution order verbatim, and Graph, a
// mapping from a step to its successors. The graph keeps an
// insertion-ordered node arena so resolution is deterministic: nodes
// with no constraint between them keep the order in which they become
// runnable, seeded by declaration order.
//
// # Pipelines
//
// A Pipeline pairs identity fields with a topology. Run resolves an
// execution plan fresh on every call (a cycle surfaces there as a
// *CycleError, before any step runs), then invokes each planned step
// exactly once, sequentially, timing each invocation. The first step
// error halts the run and propagates unwrapped.
//
// # Observability
//
// The Observer interface reports pipeline and step lifecycle events.
// Ready-made implementations cover structured logging (log/slog),
// basic in-memory metrics, fan-out composition and run recording (see
// the stepline package constructors).
package api
