package api

import (
	"fmt"

	"github.com/petrijr/stepline/internal/plan"
)

// Topology describes the order steps run in. It has exactly two forms:
// a literal sequence (Sequence) and a dependency graph (Graph). The
// form is fixed when the topology is built; there is no runtime shape
// inspection.
type Topology interface {
	// validate checks the topology shape (nil steps and the like).
	// Acyclicity is not checked here; that happens at resolve time.
	validate() error

	// resolve produces the execution plan for one run. Each call uses
	// fresh bookkeeping, so concurrent resolves are independent.
	resolve() ([]*Step, error)
}

type sequence struct {
	list []*Step
}

// Sequence declares a linear topology: steps run in the given order,
// verbatim. Duplicates are allowed and simply run again.
func Sequence(steps ...*Step) Topology {
	return &sequence{list: append([]*Step(nil), steps...)}
}

func (s *sequence) validate() error {
	for i, step := range s.list {
		if step == nil {
			return &ValidationError{
				Field:  "topology",
				Reason: fmt.Sprintf("sequence contains a nil step at position %d", i),
			}
		}
	}
	return nil
}

// A list has no successors to order against; it is the order.
func (s *sequence) resolve() ([]*Step, error) {
	return s.list, nil
}

// Graph declares a dependency topology: a mapping from a step to the
// steps that run after it. Declaration order is significant because it
// breaks ties between otherwise unconstrained steps, so the graph
// keeps its own insertion-ordered node arena instead of relying on a
// Go map.
type Graph struct {
	nodes []*Step
	index map[*Step]int
	adj   [][]int
}

// NewGraph returns an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[*Step]int)}
}

// Successors records that each step in succs runs after step. It may
// be called multiple times for the same step; later calls append to
// its successor list. Steps that only ever appear as successors are
// valid terminal nodes.
//
// Successors returns the graph for chaining:
//
//	g := api.NewGraph().
//	    Successors(build, test, pack).
//	    Successors(test, publish)
func (g *Graph) Successors(step *Step, succs ...*Step) *Graph {
	from := g.node(step)
	for _, s := range succs {
		to := g.node(s)
		g.adj[from] = append(g.adj[from], to)
	}
	return g
}

// node returns the arena index for step, assigning one on first sight.
func (g *Graph) node(step *Step) int {
	if i, ok := g.index[step]; ok {
		return i
	}
	i := len(g.nodes)
	g.index[step] = i
	g.nodes = append(g.nodes, step)
	g.adj = append(g.adj, nil)
	return i
}

func (g *Graph) validate() error {
	if _, ok := g.index[nil]; ok {
		return &ValidationError{Field: "topology", Reason: "graph contains a nil step"}
	}
	return nil
}

func (g *Graph) resolve() ([]*Step, error) {
	order, cycle := plan.Order(g.adj)
	if cycle != nil {
		steps := make([]*Step, len(cycle))
		for i, n := range cycle {
			steps[i] = g.nodes[n]
		}
		return nil, &CycleError{Steps: steps}
	}

	out := make([]*Step, len(order))
	for i, n := range order {
		out[i] = g.nodes[n]
	}
	return out, nil
}
