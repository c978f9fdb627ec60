// Package plan resolves execution order for dependency graphs.
//
// It works purely on integer node indices: callers keep their own
// arena mapping domain values to indices and pass an adjacency list
// where adj[i] holds the successors of node i (nodes that must run
// after it).
package plan

// Order computes an execution order for the given adjacency list.
//
// Every node appears exactly once, each node precedes all of its
// successors, and nodes with no constraint between them keep the order
// in which they become runnable, seeded by declaration order. The
// result is therefore deterministic for identical input.
//
// If the graph contains a cycle, Order returns a nil order and the
// nodes forming one cycle, in walk order (the cycle closes back on the
// first returned node).
func Order(adj [][]int) (order []int, cycle []int) {
	n := len(adj)

	indegree := make([]int, n)
	for _, succs := range adj {
		for _, s := range succs {
			indegree[s]++
		}
	}

	// Seed with unconstrained nodes in declaration order; newly freed
	// nodes join the back of the queue in the order their last
	// predecessor releases them.
	queue := make([]int, 0, n)
	for node := 0; node < n; node++ {
		if indegree[node] == 0 {
			queue = append(queue, node)
		}
	}

	order = make([]int, 0, n)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		order = append(order, node)

		for _, s := range adj[node] {
			indegree[s]--
			if indegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}

	if len(order) < n {
		return nil, findCycle(adj)
	}
	return order, nil
}

const (
	unvisited = iota
	inProgress
	done
)

// findCycle locates one cycle with a three-state depth-first walk and
// returns the active recursion stack trimmed to the first revisited
// node. Only called once Order has established that a cycle exists.
func findCycle(adj [][]int) []int {
	state := make([]int, len(adj))
	stack := make([]int, 0, len(adj))

	var visit func(node int) []int
	visit = func(node int) []int {
		switch state[node] {
		case done:
			return nil
		case inProgress:
			for i, v := range stack {
				if v == node {
					return append([]int(nil), stack[i:]...)
				}
			}
			return append([]int(nil), stack...)
		}

		state[node] = inProgress
		stack = append(stack, node)

		for _, s := range adj[node] {
			if c := visit(s); c != nil {
				return c
			}
		}

		stack = stack[:len(stack)-1]
		state[node] = done
		return nil
	}

	for node := range adj {
		if state[node] == unvisited {
			if c := visit(node); c != nil {
				return c
			}
		}
	}
	return nil
}
