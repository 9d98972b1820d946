package graph

import "fmt"

// Validate checks the finished graph as a whole: every pad of every
// node must be connected, there must be no cycles, and every node must
// be reachable from a source. Construction is done once this passes.
func (g *Graph) Validate() error {
	if len(g.nodes) == 0 {
		return fmt.Errorf("%w: graph has no nodes", ErrInvalidGraph)
	}

	for _, n := range g.nodes {
		for i, l := range n.inputs {
			if l == nil || l.Src == nil {
				return fmt.Errorf("%w: input pad %d of '%s' is not connected",
					ErrInvalidGraph, i, n.Name)
			}
		}
		for i, l := range n.outputs {
			if l == nil || l.Dst == nil {
				return fmt.Errorf("%w: output pad %d of '%s' is not connected",
					ErrInvalidGraph, i, n.Name)
			}
		}
	}

	if err := g.detectCycles(); err != nil {
		return err
	}

	return g.checkReachable()
}

// detectCycles runs a DFS over the links looking for back edges.
func (g *Graph) detectCycles() error {
	visited := make(map[*Node]bool)
	inStack := make(map[*Node]bool)

	var visit func(n *Node) error
	visit = func(n *Node) error {
		visited[n] = true
		inStack[n] = true

		for _, l := range n.outputs {
			next := l.Dst
			if !visited[next] {
				if err := visit(next); err != nil {
					return err
				}
			} else if inStack[next] {
				return fmt.Errorf("%w: cycle detected through '%s' and '%s'",
					ErrInvalidGraph, n.Name, next.Name)
			}
		}

		inStack[n] = false
		return nil
	}

	for _, n := range g.nodes {
		if !visited[n] {
			if err := visit(n); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkReachable verifies every node sits downstream of a source.
func (g *Graph) checkReachable() error {
	reachable := make(map[*Node]bool)

	var mark func(n *Node)
	mark = func(n *Node) {
		if reachable[n] {
			return
		}
		reachable[n] = true
		for _, l := range n.outputs {
			mark(l.Dst)
		}
	}

	hasSource := false
	for _, n := range g.nodes {
		if n.Filter.IsSource() {
			hasSource = true
			mark(n)
		}
	}
	if !hasSource {
		return fmt.Errorf("%w: graph has no source nodes", ErrInvalidGraph)
	}

	for _, n := range g.nodes {
		if !reachable[n] {
			return fmt.Errorf("%w: node '%s' is not reachable from any source",
				ErrInvalidGraph, n.Name)
		}
	}
	return nil
}
