// Package graph computes a dependency-safe instantiation order for a batch
// of registrations against an existing registry. It is the ordering core of
// the resolver: depth-first placement with an explicit in-progress path, so
// cycle and missing-dependency failures report the exact identifier chain
// that led to them.
package graph

// Node is one batch entry: the identifier it produces and the identifiers
// it needs, in declared order.
type Node struct {
	ID    string
	Needs []string
}

// Plan returns indices into nodes in a valid instantiation order: every
// node appears after all nodes producing its needs, skipping needs already
// satisfied by the base registry.
//
// present reports whether an identifier is already in the base registry.
// Needs satisfied by the base are never traversed; needs produced within
// the batch are placed first, recursively. A need that is neither present
// nor produced fails with a MissingDependencyError; a need that reappears
// on its own resolution path fails with a CircularDependencyError. Both
// carry the identifier chain in path order.
//
// The only ordering guarantee is topological validity. The relative order
// of independent nodes follows their batch order.
func Plan(present func(id string) bool, nodes []Node) ([]int, error) {
	p := &planner{
		present:  present,
		nodes:    nodes,
		producer: make(map[string]int, len(nodes)),
		placed:   make([]bool, len(nodes)),
		onPath:   make(map[string]bool, len(nodes)),
		order:    make([]int, 0, len(nodes)),
	}

	for i, n := range nodes {
		p.producer[n.ID] = i
	}

	for i := range nodes {
		if err := p.place(i); err != nil {
			return nil, err
		}
	}

	return p.order, nil
}

type planner struct {
	present  func(id string) bool
	nodes    []Node
	producer map[string]int

	placed []bool
	path   []string // identifiers currently being placed, in order
	onPath map[string]bool
	order  []int
}

// place appends node i to the order after recursively placing the
// producers of its unsatisfied needs. Placement is idempotent per node.
func (p *planner) place(i int) error {
	if p.placed[i] {
		return nil
	}

	n := p.nodes[i]
	p.path = append(p.path, n.ID)
	p.onPath[n.ID] = true

	for _, need := range n.Needs {
		if p.present(need) {
			continue
		}

		if p.onPath[need] {
			return CircularDependencyError{Chain: p.chainTo(need)}
		}

		j, ok := p.producer[need]
		if !ok {
			return MissingDependencyError{Chain: p.chainTo(need)}
		}

		if err := p.place(j); err != nil {
			return err
		}
	}

	p.path = p.path[:len(p.path)-1]
	delete(p.onPath, n.ID)

	p.placed[i] = true
	p.order = append(p.order, i)
	return nil
}

// chainTo copies the current path and closes it with the failing
// identifier. The copy matters: the path slice keeps growing after the
// error is built.
func (p *planner) chainTo(id string) []string {
	chain := make([]string, 0, len(p.path)+1)
	chain = append(chain, p.path...)
	chain = append(chain, id)
	return chain
}
