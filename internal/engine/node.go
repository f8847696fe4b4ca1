package engine

import "github.com/Xala-Technologies/Xaheen-platform-sub006/internal/component"

// nodeState tracks a node through depth-first expansion. A node on the
// DFS stack is visiting; meeting it again from below is a cycle.
type nodeState int

const (
	statePending nodeState = iota
	stateVisiting
	stateResolved
)

func (s nodeState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateVisiting:
		return "visiting"
	case stateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Node is one resolved component in the dependency graph. Nodes exist only
// for the duration of a resolution call.
type Node struct {
	Descriptor component.Descriptor

	// ResolvedDeps are the requirement edges whose target made it into
	// the graph. Filled in a link pass after expansion completes, so an
	// edge reaching a node through a later path still counts.
	ResolvedDeps []component.Key

	// Requested marks components named in the original selection.
	Requested bool
	// Required marks components reachable from the selection through
	// required edges only. A component pulled in solely through optional
	// edges stays non-required for failure classification.
	Required bool
	// Order is the index at which the component first entered the graph,
	// used as the deterministic planning tie-break.
	Order int

	state nodeState
}

// Graph is the dependency graph produced by expansion. It is private to
// one resolution call and never shared between calls.
type Graph struct {
	nodes map[component.Key]*Node
	order []component.Key

	// missing holds keys the store could not serve; they were diagnosed
	// during expansion and must not be re-reported by validation.
	missing []component.Key
	// excluded holds keys whose condition evaluated false.
	excluded map[component.Key]bool
}

func newGraph() *Graph {
	return &Graph{
		nodes:    make(map[component.Key]*Node),
		excluded: make(map[component.Key]bool),
	}
}

// Node returns the graph node for key, if present.
func (g *Graph) Node(key component.Key) (*Node, bool) {
	n, ok := g.nodes[key]
	return n, ok
}

// Keys returns all node keys in first-appearance order.
func (g *Graph) Keys() []component.Key {
	out := make([]component.Key, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Missing returns the keys the store could not serve during expansion.
func (g *Graph) Missing() []component.Key {
	out := make([]component.Key, len(g.missing))
	copy(out, g.missing)
	return out
}

func (g *Graph) isMissing(key component.Key) bool {
	for _, k := range g.missing {
		if k == key {
			return true
		}
	}
	return false
}
