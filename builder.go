package gpf

import "fmt"

// GraphBuilder assembles a [Graph] programmatically: node ids, operator
// names, source wiring, and per-node configuration. It exists because
// document parsing (XML, or anything else) is explicitly out of scope
// for this engine (spec.md §1); callers that already have an in-memory
// graph don't need it, but tests, demos, and any caller constructing a
// graph from something other than a document can use it instead of
// hand-assembling []Node/[]NodeSource slices.
type GraphBuilder struct {
	graph Graph
	byID  map[string]int
}

// NewGraphBuilder starts a builder for a graph with the given id.
func NewGraphBuilder(id string) *GraphBuilder {
	return &GraphBuilder{graph: Graph{ID: id}, byID: make(map[string]int)}
}

// AddNode declares a node instantiating the named operator. Panics if
// nodeID was already added, mirroring [Register]'s duplicate-name panic
// for the same reason: a colliding id is a programming error in the
// caller, not a runtime condition to recover from.
func (b *GraphBuilder) AddNode(nodeID, operatorName string) *GraphBuilder {
	if _, exists := b.byID[nodeID]; exists {
		panic("gpf: duplicate node id: " + nodeID)
	}
	b.byID[nodeID] = len(b.graph.Nodes)
	b.graph.Nodes = append(b.graph.Nodes, Node{ID: nodeID, OperatorName: operatorName})
	return b
}

// AddSource wires sourceNodeID into nodeID's named input slot. AddNode
// must have been called for nodeID first; sourceNodeID is resolved
// later, by the Initializer, so it may be added before or after its own
// AddNode call.
func (b *GraphBuilder) AddSource(nodeID, slotName, sourceNodeID string) *GraphBuilder {
	idx, ok := b.byID[nodeID]
	if !ok {
		panic("gpf: AddSource: unknown node id: " + nodeID)
	}
	b.graph.Nodes[idx].Sources = append(b.graph.Nodes[idx].Sources, NodeSource{
		SlotName:     slotName,
		SourceNodeID: sourceNodeID,
	})
	return b
}

// Configure attaches a configuration tree to nodeID.
func (b *GraphBuilder) Configure(nodeID string, config *ConfigElement) *GraphBuilder {
	idx, ok := b.byID[nodeID]
	if !ok {
		panic("gpf: Configure: unknown node id: " + nodeID)
	}
	b.graph.Nodes[idx].Configuration = config
	return b
}

// Build returns the assembled graph.
func (b *GraphBuilder) Build() *Graph {
	g := b.graph
	g.Nodes = append([]Node(nil), b.graph.Nodes...)
	return &g
}

// SubgraphFor returns the transitive closure of g needed to compute the
// given target node ids: every target, plus every node reachable from a
// target by following sources backward. The result still needs to go
// through [Engine.CreateGraphContext] for dependency resolution and
// reference counting — SubgraphFor just trims the node set up front, the
// same way the teacher's Builder.BuildFor trims a node catalog down to a
// requested subgraph before handing it to an Engine.
func SubgraphFor(g *Graph, targetNodeIDs ...string) (*Graph, error) {
	needed := make(map[string]Node)

	var resolve func(id string) error
	resolve = func(id string) error {
		if _, already := needed[id]; already {
			return nil
		}
		n, ok := g.NodeByID(id)
		if !ok {
			return fmt.Errorf("gpf: unknown node: %s", id)
		}
		needed[id] = n
		for _, src := range n.Sources {
			if err := resolve(src.SourceNodeID); err != nil {
				return err
			}
		}
		return nil
	}

	for _, id := range targetNodeIDs {
		if err := resolve(id); err != nil {
			return nil, err
		}
	}

	sub := &Graph{ID: g.ID, Version: g.Version}
	for _, n := range g.Nodes {
		if _, ok := needed[n.ID]; ok {
			sub.Nodes = append(sub.Nodes, n)
		}
	}
	return sub, nil
}
