package gpf

import (
	"github.com/charmbracelet/log"
)

// NodeContext is the runtime record for a single [Node] during one graph
// execution (spec.md §3).
//
// Initialized transitions false→true exactly once, and only after every
// entry in SourceProductsBySlot for every declared source has been
// populated (spec.md §3's invariant). It is mutated only by the
// Initializer (initializer.go); once execution begins it is read-only.
type NodeContext struct {
	Node Node

	Operator      Operator
	TargetProduct Product

	// ReferenceCount is the number of downstream nodes that declare this
	// node as a source. A node with ReferenceCount == 0 after dependency
	// resolution is an output node (spec.md §3, §4.1).
	ReferenceCount int

	Initialized bool

	// SourceProductsBySlot maps a declared source's slot name to the
	// target product of the upstream node feeding it.
	SourceProductsBySlot map[string]Product
}

// IsOutput reports whether this node is unreferenced by any other node,
// i.e. a sink of the graph's DAG (spec.md §3, "Output Node").
func (nc *NodeContext) IsOutput() bool { return nc.ReferenceCount == 0 }

// GraphContext is the collection of [NodeContext]s produced by the
// Initializer (initializer.go) from a [Graph] (spec.md §3).
type GraphContext struct {
	Graph *Graph
	Logger *log.Logger

	nodeContextsByID map[string]*NodeContext

	// initOrder records node contexts in the order they completed
	// initialization, with the most recently initialized node at index
	// 0. Disposal (disposer.go) walks it front-to-back, which yields a
	// strict reverse-of-initialization order without needing a mutable
	// owning-pointer graph (spec.md §9's design note).
	initOrder []*NodeContext

	outputNodeContexts []*NodeContext

	observers observerList
}

// newGraphContext allocates a GraphContext with one uninitialized
// NodeContext per node in g, per spec.md §4.1's stated Initializer input.
func newGraphContext(g *Graph, logger *log.Logger, observers observerList) *GraphContext {
	if logger == nil {
		logger = log.Default()
	}
	gc := &GraphContext{
		Graph:            g,
		Logger:           logger,
		nodeContextsByID: make(map[string]*NodeContext, len(g.Nodes)),
		observers:        observers,
	}
	for _, n := range g.Nodes {
		gc.nodeContextsByID[n.ID] = &NodeContext{
			Node:                 n,
			SourceProductsBySlot: make(map[string]Product, len(n.Sources)),
		}
	}
	return gc
}

// NodeContext returns the runtime context for the given node id, or nil
// if no such node exists in this graph.
func (gc *GraphContext) NodeContext(nodeID string) *NodeContext {
	return gc.nodeContextsByID[nodeID]
}

// OutputNodeContexts returns the node contexts whose target products are
// not consumed by any other node (spec.md §3's "output node" set),
// established after the Initializer's dependency-resolution phase.
func (gc *GraphContext) OutputNodeContexts() []*NodeContext {
	return gc.outputNodeContexts
}

// pushInitialized records nc as having just completed initialization, at
// the front of the dispose order.
func (gc *GraphContext) pushInitialized(nc *NodeContext) {
	gc.initOrder = append([]*NodeContext{nc}, gc.initOrder...)
}
