package gpf

import "fmt"

// initDependencies is Initializer Phase 1 (spec.md §4.1): for every
// declared source, resolve it against the graph and increment the
// upstream node's reference count. After this completes, nodes with
// ReferenceCount == 0 are the output nodes.
func initDependencies(gc *GraphContext) error {
	for _, n := range gc.Graph.Nodes {
		nc := gc.NodeContext(n.ID)
		for _, src := range n.Sources {
			upstream := gc.NodeContext(src.SourceNodeID)
			if upstream == nil {
				return &MissingSourceError{NodeID: nc.Node.ID, SourceID: src.SourceNodeID}
			}
			upstream.ReferenceCount++
		}
	}
	return nil
}

// initOutputs is Initializer Phase 2 (spec.md §4.1): recursively
// initialize every output node (and, transitively, every node it
// depends on), then record it as an output node context.
//
// pm receives one sub-sink per output node, matching
// GraphProcessor.java's initOutput, which gives pm.beginTask(..., outputCount)
// and hands each node a SubProgressMonitor.create(pm, 1).
func initOutputs(gc *GraphContext, registry *OperatorRegistry, pm ProgressSink) error {
	var outputs []*NodeContext
	for _, n := range gc.Graph.Nodes {
		nc := gc.NodeContext(n.ID)
		if nc.IsOutput() {
			outputs = append(outputs, nc)
		}
	}

	pm.BeginTask("Creating output products", len(outputs))
	defer pm.Done()

	for _, nc := range outputs {
		if err := initNodeContext(gc, nc, registry, pm.SubSink(1)); err != nil {
			return err
		}
		gc.outputNodeContexts = append(gc.outputNodeContexts, nc)
	}
	return nil
}

// initNodeContext recursively initializes nc and every node it depends
// on (spec.md §4.1 step-by-step):
//
//  1. If nc is already initialized, return immediately — this makes the
//     walk idempotent when two output nodes share an upstream node.
//  2. Recursively initialize every declared source, then record its
//     target product under the declaring slot name.
//  3. Construct the operator, apply source products and parameters, and
//     obtain the target product.
//  4. Record nc at the front of the dispose order.
func initNodeContext(gc *GraphContext, nc *NodeContext, registry *OperatorRegistry, pm ProgressSink) error {
	if nc.Initialized {
		return nil
	}

	sources := nc.Node.Sources
	pm.BeginTask("Creating operator "+nc.Node.ID, len(sources)+1)
	defer pm.Done()

	for _, src := range sources {
		sourceNC := gc.NodeContext(src.SourceNodeID)
		if err := initNodeContext(gc, sourceNC, registry, pm.SubSink(1)); err != nil {
			return err
		}
		nc.SourceProductsBySlot[src.SlotName] = sourceNC.TargetProduct
	}

	if err := initOperatorContext(gc, nc, registry); err != nil {
		return err
	}
	pm.Worked(1)

	gc.pushInitialized(nc)
	nc.Initialized = true
	return nil
}

// initOperatorContext is the "Operator Context Initialization"
// collaborator from spec.md §4.1 step 3: it constructs the operator,
// wires source products, binds parameters, and obtains the target
// product.
func initOperatorContext(gc *GraphContext, nc *NodeContext, registry *OperatorRegistry) error {
	factory, ok := registry.Lookup(nc.Node.OperatorName)
	if !ok {
		return &OperatorInitializationFailedError{
			NodeID: nc.Node.ID,
			Cause:  fmt.Errorf("operator %q is not registered", nc.Node.OperatorName),
		}
	}
	op := factory()

	for _, src := range nc.Node.Sources {
		product := nc.SourceProductsBySlot[src.SlotName]
		if err := op.SetSourceProduct(src.SlotName, product); err != nil {
			return &OperatorInitializationFailedError{NodeID: nc.Node.ID, Cause: err}
		}
	}

	if err := injectParameters(nc, op); err != nil {
		return &OperatorInitializationFailedError{NodeID: nc.Node.ID, Cause: err}
	}

	target, err := op.Initialize()
	if err != nil {
		return &OperatorInitializationFailedError{NodeID: nc.Node.ID, Cause: err}
	}

	nc.Operator = op
	nc.TargetProduct = target
	return nil
}
