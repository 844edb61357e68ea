package gpf

import "fmt"

// disposeGraphContext is the Disposer (spec.md §4.3). It pops the
// GraphContext's init-order record front-to-back — which, because
// initialization always prepends, yields the strict reverse of
// completed-initialization order — disposing each node's operator and
// then its target product. Disposal is best-effort: a panic or
// otherwise-reported failure from one context does not stop the
// traversal, and is logged at warning level and swallowed
// (spec.md §7, §4.3).
func disposeGraphContext(gc *GraphContext) {
	for _, nc := range gc.initOrder {
		disposeNodeContext(gc, nc)
	}
	gc.initOrder = nil
}

func disposeNodeContext(gc *GraphContext, nc *NodeContext) {
	if nc.Operator != nil {
		if err := safeDispose(nc.Operator.Dispose); err != nil {
			gc.Logger.Warn("operator dispose failed", "node", nc.Node.ID, "error", err)
		}
	}
	if nc.TargetProduct != nil {
		if err := safeDispose(nc.TargetProduct.Dispose); err != nil {
			gc.Logger.Warn("target product dispose failed", "node", nc.Node.ID, "error", err)
		}
	}
}

// safeDispose runs f, converting a panic into an error so one
// misbehaving operator can't abort disposal of the rest of the graph.
func safeDispose(f func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicError{r}
		}
	}()
	f()
	return nil
}

type panicError struct{ v any }

func (p panicError) Error() string { return fmt.Sprintf("panic during dispose: %v", p.v) }
