package gpf

import (
	"context"
	"image"

	"github.com/charmbracelet/log"
)

// DefaultTileSize is the tile grid size used when an Engine is created
// without an explicit override, matching the 64×64 default used
// throughout spec.md §8's worked examples.
var DefaultTileSize = image.Pt(64, 64)

// Engine executes processing graphs against an [OperatorRegistry]
// (spec.md's Graph Execution Engine, §1).
//
// Engine is the single-threaded, synchronous orchestrator described in
// spec.md §5: ExecuteGraph runs to completion on the calling goroutine.
// Parallelism, if any, lives below the tile-pull interface, inside a
// [Band] implementation's own tile computation.
type Engine struct {
	Registry *OperatorRegistry
	Logger   *log.Logger
	TileSize image.Point

	observers observerList
}

// NewEngine creates an Engine that resolves operator names against
// registry. Pass nil to use the global registry (see [Register]).
func NewEngine(registry *OperatorRegistry) *Engine {
	if registry == nil {
		registry = globalRegistry
	}
	return &Engine{
		Registry: registry,
		Logger:   log.Default(),
		TileSize: DefaultTileSize,
	}
}

// AddObserver registers an [Observer]. Per spec.md §5, observers must be
// registered before execution starts; the observer list is read-only
// during an execution (ExecuteGraph takes an immutable snapshot of it).
func (e *Engine) AddObserver(o Observer) {
	e.observers = append(e.observers, o)
}

// ExecuteGraph runs graph to completion: it creates a [GraphContext],
// drives the tile scheduler over every output product, and disposes the
// context, in that order, mirroring GraphProcessor.executeGraph's
// create/execute/dispose sequence. Disposal runs even if context
// creation or tile scheduling fails, so already-constructed operators
// are always released.
//
// pm receives the 10%/90% progress split spec.md §6 calls for: 10 units
// for context construction, 90 for tile iteration. Pass nil to use
// [NullProgress].
func (e *Engine) ExecuteGraph(ctx context.Context, g *Graph, pm ProgressSink) error {
	if pm == nil {
		pm = NullProgress{}
	}
	pm.BeginTask("Executing processing graph", 100)
	defer pm.Done()

	gc, err := e.CreateGraphContext(g, pm.SubSink(10))
	if gc != nil {
		defer e.DisposeGraphContext(gc)
	}
	if err != nil {
		return err
	}

	return runTileSchedule(ctx, gc, e.TileSize, pm.SubSink(90))
}

// CreateGraphContext validates g, resolves dependencies, rejects a
// cyclic graph, and recursively initializes every node reachable from an
// output node (spec.md §4.1). Once validation has passed it returns a
// non-nil, partially-initialized GraphContext even on error, so the
// caller can still dispose whatever was constructed before the failure
// (spec.md §4.1's failure note; §5's resource lifetime guarantee). If
// validation fails (empty graph, duplicate node id) it returns nil,
// since nothing has been constructed yet.
func (e *Engine) CreateGraphContext(g *Graph, pm ProgressSink) (*GraphContext, error) {
	if pm == nil {
		pm = NullProgress{}
	}
	pm.BeginTask("Creating processing graph context", 100)
	defer pm.Done()

	if err := g.validate(); err != nil {
		return nil, err
	}

	gc := newGraphContext(g, e.Logger, e.snapshotObservers())

	if err := initDependencies(gc); err != nil {
		return gc, err
	}
	if _, err := topoLevels(g); err != nil {
		return gc, err
	}
	pm.Worked(10)

	if err := initOutputs(gc, e.Registry, pm.SubSink(90)); err != nil {
		return gc, err
	}
	return gc, nil
}

// DisposeGraphContext releases every node context gc initialized, in
// strict reverse-of-initialization order (spec.md §4.3).
func (e *Engine) DisposeGraphContext(gc *GraphContext) {
	disposeGraphContext(gc)
}

// snapshotObservers takes an immutable copy of the registered observers,
// per spec.md §9's design note, so execution never iterates a list a
// concurrent AddObserver call could mutate.
func (e *Engine) snapshotObservers() observerList {
	cp := make(observerList, len(e.observers))
	copy(cp, e.observers)
	return cp
}
