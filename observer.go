package gpf

import "image"

// Observer is the notification surface for graph- and tile-level
// lifecycle events (spec.md §6). Observers are registered before
// execution and must not be added while a graph is executing
// (spec.md §5's shared-resource policy); the [Engine] takes an immutable
// snapshot of the observer list at the start of each execution
// (spec.md §9's design note).
//
// Observers may be invoked from the goroutine that called
// [Engine.ExecuteGraph] and must not block indefinitely.
type Observer interface {
	GraphProcessingStarted(ctx *GraphContext)
	TileProcessingStarted(ctx *GraphContext, tile image.Rectangle)
	TileProcessingStopped(ctx *GraphContext, tile image.Rectangle)
	GraphProcessingStopped(ctx *GraphContext)
}

// observerList fires an event on every observer, in registration order.
type observerList []Observer

func (l observerList) fireStarted(ctx *GraphContext) {
	for _, o := range l {
		o.GraphProcessingStarted(ctx)
	}
}

func (l observerList) fireStopped(ctx *GraphContext) {
	for _, o := range l {
		o.GraphProcessingStopped(ctx)
	}
}

func (l observerList) fireTileStarted(ctx *GraphContext, tile image.Rectangle) {
	for _, o := range l {
		o.TileProcessingStarted(ctx, tile)
	}
}

func (l observerList) fireTileStopped(ctx *GraphContext, tile image.Rectangle) {
	for _, o := range l {
		o.TileProcessingStopped(ctx, tile)
	}
}
