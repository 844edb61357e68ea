package gpf

import (
	"context"
	"image"
)

// runTileSchedule is the Tile Scheduler (spec.md §4.2). It computes the
// union of all output products' bounds, iterates a fixed tile grid in
// row-major order, and for each tile pulls exactly the bands that need
// it, honoring the compute-all-bands capability and cooperative
// cancellation.
//
// Known simplification, preserved from the original GraphProcessor (see
// DESIGN.md's Open Question decisions): every output product is driven
// against the same global tile grid, sized from tileSize; a product
// whose own bounds fall outside a given tile rectangle is simply
// skipped for that tile rather than driven against its own grid.
func runTileSchedule(ctx context.Context, gc *GraphContext, tileSize image.Point, pm ProgressSink) error {
	gc.observers.fireStarted(gc)
	defer gc.observers.fireStopped(gc)

	var union image.Rectangle
	for i, nc := range gc.outputNodeContexts {
		bounds := productBounds(nc.TargetProduct)
		if i == 0 {
			union = bounds
		} else {
			union = union.Union(bounds)
		}
	}

	numXTiles := ceilDiv(union.Dx(), tileSize.X)
	numYTiles := ceilDiv(union.Dy(), tileSize.Y)

	pm.BeginTask("Computing raster data", numXTiles*numYTiles)
	defer pm.Done()

	for tileY := 0; tileY < numYTiles; tileY++ {
		for tileX := 0; tileX < numXTiles; tileX++ {
			if pm.IsCanceled() {
				return nil
			}

			tile := image.Rect(
				tileX*tileSize.X,
				tileY*tileSize.Y,
				tileX*tileSize.X+tileSize.X,
				tileY*tileSize.Y+tileSize.Y,
			)

			gc.observers.fireTileStarted(gc, tile)

			for _, nc := range gc.outputNodeContexts {
				if !productBounds(nc.TargetProduct).Overlaps(tile) {
					continue
				}
				if err := pullTile(ctx, nc, tileX, tileY); err != nil {
					return err
				}
			}

			gc.observers.fireTileStopped(gc, tile)
			pm.Worked(1)
		}
	}

	return nil
}

// pullTile requests tile (tileX, tileY) from nc's target product. If the
// operator implements the compute-all-bands capability, a single
// request to the first band suffices (spec.md §4.2 step 4); otherwise
// every band is requested in order.
func pullTile(ctx context.Context, nc *NodeContext, tileX, tileY int) error {
	bands := nc.TargetProduct.Bands()
	if len(bands) == 0 {
		return nil
	}

	if nc.Operator.Capabilities().ComputeAllBands {
		if _, err := bands[0].Tile(ctx, tileX, tileY); err != nil {
			return &TileComputationFailedError{NodeID: nc.Node.ID, TileX: tileX, TileY: tileY, Cause: err}
		}
		return nil
	}

	for _, band := range bands {
		if _, err := band.Tile(ctx, tileX, tileY); err != nil {
			return &TileComputationFailedError{NodeID: nc.Node.ID, TileX: tileX, TileY: tileY, Cause: err}
		}
	}
	return nil
}

func productBounds(p Product) image.Rectangle {
	return image.Rect(0, 0, p.SceneWidth(), p.SceneHeight())
}

func ceilDiv(numerator, denominator int) int {
	if denominator <= 0 {
		return 0
	}
	if numerator <= 0 {
		return 0
	}
	return (numerator + denominator - 1) / denominator
}
