package memraster

import (
	"context"
	"fmt"
	"image"

	"github.com/grindlemire/gpf"
)

// ComputeFunc computes one tile's worth of pixel data for a band. tileX
// and tileY are tile grid coordinates, not pixel coordinates.
type ComputeFunc func(ctx context.Context, tileX, tileY int) (*image.Gray, error)

// Product is a reference [gpf.Product] holding an in-memory scene made
// up of one or more [Band]s, each with its own tile size and compute
// function.
type Product struct {
	width, height int
	bands         []*Band
	disposed      bool
}

// NewProduct creates an empty product of the given scene dimensions.
func NewProduct(width, height int) *Product {
	return &Product{width: width, height: height}
}

// AddBand attaches a new band to p, computed tile-by-tile via compute
// and cached at tileSize granularity. Returns the band so callers can
// keep a typed handle alongside the gpf.Product-facing view.
func (p *Product) AddBand(name string, tileSize image.Point, compute ComputeFunc) *Band {
	b := &Band{
		name:     name,
		width:    p.width,
		height:   p.height,
		tileSize: tileSize,
		cache:    newTileCache(),
		compute:  compute,
	}
	p.bands = append(p.bands, b)
	return b
}

func (p *Product) SceneWidth() int  { return p.width }
func (p *Product) SceneHeight() int { return p.height }

func (p *Product) Bands() []gpf.Band {
	bs := make([]gpf.Band, len(p.bands))
	for i, b := range p.bands {
		bs[i] = b
	}
	return bs
}

// Dispose marks the product disposed and clears every band's tile
// cache. A tile requested after Dispose is computed again.
func (p *Product) Dispose() {
	p.disposed = true
	for _, b := range p.bands {
		b.cache.clear()
	}
}

// Band is a reference [gpf.Band]: pixel data is computed lazily, one
// tile at a time, on first request, and memoized so a later pull for
// the same tile coordinate is a cache hit.
type Band struct {
	name          string
	width, height int
	tileSize      image.Point
	cache         *tileCache
	compute       ComputeFunc
}

// Name returns the band's name, as supplied to [Product.AddBand].
func (b *Band) Name() string { return b.name }

// Tile returns the pixel data for the tile at (tileX, tileY), computing
// and caching it on first request.
func (b *Band) Tile(ctx context.Context, tileX, tileY int) (gpf.Raster, error) {
	if img, ok := b.cache.get(tileX, tileY); ok {
		return img, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := b.compute(ctx, tileX, tileY)
	if err != nil {
		return nil, fmt.Errorf("memraster: band %q tile (%d,%d): %w", b.name, tileX, tileY, err)
	}
	b.cache.set(tileX, tileY, img)
	return img, nil
}

// TileBounds returns the pixel-space rectangle covered by tile
// (tileX, tileY), clipped to the band's scene bounds.
func (b *Band) TileBounds(tileX, tileY int) image.Rectangle {
	r := image.Rect(
		tileX*b.tileSize.X, tileY*b.tileSize.Y,
		(tileX+1)*b.tileSize.X, (tileY+1)*b.tileSize.Y,
	)
	return r.Intersect(image.Rect(0, 0, b.width, b.height))
}
