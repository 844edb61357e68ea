package gpf

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// noopLogger returns a logger that discards everything it's given, for
// tests that need a non-nil *log.Logger but don't care about output.
func noopLogger() *log.Logger {
	return log.New(io.Discard)
}

// fakeBand is a minimal [Band] that records every tile pulled against
// it, for assertions about which tiles the scheduler actually visited.
type fakeBand struct {
	pulled  []image2D
	failAt  image2D
	failErr error
}

type image2D struct{ x, y int }

func (b *fakeBand) Tile(ctx context.Context, tileX, tileY int) (Raster, error) {
	pt := image2D{tileX, tileY}
	if b.failErr != nil && pt == b.failAt {
		return nil, b.failErr
	}
	b.pulled = append(b.pulled, pt)
	return pt, nil
}

// fakeProduct is a minimal [Product] with a fixed scene size and a
// fixed set of bands.
type fakeProduct struct {
	width, height int
	bands         []Band
	disposeCount  int
}

func (p *fakeProduct) SceneWidth() int  { return p.width }
func (p *fakeProduct) SceneHeight() int { return p.height }
func (p *fakeProduct) Bands() []Band    { return p.bands }
func (p *fakeProduct) Dispose()         { p.disposeCount++ }

// fakeOperator is a minimal [Operator] whose behavior is entirely
// configured by its fields, used to drive the initializer, scheduler,
// and disposer through specific scenarios without a real raster
// backend.
type fakeOperator struct {
	wantSlots    []string
	sources      map[string]Product
	setSourceErr error

	initProduct *fakeProduct
	initErr     error

	caps Capabilities

	disposeCount int
	initCount    int
}

func (o *fakeOperator) SetSourceProduct(slotName string, product Product) error {
	if o.setSourceErr != nil {
		return o.setSourceErr
	}
	if o.sources == nil {
		o.sources = make(map[string]Product)
	}
	o.sources[slotName] = product
	return nil
}

func (o *fakeOperator) Initialize() (Product, error) {
	o.initCount++
	if o.initErr != nil {
		return nil, o.initErr
	}
	if o.initProduct == nil {
		return nil, fmt.Errorf("fakeOperator: no product configured")
	}
	return o.initProduct, nil
}

func (o *fakeOperator) Capabilities() Capabilities { return o.caps }

func (o *fakeOperator) Dispose() { o.disposeCount++ }

// newSingleBandProduct builds a fakeProduct with one band of the given
// scene size, tracking every tile pulled on that band.
func newSingleBandProduct(width, height int) (*fakeProduct, *fakeBand) {
	b := &fakeBand{}
	return &fakeProduct{width: width, height: height, bands: []Band{b}}, b
}
