// Package ops is a small library of reference operators over
// [github.com/grindlemire/gpf/memraster] products, used by the demo CLI
// and by the engine's own test suite as stand-ins for the real
// image-processing operators this engine is agnostic to (spec.md §1).
package ops

import (
	"context"
	"image"
	"image/color"

	"github.com/grindlemire/gpf"
	"github.com/grindlemire/gpf/memraster"
)

func init() {
	gpf.Register("Read", func() gpf.Operator { return &Read{Width: 256, Height: 256, Value: 128} })
}

// Read synthesizes a constant-valued single-band raster of the
// configured scene size. It has no sources; it stands in for a decoder
// reading imagery from storage.
type Read struct {
	Width  int `gpf:"Width"`
	Height int `gpf:"Height"`
	Value  int `gpf:"Value"`

	product *memraster.Product
}

func (r *Read) SetSourceProduct(slotName string, product gpf.Product) error {
	return &unexpectedSourceError{Operator: "Read", SlotName: slotName}
}

func (r *Read) Initialize() (gpf.Product, error) {
	r.product = memraster.NewProduct(r.Width, r.Height)
	r.product.AddBand("value", image.Pt(64, 64), func(ctx context.Context, tileX, tileY int) (*image.Gray, error) {
		b := r.product.Bands()[0].(*memraster.Band)
		bounds := b.TileBounds(tileX, tileY)
		img := image.NewGray(bounds)
		fill(img, color.Gray{Y: uint8(r.Value)})
		return img, nil
	})
	return r.product, nil
}

func (r *Read) Capabilities() gpf.Capabilities { return gpf.Capabilities{} }

func (r *Read) Dispose() {}

func fill(img *image.Gray, c color.Gray) {
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
			img.SetGray(x, y, c)
		}
	}
}

type unexpectedSourceError struct {
	Operator string
	SlotName string
}

func (e *unexpectedSourceError) Error() string {
	return e.Operator + ": does not accept a source product on slot " + e.SlotName
}
