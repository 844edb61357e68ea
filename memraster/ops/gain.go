package ops

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/grindlemire/gpf"
	"github.com/grindlemire/gpf/memraster"
)

func init() {
	gpf.Register("Gain", func() gpf.Operator { return &Gain{Factor: 1.0} })
}

// Gain multiplies its single source band's pixel values by Factor,
// clamping to [0, 255]. It is the simplest possible single-source,
// single-band filter, used to exercise the default parameter injector
// (spec.md §4.4) and ordinary tile-pull recursion (spec.md §4.2).
type Gain struct {
	Factor float64 `gpf:"Factor"`

	source  gpf.Product
	product *memraster.Product
}

func (g *Gain) SetSourceProduct(slotName string, product gpf.Product) error {
	if slotName != "input" {
		return &unexpectedSourceError{Operator: "Gain", SlotName: slotName}
	}
	g.source = product
	return nil
}

func (g *Gain) Initialize() (gpf.Product, error) {
	if g.source == nil {
		return nil, fmt.Errorf("gain: no source product on slot \"input\"")
	}
	srcBand := g.source.Bands()[0]

	g.product = memraster.NewProduct(g.source.SceneWidth(), g.source.SceneHeight())
	g.product.AddBand("value", image.Pt(64, 64), func(ctx context.Context, tileX, tileY int) (*image.Gray, error) {
		raw, err := srcBand.Tile(ctx, tileX, tileY)
		if err != nil {
			return nil, err
		}
		src, ok := raw.(*image.Gray)
		if !ok {
			return nil, fmt.Errorf("gain: unexpected source raster type %T", raw)
		}
		out := image.NewGray(src.Bounds())
		for y := src.Bounds().Min.Y; y < src.Bounds().Max.Y; y++ {
			for x := src.Bounds().Min.X; x < src.Bounds().Max.X; x++ {
				v := float64(src.GrayAt(x, y).Y) * g.Factor
				out.SetGray(x, y, clampGray(v))
			}
		}
		return out, nil
	})
	return g.product, nil
}

func (g *Gain) Capabilities() gpf.Capabilities { return gpf.Capabilities{} }

func (g *Gain) Dispose() {}

func clampGray(v float64) color.Gray {
	switch {
	case v < 0:
		return color.Gray{Y: 0}
	case v > 255:
		return color.Gray{Y: 255}
	default:
		return color.Gray{Y: uint8(v)}
	}
}
