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
	gpf.Register("Merge", func() gpf.Operator { return &Merge{} })
}

// Merge averages two same-sized source bands, "a" and "b", into a
// single output band. It declares the ComputeAllBands capability
// (spec.md §4.2 step 4, §9's capability-descriptor model) to exercise
// the single-tile-request-computes-every-band shortcut, even though it
// only produces one band itself.
type Merge struct {
	a, b    gpf.Product
	product *memraster.Product
}

func (m *Merge) SetSourceProduct(slotName string, product gpf.Product) error {
	switch slotName {
	case "a":
		m.a = product
	case "b":
		m.b = product
	default:
		return &unexpectedSourceError{Operator: "Merge", SlotName: slotName}
	}
	return nil
}

func (m *Merge) Initialize() (gpf.Product, error) {
	if m.a == nil || m.b == nil {
		return nil, fmt.Errorf("merge: requires source products on both slots \"a\" and \"b\"")
	}
	if m.a.SceneWidth() != m.b.SceneWidth() || m.a.SceneHeight() != m.b.SceneHeight() {
		return nil, fmt.Errorf("merge: source scene sizes differ: %dx%d vs %dx%d",
			m.a.SceneWidth(), m.a.SceneHeight(), m.b.SceneWidth(), m.b.SceneHeight())
	}
	aBand, bBand := m.a.Bands()[0], m.b.Bands()[0]

	m.product = memraster.NewProduct(m.a.SceneWidth(), m.a.SceneHeight())
	m.product.AddBand("merged", image.Pt(64, 64), func(ctx context.Context, tileX, tileY int) (*image.Gray, error) {
		rawA, err := aBand.Tile(ctx, tileX, tileY)
		if err != nil {
			return nil, err
		}
		rawB, err := bBand.Tile(ctx, tileX, tileY)
		if err != nil {
			return nil, err
		}
		imgA, ok := rawA.(*image.Gray)
		if !ok {
			return nil, fmt.Errorf("merge: unexpected source raster type %T", rawA)
		}
		imgB, ok := rawB.(*image.Gray)
		if !ok {
			return nil, fmt.Errorf("merge: unexpected source raster type %T", rawB)
		}
		out := image.NewGray(imgA.Bounds())
		for y := imgA.Bounds().Min.Y; y < imgA.Bounds().Max.Y; y++ {
			for x := imgA.Bounds().Min.X; x < imgA.Bounds().Max.X; x++ {
				avg := (int(imgA.GrayAt(x, y).Y) + int(imgB.GrayAt(x, y).Y)) / 2
				out.SetGray(x, y, color.Gray{Y: uint8(avg)})
			}
		}
		return out, nil
	})
	return m.product, nil
}

func (m *Merge) Capabilities() gpf.Capabilities {
	return gpf.Capabilities{ComputeAllBands: true}
}

func (m *Merge) Dispose() {}
