package gpf

import "context"

// Raster is the pixel data returned by a tile pull. The engine treats it
// as opaque per spec.md §6 and never inspects its contents; it exists
// only so that a pull can be observed to have happened.
type Raster = any

// Product presents a raster frame shared by an ordered set of Bands. It
// is produced by an [Operator] and consumed, by slot name, as the source
// product of downstream nodes.
type Product interface {
	SceneWidth() int
	SceneHeight() int
	Bands() []Band
	// Dispose releases resources held by the product. During teardown
	// it is called once for each node context whose target product it
	// is, after that node's operator's Dispose (spec.md §4.3); a product
	// passed through unchanged by a downstream operator (such as a Sink)
	// is therefore disposed more than once.
	Dispose()
}

// Band presents a single-channel, lazily tiled raster. A tile request
// must trigger computation of that tile if it is not already cached,
// which in turn may pull source tiles recursively (spec.md §4.2).
type Band interface {
	Tile(ctx context.Context, tileX, tileY int) (Raster, error)
}

// ParameterConverter lets an operator consume its raw [ConfigElement]
// directly instead of going through the default, schema-driven binder
// (spec.md §4.4's custom-parameter-conversion capability).
type ParameterConverter interface {
	SetParameterValues(op Operator, config *ConfigElement) error
}

// Capabilities is an explicit, tagged descriptor of the optional
// behaviors an [Operator] supports. spec.md §9 calls for modeling
// capability probing this way rather than with dynamic type assertions.
type Capabilities struct {
	// ComputeAllBands, when true, means a single tile request to any one
	// of the operator's bands computes that tile for every band
	// (spec.md §4.2 step 4, §6).
	ComputeAllBands bool

	// ParameterConverter, when non-nil, is used instead of the default
	// converter to bind configuration into the operator (spec.md §4.4).
	ParameterConverter ParameterConverter
}

// Operator is the external algorithmic unit that turns source products
// into a target product, one tile at a time. Operator implementations
// are out of scope for this engine (spec.md §1); it only requires this
// capability set.
type Operator interface {
	// SetSourceProduct is called once per declared source, before
	// Initialize, in the order the sources were declared on the Node.
	SetSourceProduct(slotName string, product Product) error

	// Initialize is called once, after source products and parameters
	// have been applied, and must return the operator's target product.
	Initialize() (Product, error)

	// Capabilities reports this operator's optional behaviors. An
	// operator with no optional behaviors returns the zero value.
	Capabilities() Capabilities

	// Dispose is called exactly once during teardown.
	Dispose()
}

// OperatorFactory constructs a fresh Operator instance for a node. It is
// the registration unit for [Register] and [Lookup].
type OperatorFactory func() Operator
