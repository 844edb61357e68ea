package ops

import (
	"fmt"

	"github.com/grindlemire/gpf"
)

func init() {
	gpf.Register("Sink", func() gpf.Operator { return &Sink{} })
}

// Sink passes its single source product through unchanged. It exists
// so a graph's terminal output nodes can be plain pass-throughs rather
// than every output-producing operator also needing to be a real
// terminal writer; a graph with no explicit Sink node simply treats its
// unreferenced nodes as outputs instead (spec.md §3).
type Sink struct {
	source gpf.Product
}

func (s *Sink) SetSourceProduct(slotName string, product gpf.Product) error {
	if slotName != "input" {
		return &unexpectedSourceError{Operator: "Sink", SlotName: slotName}
	}
	s.source = product
	return nil
}

func (s *Sink) Initialize() (gpf.Product, error) {
	if s.source == nil {
		return nil, fmt.Errorf("sink: no source product on slot \"input\"")
	}
	return s.source, nil
}

func (s *Sink) Capabilities() gpf.Capabilities { return gpf.Capabilities{} }

func (s *Sink) Dispose() {}
