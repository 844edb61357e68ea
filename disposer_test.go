package gpf

import "testing"

func TestDisposeGraphContextReverseOrder(t *testing.T) {
	var disposeLog []string

	newOp := func(id string) *fakeOperator {
		return &fakeOperator{}
	}

	a := &NodeContext{Node: Node{ID: "a"}, Operator: newOp("a"), TargetProduct: &loggingProduct{id: "a", log: &disposeLog}}
	b := &NodeContext{Node: Node{ID: "b"}, Operator: newOp("b"), TargetProduct: &loggingProduct{id: "b", log: &disposeLog}}
	c := &NodeContext{Node: Node{ID: "c"}, Operator: newOp("c"), TargetProduct: &loggingProduct{id: "c", log: &disposeLog}}

	gc := &GraphContext{
		Graph:            &Graph{ID: "g"},
		Logger:           nil,
		nodeContextsByID: map[string]*NodeContext{"a": a, "b": b, "c": c},
	}
	gc.pushInitialized(a) // a finished first
	gc.pushInitialized(b)
	gc.pushInitialized(c) // c finished last

	disposeGraphContext(gc)

	want := []string{"c", "b", "a"}
	if len(disposeLog) != len(want) {
		t.Fatalf("disposeLog = %v, want %v", disposeLog, want)
	}
	for i, id := range want {
		if disposeLog[i] != id {
			t.Errorf("disposeLog[%d] = %q, want %q", i, disposeLog[i], id)
		}
	}
	if gc.initOrder != nil {
		t.Errorf("initOrder = %v, want nil after dispose", gc.initOrder)
	}
}

func TestDisposeNodeContextSwallowsPanic(t *testing.T) {
	nc := &NodeContext{
		Node:     Node{ID: "a"},
		Operator: &panickingOperator{},
	}
	gc := &GraphContext{Logger: noopLogger()}

	// Must not panic.
	disposeNodeContext(gc, nc)
}

// loggingProduct records its own id to a shared log on Dispose, used to
// observe disposal order without inspecting internal fields directly.
type loggingProduct struct {
	id  string
	log *[]string
}

func (p *loggingProduct) SceneWidth() int  { return 0 }
func (p *loggingProduct) SceneHeight() int { return 0 }
func (p *loggingProduct) Bands() []Band    { return nil }
func (p *loggingProduct) Dispose()         { *p.log = append(*p.log, p.id) }

type panickingOperator struct{}

func (panickingOperator) SetSourceProduct(string, Product) error { return nil }
func (panickingOperator) Initialize() (Product, error)            { return nil, nil }
func (panickingOperator) Capabilities() Capabilities              { return Capabilities{} }
func (panickingOperator) Dispose()                                { panic("boom") }
