package gpf

import "testing"

func TestGraphBuilder(t *testing.T) {
	b := NewGraphBuilder("demo")
	b.AddNode("read", "Read")
	b.AddNode("gain", "Gain")
	b.AddSource("gain", "input", "read")
	b.Configure("gain", &ConfigElement{Children: []*ConfigElement{{Name: "Factor", Value: "2.0"}}})

	g := b.Build()

	if g.ID != "demo" {
		t.Errorf("g.ID = %q, want demo", g.ID)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("len(g.Nodes) = %d, want 2", len(g.Nodes))
	}

	gain, ok := g.NodeByID("gain")
	if !ok {
		t.Fatal("NodeByID(gain) not found")
	}
	if len(gain.Sources) != 1 || gain.Sources[0].SourceNodeID != "read" {
		t.Errorf("gain.Sources = %v, want one source from read", gain.Sources)
	}
	if gain.Configuration == nil || gain.Configuration.Child("Factor").Value != "2.0" {
		t.Errorf("gain.Configuration = %v, want Factor=2.0", gain.Configuration)
	}
}

func TestGraphBuilderDuplicateNodePanics(t *testing.T) {
	b := NewGraphBuilder("demo")
	b.AddNode("a", "Read")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate node id")
		}
	}()
	b.AddNode("a", "Read")
}

func TestGraphBuilderAddSourceUnknownNodePanics(t *testing.T) {
	b := NewGraphBuilder("demo")

	defer func() {
		if recover() == nil {
			t.Error("expected panic on AddSource with unknown node id")
		}
	}()
	b.AddSource("ghost", "input", "read")
}

func TestSubgraphFor(t *testing.T) {
	g := &Graph{ID: "g", Nodes: []Node{
		{ID: "read"},
		{ID: "gainA", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "read"}}},
		{ID: "gainB", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "read"}}},
		{ID: "merge", Sources: []NodeSource{
			{SlotName: "a", SourceNodeID: "gainA"},
			{SlotName: "b", SourceNodeID: "gainB"},
		}},
		{ID: "unrelated"},
	}}

	sub, err := SubgraphFor(g, "gainA")
	if err != nil {
		t.Fatalf("SubgraphFor() error = %v", err)
	}
	if len(sub.Nodes) != 2 {
		t.Fatalf("len(sub.Nodes) = %d, want 2 (read, gainA)", len(sub.Nodes))
	}
	for _, want := range []string{"read", "gainA"} {
		if _, ok := sub.NodeByID(want); !ok {
			t.Errorf("subgraph missing expected node %q", want)
		}
	}
	if _, ok := sub.NodeByID("unrelated"); ok {
		t.Error("subgraph unexpectedly includes unrelated node")
	}
}

func TestSubgraphForUnknownTarget(t *testing.T) {
	g := &Graph{ID: "g", Nodes: []Node{{ID: "a"}}}
	if _, err := SubgraphFor(g, "ghost"); err == nil {
		t.Error("SubgraphFor(ghost) error = nil, want non-nil")
	}
}
