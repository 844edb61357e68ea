package gpf

import (
	"strings"
	"testing"
)

func TestToDOTContainsNodesAndEdges(t *testing.T) {
	g := &Graph{ID: "demo", Nodes: []Node{
		{ID: "read", OperatorName: "Read"},
		{ID: "sink", OperatorName: "Sink", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "read"}}},
	}}

	dot := ToDOT(g)

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("dot = %q, want it to start with a digraph header", dot)
	}
	if !strings.Contains(dot, `"read" -> "sink"`) {
		t.Errorf("dot = %q, want an edge from read to sink", dot)
	}
	if !strings.Contains(dot, "lightgrey") {
		t.Errorf("dot = %q, want sink styled as an output node", dot)
	}
}
