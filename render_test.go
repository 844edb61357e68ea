package gpf

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrintGraphEmptyGraph(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintGraph(&buf, &Graph{ID: "empty"}); err != nil {
		t.Fatalf("PrintGraph() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No nodes") {
		t.Errorf("output = %q, want a no-nodes message", buf.String())
	}
}

func TestPrintGraphContainsNodeIDs(t *testing.T) {
	g := &Graph{ID: "demo", Nodes: []Node{
		{ID: "read"},
		{ID: "sink", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "read"}}},
	}}

	var buf bytes.Buffer
	if err := PrintGraph(&buf, g); err != nil {
		t.Fatalf("PrintGraph() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "read") || !strings.Contains(out, "sink") {
		t.Errorf("output = %q, want it to contain both node ids", out)
	}
	// sink is unreferenced, so it is the output node and must carry the marker.
	if !strings.Contains(out, "sink*") {
		t.Errorf("output = %q, want sink marked as an output node", out)
	}
	if strings.Contains(out, "read*") {
		t.Errorf("output = %q, read is not an output node and must not be marked", out)
	}
}

func TestPrintGraphReportsCycle(t *testing.T) {
	g := &Graph{Nodes: []Node{
		{ID: "a", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "b"}}},
		{ID: "b", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "a"}}},
	}}
	var buf bytes.Buffer
	if err := PrintGraph(&buf, g); err == nil {
		t.Error("PrintGraph() error = nil, want a cycle error")
	}
}
