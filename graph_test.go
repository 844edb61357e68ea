package gpf

import "testing"

func TestGraphValidate(t *testing.T) {
	type tc struct {
		graph   *Graph
		wantErr bool
	}

	tests := map[string]tc{
		"empty graph": {
			graph:   &Graph{ID: "g"},
			wantErr: true,
		},
		"single node": {
			graph:   &Graph{ID: "g", Nodes: []Node{{ID: "a"}}},
			wantErr: false,
		},
		"duplicate node id": {
			graph:   &Graph{ID: "g", Nodes: []Node{{ID: "a"}, {ID: "a"}}},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.graph.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTopoLevels(t *testing.T) {
	type tc struct {
		graph      *Graph
		wantLevels int
		wantErr    bool
	}

	tests := map[string]tc{
		"linear chain": {
			graph: &Graph{Nodes: []Node{
				{ID: "a"},
				{ID: "b", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "a"}}},
				{ID: "c", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "b"}}},
			}},
			wantLevels: 3,
		},
		"diamond": {
			graph: &Graph{Nodes: []Node{
				{ID: "a"},
				{ID: "b", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "a"}}},
				{ID: "c", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "a"}}},
				{ID: "d", Sources: []NodeSource{
					{SlotName: "a", SourceNodeID: "b"},
					{SlotName: "b", SourceNodeID: "c"},
				}},
			}},
			wantLevels: 3,
		},
		"missing source": {
			graph: &Graph{Nodes: []Node{
				{ID: "a", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "ghost"}}},
			}},
			wantErr: true,
		},
		"cycle": {
			graph: &Graph{Nodes: []Node{
				{ID: "a", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "b"}}},
				{ID: "b", Sources: []NodeSource{{SlotName: "input", SourceNodeID: "a"}}},
			}},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			levels, err := topoLevels(tt.graph)
			if (err != nil) != tt.wantErr {
				t.Fatalf("topoLevels() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(levels) != tt.wantLevels {
				t.Errorf("got %d levels, want %d", len(levels), tt.wantLevels)
			}
		})
	}
}

func TestConfigElementChild(t *testing.T) {
	var nilConfig *ConfigElement
	if got := nilConfig.Child("x"); got != nil {
		t.Errorf("nil.Child() = %v, want nil", got)
	}

	cfg := &ConfigElement{Children: []*ConfigElement{
		{Name: "Factor", Value: "1.5"},
		{Name: "Width", Value: "256"},
	}}
	if got := cfg.Child("Factor"); got == nil || got.Value != "1.5" {
		t.Errorf("Child(Factor) = %v, want Value 1.5", got)
	}
	if got := cfg.Child("missing"); got != nil {
		t.Errorf("Child(missing) = %v, want nil", got)
	}
}

func TestGraphNodeByID(t *testing.T) {
	g := &Graph{Nodes: []Node{{ID: "a"}, {ID: "b"}}}

	if n, ok := g.NodeByID("a"); !ok || n.ID != "a" {
		t.Errorf("NodeByID(a) = %v, %v", n, ok)
	}
	if _, ok := g.NodeByID("ghost"); ok {
		t.Errorf("NodeByID(ghost) ok = true, want false")
	}
}
