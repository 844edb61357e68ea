package gpf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT renders g as a Graphviz DOT digraph, with edges drawn from
// upstream source to downstream consumer. Output nodes (spec.md §3's
// unreferenced sinks) are filled grey to distinguish them from
// intermediate nodes.
func ToDOT(g *Graph) string {
	referenced := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		for _, s := range n.Sources {
			referenced[s.SourceNodeID] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n))}
		if !referenced[n.ID] {
			attrs = append(attrs, "style=\"rounded,filled\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range g.Nodes {
		for _, s := range n.Sources {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", s.SourceNodeID, n.ID, s.SlotName)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(n Node) string {
	return n.ID + "\n" + n.OperatorName
}

// RenderSVG renders a DOT graph produced by [ToDOT] to SVG using
// Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("gpf: init graphviz: %w", err)
	}
	defer gv.Close()

	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("gpf: parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("gpf: render SVG: %w", err)
	}
	return buf.Bytes(), nil
}
