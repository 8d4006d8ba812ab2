// Package render draws dependency chains as node-link diagrams.
//
// Chains come in two textual forms: the flat "a#b#c" token form from yarn
// reason lists and the "a → b → c" arrow form from tree walks. Both are
// split into node sequences and merged into one directed graph, so chains
// sharing a prefix share nodes in the drawing.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"
)

const arrowSep = " → "

// ChainNodes splits a chain string into its node names. Arrow-form chains
// split on the arrow; flat chains split on "#". A chain without separators
// is a single node.
func ChainNodes(chain string) []string {
	if strings.Contains(chain, arrowSep) {
		return strings.Split(chain, arrowSep)
	}
	return strings.Split(chain, "#")
}

// ChainsToDOT converts chains into a Graphviz DOT digraph with the target
// package highlighted. Nodes and edges appearing in several chains are
// emitted once.
func ChainsToDOT(target string, chains []string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deps {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	seenNode := make(map[string]bool)
	seenEdge := make(map[string]bool)
	for _, chain := range chains {
		nodes := ChainNodes(chain)
		for i, n := range nodes {
			if n == "" {
				continue
			}
			if !seenNode[n] {
				seenNode[n] = true
				attrs := ""
				if n == target || strings.HasPrefix(n, target+"@") {
					attrs = ", fillcolor=lightcoral"
				}
				fmt.Fprintf(&buf, "  %q [label=%q%s];\n", n, n, attrs)
			}
			if i > 0 && nodes[i-1] != "" {
				key := nodes[i-1] + "\x00" + n
				if !seenEdge[key] {
					seenEdge[key] = true
					fmt.Fprintf(&buf, "  %q -> %q;\n", nodes[i-1], n)
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
