// Package dot emits Graphviz DOT text for a resolved history graph.
//
// Emission is pure (no side effects beyond the returned string) and
// deterministic: branches are written in lane order and commits in capture
// insertion order, so two runs over an unchanged graph produce byte-identical
// text. Layout is entirely the renderer's problem.
package dot

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/dotgit-tools/gitgraph/pkg/history"
)

// Node fill colors for special commits.
const (
	colorMerge  = "cornsilk2"
	colorRevert = "azure4"
)

// Options configures DOT emission.
type Options struct {
	// Strict emits a `strict digraph`, letting Graphviz drop duplicate edges.
	Strict bool
	// Branches restricts the output to the named branches; empty means all.
	Branches []string
}

// Emit walks the graph and produces the DOT description: one node statement
// per visible commit, one edge statement per resolved edge between visible
// commits (direct solid, indirect dashed), plus cherry-pick and revert
// annotation edges.
func Emit(g *history.Graph, lanes history.Lanes, opts Options) string {
	e := &emitter{g: g, lanes: lanes, opts: opts, emitted: make(map[string]bool)}
	var buf bytes.Buffer

	e.head(&buf)
	e.title(&buf)
	e.branches(&buf)
	e.loose(&buf)
	e.edges(&buf)
	buf.WriteString("}\n")

	return buf.String()
}

type emitter struct {
	g       *history.Graph
	lanes   history.Lanes
	opts    Options
	emitted map[string]bool
}

// visible reports whether a commit survives the branch filter. Boundary
// commits are visible whenever any visible child references them.
func (e *emitter) visible(c *history.Commit) bool {
	if len(e.opts.Branches) == 0 {
		return true
	}
	if c.IsBoundary() {
		for _, child := range e.g.Children(c.Hash) {
			if cc, ok := e.g.Commit(child); ok && !cc.IsBoundary() && e.visible(cc) {
				return true
			}
		}
		return false
	}
	return slices.Contains(e.opts.Branches, c.Branch)
}

func (e *emitter) head(buf *bytes.Buffer) {
	if e.opts.Strict {
		buf.WriteString("strict ")
	}
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  splines=\"line\";\n")
	buf.WriteString("  graph [compound=false,sep=1,nodesep=\"0.3\",ranksep=\"0.3\"];\n")
	buf.WriteString("  node [shape=box];\n")
	buf.WriteString("\n")
}

func (e *emitter) title(buf *bytes.Buffer) {
	buf.WriteString("  labelloc=\"t\";\n")
	buf.WriteString("  fontsize=36;\n")
	fmt.Fprintf(buf, "  label=\"Current branch: %s\\n\";\n", e.g.CurrentBranch)
	buf.WriteString("\n")
}

// branches writes one filled cluster per branch lane holding its commits.
func (e *emitter) branches(buf *bytes.Buffer) {
	for _, name := range e.lanes.Branches() {
		if len(e.opts.Branches) > 0 && !slices.Contains(e.opts.Branches, name) {
			continue
		}

		var members []*history.Commit
		for _, c := range e.g.Commits() {
			if !c.IsBoundary() && c.Branch == name {
				members = append(members, c)
			}
		}
		if len(members) == 0 {
			continue
		}

		fmt.Fprintf(buf, "  subgraph \"cluster_%s\" {\n", name)
		buf.WriteString("    style=filled;\n")
		fmt.Fprintf(buf, "    color=%s;\n", e.lanes.Color(name))
		fmt.Fprintf(buf, "    label=\"%s\";\n", name)
		buf.WriteString("    labelloc=\"b\";\n")
		buf.WriteString("    fontsize=36;\n")
		for _, c := range members {
			e.node(buf, c, "    ")
		}
		buf.WriteString("  }\n")
	}
	buf.WriteString("\n")
}

// loose writes visible commits that belong to no branch cluster, and the
// boundary sentinels referenced by visible commits.
func (e *emitter) loose(buf *bytes.Buffer) {
	for _, c := range e.g.Commits() {
		if !e.emitted[c.Hash] && e.visible(c) {
			e.node(buf, c, "  ")
		}
	}
	buf.WriteString("\n")
}

func (e *emitter) node(buf *bytes.Buffer, c *history.Commit, indent string) {
	e.emitted[c.Hash] = true

	if c.IsBoundary() {
		fmt.Fprintf(buf, "%s%q [label=\"%s…\", shape=ellipse, style=dashed];\n", indent, c.Hash, c.ShortHash)
		return
	}

	fill := ""
	switch {
	case c.Revert != "":
		fill = colorRevert
	case c.IsMerge():
		fill = colorMerge
	}

	if fill != "" {
		fmt.Fprintf(buf, "%s%q [label=%s, fontsize=16, style=filled, fillcolor=%q];\n", indent, c.Hash, commitLabel(c), fill)
	} else {
		fmt.Fprintf(buf, "%s%q [label=%s, fontsize=16];\n", indent, c.Hash, commitLabel(c))
	}
}

// edges writes parent links (bottom-up, so parent -> child with rankdir=BT),
// then cherry-pick and revert annotations.
func (e *emitter) edges(buf *bytes.Buffer) {
	for _, edge := range e.g.Edges() {
		child, _ := e.g.Commit(edge.Child)
		parent, _ := e.g.Commit(edge.Parent)
		if child == nil || parent == nil || !e.emitted[child.Hash] || !e.emitted[parent.Hash] {
			continue
		}
		switch edge.Kind {
		case history.EdgeIndirect:
			fmt.Fprintf(buf, "  %q -> %q [style=dashed];\n", edge.Parent, edge.Child)
		default:
			fmt.Fprintf(buf, "  %q -> %q;\n", edge.Parent, edge.Child)
		}
	}

	for _, c := range e.g.Commits() {
		if !e.emitted[c.Hash] {
			continue
		}
		if c.CherryPickFrom != "" && e.emitted[c.CherryPickFrom] {
			fmt.Fprintf(buf, "  %q -> %q [label=\"Cherry pick\",fontcolor=red,color=red];\n", c.CherryPickFrom, c.Hash)
		}
		if c.Revert != "" && e.emitted[c.Revert] {
			fmt.Fprintf(buf, "  %q -> %q [label=\"Revert\",fontcolor=azure4,color=azure4];\n", c.Hash, c.Revert)
		}
	}
}
