package history

// Collapse resolves every pending reference to an unloaded ancestor.
//
// Policy (fixed, see DESIGN.md): each missing parent hash gets one synthetic
// boundary commit, and the referencing child gets exactly one indirect edge
// to it. The true ancestor chain is unknown from the capture alone, so no
// re-walking is attempted; the dashed edge signals that intermediate commits
// were elided. A merge whose parents are both truncated keeps two
// distinguishable boundary targets.
//
// Collapse is idempotent: pending references are consumed on the first call,
// and already-resolved indirect edges are never touched, so a second call
// leaves the edge set unchanged.
func (g *Graph) Collapse() {
	for _, pend := range g.pending {
		boundary, ok := g.commits[pend.Parent]
		if !ok {
			boundary = &Commit{
				Hash:      pend.Parent,
				ShortHash: shortHash(pend.Parent),
				Kind:      CommitBoundary,
			}
			g.order = append(g.order, boundary.Hash)
			g.commits[boundary.Hash] = boundary
		}
		g.children[boundary.Hash] = append(g.children[boundary.Hash], pend.Child)
		g.edges = append(g.edges, Edge{Child: pend.Child, Parent: boundary.Hash, Kind: EdgeIndirect})
	}
	g.pending = nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
