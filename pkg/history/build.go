package history

import (
	"strings"

	"github.com/dotgit-tools/gitgraph/pkg/errors"
	"github.com/dotgit-tools/gitgraph/pkg/gitlog"
)

// Build assembles a Graph from a fully materialized record sequence.
//
// The records must come from a single capture: a duplicate hash means the
// caller combined overlapping ranges and fails with CONSISTENCY_ERROR.
// Children and edges are computed in a second pass once every commit is
// known, because a parent may be emitted after its child. Parents absent
// from the capture are left pending for Collapse.
//
// Stash entries (decorated refs/stash) and their synthetic parents are
// dropped before building; they are not part of the branch history.
func Build(records []gitlog.Record) (*Graph, error) {
	g := newGraph()

	for _, rec := range dropStashes(records) {
		if _, exists := g.commits[rec.Hash]; exists {
			return nil, errors.New(errors.ErrCodeConsistency,
				"duplicate commit %s in capture (overlapping ranges?)", rec.Hash)
		}

		c := &Commit{
			Hash:      rec.Hash,
			ShortHash: rec.ShortHash,
			Parents:   rec.Parents,
			Actor:     rec.Actor,
			Time:      rec.Time,
			Subject:   rec.Subject,
			Kind:      CommitRegular,
		}
		g.attachRefs(c, rec.Decoration)

		g.order = append(g.order, c.Hash)
		g.commits[c.Hash] = c
		g.bySubject[c.Subject] = append(g.bySubject[c.Subject], c)
	}

	// Second pass: reverse-index parents into children and classify edges.
	// Roots (no parents) and merges (>=2) need no special casing.
	for _, hash := range g.order {
		c := g.commits[hash]
		for _, parent := range uniqueParents(c.Parents) {
			if _, loaded := g.commits[parent]; loaded {
				g.children[parent] = append(g.children[parent], c.Hash)
				g.edges = append(g.edges, Edge{Child: c.Hash, Parent: parent, Kind: EdgeDirect})
			} else {
				g.pending = append(g.pending, Edge{Child: c.Hash, Parent: parent})
			}
		}
	}

	return g, nil
}

// dropStashes filters out stash commits and the synthetic index/untracked
// parents git attaches to them.
func dropStashes(records []gitlog.Record) []gitlog.Record {
	ignore := make(map[string]bool)
	for _, rec := range records {
		if !strings.Contains(rec.Decoration, "refs/stash") {
			continue
		}
		ignore[rec.Hash] = true
		for _, p := range rec.Parents[1:] {
			ignore[p] = true
		}
	}
	if len(ignore) == 0 {
		return records
	}

	out := make([]gitlog.Record, 0, len(records))
	for _, rec := range records {
		if !ignore[rec.Hash] {
			out = append(out, rec)
		}
	}
	return out
}

// uniqueParents deduplicates a parent list while preserving order.
// git can list the same parent twice on pathological merges; the graph must
// carry one edge per ordered (child, parent) pair.
func uniqueParents(parents []string) []string {
	if len(parents) < 2 {
		return parents
	}
	seen := make(map[string]bool, len(parents))
	out := parents[:0:0]
	for _, p := range parents {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// attachRefs parses a decoration string like
//
//	(HEAD -> main, tag: v1.2, origin/main, feature/x)
//
// into branch and tag refs attached to the commit. Ref discovery order is
// preserved in g.refs; per-commit branch lists are re-sorted trunk-first
// later by AssignBranches.
func (g *Graph) attachRefs(c *Commit, decoration string) {
	decoration = strings.TrimSpace(decoration)
	decoration = strings.TrimPrefix(decoration, "(")
	decoration = strings.TrimSuffix(decoration, ")")
	if decoration == "" {
		return
	}

	for _, name := range strings.Split(decoration, ",") {
		name = strings.TrimSpace(name)
		switch {
		case name == "":
		case strings.HasPrefix(name, "HEAD -> "):
			branch := strings.TrimSpace(strings.TrimPrefix(name, "HEAD -> "))
			c.Head = branch
			c.Branches = append(c.Branches, branch)
			g.refs = append(g.refs, Ref{Name: branch, Kind: RefBranch, Target: c.Hash})
			g.CurrentBranch = branch
		case strings.HasPrefix(name, "tag: "):
			tag := strings.TrimSpace(strings.TrimPrefix(name, "tag: "))
			c.Tags = append(c.Tags, tag)
			g.refs = append(g.refs, Ref{Name: tag, Kind: RefTag, Target: c.Hash})
		case name == "HEAD", strings.Contains(name, "stash"):
			// Detached HEAD carries no branch name; stash refs are dropped.
		default:
			c.Branches = append(c.Branches, name)
			g.refs = append(g.refs, Ref{Name: name, Kind: RefBranch, Target: c.Hash})
		}
	}
}
