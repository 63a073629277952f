// Package history models a git commit history as a directed acyclic graph.
//
// The graph is built once per invocation from a materialized log capture,
// then collapsed (missing ancestors become boundary sentinels), annotated
// (branch lanes, cherry-picks, reverts) and handed to the DOT emitter.
// Nothing is mutated after emission; the whole model is discarded when the
// render completes.
//
// All iteration surfaces preserve insertion order so that repeated runs over
// an unchanged repository produce identical output. Never rely on map
// iteration order here.
package history

import (
	"slices"
	"time"
)

// CommitKind distinguishes loaded commits from synthetic boundary sentinels.
type CommitKind int

const (
	// CommitRegular is a commit parsed from the log capture.
	CommitRegular CommitKind = iota
	// CommitBoundary stands in for an ancestor outside the loaded window
	// (truncated by a commit limit or a path filter). Boundary commits are
	// created by Collapse and only ever appear as edge targets.
	CommitBoundary
)

// Commit is an immutable snapshot node in the history graph.
// Owned exclusively by the graph; callers must not mutate it.
type Commit struct {
	Hash      string    // full hash, globally unique
	ShortHash string    // display form, not guaranteed unique
	Parents   []string  // ordered parent hashes: 0 root, 1 normal, >=2 merge
	Actor     string    // author or committer name, per capture options
	Time      time.Time // author or committer time, per capture options
	Subject   string
	Kind      CommitKind

	Branches []string // branch refs attached to this commit, trunk-first order
	Tags     []string // tag refs attached to this commit
	Head     string   // branch HEAD points to, or ""

	// Branch is the lane this commit is drawn in, assigned by AssignBranches.
	Branch string

	// CherryPickFrom is the hash of the commit this one was picked from, or "".
	CherryPickFrom string
	// Revert is the hash of the commit this one reverts, or "".
	Revert string
}

// IsMerge reports whether the commit has two or more parents.
func (c *Commit) IsMerge() bool { return len(c.Parents) >= 2 }

// IsBoundary reports whether the commit is a synthetic boundary sentinel.
func (c *Commit) IsBoundary() bool { return c.Kind == CommitBoundary }

// RefKind distinguishes branch refs from tag refs.
type RefKind int

const (
	RefBranch RefKind = iota
	RefTag
)

// Ref is a named pointer (branch or tag) to a specific commit.
// Refs attach to existing commits; they never create one.
type Ref struct {
	Name   string
	Kind   RefKind
	Target string // hash of the commit the ref points to
}

// EdgeKind distinguishes real parent links from collapsed ones.
type EdgeKind int

const (
	// EdgeDirect connects a commit to a parent present in the loaded set.
	EdgeDirect EdgeKind = iota
	// EdgeIndirect stands in for one or more omitted intermediate commits
	// and is rendered dashed. Its Parent is always a boundary commit.
	EdgeIndirect
)

// Edge is a child-to-parent link in the history graph.
type Edge struct {
	Child  string
	Parent string
	Kind   EdgeKind
}

// Graph is the in-memory commit DAG for one invocation.
// Not safe for concurrent use; the pipeline is single-threaded by design.
type Graph struct {
	order     []string           // commit hashes in insertion order
	commits   map[string]*Commit // hash -> commit
	children  map[string][]string
	edges     []Edge
	refs      []Ref
	pending   []Edge // references to unloaded parents, resolved by Collapse
	bySubject map[string][]*Commit

	// CurrentBranch is the branch HEAD pointed to at capture time, or "".
	CurrentBranch string
}

func newGraph() *Graph {
	return &Graph{
		commits:   make(map[string]*Commit),
		children:  make(map[string][]string),
		bySubject: make(map[string][]*Commit),
	}
}

// Commit returns the commit with the given hash.
func (g *Graph) Commit(hash string) (*Commit, bool) {
	c, ok := g.commits[hash]
	return c, ok
}

// Commits returns all commits in insertion order, boundary sentinels last.
// The slice is shared; treat it as read-only.
func (g *Graph) Commits() []*Commit {
	out := make([]*Commit, 0, len(g.order))
	for _, h := range g.order {
		out = append(out, g.commits[h])
	}
	return out
}

// CommitCount returns the number of commits, including boundary sentinels.
func (g *Graph) CommitCount() int { return len(g.order) }

// LoadedCount returns the number of commits parsed from the capture,
// excluding boundary sentinels.
func (g *Graph) LoadedCount() int {
	n := 0
	for _, h := range g.order {
		if !g.commits[h].IsBoundary() {
			n++
		}
	}
	return n
}

// Edges returns a copy of all edges. Direct edges come first, in commit
// insertion order; indirect edges follow in collapse order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// EdgeCount returns the number of resolved edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// EdgesFrom returns the resolved edges whose child is the given commit,
// in parent order.
func (g *Graph) EdgesFrom(child string) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Child == child {
			out = append(out, e)
		}
	}
	return out
}

// Children returns the hashes of loaded commits that list the given commit
// as a parent. Treat the slice as read-only.
func (g *Graph) Children(hash string) []string { return g.children[hash] }

// Refs returns every branch and tag ref discovered in the capture,
// in decoration discovery order.
func (g *Graph) Refs() []Ref { return slices.Clone(g.refs) }

// Pending returns the number of parent references not yet resolved to a
// loaded commit or boundary sentinel. It is zero after Collapse.
func (g *Graph) Pending() int { return len(g.pending) }
