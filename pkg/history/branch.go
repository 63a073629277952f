package history

import (
	"slices"
	"strings"
)

// DefaultTrunks are the branch names treated as the repository trunk.
// Trunk branches sort first so they claim shared history and lane zero.
var DefaultTrunks = []string{"master", "Main", "main"}

// CompareBranches orders branch names for lane assignment: trunk branches
// first, then branches without a slash (local) before namespaced ones
// (origin/x, feature/x), then lexical.
func CompareBranches(trunks []string, a, b string) int {
	aTrunk := slices.Contains(trunks, a)
	bTrunk := slices.Contains(trunks, b)
	switch {
	case a == b, aTrunk && bTrunk:
		return 0
	case aTrunk:
		return -1
	case bTrunk:
		return 1
	}

	aSlash := strings.Contains(a, "/")
	bSlash := strings.Contains(b, "/")
	switch {
	case !aSlash && bSlash:
		return -1
	case aSlash && !bSlash:
		return 1
	case a < b:
		return -1
	default:
		return 1
	}
}

// branchCursor tracks a branch while commits are claimed along its
// first-parent chain.
type branchCursor struct {
	name string
	next string // hash the branch expects to claim next
}

// AssignBranches assigns every commit to a branch lane.
//
// Branches are discovered from ref decorations in capture order, then sorted
// trunk-first so the trunk claims commits shared with feature branches.
// Each branch walks its first-parent chain from the tip, claiming unclaimed
// commits. Commits left over (reachable only through merge second parents,
// or decorated by no branch) inherit the branch of their nearest claimed
// ancestor within the loaded set.
//
// The assignment is deterministic for a fixed capture: discovery order and
// the comparator fully define every tie-break.
func (g *Graph) AssignBranches(trunks []string) {
	if len(trunks) == 0 {
		trunks = DefaultTrunks
	}

	// Discover branches at their tips.
	var cursors []*branchCursor
	seen := make(map[string]bool)
	for _, c := range g.Commits() {
		slices.SortFunc(c.Branches, func(a, b string) int { return CompareBranches(trunks, a, b) })
		for _, name := range c.Branches {
			if !seen[name] {
				seen[name] = true
				cursors = append(cursors, &branchCursor{name: name, next: c.Hash})
			}
		}
	}
	slices.SortFunc(cursors, func(a, b *branchCursor) int { return CompareBranches(trunks, a.name, b.name) })

	// Claim pass: capture order is newest-first, so each branch meets its
	// own commits top-down and advances along first parents.
	for _, c := range g.Commits() {
		if c.IsBoundary() {
			continue
		}
		for _, cur := range cursors {
			if cur.next != c.Hash {
				continue
			}
			if c.Branch == "" {
				c.Branch = cur.name
			}
			if len(c.Parents) > 0 {
				cur.next = c.Parents[0]
			} else {
				cur.next = ""
			}
			break
		}
	}

	// Inheritance pass for commits no branch chain reached.
	for _, c := range g.Commits() {
		if c.Branch == "" && !c.IsBoundary() {
			c.Branch = g.inheritedBranch(c)
		}
	}
}

// inheritedBranch walks descendant-to-ancestor through loaded parents until
// it finds an assigned commit. First parents are preferred over merge
// parents at every step.
func (g *Graph) inheritedBranch(c *Commit) string {
	cur := c
	for steps := 0; steps < len(g.order); steps++ {
		var next *Commit
		for _, p := range cur.Parents {
			if pc, ok := g.commits[p]; ok && !pc.IsBoundary() {
				if pc.Branch != "" {
					return pc.Branch
				}
				if next == nil {
					next = pc
				}
			}
		}
		if next == nil {
			return ""
		}
		cur = next
	}
	return ""
}
