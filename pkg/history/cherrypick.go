package history

import (
	"context"
	"slices"

	"github.com/dotgit-tools/gitgraph/pkg/gitlog"
)

// DetectCherryPicks marks commits that duplicate an older commit's change.
//
// Two commits are a cherry-pick pair when they share a subject line and
// their diff fingerprints match. Merges are skipped (their diffs are not
// comparable) and only the oldest matching origin is recorded. Diff hashes
// come from the injected hasher so the graph itself never runs a process.
func (g *Graph) DetectCherryPicks(ctx context.Context, hasher gitlog.DiffHasher) error {
	hashes := make(map[string]string)
	fingerprint := func(c *Commit) (string, error) {
		if h, ok := hashes[c.Hash]; ok {
			return h, nil
		}
		h, err := hasher.DiffHash(ctx, c.Hash)
		if err != nil {
			return "", err
		}
		hashes[c.Hash] = h
		return h, nil
	}

	for _, c := range g.Commits() {
		if c.IsBoundary() || c.IsMerge() {
			continue
		}
		same := g.bySubject[c.Subject]
		if len(same) < 2 {
			continue
		}

		candidates := slices.Clone(same)
		slices.SortFunc(candidates, func(a, b *Commit) int { return a.Time.Compare(b.Time) })

		for _, origin := range candidates {
			if origin.Hash == c.Hash || !origin.Time.Before(c.Time) || origin.IsMerge() {
				continue
			}
			ch, err := fingerprint(c)
			if err != nil {
				return err
			}
			oh, err := fingerprint(origin)
			if err != nil {
				return err
			}
			if ch == oh {
				c.CherryPickFrom = origin.Hash
				break
			}
		}
	}
	return nil
}
