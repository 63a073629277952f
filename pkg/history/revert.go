package history

import "regexp"

var revertSubject = regexp.MustCompile(`^Revert "(.*)"`)

// DetectReverts links commits created by git revert back to their origin.
//
// A revert commit's subject is `Revert "<original subject>"`; the origin is
// the loaded commit with that subject on the same branch. Reverts whose
// origin lies outside the loaded window stay unlinked.
func (g *Graph) DetectReverts() {
	for _, c := range g.Commits() {
		if c.IsBoundary() {
			continue
		}
		m := revertSubject.FindStringSubmatch(c.Subject)
		if m == nil {
			continue
		}
		for _, origin := range g.bySubject[m[1]] {
			if origin.Branch == c.Branch {
				c.Revert = origin.Hash
				break
			}
		}
	}
}
