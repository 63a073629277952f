package history

import (
	"testing"
	"time"

	"github.com/dotgit-tools/gitgraph/pkg/errors"
	"github.com/dotgit-tools/gitgraph/pkg/gitlog"
)

// rec builds a capture record for tests. Records are listed newest-first,
// the way git log emits them.
func rec(hash string, parents []string, decoration, subject string, secs int64) gitlog.Record {
	return gitlog.Record{
		Hash:       hash,
		ShortHash:  hash[:min(len(hash), 7)],
		Parents:    parents,
		Decoration: decoration,
		Actor:      "Ada",
		Time:       time.Unix(secs, 0).UTC(),
		Subject:    subject,
	}
}

// linearRecords is a three-commit chain c3 -> c2 -> c1 with HEAD on main.
func linearRecords() []gitlog.Record {
	return []gitlog.Record{
		rec("c3c3c3c3c3", []string{"c2c2c2c2c2"}, "(HEAD -> main)", "Third", 300),
		rec("c2c2c2c2c2", []string{"c1c1c1c1c1"}, "", "Second", 200),
		rec("c1c1c1c1c1", nil, "", "First", 100),
	}
}

func TestBuildCounts(t *testing.T) {
	records := linearRecords()

	g, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.CommitCount() != len(records) {
		t.Errorf("CommitCount() = %d, want %d", g.CommitCount(), len(records))
	}
	if g.LoadedCount() != len(records) {
		t.Errorf("LoadedCount() = %d, want %d", g.LoadedCount(), len(records))
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if g.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", g.Pending())
	}

	// Insertion order matches capture order.
	commits := g.Commits()
	for i, want := range []string{"c3c3c3c3c3", "c2c2c2c2c2", "c1c1c1c1c1"} {
		if commits[i].Hash != want {
			t.Errorf("Commits()[%d] = %s, want %s", i, commits[i].Hash, want)
		}
	}
}

func TestBuildDuplicateHash(t *testing.T) {
	records := []gitlog.Record{
		rec("c1c1c1c1c1", nil, "", "First", 100),
		rec("c1c1c1c1c1", nil, "", "First again", 200),
	}

	_, err := Build(records)
	if err == nil {
		t.Fatal("Build() error = nil, want CONSISTENCY_ERROR")
	}
	if !errors.Is(err, errors.ErrCodeConsistency) {
		t.Errorf("error code = %v, want CONSISTENCY_ERROR", errors.GetCode(err))
	}
}

func TestBuildDecorations(t *testing.T) {
	records := []gitlog.Record{
		rec("c3c3c3c3c3", []string{"c2c2c2c2c2"}, "(HEAD -> main, tag: v1.0, origin/main)", "Third", 300),
		rec("c2c2c2c2c2", []string{"c1c1c1c1c1"}, "(feature/x)", "Second", 200),
		rec("c1c1c1c1c1", nil, "", "First", 100),
	}

	g, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if g.CurrentBranch != "main" {
		t.Errorf("CurrentBranch = %q, want main", g.CurrentBranch)
	}

	tip, _ := g.Commit("c3c3c3c3c3")
	if tip.Head != "main" {
		t.Errorf("Head = %q, want main", tip.Head)
	}
	if len(tip.Branches) != 2 || tip.Branches[0] != "main" || tip.Branches[1] != "origin/main" {
		t.Errorf("Branches = %v, want [main origin/main]", tip.Branches)
	}
	if len(tip.Tags) != 1 || tip.Tags[0] != "v1.0" {
		t.Errorf("Tags = %v, want [v1.0]", tip.Tags)
	}

	mid, _ := g.Commit("c2c2c2c2c2")
	if len(mid.Branches) != 1 || mid.Branches[0] != "feature/x" {
		t.Errorf("Branches = %v, want [feature/x]", mid.Branches)
	}

	refs := g.Refs()
	if len(refs) != 4 {
		t.Fatalf("len(Refs()) = %d, want 4", len(refs))
	}
	if refs[1].Kind != RefTag || refs[1].Name != "v1.0" {
		t.Errorf("Refs()[1] = %+v, want tag v1.0", refs[1])
	}
}

func TestBuildDetachedHead(t *testing.T) {
	records := []gitlog.Record{
		rec("c1c1c1c1c1", nil, "(HEAD)", "First", 100),
	}

	g, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.CurrentBranch != "" {
		t.Errorf("CurrentBranch = %q, want empty for detached HEAD", g.CurrentBranch)
	}
	c, _ := g.Commit("c1c1c1c1c1")
	if len(c.Branches) != 0 {
		t.Errorf("Branches = %v, want empty", c.Branches)
	}
}

func TestBuildDropsStashes(t *testing.T) {
	records := []gitlog.Record{
		rec("stash0000", []string{"c1c1c1c1c1", "idx000000"}, "(refs/stash)", "WIP on main", 400),
		rec("idx000000", []string{"c1c1c1c1c1"}, "", "index on main", 350),
		rec("c1c1c1c1c1", nil, "(HEAD -> main)", "First", 100),
	}

	g, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.CommitCount() != 1 {
		t.Errorf("CommitCount() = %d, want 1 (stash and index dropped)", g.CommitCount())
	}
	if _, ok := g.Commit("stash0000"); ok {
		t.Error("stash commit survived Build")
	}
	if _, ok := g.Commit("idx000000"); ok {
		t.Error("stash index parent survived Build")
	}
}

func TestBuildMergeAndChildren(t *testing.T) {
	records := []gitlog.Record{
		rec("mmmmmmmmm", []string{"c2c2c2c2c2", "f1f1f1f1f1"}, "(HEAD -> main)", "Merge feature", 400),
		rec("f1f1f1f1f1", []string{"c1c1c1c1c1"}, "(feature)", "Feature work", 300),
		rec("c2c2c2c2c2", []string{"c1c1c1c1c1"}, "", "Second", 200),
		rec("c1c1c1c1c1", nil, "", "First", 100),
	}

	g, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	merge, _ := g.Commit("mmmmmmmmm")
	if !merge.IsMerge() {
		t.Fatal("IsMerge() = false, want true")
	}

	// Edge order follows parent order.
	edges := g.EdgesFrom("mmmmmmmmm")
	if len(edges) != 2 {
		t.Fatalf("len(EdgesFrom(merge)) = %d, want 2", len(edges))
	}
	if edges[0].Parent != "c2c2c2c2c2" || edges[1].Parent != "f1f1f1f1f1" {
		t.Errorf("merge edge parents = %s, %s; want c2..., f1...", edges[0].Parent, edges[1].Parent)
	}
	for _, e := range edges {
		if e.Kind != EdgeDirect {
			t.Errorf("edge %v kind = %v, want EdgeDirect", e, e.Kind)
		}
	}

	children := g.Children("c1c1c1c1c1")
	if len(children) != 2 {
		t.Fatalf("len(Children(c1)) = %d, want 2", len(children))
	}
}

func TestBuildPendingForMissingParents(t *testing.T) {
	records := []gitlog.Record{
		rec("c5c5c5c5c5", []string{"c4c4c4c4c4"}, "(HEAD -> main)", "Fifth", 500),
		rec("c4c4c4c4c4", []string{"c3c3c3c3c3"}, "", "Fourth", 400),
	}

	g, err := Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if g.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", g.Pending())
	}
}
