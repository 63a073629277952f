package dot

import (
	"strings"
	"testing"
	"time"

	"github.com/dotgit-tools/gitgraph/pkg/gitlog"
	"github.com/dotgit-tools/gitgraph/pkg/history"
)

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

// build runs the full pipeline up to emission for a record set.
func build(t *testing.T, records []gitlog.Record) (*history.Graph, history.Lanes) {
	t.Helper()
	g, err := history.Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	g.AssignBranches(nil)
	g.Collapse()
	return g, history.AssignLanes(g, nil)
}

func linearRecords() []gitlog.Record {
	return []gitlog.Record{
		rec("c3c3c3c3c3", []string{"c2c2c2c2c2"}, "(HEAD -> main)", "Third", 300),
		rec("c2c2c2c2c2", []string{"c1c1c1c1c1"}, "", "Second", 200),
		rec("c1c1c1c1c1", nil, "", "First", 100),
	}
}

func TestEmitLinearHistory(t *testing.T) {
	g, lanes := build(t, linearRecords())
	out := Emit(g, lanes, Options{})

	// Every regular node statement carries the per-node font size; graph and
	// cluster labels use a different one. One per commit, no more.
	if n := strings.Count(out, "fontsize=16"); n != 3 {
		t.Errorf("node statement count = %d, want 3\n%s", n, out)
	}
	if n := strings.Count(out, " -> "); n != 2 {
		t.Errorf("edge statement count = %d, want 2\n%s", n, out)
	}
	if strings.Contains(out, "style=dashed") {
		t.Errorf("unexpected dashed edge in fully loaded history\n%s", out)
	}

	for _, want := range []string{
		"digraph G {",
		"rankdir=BT;",
		`label="Current branch: main\n";`,
		`subgraph "cluster_main" {`,
		`"c1c1c1c1c1" -> "c2c2c2c2c2";`,
		`"c2c2c2c2c2" -> "c3c3c3c3c3";`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestEmitDeterministic(t *testing.T) {
	g, lanes := build(t, linearRecords())
	first := Emit(g, lanes, Options{})
	second := Emit(g, lanes, Options{})
	if first != second {
		t.Error("repeated emission over the same graph differs")
	}

	// A fresh pipeline over identical records must also match byte for byte.
	g2, lanes2 := build(t, linearRecords())
	if third := Emit(g2, lanes2, Options{}); third != first {
		t.Error("emission over a rebuilt identical graph differs")
	}
}

func TestEmitBoundary(t *testing.T) {
	records := []gitlog.Record{
		rec("c5c5c5c5c5", []string{"c4c4c4c4c4"}, "(HEAD -> main)", "Fifth", 500),
		rec("c4c4c4c4c4", []string{"c3c3c3c3c3"}, "", "Fourth", 400),
	}
	g, lanes := build(t, records)
	out := Emit(g, lanes, Options{})

	if !strings.Contains(out, `"c3c3c3c3c3" [label="c3c3c3c…", shape=ellipse, style=dashed];`) {
		t.Errorf("boundary node statement missing\n%s", out)
	}
	if !strings.Contains(out, `"c3c3c3c3c3" -> "c4c4c4c4c4" [style=dashed];`) {
		t.Errorf("indirect edge statement missing\n%s", out)
	}
}

func TestEmitStrict(t *testing.T) {
	g, lanes := build(t, linearRecords())

	out := Emit(g, lanes, Options{Strict: true})
	if !strings.HasPrefix(out, "strict digraph G {") {
		t.Errorf("output does not start with strict digraph:\n%s", out[:40])
	}

	if plain := Emit(g, lanes, Options{}); strings.HasPrefix(plain, "strict") {
		t.Error("non-strict output starts with strict")
	}
}

func TestEmitMergeAndRevertFill(t *testing.T) {
	records := []gitlog.Record{
		rec("rvrvrvrvr", []string{"mmmmmmmmm"}, "(HEAD -> main)", `Revert "First"`, 500),
		rec("mmmmmmmmm", []string{"c1c1c1c1c1", "f1f1f1f1f1"}, "", "Merge feature", 400),
		rec("f1f1f1f1f1", []string{"c1c1c1c1c1"}, "(feature)", "Feature work", 300),
		rec("c1c1c1c1c1", nil, "", "First", 100),
	}
	g, err := history.Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	g.AssignBranches(nil)
	g.DetectReverts()
	g.Collapse()
	lanes := history.AssignLanes(g, nil)

	out := Emit(g, lanes, Options{})

	if !strings.Contains(out, `"mmmmmmmmm" [label=<`) || !strings.Contains(out, `fillcolor="cornsilk2"`) {
		t.Errorf("merge fill missing\n%s", out)
	}
	if !strings.Contains(out, `fillcolor="azure4"`) {
		t.Errorf("revert fill missing\n%s", out)
	}
}

func TestEmitRevertAnnotationEdge(t *testing.T) {
	records := []gitlog.Record{
		rec("rvrvrvrvr", []string{"c2c2c2c2c2"}, "(HEAD -> main)", `Revert "Second"`, 400),
		rec("c2c2c2c2c2", []string{"c1c1c1c1c1"}, "", "Second", 200),
		rec("c1c1c1c1c1", nil, "", "First", 100),
	}
	g, err := history.Build(records)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	g.AssignBranches(nil)
	g.DetectReverts()
	g.Collapse()

	out := Emit(g, history.AssignLanes(g, nil), Options{})
	if !strings.Contains(out, `"rvrvrvrvr" -> "c2c2c2c2c2" [label="Revert",fontcolor=azure4,color=azure4];`) {
		t.Errorf("revert annotation edge missing\n%s", out)
	}
}

func TestEmitCherryPickAnnotationEdge(t *testing.T) {
	records := linearRecords()
	g, lanes := build(t, records)
	c, _ := g.Commit("c3c3c3c3c3")
	c.CherryPickFrom = "c1c1c1c1c1"

	out := Emit(g, lanes, Options{})
	if !strings.Contains(out, `"c1c1c1c1c1" -> "c3c3c3c3c3" [label="Cherry pick",fontcolor=red,color=red];`) {
		t.Errorf("cherry pick annotation edge missing\n%s", out)
	}
}

func TestEmitBranchFilter(t *testing.T) {
	records := []gitlog.Record{
		rec("m2m2m2m2m2", []string{"c1c1c1c1c1"}, "(HEAD -> main)", "Main work", 400),
		rec("f1f1f1f1f1", []string{"c1c1c1c1c1"}, "(feature)", "Feature work", 300),
		rec("c1c1c1c1c1", nil, "", "First", 100),
	}
	g, lanes := build(t, records)
	out := Emit(g, lanes, Options{Branches: []string{"feature"}})

	if strings.Contains(out, `"m2m2m2m2m2"`) {
		t.Errorf("filtered-out commit emitted\n%s", out)
	}
	if !strings.Contains(out, `"f1f1f1f1f1"`) {
		t.Errorf("selected branch commit missing\n%s", out)
	}
	// The shared root belongs to main and is filtered with it.
	if strings.Contains(out, `"c1c1c1c1c1" [`) {
		t.Errorf("commit outside selected branch emitted\n%s", out)
	}
}

func TestCommitLabelEscaping(t *testing.T) {
	c := &history.Commit{
		Hash:      "c1c1c1c1c1",
		ShortHash: "c1c1c1c",
		Actor:     "Ada <ada@example.com>",
		Time:      time.Unix(100, 0).UTC(),
		Subject:   `Use <T> & "quotes"`,
	}

	label := commitLabel(c)
	for _, want := range []string{"&lt;T&gt;", "&amp;", "&lt;ada@example.com&gt;"} {
		if !strings.Contains(label, want) {
			t.Errorf("label missing escaped %q:\n%s", want, label)
		}
	}
	if strings.Contains(label, "<T>") {
		t.Errorf("unescaped subject leaked into label:\n%s", label)
	}
}

func TestCommitLabelRefBadges(t *testing.T) {
	c := &history.Commit{
		Hash:      "c1c1c1c1c1",
		ShortHash: "c1c1c1c",
		Actor:     "Ada",
		Time:      time.Unix(100, 0).UTC(),
		Subject:   "First",
		Branches:  []string{"main", "feature", "origin/main", "origin/feature"},
		Tags:      []string{"v1.0"},
	}

	label := commitLabel(c)
	if got := strings.Count(label, `BGCOLOR="red"`); got != 4 {
		t.Errorf("branch badge count = %d, want 4", got)
	}
	if got := strings.Count(label, `BGCOLOR="green"`); got != 1 {
		t.Errorf("tag badge count = %d, want 1", got)
	}
	// Five badges at three per row means one wrap.
	if got := strings.Count(label, "</TR><TR>"); got != 1 {
		t.Errorf("badge row wraps = %d, want 1", got)
	}
}

func TestBreakLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		breaks int
	}{
		{name: "short line", line: "short", breaks: 1},
		{name: "empty line", line: "", breaks: 1},
		{name: "exactly one width", line: strings.Repeat("a", 60), breaks: 1},
		{name: "wrapped line", line: strings.Repeat("a", 61), breaks: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := breakLine(tt.line)
			if n := strings.Count(got, `<BR ALIGN="LEFT"/>`); n != tt.breaks {
				t.Errorf("breakLine(%d chars) breaks = %d, want %d", len(tt.line), n, tt.breaks)
			}
		})
	}
}
