package render

import (
	"testing"

	"github.com/dotgit-tools/gitgraph/pkg/errors"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		extraArgs []string
		builtin   bool
	}{
		{name: "svg uses builtin", format: "svg", builtin: true},
		{name: "png uses builtin", format: "png", builtin: true},
		{name: "dot uses builtin", format: "dot", builtin: true},
		{name: "pdf needs dot binary", format: "pdf", builtin: false},
		{name: "extra args force dot binary", format: "svg", extraArgs: []string{"-Gdpi=150"}, builtin: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Pick(tt.format, tt.extraArgs)
			_, isBuiltin := r.(*Graphviz)
			if isBuiltin != tt.builtin {
				t.Errorf("Pick(%q, %v) = %s, builtin = %v, want %v",
					tt.format, tt.extraArgs, r.Name(), isBuiltin, tt.builtin)
			}
		})
	}
}

func TestDotCommandArgs(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		extraArgs []string
		expected  []string
	}{
		{
			name:     "format only",
			format:   "svg",
			expected: []string{"-Tsvg"},
		},
		{
			name:      "passthrough flags preserved in order",
			format:    "pdf",
			extraArgs: []string{"-Gdpi=150", "-Nfontname=Courier"},
			expected:  []string{"-Tpdf", "-Gdpi=150", "-Nfontname=Courier"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDotCommand(tt.extraArgs).args(tt.format)
			if len(got) != len(tt.expected) {
				t.Fatalf("args() = %v, want %v", got, tt.expected)
			}
			for i := range tt.expected {
				if got[i] != tt.expected[i] {
					t.Errorf("args()[%d] = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestGraphvizRejectsUnknownFormat(t *testing.T) {
	_, err := NewGraphviz().Render(t.Context(), "digraph G {}", "pdf")
	if err == nil {
		t.Fatal("Render(pdf) error = nil, want INVALID_FORMAT")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want INVALID_FORMAT", errors.GetCode(err))
	}
}
