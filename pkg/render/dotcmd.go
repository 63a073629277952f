package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/dotgit-tools/gitgraph/pkg/errors"
)

// DotCommand renders by piping DOT text through the dot binary.
// Any format token dot supports is accepted verbatim, and extra
// renderer-specific flags are passed through unmodified.
type DotCommand struct {
	path      string
	extraArgs []string
}

// NewDotCommand returns a renderer invoking dot with the given passthrough
// flags.
func NewDotCommand(extraArgs []string) *DotCommand {
	return &DotCommand{path: "dot", extraArgs: extraArgs}
}

// Name implements Renderer.
func (d *DotCommand) Name() string { return d.path }

// args builds the dot argv for a format. Kept separate for testing.
func (d *DotCommand) args(format string) []string {
	out := []string{"-T" + format}
	out = append(out, d.extraArgs...)
	return out
}

// Render implements Renderer. A missing binary is an UPSTREAM_ERROR; a
// non-zero exit surfaces dot's stderr verbatim as RENDER_ERROR.
func (d *DotCommand) Render(ctx context.Context, dot string, format string) ([]byte, error) {
	if _, err := exec.LookPath(d.path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstream, err,
			"%s not found (install graphviz or use a builtin format)", d.path)
	}

	args := d.args(format)
	cmd := exec.CommandContext(ctx, d.path, args...)
	cmd.Stdin = strings.NewReader(dot)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diag := strings.TrimSpace(stderr.String())
		if diag != "" {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "%s %s: %s",
				d.path, strings.Join(args, " "), diag)
		}
		return nil, errors.Wrap(errors.ErrCodeUpstream, err, "%s %s",
			d.path, strings.Join(args, " "))
	}
	return out.Bytes(), nil
}
