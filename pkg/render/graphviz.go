package render

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/dotgit-tools/gitgraph/pkg/errors"
)

// builtinFormats maps format tokens to the embedded engine's formats.
var builtinFormats = map[string]graphviz.Format{
	"svg": graphviz.SVG,
	"png": graphviz.PNG,
	"jpg": graphviz.JPG,
	"dot": graphviz.XDOT,
}

// builtinSupports reports whether the embedded engine knows the format token.
func builtinSupports(format string) bool {
	_, ok := builtinFormats[format]
	return ok
}

// Graphviz renders DOT in-process using the embedded Graphviz engine.
// No external binary is required.
type Graphviz struct{}

// NewGraphviz returns the in-process renderer.
func NewGraphviz() *Graphviz { return &Graphviz{} }

// Name implements Renderer.
func (*Graphviz) Name() string { return "graphviz (builtin)" }

// Render implements Renderer. A DOT parse rejection or unknown format token
// surfaces as RENDER_ERROR with the engine's own diagnostic.
func (*Graphviz) Render(ctx context.Context, dot string, format string) ([]byte, error) {
	f, ok := builtinFormats[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"builtin renderer does not support %q (use the dot binary for other formats)", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "graphviz rejected DOT text")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, f, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	return buf.Bytes(), nil
}
