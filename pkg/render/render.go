// Package render turns DOT text into an image artifact.
//
// Two renderers are provided: [Graphviz] runs the embedded Graphviz engine
// in-process for the common formats, and [DotCommand] shells out to the dot
// binary, which accepts any format token the installation supports plus
// arbitrary passthrough flags. [Pick] chooses between them.
package render

import "context"

// Renderer converts DOT text into image bytes for a given format token.
type Renderer interface {
	// Render returns the rendered artifact. The format token is passed to
	// the engine verbatim; an unknown token is a RENDER_ERROR.
	Render(ctx context.Context, dot string, format string) ([]byte, error)

	// Name identifies the renderer in logs and error messages.
	Name() string
}

// Pick selects a renderer for the given format and passthrough flags.
// Extra flags force the external dot binary (the embedded engine takes no
// flags), as does any format token the embedded engine does not know.
func Pick(format string, extraArgs []string) Renderer {
	if len(extraArgs) == 0 && builtinSupports(format) {
		return NewGraphviz()
	}
	return NewDotCommand(extraArgs)
}
