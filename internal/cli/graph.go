package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotgit-tools/gitgraph/internal/config"
	"github.com/dotgit-tools/gitgraph/pkg/dot"
	"github.com/dotgit-tools/gitgraph/pkg/errors"
	"github.com/dotgit-tools/gitgraph/pkg/gitlog"
	"github.com/dotgit-tools/gitgraph/pkg/history"
	"github.com/dotgit-tools/gitgraph/pkg/render"
)

// runGraph executes the full pipeline once: capture, parse, build, annotate,
// collapse, emit, render, write, open. Any stage failure aborts the run with
// no partial artifact on disk.
func runGraph(ctx context.Context, opts *graphOpts) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	source, err := gitlog.NewCLISource(opts.repo)
	if err != nil {
		return err
	}

	format := opts.format
	if format == "" {
		format = cfg.Format
	}

	out, err := buildArtifact(ctx, source, opts, cfg, format)
	if err != nil {
		return err
	}

	// Plain DOT with no output path goes to stdout so the tool composes
	// with a pipeline, e.g. `gitgraph -t dot | dot -Tsvg`.
	if format == "dot" && opts.output == "" && len(opts.dotArgs) == 0 {
		fmt.Print(out.dotText)
		return nil
	}

	path, err := writeArtifact(out.image, opts.output, format)
	if err != nil {
		return err
	}
	printSuccess("Rendered %d commits (%d edges)", out.loaded, out.edges)
	printFile(path)

	if opts.output == "" && !opts.noOpen {
		if err := openArtifact(path); err != nil {
			// The artifact exists and its path was printed; a missing
			// viewer should not fail the run.
			loggerFromContext(ctx).Warnf("open %s: %v", path, err)
		}
	}
	return nil
}

// artifact is the result of one pipeline run.
type artifact struct {
	dotText string
	image   []byte
	loaded  int
	edges   int
}

// buildArtifact runs capture through render and returns the artifact bytes.
// When format is "dot" and nothing forces the external renderer, image stays
// nil and only dotText is populated.
func buildArtifact(ctx context.Context, source *gitlog.CLISource, opts *graphOpts, cfg config.Config, format string) (*artifact, error) {
	logger := loggerFromContext(ctx)

	limit := opts.limit
	if limit == 0 {
		limit = cfg.Limit
	}

	capture := newProgress(logger)
	raw, err := source.Log(ctx, gitlog.Options{
		AllBranches: opts.all,
		Limit:       limit,
		Paths:       opts.paths,
		AuthorTime:  opts.authorTime,
		AuthorName:  opts.authorName,
		Extra:       opts.extra,
	})
	if err != nil {
		return nil, err
	}

	records, err := gitlog.ParseAll(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}
	capture.done(fmt.Sprintf("Captured %d commits from %s", len(records), source.Dir()))

	build := newProgress(logger)
	g, err := history.Build(records)
	if err != nil {
		return nil, err
	}
	g.AssignBranches(cfg.Trunks)
	if opts.revert {
		g.DetectReverts()
	}
	if opts.cherryPick {
		spin := newSpinnerWithContext(ctx, "Fingerprinting commit diffs...")
		spin.Start()
		err := g.DetectCherryPicks(ctx, source)
		spin.Stop()
		if err != nil {
			return nil, err
		}
	}
	g.Collapse()
	lanes := history.AssignLanes(g, cfg.Trunks)
	build.done(fmt.Sprintf("Built graph: %d commits, %d edges, %d branches",
		g.LoadedCount(), g.EdgeCount(), len(lanes.Branches())))

	out := &artifact{
		dotText: dot.Emit(g, lanes, dot.Options{Strict: opts.strict, Branches: opts.branches}),
		loaded:  g.LoadedCount(),
		edges:   g.EdgeCount(),
	}

	if format == "dot" && len(opts.dotArgs) == 0 {
		out.image = []byte(out.dotText)
		return out, nil
	}

	rend := render.Pick(format, opts.dotArgs)
	draw := newProgress(logger)
	img, err := rend.Render(ctx, out.dotText, format)
	if err != nil {
		return nil, err
	}
	draw.done(fmt.Sprintf("Rendered %s via %s (%d bytes)", format, rend.Name(), len(img)))

	out.image = img
	return out, nil
}

// writeArtifact stores the rendered bytes at path, or at a fresh temp file
// when path is empty, and returns the final location.
func writeArtifact(data []byte, path, format string) (string, error) {
	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return path, nil
		}
		return abs, nil
	}

	f, err := os.CreateTemp("", "gitgraph-*."+format)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "create temp file")
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		os.Remove(f.Name())
		return "", errors.Wrap(errors.ErrCodeInternal, err, "write %s", f.Name())
	}
	return f.Name(), nil
}
