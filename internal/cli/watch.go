package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dotgit-tools/gitgraph/internal/config"
	"github.com/dotgit-tools/gitgraph/pkg/gitlog"
)

// debounceTime coalesces the burst of .git writes a single commit produces
// into one re-render.
const debounceTime = 250 * time.Millisecond

// runWatch renders once, then re-renders into the same artifact whenever the
// repository's .git directory changes. Runs until the context is cancelled.
func runWatch(ctx context.Context, opts *graphOpts) error {
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

	render := func() (string, error) {
		out, err := buildArtifact(ctx, source, opts, cfg, format)
		if err != nil {
			return "", err
		}
		return writeArtifact(out.image, opts.output, format)
	}

	path, err := render()
	if err != nil {
		return err
	}
	// Subsequent renders overwrite the first artifact so the viewer can
	// simply reload it.
	opts.output = path
	printSuccess("Watching %s", source.Dir())
	printFile(path)

	if !opts.noOpen {
		if err := openArtifact(path); err != nil {
			loggerFromContext(ctx).Warnf("open %s: %v", path, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	gitDir := filepath.Join(source.Dir(), ".git")
	for _, dir := range []string{gitDir, filepath.Join(gitDir, "refs", "heads"), filepath.Join(gitDir, "refs", "tags")} {
		if _, err := os.Stat(dir); err == nil {
			if err := watcher.Add(dir); err != nil {
				return err
			}
		}
	}

	logger := loggerFromContext(ctx)
	var debounce *time.Timer
	rerender := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreEvent(event) {
				continue
			}
			logger.Debugf("change detected: %s", filepath.Base(event.Name))
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceTime, func() {
				select {
				case rerender <- struct{}{}:
				default:
				}
			})

		case <-rerender:
			if _, err := render(); err != nil {
				// Mid-rebase captures routinely fail; keep watching.
				printError("%v", err)
				continue
			}
			printInfo("Re-rendered at %s", time.Now().Format("15:04:05"))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("watcher error: %v", err)
		}
	}
}

// shouldIgnoreEvent drops .git traffic that never changes the commit graph.
func shouldIgnoreEvent(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return true
	}
	if strings.HasSuffix(base, ".lock") {
		return true
	}
	switch base {
	case "config", "FETCH_HEAD", "index":
		return true
	}
	return false
}
