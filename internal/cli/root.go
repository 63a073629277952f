// Package cli implements the gitgraph command-line interface.
//
// The single root command drives the whole pipeline: capture git log output,
// parse it into commit records, build and collapse the history graph, emit
// Graphviz DOT, render it to an image and open the artifact. Logging uses
// charmbracelet/log attached to the command context; --verbose (-v) enables
// debug-level stage timing.
//
// Unrecognized positional arguments (everything after --) are passed through
// to git log unmodified, so ranges like `gitgraph -- v1.0..HEAD` work the
// way they do with git itself.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dotgit-tools/gitgraph/pkg/buildinfo"
)

// graphOpts holds the command-line flags for the root command.
type graphOpts struct {
	limit      int      // commit count limit (0 = config default)
	all        bool     // include all branches
	branches   []string // branches to display; empty shows every branch
	paths      []string // restrict history to these paths
	authorTime bool     // author time instead of committer time
	authorName bool     // author name instead of committer name
	cherryPick bool     // detect cherry-picked commits
	revert     bool     // detect revert commits
	strict     bool     // emit a strict digraph
	output     string   // output file path; empty renders to a temp file and opens it
	format     string   // output format token (default from config, usually svg)
	dotArgs    []string // extra flags passed through to the dot binary
	noOpen     bool     // never open the artifact
	watch      bool     // re-render whenever the repository changes
	repo       string   // repository path (default ".")
	extra      []string // positional args passed through to git log
}

// Execute runs the gitgraph CLI.
func Execute(ctx context.Context) error {
	var (
		verbose bool
		opts    graphOpts
	)

	root := &cobra.Command{
		Use:   "gitgraph [-- git log args]",
		Short: "Render a git repository's commit history as an image",
		Long: `gitgraph turns git log output into a Graphviz drawing of the commit
history: branches as colored clusters, tags, merges, cherry-picks and
reverts, with dashed edges standing in for commits outside the loaded
window.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.extra = args
			if opts.watch {
				return runWatch(cmd.Context(), &opts)
			}
			return runGraph(cmd.Context(), &opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.Flags().IntVarP(&opts.limit, "limit", "n", 0, "maximum number of commits (default from config, 100)")
	root.Flags().BoolVar(&opts.all, "all", false, "include all branches")
	root.Flags().StringArrayVar(&opts.branches, "branch", nil, "branch to display (repeatable; default all)")
	root.Flags().StringArrayVar(&opts.paths, "path", nil, "limit history to path (repeatable)")
	root.Flags().BoolVar(&opts.authorTime, "author-time", false, "use author time instead of committer time")
	root.Flags().BoolVar(&opts.authorName, "author-name", false, "use author name instead of committer name")
	root.Flags().BoolVar(&opts.cherryPick, "cherry-pick", false, "detect cherry-picked commits (runs git diff per candidate)")
	root.Flags().BoolVar(&opts.revert, "revert", true, "link revert commits to their origin")
	root.Flags().BoolVar(&opts.strict, "strict", false, "emit a strict digraph")
	root.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: temp file, opened with the platform viewer)")
	root.Flags().StringVarP(&opts.format, "format", "t", "", "output format token passed to the renderer (default svg)")
	root.Flags().StringArrayVar(&opts.dotArgs, "dot-args", nil, "extra argument for the dot binary (repeatable, forces external renderer)")
	root.Flags().BoolVar(&opts.noOpen, "no-open", false, "do not open the generated artifact")
	root.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-render whenever the repository changes")
	root.Flags().StringVarP(&opts.repo, "repo", "C", ".", "repository path")

	return root.ExecuteContext(ctx)
}
