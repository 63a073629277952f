package gitlog

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dotgit-tools/gitgraph/pkg/errors"
)

// Options selects what a log capture contains.
type Options struct {
	AllBranches bool     // include every branch (--all)
	Limit       int      // maximum number of commits; 0 means no explicit limit
	Paths       []string // restrict history to these paths
	AuthorTime  bool     // use author time instead of committer time
	AuthorName  bool     // use author name instead of committer name
	Extra       []string // raw arguments passed through to git log unmodified
}

// Source produces raw log captures. The core pipeline depends only on this
// interface so it can be tested without a git subprocess.
type Source interface {
	// Log returns the raw capture text for the given options.
	Log(ctx context.Context, opts Options) (string, error)
}

// DiffHasher fingerprints a commit's diff. Cherry-pick detection compares
// fingerprints of commits sharing a subject line.
type DiffHasher interface {
	DiffHash(ctx context.Context, hash string) (string, error)
}

// CLISource captures history by running the git binary against a repository.
type CLISource struct {
	dir string // repository root
}

// NewCLISource resolves repoPath to its repository root and returns a source
// bound to it. Resolution failures surface as UPSTREAM_ERROR.
func NewCLISource(repoPath string) (*CLISource, error) {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", repoPath)
	}
	tmp := &CLISource{dir: abs}
	root, err := tmp.run(context.Background(), "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errors.New(errors.ErrCodeUpstream, "git rev-parse returned empty root for %s", abs)
	}
	return &CLISource{dir: root}, nil
}

// Dir returns the resolved repository root.
func (s *CLISource) Dir() string { return s.dir }

// Log implements Source by invoking git log with the capture format from
// FormatSpec. A non-zero exit or an empty capture is an UPSTREAM_ERROR.
func (s *CLISource) Log(ctx context.Context, opts Options) (string, error) {
	args := []string{"log", "--pretty=format:" + FormatSpec(opts.AuthorTime, opts.AuthorName)}
	if opts.AllBranches {
		args = append(args, "--all")
	}
	if opts.Limit > 0 {
		args = append(args, "-n", strconv.Itoa(opts.Limit))
	}
	args = append(args, opts.Extra...)
	if len(opts.Paths) > 0 {
		args = append(args, "--")
		args = append(args, opts.Paths...)
	}

	out, err := s.run(ctx, args...)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) == "" {
		return "", errors.New(errors.ErrCodeUpstream, "%s produced no commits", cmdline("git", args))
	}
	return out, nil
}

// DiffHash implements DiffHasher. The fingerprint is the SHA-1 of the
// added/removed lines of the commit's diff, so identical changes hash equal
// regardless of surrounding context or metadata.
func (s *CLISource) DiffHash(ctx context.Context, hash string) (string, error) {
	out, err := s.run(ctx, "diff", hash+"^", hash)
	if err != nil {
		// Root commits have no first parent; fall back to the full patch.
		out, err = s.run(ctx, "show", "--pretty=format:", hash)
		if err != nil {
			return "", err
		}
	}

	sum := sha1.New()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-") {
			fmt.Fprintln(sum, line)
		}
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}

// run executes git -C <dir> <args> and returns stdout.
// Stderr is folded into the error to keep git's own diagnostic visible.
func (s *CLISource) run(ctx context.Context, args ...string) (string, error) {
	cmdArgs := append([]string{"-C", s.dir}, args...)
	cmd := exec.CommandContext(ctx, "git", cmdArgs...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", errors.Wrap(errors.ErrCodeUpstream, err, "%s: %s", cmdline("git", args), msg)
		}
		return "", errors.Wrap(errors.ErrCodeUpstream, err, "%s", cmdline("git", args))
	}
	return stdout.String(), nil
}
