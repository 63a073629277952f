// Package gitlog captures and parses the delimited output of git log.
//
// A capture is one line per commit, with fields joined by the ASCII unit
// separator (0x1f). Git subjects cannot contain 0x1f or newlines, so field
// boundaries never collide with content. The capture format is produced by
// [FormatSpec] and consumed by [Scanner] or [ParseAll].
package gitlog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dotgit-tools/gitgraph/pkg/errors"
)

// fieldSep is the field separator within one record line. The pretty-format
// placeholder %x1f makes git emit the raw byte.
const fieldSep = "\x1f"

// recordFields is the number of fields in one record:
// hash, short hash, parents, decoration, actor, timestamp, subject.
const recordFields = 7

// Record is one structured commit entry from a log capture.
// It is a plain parse result; graph semantics live in pkg/history.
type Record struct {
	Hash       string    // full commit hash, globally unique
	ShortHash  string    // abbreviated hash used for display labels
	Parents    []string  // parent hashes in order; empty for a root commit
	Decoration string    // ref names attached to the commit, e.g. "HEAD -> main, tag: v1.0"
	Actor      string    // author or committer name, per capture options
	Time       time.Time // author or committer time, per capture options
	Subject    string    // first line of the commit message
}

// IsMerge reports whether the record has two or more parents.
func (r Record) IsMerge() bool { return len(r.Parents) >= 2 }

// FormatSpec returns the git pretty-format string for a capture.
// authorTime selects %at over %ct, authorName selects %an over %cn,
// mirroring git log's --author-date / committer toggles.
func FormatSpec(authorTime, authorName bool) string {
	timeField := "%ct"
	if authorTime {
		timeField = "%at"
	}
	nameField := "%cn"
	if authorName {
		nameField = "%an"
	}
	fields := []string{"%H", "%h", "%P", "%d", nameField, timeField, "%s"}
	return strings.Join(fields, "%x1f")
}

// parseRecord splits one capture line into a Record.
// A field count mismatch fails the whole capture: a partially parsed history
// would render a misleading graph.
func parseRecord(line string) (Record, error) {
	fields := strings.Split(line, fieldSep)
	if len(fields) != recordFields {
		return Record{}, errors.New(errors.ErrCodeParse,
			"malformed log record (%d fields, want %d): %q", len(fields), recordFields, line)
	}

	secs, err := strconv.ParseInt(strings.TrimSpace(fields[5]), 10, 64)
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeParse, err, "malformed timestamp in record %q", line)
	}

	return Record{
		Hash:       fields[0],
		ShortHash:  fields[1],
		Parents:    strings.Fields(fields[2]),
		Decoration: strings.TrimSpace(fields[3]),
		Actor:      fields[4],
		Time:       time.Unix(secs, 0).UTC(),
		Subject:    fields[6],
	}, nil
}

// cmdline formats an argv for error messages.
func cmdline(name string, args []string) string {
	return fmt.Sprintf("%s %s", name, strings.Join(args, " "))
}
