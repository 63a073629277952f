package gitlog

import (
	"bufio"
	"io"
	"strings"
)

// Scanner iterates over the records of a single log capture.
// It is finite and not restartable: a fresh capture must be re-parsed from
// the start to produce a new sequence.
//
// Usage follows bufio.Scanner:
//
//	sc := gitlog.NewScanner(r)
//	for sc.Scan() {
//	    rec := sc.Record()
//	    ...
//	}
//	if err := sc.Err(); err != nil { ... }
type Scanner struct {
	src *bufio.Scanner
	rec Record
	err error
}

// NewScanner creates a Scanner reading one record per line from r.
func NewScanner(r io.Reader) *Scanner {
	return &Scanner{src: bufio.NewScanner(r)}
}

// Scan advances to the next record. It returns false at end of input or on
// the first malformed record; Err distinguishes the two.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.src.Scan() {
		line := strings.TrimRight(s.src.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := parseRecord(line)
		if err != nil {
			s.err = err
			return false
		}
		s.rec = rec
		return true
	}
	s.err = s.src.Err()
	return false
}

// Record returns the record produced by the last successful Scan.
func (s *Scanner) Record() Record { return s.rec }

// Err returns the first error encountered, or nil at clean end of input.
func (s *Scanner) Err() error { return s.err }

// ParseAll materializes every record of a capture.
// The graph builder needs the full slice: children are computed in a second
// pass, which rules out streaming consumption.
func ParseAll(r io.Reader) ([]Record, error) {
	var records []Record
	sc := NewScanner(r)
	for sc.Scan() {
		records = append(records, sc.Record())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
