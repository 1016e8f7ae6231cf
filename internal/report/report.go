// Package report aggregates per-row outcomes of a transform run into a
// summary that is printed regardless of how the run ends.
package report

import (
	"fmt"
	"strings"
)

// MaxSamples caps how many row errors a summary retains verbatim.
const MaxSamples = 10

// RowError describes a single non-fatal row-level problem.
type RowError struct {
	Line    int // 1-based line in the source file (header is line 1)
	Field   string
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Field, e.Message)
}

// Summary counts row outcomes for one transform run.
type Summary struct {
	Processed int // rows fully emitted
	Skipped   int // rows missing a required key
	Failed    int // rows with unparseable content
	Samples   []RowError
}

// RecordSkip counts a row dropped for a missing required key.
func (s *Summary) RecordSkip(line int, field, msg string) {
	s.Skipped++
	s.sample(RowError{Line: line, Field: field, Message: msg})
}

// RecordFailure counts a row dropped for unparseable content.
func (s *Summary) RecordFailure(line int, field, msg string) {
	s.Failed++
	s.sample(RowError{Line: line, Field: field, Message: msg})
}

func (s *Summary) sample(e RowError) {
	if len(s.Samples) < MaxSamples {
		s.Samples = append(s.Samples, e)
	}
}

// Clean reports whether every row was processed.
func (s Summary) Clean() bool {
	return s.Skipped == 0 && s.Failed == 0
}

// String renders the human-readable run summary.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "processed %d rows, skipped %d, failed %d", s.Processed, s.Skipped, s.Failed)
	if len(s.Samples) > 0 {
		fmt.Fprintf(&b, "\nfirst %d row errors:", len(s.Samples))
		for _, e := range s.Samples {
			fmt.Fprintf(&b, "\n  %s", e.Error())
		}
	}
	return b.String()
}
