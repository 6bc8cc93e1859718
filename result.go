package raceid

import (
	"fmt"
	"time"

	"github.com/viant/raceid/service/diff"
)

// Result summarises a transform run.
type Result struct {
	Input     string
	Output    string
	Keys      int      // top-level keys in the document
	Records   int      // records that received an identifier
	Replaced  int      // records that already carried a value under the id field
	Invalid   int      // replaced values that were not canonical v4 UUIDs
	IDs       []string // identifiers in record order
	Preview   bool
	Diff      string
	DiffStats diff.Stats
	Elapsed   time.Duration
}

// Count returns the count reported for mode.
func (r *Result) Count(mode CountMode) int {
	if mode == CountKeys {
		return r.Keys
	}
	return r.Records
}

// Message returns the human readable completion line.
func (r *Result) Message(mode CountMode) string {
	if r.Preview {
		return fmt.Sprintf("🔎 Would add UUIDs to %d races from %s (+%d -%d lines)", r.Count(mode), r.Input, r.DiffStats.Added, r.DiffStats.Removed)
	}
	return fmt.Sprintf("✅ Added UUIDs to %d races. Saved to %s", r.Count(mode), r.Output)
}
