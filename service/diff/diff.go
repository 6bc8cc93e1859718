// Package diff renders unified diffs between a source document and the
// document a transform would write, used to preview a run without persisting.
package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// Stats captures basic statistics about a unified diff.
type Stats struct {
	Hunks   int // number of @@ sections
	Added   int // lines starting with '+' inside hunks
	Removed int // lines starting with '-' inside hunks
}

// Generate produces a unified diff between oldContent and newContent.
// Identical inputs yield an empty diff and zero stats. A negative
// contextLines uses 3; zero emits changed lines only.
func Generate(oldContent, newContent []byte, fromURL, toURL string, contextLines int) (string, Stats, error) {
	if contextLines < 0 {
		contextLines = 3
	}
	if string(oldContent) == string(newContent) {
		return "", Stats{}, nil
	}

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(oldContent)),
		B:        difflib.SplitLines(string(newContent)),
		FromFile: fromURL,
		ToFile:   toURL,
		Context:  contextLines,
	}
	patch, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", Stats{}, fmt.Errorf("failed to generate diff: %w", err)
	}
	stats, err := Parse(patch)
	if err != nil {
		return "", Stats{}, err
	}
	return patch, stats, nil
}

// Parse computes Stats for a single-file unified diff.
func Parse(patch string) (Stats, error) {
	if patch == "" {
		return Stats{}, nil
	}
	fileDiff, err := sgdiff.ParseFileDiff([]byte(patch))
	if err != nil {
		return Stats{}, fmt.Errorf("failed to parse diff: %w", err)
	}
	stats := Stats{Hunks: len(fileDiff.Hunks)}
	for _, hunk := range fileDiff.Hunks {
		for _, line := range strings.Split(string(hunk.Body), "\n") {
			switch {
			case strings.HasPrefix(line, "+"):
				stats.Added++
			case strings.HasPrefix(line, "-"):
				stats.Removed++
			}
		}
	}
	return stats, nil
}
