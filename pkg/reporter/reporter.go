// Package reporter renders multi-file patch results for humans and machines.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yaklabco/shpatch/pkg/runner"
)

// Reporter formats and writes a run result.
type Reporter interface {
	// Report writes formatted output for the given result.
	Report(ctx context.Context, result *runner.Result) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// displayPath relativizes path against the working directory when that makes
// it shorter; paths outside the working directory stay absolute.
func displayPath(path, workingDir string) string {
	if workingDir == "" {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}
