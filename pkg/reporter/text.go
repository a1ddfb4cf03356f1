package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/shpatch/pkg/runner"
)

// TextReporter renders a run result as plain text, one line per file.
type TextReporter struct {
	opts Options
}

// NewTextReporter creates a text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{opts: opts}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("report: %w", ctx.Err())
	default:
	}

	w := r.opts.Writer
	for _, file := range result.Files {
		if file.Skipped {
			continue
		}
		path := displayPath(file.Path, r.opts.WorkingDir)
		switch {
		case file.Err != nil:
			fmt.Fprintf(w, "%s: error: %v\n", path, file.Err)
		case file.Outcome == nil:
			fmt.Fprintf(w, "%s: no fixes\n", path)
		default:
			fmt.Fprintf(w, "%s: %d applied, %d rejected\n",
				path, len(file.Outcome.Applied), len(file.Outcome.Rejected))
		}
	}

	stats := result.Stats
	fmt.Fprintf(w, "%d files patched, %d fixes applied, %d rejected\n",
		stats.FilesModified, stats.FixesApplied, stats.FixesRejected)
	return nil
}
