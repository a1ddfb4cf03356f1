package reporter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/shpatch/pkg/patch"
	"github.com/yaklabco/shpatch/pkg/runner"
)

// JSONReporter renders a run result as a single JSON document.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

type jsonReport struct {
	Files  []jsonFile `json:"files"`
	Totals jsonTotals `json:"totals"`
}

type jsonFile struct {
	Path     string    `json:"path"`
	Applied  []jsonFix `json:"applied"`
	Rejected []jsonFix `json:"rejected"`
	Written  bool      `json:"written"`
	Error    string    `json:"error,omitempty"`
}

type jsonFix struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}

type jsonTotals struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesPatched    int `json:"filesPatched"`
	FilesFailed     int `json:"filesFailed"`
	FixesApplied    int `json:"fixesApplied"`
	FixesRejected   int `json:"fixesRejected"`
}

// Report implements Reporter.
func (r *JSONReporter) Report(ctx context.Context, result *runner.Result) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("report: %w", ctx.Err())
	default:
	}

	report := jsonReport{
		Files: make([]jsonFile, 0, len(result.Files)),
		Totals: jsonTotals{
			FilesDiscovered: result.Stats.FilesDiscovered,
			FilesPatched:    result.Stats.FilesModified,
			FilesFailed:     result.Stats.FilesErrored,
			FixesApplied:    result.Stats.FixesApplied,
			FixesRejected:   result.Stats.FixesRejected,
		},
	}

	for _, file := range result.Files {
		if file.Skipped {
			continue
		}
		entry := jsonFile{
			Path:    displayPath(file.Path, r.opts.WorkingDir),
			Written: file.Written,
		}
		if file.Err != nil {
			entry.Error = file.Err.Error()
		}
		if file.Outcome != nil {
			entry.Applied = jsonFixes(file.Outcome.Applied)
			entry.Rejected = jsonFixes(file.Outcome.Rejected)
		}
		report.Files = append(report.Files, entry)
	}

	enc := json.NewEncoder(r.opts.Writer)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// jsonFixes converts fixes to their wire form, never nil so the output
// serializes as [] rather than null.
func jsonFixes(fixes []*patch.Fix) []jsonFix {
	out := make([]jsonFix, 0, len(fixes))
	for _, fix := range fixes {
		out = append(out, jsonFix{Code: fix.Code, Message: fix.Message})
	}
	return out
}
