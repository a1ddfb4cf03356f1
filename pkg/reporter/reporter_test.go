package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/shpatch/pkg/patch"
	"github.com/yaklabco/shpatch/pkg/reporter"
	"github.com/yaklabco/shpatch/pkg/runner"
)

func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{
				Path: "/work/a.sh",
				Outcome: &patch.Outcome{
					Applied: []*patch.Fix{
						{Code: "2086", Message: "Double quote to prevent globbing."},
						{Code: "2164"},
					},
				},
				Written: true,
			},
			{
				Path: "/work/b.sh",
				Outcome: &patch.Outcome{
					Rejected: []*patch.Fix{{Code: "2046"}},
				},
			},
			{Path: "/work/c.sh", Skipped: true},
			{Path: "/work/d.sh", Err: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 4,
			FilesProcessed:  2,
			FilesSkipped:    1,
			FilesErrored:    1,
			FilesModified:   1,
			FixesApplied:    2,
			FixesRejected:   1,
		},
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "", want: reporter.FormatText},
		{input: "text", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "sarif", wantErr: true},
		{input: "yaml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseFormat(%q): want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTextReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := reporter.New(reporter.Options{
		Writer:     &buf,
		Format:     reporter.FormatText,
		WorkingDir: "/work",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := r.Report(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"a.sh: 2 applied, 0 rejected",
		"b.sh: 0 applied, 1 rejected",
		"d.sh: error: permission denied",
		"1 files patched, 2 fixes applied, 1 rejected",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "c.sh") {
		t.Errorf("skipped file reported:\n%s", out)
	}
}

func TestJSONReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := reporter.New(reporter.Options{
		Writer:     &buf,
		Format:     reporter.FormatJSON,
		Compact:    true,
		WorkingDir: "/work",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := r.Report(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Report: %v", err)
	}

	var decoded struct {
		Files []struct {
			Path     string `json:"path"`
			Written  bool   `json:"written"`
			Error    string `json:"error"`
			Applied  []struct{ Code string }
			Rejected []struct{ Code string }
		} `json:"files"`
		Totals struct {
			FilesPatched  int `json:"filesPatched"`
			FixesApplied  int `json:"fixesApplied"`
			FixesRejected int `json:"fixesRejected"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}

	if len(decoded.Files) != 3 {
		t.Fatalf("len(files) = %d, want 3 (skipped excluded)", len(decoded.Files))
	}
	if decoded.Files[0].Path != "a.sh" || !decoded.Files[0].Written {
		t.Errorf("files[0] = %+v", decoded.Files[0])
	}
	if len(decoded.Files[0].Applied) != 2 {
		t.Errorf("files[0].applied = %d, want 2", len(decoded.Files[0].Applied))
	}
	if decoded.Files[2].Error == "" {
		t.Error("files[2].error empty, want message")
	}
	if decoded.Totals.FixesApplied != 2 || decoded.Totals.FixesRejected != 1 {
		t.Errorf("totals = %+v", decoded.Totals)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := reporter.New(reporter.Options{Format: "sarif"}); err == nil {
		t.Error("New with unknown format: want error")
	}
}
