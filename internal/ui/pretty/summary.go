package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/shpatch/pkg/patch"
	"github.com/yaklabco/shpatch/pkg/runner"
)

const (
	wordFix   = "fix"
	wordFixes = "fixes"
)

// FormatOutcome formats an apply outcome as a single summary line.
// Example: "2 fixes applied, 1 rejected (2086)".
func (s *Styles) FormatOutcome(outcome *patch.Outcome) string {
	applied := len(outcome.Applied)
	rejected := len(outcome.Rejected)

	if applied == 0 && rejected == 0 {
		return s.Dim.Render("no fixes to apply") + "\n"
	}

	fixWord := wordFixes
	if applied == 1 {
		fixWord = wordFix
	}

	parts := []string{
		s.Success.Render(fmt.Sprintf("%d %s applied", applied, fixWord)),
	}
	if rejected > 0 {
		codes := rejectedCodes(outcome)
		msg := fmt.Sprintf("%d rejected", rejected)
		if codes != "" {
			msg += " (" + codes + ")"
		}
		parts = append(parts, s.Failure.Render(msg))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatRunResult formats a multi-file run as one line per touched file
// plus a totals line.
func (s *Styles) FormatRunResult(result *runner.Result) string {
	var b strings.Builder

	for _, file := range result.Files {
		switch {
		case file.Err != nil:
			fmt.Fprintf(&b, "%s: %s\n", file.Path, s.Failure.Render("error"))
		case file.Skipped:
			// Untargeted files stay silent.
		default:
			fmt.Fprintf(&b, "%s: %s", file.Path, s.FormatOutcome(file.Outcome))
		}
	}

	stats := result.Stats
	fixWord := wordFixes
	if stats.FixesApplied == 1 {
		fixWord = wordFix
	}
	totals := fmt.Sprintf("%d files patched, %d %s applied",
		stats.FilesModified, stats.FixesApplied, fixWord)
	if stats.FixesRejected > 0 {
		totals += fmt.Sprintf(", %d rejected", stats.FixesRejected)
	}
	if stats.FilesErrored > 0 {
		totals += fmt.Sprintf(", %d files failed", stats.FilesErrored)
	}
	b.WriteString(s.Bold.Render(totals) + "\n")

	return b.String()
}

// rejectedCodes joins the distinct diagnostic codes of rejected fixes.
func rejectedCodes(outcome *patch.Outcome) string {
	seen := make(map[string]bool)
	var codes []string
	for _, fix := range outcome.Rejected {
		if fix.Code == "" || seen[fix.Code] {
			continue
		}
		seen[fix.Code] = true
		codes = append(codes, fix.Code)
	}
	return strings.Join(codes, ", ")
}
