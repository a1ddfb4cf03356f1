package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/shpatch/pkg/patch"
)

// FormatDiff renders a unified diff with per-line severity colors.
func (s *Styles) FormatDiff(diff *patch.Diff) string {
	if diff == nil || len(diff.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(diff.Path, "/")

	var builder strings.Builder
	builder.WriteString(s.DiffHeader.Render(fmt.Sprintf("--- a/%s", path)) + "\n")
	builder.WriteString(s.DiffHeader.Render(fmt.Sprintf("+++ b/%s", path)) + "\n")

	for _, hunk := range diff.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.PatchedStart, hunk.PatchedCount)
		builder.WriteString(s.DiffHunk.Render(header) + "\n")

		for _, line := range hunk.Lines {
			switch line.Kind {
			case patch.DiffLineAdd:
				builder.WriteString(s.DiffAdd.Render("+"+line.Content) + "\n")
			case patch.DiffLineRemove:
				builder.WriteString(s.DiffRemove.Render("-"+line.Content) + "\n")
			case patch.DiffLineContext:
				builder.WriteString(s.DiffContext.Render(" "+line.Content) + "\n")
			}
		}
	}

	return builder.String()
}
