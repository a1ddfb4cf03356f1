package patch_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/shpatch/pkg/patch"
)

func FuzzSessionApply(f *testing.F) {
	f.Add("cd $1", 1, 4, 1, 6, 7, true, `"`)
	f.Add("\t\techo $var", 1, 22, 1, 26, 5, false, "quoted")
	f.Add("foo\nbar\nbaz\n", 2, 1, 2, 4, 0, true, "")
	f.Add("", 1, 1, 1, 1, 3, false, "x")
	f.Add("a", 99, 99, 99, 99, 1, true, "y")

	f.Fuzz(func(t *testing.T, text string, line, col, endLine, endCol, precedence int, before bool, repl string) {
		if line < 1 || endLine < line || col < 1 || endCol < 1 {
			t.Skip()
		}
		if line > 1000 || endLine > 1000 || col > 1000 || endCol > 1000 {
			t.Skip()
		}
		lineCount := strings.Count(text, "\n") + 1
		if endLine > lineCount {
			t.Skip()
		}

		anchor := patch.InsertAfterEnd
		if before {
			anchor = patch.InsertBeforeStart
		}

		session := patch.NewSession(text)
		accepted := session.ApplyFix(&patch.Fix{
			Replacements: []patch.Replacement{
				{
					Line: line, Column: col, EndLine: endLine, EndColumn: endCol,
					Precedence:     precedence,
					InsertionPoint: anchor,
					Text:           repl,
				},
			},
		})

		// Rendering must not panic and must be idempotent.
		first, err := session.Result()
		if err != nil {
			t.Fatalf("Result() error = %v", err)
		}
		second, err := session.Result()
		if err != nil {
			t.Fatalf("second Result() error = %v", err)
		}
		if first != second {
			t.Fatalf("Result() not idempotent: %q then %q", first, second)
		}

		if !accepted && first != text {
			t.Fatalf("rejected fix changed text: %q -> %q", text, first)
		}
		if accepted != session.HasModifications() {
			t.Fatalf("HasModifications() = %v, accepted = %v", session.HasModifications(), accepted)
		}
	})
}
