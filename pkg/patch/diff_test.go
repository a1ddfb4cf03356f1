package patch_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/shpatch/pkg/patch"
)

func TestGenerateDiffNoChanges(t *testing.T) {
	t.Parallel()

	if diff := patch.GenerateDiff("a.sh", "foo\nbar\n", "foo\nbar\n"); diff != nil {
		t.Errorf("GenerateDiff() = %+v, want nil", diff)
	}
}

func TestGenerateDiffSingleLineChange(t *testing.T) {
	t.Parallel()

	diff := patch.GenerateDiff("script.sh", "foo\ncd foo\nbar\n", "foo\ncd foo || exit\nbar\n")
	if diff == nil {
		t.Fatal("GenerateDiff() = nil, want diff")
	}
	if diff.Additions != 1 || diff.Deletions != 1 {
		t.Errorf("additions/deletions = %d/%d, want 1/1", diff.Additions, diff.Deletions)
	}

	out := diff.String()
	for _, want := range []string{
		"--- a/script.sh",
		"+++ b/script.sh",
		"-cd foo",
		"+cd foo || exit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("diff output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateDiffHunkHeaders(t *testing.T) {
	t.Parallel()

	original := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\nk\nl\n"
	modified := "a\nB\nc\nd\ne\nf\ng\nh\ni\nj\nK\nl\n"

	diff := patch.GenerateDiff("x.sh", original, modified)
	if diff == nil {
		t.Fatal("GenerateDiff() = nil, want diff")
	}

	// Changes at lines 2 and 11 are far enough apart for two hunks.
	if len(diff.Hunks) != 2 {
		t.Fatalf("hunks = %d, want 2", len(diff.Hunks))
	}
	if diff.Hunks[0].OriginalStart != 1 {
		t.Errorf("first hunk start = %d, want 1", diff.Hunks[0].OriginalStart)
	}
	if diff.Hunks[1].OriginalStart != 8 {
		t.Errorf("second hunk start = %d, want 8", diff.Hunks[1].OriginalStart)
	}
}

func TestGenerateDiffAddedTrailingLine(t *testing.T) {
	t.Parallel()

	diff := patch.GenerateDiff("x.sh", "one\n", "one\ntwo\n")
	if diff == nil {
		t.Fatal("GenerateDiff() = nil, want diff")
	}
	if diff.Additions != 1 || diff.Deletions != 0 {
		t.Errorf("additions/deletions = %d/%d, want 1/0", diff.Additions, diff.Deletions)
	}
}

func TestDiffStringNil(t *testing.T) {
	t.Parallel()

	var diff *patch.Diff
	if got := diff.String(); got != "" {
		t.Errorf("nil diff String() = %q, want empty", got)
	}
}
