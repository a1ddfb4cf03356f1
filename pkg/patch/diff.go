package patch

import (
	"fmt"
	"strings"
)

// Diff is a unified diff between the original and patched text.
type Diff struct {
	// Path is the file path used in the diff headers.
	Path string

	// Hunks contains the grouped changes with context.
	Hunks []DiffHunk

	// Additions and Deletions count changed lines.
	Additions int
	Deletions int
}

// DiffHunk is one hunk of a unified diff.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	PatchedStart  int
	PatchedCount  int
	Lines         []DiffLine
}

// DiffLine is a single line within a hunk.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind indicates the type of diff line.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// contextLines is the number of context lines shown around changes.
const contextLines = 3

// GenerateDiff creates a unified diff between original and patched content.
// Returns nil when there are no changes.
func GenerateDiff(path, original, patched string) *Diff {
	orig := splitDiffLines(original)
	mod := splitDiffLines(patched)

	ops := diffOps(orig, mod)
	hunks := groupHunks(ops)
	if len(hunks) == 0 {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				d.Additions++
			case DiffLineRemove:
				d.Deletions++
			}
		}
	}
	return d
}

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.PatchedStart, hunk.PatchedCount)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineContext:
				fmt.Fprintf(&b, " %s\n", line.Content)
			case DiffLineAdd:
				fmt.Fprintf(&b, "+%s\n", line.Content)
			case DiffLineRemove:
				fmt.Fprintf(&b, "-%s\n", line.Content)
			}
		}
	}
	return b.String()
}

// splitDiffLines splits content into lines, dropping a trailing empty line
// produced by a final newline.
func splitDiffLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type diffOp struct {
	kind    DiffLineKind
	content string
}

// diffOps builds the flat add/remove/context sequence from an LCS of the
// two line slices.
func diffOps(orig, mod []string) []diffOp {
	common := lcsLines(orig, mod)

	var ops []diffOp
	oi, mi, ci := 0, 0, 0
	for oi < len(orig) || mi < len(mod) {
		if ci < len(common) && oi < len(orig) && mi < len(mod) &&
			orig[oi] == common[ci] && mod[mi] == common[ci] {
			ops = append(ops, diffOp{kind: DiffLineContext, content: orig[oi]})
			oi++
			mi++
			ci++
			continue
		}
		for oi < len(orig) && (ci >= len(common) || orig[oi] != common[ci]) {
			ops = append(ops, diffOp{kind: DiffLineRemove, content: orig[oi]})
			oi++
		}
		for mi < len(mod) && (ci >= len(common) || mod[mi] != common[ci]) {
			ops = append(ops, diffOp{kind: DiffLineAdd, content: mod[mi]})
			mi++
		}
	}
	return ops
}

// groupHunks groups change runs into hunks, merging runs separated by at
// most two context windows.
func groupHunks(ops []diffOp) []DiffHunk {
	type span struct{ start, end int }

	var runs []span
	open := -1
	for i, op := range ops {
		if op.kind != DiffLineContext {
			if open < 0 {
				open = i
			}
		} else if open >= 0 {
			runs = append(runs, span{open, i})
			open = -1
		}
	}
	if open >= 0 {
		runs = append(runs, span{open, len(ops)})
	}
	if len(runs) == 0 {
		return nil
	}

	var hunks []DiffHunk
	for i := 0; i < len(runs); {
		j := i + 1
		for j < len(runs) && runs[j].start-runs[j-1].end <= contextLines*2 {
			j++
		}
		hunks = append(hunks, buildHunk(ops, runs[i].start, runs[j-1].end))
		i = j
	}
	return hunks
}

func buildHunk(ops []diffOp, changeStart, changeEnd int) DiffHunk {
	start := max(changeStart-contextLines, 0)
	end := min(changeEnd+contextLines, len(ops))

	hunk := DiffHunk{OriginalStart: 1, PatchedStart: 1}
	for i := range start {
		if ops[i].kind != DiffLineAdd {
			hunk.OriginalStart++
		}
		if ops[i].kind != DiffLineRemove {
			hunk.PatchedStart++
		}
	}

	for i := start; i < end; i++ {
		hunk.Lines = append(hunk.Lines, DiffLine{Kind: ops[i].kind, Content: ops[i].content})
		switch ops[i].kind {
		case DiffLineContext:
			hunk.OriginalCount++
			hunk.PatchedCount++
		case DiffLineRemove:
			hunk.OriginalCount++
		case DiffLineAdd:
			hunk.PatchedCount++
		}
	}
	return hunk
}

// lcsLines computes the longest common subsequence of two line slices.
func lcsLines(orig, mod []string) []string {
	if len(orig) == 0 || len(mod) == 0 {
		return nil
	}

	dp := make([][]int, len(orig)+1)
	for i := range dp {
		dp[i] = make([]int, len(mod)+1)
	}
	for i := 1; i <= len(orig); i++ {
		for j := 1; j <= len(mod); j++ {
			if orig[i-1] == mod[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	out := make([]string, dp[len(orig)][len(mod)])
	i, j, k := len(orig), len(mod), len(out)-1
	for i > 0 && j > 0 {
		switch {
		case orig[i-1] == mod[j-1]:
			out[k] = orig[i-1]
			i--
			j--
			k--
		case dp[i-1][j] > dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	return out
}
