package patch

import "strings"

// tabStop is the tab width assumed by analysis tools when reporting columns.
// Tool output counts a tab as advancing to the next multiple of 8.
const tabStop = 8

// Source holds an immutable input text together with its line-offset table.
// All offset arithmetic performed during patching is anchored to the original
// text; a Source is never mutated.
type Source struct {
	text    string
	lines   []string
	offsets []int
}

// NewSource splits text into lines and builds the line-offset table.
func NewSource(text string) *Source {
	lines := strings.Split(text, "\n")

	// One offset per line plus a terminal sentinel equal to the total
	// length. Offsets are strictly increasing.
	offsets := make([]int, len(lines)+1)
	for i, line := range lines {
		offsets[i+1] = offsets[i] + len(line) + 1
	}
	offsets[len(lines)] = len(text)

	return &Source{
		text:    text,
		lines:   lines,
		offsets: offsets,
	}
}

// Text returns the original text.
func (s *Source) Text() string {
	return s.text
}

// Len returns the length of the original text in bytes.
func (s *Source) Len() int {
	return len(s.text)
}

// LineCount returns the number of lines in the original text.
func (s *Source) LineCount() int {
	return len(s.lines)
}

// Line returns the content of the 1-based line number, without the newline.
// Returns the empty string for out-of-range lines.
func (s *Source) Line(line int) string {
	if line < 1 || line > len(s.lines) {
		return ""
	}
	return s.lines[line-1]
}

// LineStart returns the byte offset of the first character of the 1-based
// line number. A line number one past the last line yields the total length.
func (s *Source) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(s.lines) {
		return len(s.text)
	}
	return s.offsets[line-1]
}

// translateColumn converts a logical (tab-stop-aware) column into a 1-based
// physical byte column within the given line. Logical columns advance by one
// per character; a tab jumps the logical cursor to the next multiple of
// tabStop. The returned column is the byte index of the first character whose
// logical position reaches or exceeds logicalCol.
//
// If logicalCol lies beyond the logical end of the line (the tool both emits
// one-past-end columns for insertions and is trusted but not verified), the
// physical end of line is returned.
func (s *Source) translateColumn(line, logicalCol int) int {
	text := s.Line(line)

	logical := 1
	for i, r := range text {
		if logical >= logicalCol {
			return i + 1
		}
		if r == '\t' {
			logical = ((logical-1)/tabStop+1)*tabStop + 1
		} else {
			logical++
		}
	}
	return len(text) + 1
}

// resolveOffset converts a 1-based line and logical column into a 0-based
// byte offset into the original text.
func (s *Source) resolveOffset(line, logicalCol int) int {
	return s.LineStart(line) + s.translateColumn(line, logicalCol) - 1
}
