package patch

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// InsertionPoint anchors where a replacement's length delta is recorded for
// downstream offset translation.
type InsertionPoint string

const (
	// InsertBeforeStart anchors the delta at the replacement's start offset.
	InsertBeforeStart InsertionPoint = "beforeStart"

	// InsertAfterEnd anchors the delta one past the replacement's end offset.
	InsertAfterEnd InsertionPoint = "afterEnd"
)

// Replacement is a single proposed edit as reported by the analysis tool, in
// 1-based logical (tab-stop-aware) line/column coordinates.
type Replacement struct {
	// Line and Column locate the start of the replaced span (inclusive).
	Line   int `json:"line"`
	Column int `json:"column"`

	// EndLine and EndColumn locate the end of the replaced span (exclusive).
	EndLine   int `json:"endLine"`
	EndColumn int `json:"endColumn"`

	// Precedence orders splicing among accepted replacements; higher values
	// are spliced onto the text first.
	Precedence int `json:"precedence"`

	// InsertionPoint is the anchor for the replacement's length delta.
	InsertionPoint InsertionPoint `json:"insertionPoint"`

	// Text is the replacement text.
	Text string `json:"replacement"`
}

// Fix is a diagnostic-attached bundle of coordinated replacements. A fix with
// no replacements cannot be applied.
type Fix struct {
	// File is the path the diagnostic was reported against, as written by the
	// tool. Empty when the input is not file-scoped.
	File string

	// Code is the diagnostic code that produced this fix (e.g. "SC2086").
	Code string

	// Message is the human-readable diagnostic message, if any.
	Message string

	// Replacements is the ordered replacement bundle. Empty means the
	// diagnostic carried no fix.
	Replacements []Replacement
}

// HasReplacements returns true if the fix carries at least one replacement.
func (f *Fix) HasReplacements() bool {
	return f != nil && len(f.Replacements) > 0
}

// fixJSON mirrors the two wire shapes a fix record may take: a bare
// replacement bundle, or a diagnostic wrapper with a nested "fix" object.
type fixJSON struct {
	File string `json:"file"`
	// Code is a number in tool output but a string in some wrappers.
	Code         any           `json:"code"`
	Message      string        `json:"message"`
	Replacements []Replacement `json:"replacements"`
	Fix          *struct {
		Replacements []Replacement `json:"replacements"`
	} `json:"fix"`
}

// UnmarshalJSON decodes either wire shape into the single tagged
// representation. The bare bundle wins when both are present.
func (f *Fix) UnmarshalJSON(data []byte) error {
	var raw fixJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.File = raw.File
	f.Code = formatCode(raw.Code)
	f.Message = raw.Message
	f.Replacements = raw.Replacements
	if len(f.Replacements) == 0 && raw.Fix != nil {
		f.Replacements = raw.Fix.Replacements
	}
	return nil
}

// formatCode normalizes a wire-level diagnostic code to a string.
func formatCode(code any) string {
	switch v := code.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.Itoa(int(v))
	default:
		return fmt.Sprint(v)
	}
}
