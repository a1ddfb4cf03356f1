// Package patch applies batches of analysis-tool fix suggestions onto a
// single source text. Fixes arrive in logical (tab-stop-aware) line/column
// coordinates; each fix's replacements are admitted atomically, checked for
// range conflicts against previously accepted edits, and spliced onto the
// text with cumulative offset tracking.
package patch

import "sort"

// Session owns one original text and the set of edits accepted against it.
// A Session is not safe for concurrent mutation; callers sharing one across
// goroutines must serialize ApplyFix, ApplyFixes, and Reset themselves.
type Session struct {
	src      *Source
	accepted []Candidate
}

// Outcome partitions a batch of submitted fixes for caller reporting.
type Outcome struct {
	Applied  []*Fix
	Rejected []*Fix
}

// NewSession creates a session over an immutable copy of text.
func NewSession(text string) *Session {
	return &Session{src: NewSource(text)}
}

// Source returns the session's immutable source text.
func (s *Session) Source() *Source {
	return s.src
}

// ApplyFix attempts to admit all of a fix's replacements. The fix is
// accepted only as a whole: if any resolved range overlaps an already
// accepted edit, none of its replacements are admitted. Fixes with no
// replacements are rejected.
//
// Replacements within the same fix are checked against the accepted set
// only, not against each other; a self-overlapping bundle is admitted as the
// tool produced it.
func (s *Session) ApplyFix(fix *Fix) bool {
	if !fix.HasReplacements() {
		return false
	}

	candidates := make([]Candidate, 0, len(fix.Replacements))
	for _, rep := range fix.Replacements {
		cand := buildCandidate(s.src, rep)
		for _, existing := range s.accepted {
			if cand.overlaps(existing) {
				return false
			}
		}
		candidates = append(candidates, cand)
	}

	s.accepted = append(s.accepted, candidates...)
	return true
}

// ApplyFixes applies fixes in input order. Order matters: an accepted fix
// causes later fixes overlapping its ranges to be rejected.
func (s *Session) ApplyFixes(fixes []*Fix) *Outcome {
	out := &Outcome{}
	for _, fix := range fixes {
		if s.ApplyFix(fix) {
			out.Applied = append(out.Applied, fix)
		} else {
			out.Rejected = append(out.Rejected, fix)
		}
	}
	return out
}

// HasModifications returns true if at least one fix has been accepted.
func (s *Session) HasModifications() bool {
	return len(s.accepted) > 0
}

// Reset discards all accepted edits. The source text is unchanged.
func (s *Session) Reset() {
	s.accepted = nil
}

// Result renders the fully patched text from the original text and the
// accepted edits. It is idempotent: the shift tracker is rebuilt from
// scratch on every call.
func (s *Session) Result() (string, error) {
	text, _, err := s.render()
	return text, err
}

// Snippet renders only the region touched by accepted edits, trimmed to
// whole original-line boundaries (trailing newline included). Returns
// ErrNoFixes when nothing has been accepted.
func (s *Session) Snippet() (string, error) {
	if len(s.accepted) == 0 {
		return "", ErrNoFixes
	}

	text, shifts, err := s.render()
	if err != nil {
		return "", err
	}

	firstLine := s.accepted[0].StartLine
	lastLine := s.accepted[0].EndLine
	for _, cand := range s.accepted[1:] {
		if cand.StartLine < firstLine {
			firstLine = cand.StartLine
		}
		if cand.EndLine > lastLine {
			lastLine = cand.EndLine
		}
	}

	// Slice boundaries are original-text offsets shifted into the patched
	// text. The start lookup is exclusive of pivots at the line start so
	// insertions at the first column stay inside the snippet.
	begin := s.src.LineStart(firstLine)
	start := begin + shifts.lookup(begin-1)

	// When the last touched line is the final line, run to the end of the
	// rendered text so appends past a missing trailing newline are kept.
	if lastLine >= s.src.LineCount() {
		return text[start:], nil
	}
	end := s.src.LineStart(lastLine + 1)
	return text[start : end+shifts.lookup(end)], nil
}

// render splices all accepted candidates onto a working copy of the text.
//
// Candidates are sorted by descending precedence (stable, so submission
// order breaks ties) and spliced in reverse of that order: the highest
// precedence edits land on the text last, which puts them innermost when
// several insertions stack at one pivot (the wrap-with-quotes pattern).
// Each candidate's effective offsets are recomputed from the shift tree
// immediately before its splice.
func (s *Session) render() (string, *shiftTree, error) {
	ordered := make([]Candidate, len(s.accepted))
	copy(ordered, s.accepted)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Precedence > ordered[j].Precedence
	})

	shifts := &shiftTree{}
	text := s.src.Text()
	for i := len(ordered) - 1; i >= 0; i-- {
		cand := ordered[i]

		pivot := 0
		switch cand.Anchor {
		case InsertBeforeStart:
			pivot = cand.Start
		case InsertAfterEnd:
			pivot = cand.End + 1
		default:
			return "", nil, &AnchorError{Anchor: cand.Anchor}
		}

		// Accepted ranges are pairwise disjoint, so the candidate's
		// original span survives intact in the working text; the span
		// length is taken from the candidate, not from a second lookup,
		// which would distort it when a previously spliced edit's pivot
		// falls inside the span.
		start := cand.Start + shifts.lookup(cand.Start)
		if start < 0 {
			start = 0
		} else if start > len(text) {
			start = len(text)
		}
		end := start + cand.Len()
		if end > len(text) {
			end = len(text)
		}
		text = text[:start] + cand.Text + text[end:]
		shifts.insert(pivot, cand.delta())
	}

	return text, shifts, nil
}
