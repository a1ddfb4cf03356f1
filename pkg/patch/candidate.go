package patch

// Candidate is a Replacement resolved to absolute byte offsets in the
// original text. Candidates are the unit compared for range conflicts.
type Candidate struct {
	// Start is the byte offset where the replaced span begins (inclusive).
	Start int

	// End is the byte offset where the replaced span ends (exclusive).
	End int

	// StartLine and EndLine are the 1-based original lines the span touches.
	StartLine int
	EndLine   int

	// Precedence and Anchor carry over from the replacement.
	Precedence int
	Anchor     InsertionPoint

	// Text is the replacement text.
	Text string
}

// Len returns the length of the replaced span in bytes.
func (c Candidate) Len() int {
	return c.End - c.Start
}

// delta returns the net length change this candidate contributes.
func (c Candidate) delta() int {
	return len(c.Text) - c.Len()
}

// overlaps reports whether two half-open [Start, End) ranges intersect.
// Adjacent ranges and zero-width inserts at a shared boundary do not overlap.
func (c Candidate) overlaps(other Candidate) bool {
	return c.End > other.Start && other.End > c.Start
}

// buildCandidate resolves one replacement against the source text.
func buildCandidate(src *Source, rep Replacement) Candidate {
	return Candidate{
		Start:      src.resolveOffset(rep.Line, rep.Column),
		End:        src.resolveOffset(rep.EndLine, rep.EndColumn),
		StartLine:  rep.Line,
		EndLine:    rep.EndLine,
		Precedence: rep.Precedence,
		Anchor:     rep.InsertionPoint,
		Text:       rep.Text,
	}
}
