package patch

import (
	"errors"
	"fmt"
)

// ErrNoFixes is returned by Snippet when no fixes have been accepted, so
// there is no touched region to extract.
var ErrNoFixes = errors.New("no accepted fixes to render")

// AnchorError reports a replacement with an unrecognized insertion point.
// This indicates a malformed fix payload from the upstream tool; unlike an
// ordinary rejection it is surfaced as a fatal error rather than filtered.
type AnchorError struct {
	Anchor InsertionPoint
}

func (e *AnchorError) Error() string {
	return fmt.Sprintf("unrecognized insertion point %q", string(e.Anchor))
}
