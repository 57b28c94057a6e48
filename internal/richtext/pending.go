package richtext

// pendingStyle is an armed annotation delta awaiting the next character
// insertion at a collapsed cursor. It lives at most one edit cycle: it is
// consumed by the very next insertion whose diff start equals the anchor,
// and discarded by any other edit or toggle.
type pendingStyle struct {
	Start       int
	End         int
	Annotations Annotations
}

// collapsed reports whether the pending anchor is a caret, not a range.
func (p *pendingStyle) collapsed() bool {
	return p.Start == p.End
}

// consumes reports whether the given edit is the insertion this pending
// style was armed for: a pure insertion starting exactly at the anchor of a
// collapsed pending selection.
func (p *pendingStyle) consumes(d Diff) bool {
	return p.collapsed() && d.Removed == "" && d.Added != "" && d.Start == p.Start
}
