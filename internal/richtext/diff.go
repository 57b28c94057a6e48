package richtext

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff is the minimal (start, removed, added) description of how one text
// snapshot became the next. Start is a rune offset into the previous text.
// It is transient: produced and consumed within a single edit cycle.
type Diff struct {
	Start   int
	Removed string
	Added   string
}

// IsZero reports whether the diff describes no change.
func (d Diff) IsZero() bool {
	return d.Removed == "" && d.Added == ""
}

// ComputeDiff computes the single minimal edit between two text snapshots:
// the longest common prefix, the longest common suffix (bounded so the two
// scans never overlap), and the non-matching middle of each string.
//
// This is not a general LCS diff. Text-input change events are always one
// contiguous insertion, deletion, or replacement at a single caret or
// selection position, so one contiguous edit region is sufficient.
func ComputeDiff(prev, next string) Diff {
	dmp := diffmatchpatch.New()
	prefix := dmp.DiffCommonPrefix(prev, next)
	suffix := dmp.DiffCommonSuffix(prev, next)

	p := []rune(prev)
	n := []rune(next)
	shorter := len(p)
	if len(n) < shorter {
		shorter = len(n)
	}
	// Never let prefix and suffix claim the same runes.
	if prefix+suffix > shorter {
		suffix = shorter - prefix
	}

	return Diff{
		Start:   prefix,
		Removed: string(p[prefix : len(p)-suffix]),
		Added:   string(n[prefix : len(n)-suffix]),
	}
}
