// Package richtext maintains a plain text buffer annotated with overlapping
// inline styles (bold, italic, underline, ...) and keeps the annotated
// structure consistent as the text is edited character-by-character or as
// styles are toggled over selections.
//
// The document is an ordered list of runs. Three invariants hold after every
// public operation:
//
//  1. The concatenation of all run texts equals the current flat text.
//  2. No run has empty text (empty runs are transient inside one edit step).
//  3. No two adjacent runs have point-wise-equal annotation maps.
//
// All offsets in this package are rune offsets, not byte offsets.
package richtext

// Annotations maps a style name to its value: a bool flag (bold=true) or a
// string parameter (color="#ff0000"). A nil map and an empty map are
// equivalent.
type Annotations map[string]any

// Truthy reports whether an annotation value counts as "on".
// nil, false, and "" are off; everything else is on.
func Truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	default:
		return true
	}
}

// Clone returns an independent copy of the annotation map.
func (a Annotations) Clone() Annotations {
	out := make(Annotations, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Equal reports point-wise equality: identical key sets and identical values.
func (a Annotations) Equal(b Annotations) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || bv != v {
			return false
		}
	}
	return true
}

// Active returns the style names whose value is truthy.
func (a Annotations) Active() []string {
	var out []string
	for k, v := range a {
		if Truthy(v) {
			out = append(out, k)
		}
	}
	return out
}

// reconcile applies a toggle delta to a run's current annotations.
// For each key in the delta: a truthy delta value toggles (the result is the
// logical negation of the current value's truthiness, so applying bold to an
// already-bold run turns it off); a falsy delta value is assigned directly.
func reconcile(current, delta Annotations) Annotations {
	out := current.Clone()
	for k, v := range delta {
		if Truthy(v) {
			out[k] = !Truthy(current[k])
		} else {
			out[k] = v
		}
	}
	return out
}

// Run is a maximal contiguous span of text sharing one annotation map.
// Runs are value objects: callers receive copies, never aliases into the
// store's list.
type Run struct {
	Text        string
	Annotations Annotations
}

// runeLen returns the rune length of the run's text.
func (r Run) runeLen() int {
	return len([]rune(r.Text))
}

// clone returns a copy of the run with an independent annotation map.
func (r Run) clone() Run {
	return Run{Text: r.Text, Annotations: r.Annotations.Clone()}
}

// Runs is the ordered run list representing the whole annotated document.
type Runs []Run

// PlainText returns the concatenation of all run texts.
func (rs Runs) PlainText() string {
	var n int
	for _, r := range rs {
		n += len(r.Text)
	}
	buf := make([]byte, 0, n)
	for _, r := range rs {
		buf = append(buf, r.Text...)
	}
	return string(buf)
}

// runeLen returns the total rune length of the document.
func (rs Runs) runeLen() int {
	var n int
	for _, r := range rs {
		n += r.runeLen()
	}
	return n
}

// Clone returns a deep copy of the run list.
func (rs Runs) Clone() Runs {
	out := make(Runs, len(rs))
	for i, r := range rs {
		out[i] = r.clone()
	}
	return out
}

// emptyRuns returns the canonical empty document: a single run with empty
// text and no annotations. The run list is never the empty sequence.
func emptyRuns() Runs {
	return Runs{{Text: "", Annotations: Annotations{}}}
}

// filterEmpty drops runs with empty text. If everything is filtered away the
// canonical empty document is returned instead.
func filterEmpty(rs Runs) Runs {
	out := rs[:0:0]
	for _, r := range rs {
		if r.Text != "" {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return emptyRuns()
	}
	return out
}

// mergeAdjacent concatenates adjacent runs whose annotation maps are
// point-wise equal. Empty annotation sets merge like any other.
func mergeAdjacent(rs Runs) Runs {
	if len(rs) == 0 {
		return rs
	}
	out := make(Runs, 0, len(rs))
	for _, r := range rs {
		if len(out) > 0 && out[len(out)-1].Annotations.Equal(r.Annotations) {
			out[len(out)-1].Text += r.Text
			continue
		}
		out = append(out, r.clone())
	}
	return out
}

// normalize is the common post-mutation pass: drop empty runs, then merge
// adjacent duplicates.
func normalize(rs Runs) Runs {
	return mergeAdjacent(filterEmpty(rs))
}
