package richtext

// markupMatch is one balanced delimiter pair found in flat text. start and
// end are rune offsets covering the opening literal through the end of the
// closing literal.
type markupMatch struct {
	pattern Pattern
	start   int
	end     int
}

// runeIndex returns the rune offset of the first occurrence of lit in runes
// at or after from, or -1.
func runeIndex(runes, lit []rune, from int) int {
	if len(lit) == 0 {
		return -1
	}
	for i := from; i+len(lit) <= len(runes); i++ {
		match := true
		for j := range lit {
			if runes[i+j] != lit[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// findMatch scans for the earliest balanced delimiter pair with non-empty
// inner text, trying patterns in table order so that a longer literal
// (e.g. "__") wins over a one-character prefix of it (e.g. "_") at the same
// position. Opening-only patterns are skipped.
func findMatch(text string, t Table) (markupMatch, bool) {
	runes := []rune(text)
	best := markupMatch{start: -1}
	for _, p := range t.patterns {
		if !p.serializable() {
			continue
		}
		opening := []rune(p.Opening)
		closing := []rune(p.Closing)
		o := runeIndex(runes, opening, 0)
		if o < 0 {
			continue
		}
		c := runeIndex(runes, closing, o+len(opening))
		if c <= o+len(opening) {
			// No closing literal, or empty inner text.
			continue
		}
		if best.start < 0 || o < best.start {
			best = markupMatch{pattern: p, start: o, end: c + len(closing)}
		}
	}
	return best, best.start >= 0
}

// ContainsMatch reports whether the text holds at least one balanced
// delimiter pair from the table.
func ContainsMatch(text string, t Table) bool {
	_, ok := findMatch(text, t)
	return ok
}

// applyMarkup repeatedly finds the earliest balanced pair in the document's
// flat text and converts it into an annotation update, stripping the
// delimiter literals from the surviving text. It runs as a worklist, not
// recursively: offsets shift after each structural change, so each pass
// re-scans the current flat text. Termination is guaranteed because every
// match strictly shortens it.
func applyMarkup(rs Runs, t Table) (Runs, bool) {
	changed := false
	for {
		m, ok := findMatch(rs.PlainText(), t)
		if !ok {
			return rs, changed
		}
		strip := []string{m.pattern.Opening}
		if m.pattern.Closing != m.pattern.Opening {
			strip = append(strip, m.pattern.Closing)
		}
		rs = splitAndAnnotate(rs, m.start, m.end, Annotations{m.pattern.Style: true}, strip...)
		changed = true
	}
}

// ParseMarkup converts a flat delimited string (e.g. "*bold* plain") into a
// run list plus the delimiter-free plain text.
func ParseMarkup(text string, t Table) (Runs, string) {
	rs := Runs{{Text: text, Annotations: Annotations{}}}
	rs, _ = applyMarkup(rs, t)
	rs = normalize(rs)
	return rs, rs.PlainText()
}

// SerializeMarkup converts a run list back into a flat delimited string.
// Each run is wrapped independently: for every pattern in table order whose
// style is truthy on the run, the run text is wrapped as opening+text+closing,
// so multiple active styles nest in table order. Patterns lacking delimiter
// literals are skipped. No cross-run grouping of a shared style is attempted;
// adjacent runs that share a style each get their own delimiter pair.
func SerializeMarkup(rs Runs, t Table) string {
	var out []byte
	for _, r := range rs {
		text := r.Text
		for _, p := range t.patterns {
			if !p.serializable() {
				continue
			}
			if Truthy(r.Annotations[p.Style]) {
				text = p.Opening + text + p.Closing
			}
		}
		out = append(out, text...)
	}
	return string(out)
}
