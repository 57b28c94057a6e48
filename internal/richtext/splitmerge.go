package richtext

import "strings"

// splitAndAnnotate isolates the flat-text range [start, end), applies the
// annotation delta to it, and returns the normalized run list.
//
// When the range falls inside one run, the run is cut into up to three
// pieces: an unchanged prefix, the selected middle with the delta reconciled
// in (see reconcile), and an unchanged suffix. Empty pieces are dropped.
//
// When the range spans several runs, each style key in the delta is applied
// uniformly: if every covered run already carries the key as truthy the key
// is turned off across the whole span, otherwise it is turned on. A
// mixed-state selection therefore normalizes to fully-on.
//
// strip lists delimiter literals to delete from the selected text; the
// markup scan uses it to drop the matched opening/closing characters.
func splitAndAnnotate(rs Runs, start, end int, delta Annotations, strip ...string) Runs {
	total := rs.runeLen()
	start = clampOffset(start, total)
	end = clampOffset(end, total)
	if end < start {
		start, end = end, start
	}

	s := locateStart(rs, start)
	e := locateEnd(rs, end)

	if s.index == e.index {
		return normalize(splitSingle(rs, s, e, delta, strip))
	}
	return normalize(toggleAcross(rs, s, e, delta, strip))
}

// splitSingle handles the range-within-one-run case.
func splitSingle(rs Runs, s, e location, delta Annotations, strip []string) Runs {
	run := rs[s.index]
	text := []rune(run.Text)

	prefix := string(text[:s.offset])
	middle := stripLiterals(string(text[s.offset:e.offset]), strip)
	suffix := string(text[e.offset:])

	pieces := make(Runs, 0, 3)
	if prefix != "" {
		pieces = append(pieces, Run{Text: prefix, Annotations: run.Annotations.Clone()})
	}
	pieces = append(pieces, Run{Text: middle, Annotations: reconcile(run.Annotations, delta)})
	if suffix != "" {
		pieces = append(pieces, Run{Text: suffix, Annotations: run.Annotations.Clone()})
	}

	return replaceRuns(rs, s.index, e.index, pieces)
}

// toggleAcross handles the range-spanning-several-runs case.
func toggleAcross(rs Runs, s, e location, delta Annotations, strip []string) Runs {
	covered := rs[s.index : e.index+1]

	// Uniform toggle rule: a key goes off only when every covered run
	// already has it on; any mixed state normalizes to on.
	uniform := make(Annotations, len(delta))
	for k, v := range delta {
		if !Truthy(v) {
			uniform[k] = v
			continue
		}
		allOn := true
		for _, r := range covered {
			if !Truthy(r.Annotations[k]) {
				allOn = false
				break
			}
		}
		uniform[k] = !allOn
	}

	pieces := make(Runs, 0, len(covered)+2)

	first := rs[s.index]
	firstText := []rune(first.Text)
	if s.offset > 0 {
		pieces = append(pieces, Run{Text: string(firstText[:s.offset]), Annotations: first.Annotations.Clone()})
	}
	pieces = append(pieces, Run{
		Text:        stripLiterals(string(firstText[s.offset:]), strip),
		Annotations: applyUniform(first.Annotations, uniform),
	})

	for i := s.index + 1; i < e.index; i++ {
		mid := rs[i]
		pieces = append(pieces, Run{
			Text:        stripLiterals(mid.Text, strip),
			Annotations: applyUniform(mid.Annotations, uniform),
		})
	}

	last := rs[e.index]
	lastText := []rune(last.Text)
	pieces = append(pieces, Run{
		Text:        stripLiterals(string(lastText[:e.offset]), strip),
		Annotations: applyUniform(last.Annotations, uniform),
	})
	if e.offset < len(lastText) {
		pieces = append(pieces, Run{Text: string(lastText[e.offset:]), Annotations: last.Annotations.Clone()})
	}

	return replaceRuns(rs, s.index, e.index, pieces)
}

// applyUniform merges the uniform key set into a run's annotations wholesale.
func applyUniform(current, uniform Annotations) Annotations {
	out := current.Clone()
	for k, v := range uniform {
		out[k] = v
	}
	return out
}

// insertStyled materializes a brand-new run carrying text at the given flat
// offset, with the pending delta reconciled against the annotations of the
// run the offset falls in. Used when a collapsed-selection style toggle is
// armed and the very next insertion lands on its anchor.
func insertStyled(rs Runs, off int, delta Annotations, text string) Runs {
	if off >= rs.runeLen() {
		last := rs[len(rs)-1]
		out := rs.Clone()
		out = append(out, Run{Text: text, Annotations: reconcile(last.Annotations, delta)})
		return normalize(out)
	}

	loc := locateStart(rs, off)
	run := rs[loc.index]
	runes := []rune(run.Text)

	pieces := make(Runs, 0, 3)
	if loc.offset > 0 {
		pieces = append(pieces, Run{Text: string(runes[:loc.offset]), Annotations: run.Annotations.Clone()})
	}
	pieces = append(pieces, Run{Text: text, Annotations: reconcile(run.Annotations, delta)})
	if loc.offset < len(runes) {
		pieces = append(pieces, Run{Text: string(runes[loc.offset:]), Annotations: run.Annotations.Clone()})
	}

	return normalize(replaceRuns(rs, loc.index, loc.index, pieces))
}

// replaceRuns returns a new list with rs[from..to] (inclusive) replaced by
// pieces.
func replaceRuns(rs Runs, from, to int, pieces Runs) Runs {
	out := make(Runs, 0, len(rs)-(to-from+1)+len(pieces))
	out = append(out, rs[:from]...)
	out = append(out, pieces...)
	out = append(out, rs[to+1:]...)
	return out
}

// stripLiterals deletes every occurrence of each literal from s.
func stripLiterals(s string, literals []string) string {
	for _, lit := range literals {
		if lit == "" {
			continue
		}
		s = strings.ReplaceAll(s, lit, "")
	}
	return s
}
