package richtext

// applyEdit maps one minimal edit onto the run list. Decision order, each
// branch total:
//
//  1. Edit at or past the end of the buffer: extend or truncate the last run.
//  2. Locate the start run (strict boundary) and an end run from
//     start + max(len(removed), len(added)) (inclusive boundary).
//  3. Start and end resolve to the same run: splice in place. A pure
//     insertion sitting exactly at the start of a non-first run is appended
//     to the previous run instead, so text typed at a style boundary
//     inherits the preceding run's annotations.
//  4. Otherwise the edit spans runs: the first run keeps its prefix (plus
//     any added text), the last run keeps its suffix, and fully covered runs
//     between them are dropped.
//
// The result is always normalized (empty runs dropped, adjacent duplicates
// merged).
func applyEdit(rs Runs, d Diff) Runs {
	removed := []rune(d.Removed)
	added := d.Added
	total := rs.runeLen()

	// Edit at end of buffer: append or truncate-from-end.
	if d.Start >= total {
		out := rs.Clone()
		last := &out[len(out)-1]
		if len(removed) > 0 {
			runes := []rune(last.Text)
			keep := len(runes) - len(removed)
			if keep < 0 {
				keep = 0
			}
			last.Text = string(runes[:keep])
		}
		last.Text += added
		return normalize(out)
	}

	span := len(removed)
	if n := len([]rune(added)); n > span {
		span = n
	}
	s := locateStart(rs, d.Start)
	e := locateEnd(rs, d.Start+span)

	if s.index == e.index {
		out := rs.Clone()
		switch {
		case len(removed) > 0:
			// Replacement or pure removal: splice within the run.
			out[s.index].Text = spliceRunes(out[s.index].Text, s.offset, len(removed), added)
		case s.offset == 0 && s.index > 0:
			// Insertion at a run boundary inherits the previous run.
			out[s.index-1].Text += added
		default:
			out[s.index].Text = spliceRunes(out[s.index].Text, s.offset, 0, added)
		}
		return normalize(out)
	}

	// The removal extent, not the max-span end, decides how much of the end
	// run survives: trimming by the max span would eat text that was never
	// removed and break the concatenation invariant.
	re := locateEnd(rs, d.Start+len(removed))
	if re.index < s.index {
		// Removal extent ends on the boundary before the start run: the edit
		// is an insertion sitting exactly between runs. Append to the
		// preceding run, matching the same-run boundary rule.
		out := rs.Clone()
		out[re.index].Text = spliceRunes(out[re.index].Text, re.offset, 0, added)
		return normalize(out)
	}

	first := rs[s.index]
	firstRunes := []rune(first.Text)
	last := rs[re.index]
	lastRunes := []rune(last.Text)

	pieces := Runs{
		{Text: string(firstRunes[:s.offset]) + added, Annotations: first.Annotations.Clone()},
		{Text: string(lastRunes[re.offset:]), Annotations: last.Annotations.Clone()},
	}
	return normalize(replaceRuns(rs, s.index, re.index, pieces))
}
