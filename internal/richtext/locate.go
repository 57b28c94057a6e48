package richtext

// location identifies a run by index plus a rune offset inside that run.
type location struct {
	index  int
	offset int
}

// clampOffset bounds off into [0, limit]. Out-of-range offsets from stale
// selection events are clamped rather than rejected.
func clampOffset(off, limit int) int {
	if off < 0 {
		return 0
	}
	if off > limit {
		return limit
	}
	return off
}

// locateStart resolves a flat-text offset to the run containing it, using a
// strict `<` comparison: an offset sitting exactly on a run boundary resolves
// to the start of the following run. An offset at (or past) the end of the
// document resolves to the end of the last run.
func locateStart(rs Runs, off int) location {
	off = clampOffset(off, rs.runeLen())
	consumed := 0
	for i, r := range rs {
		n := r.runeLen()
		if off < consumed+n {
			return location{index: i, offset: off - consumed}
		}
		consumed += n
	}
	return location{index: len(rs) - 1, offset: rs[len(rs)-1].runeLen()}
}

// locateEnd resolves a flat-text offset using a `<=` comparison: an offset
// sitting exactly on a run boundary resolves to the end of the preceding run.
//
// The asymmetry against locateStart is deliberate and load-bearing: a range
// [s, e) whose ends sit on run boundaries must select whole runs, not leak
// into neighbors. Getting either comparison wrong misattributes edits at
// exact run boundaries.
func locateEnd(rs Runs, off int) location {
	off = clampOffset(off, rs.runeLen())
	consumed := 0
	for i, r := range rs {
		n := r.runeLen()
		if off <= consumed+n {
			return location{index: i, offset: off - consumed}
		}
		consumed += n
	}
	return location{index: len(rs) - 1, offset: rs[len(rs)-1].runeLen()}
}

// spliceRunes removes length runes at off and inserts ins in their place.
func spliceRunes(s string, off, length int, ins string) string {
	runes := []rune(s)
	off = clampOffset(off, len(runes))
	end := clampOffset(off+length, len(runes))
	out := make([]rune, 0, len(runes)-(end-off)+len(ins))
	out = append(out, runes[:off]...)
	out = append(out, []rune(ins)...)
	out = append(out, runes[end:]...)
	return string(out)
}
