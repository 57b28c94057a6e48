package editor

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Cursor math works in the same unit the document does: rune offsets. The
// helpers here bridge that unit to grapheme clusters (the unit a keypress
// moves across) and display columns (the unit the terminal renders in).
// A combining sequence or emoji ZWJ chain counts as several runes, one
// grapheme, and one or two columns.

// runeToByte converts a rune offset into a byte offset. off must be within
// [0, rune length of s].
func runeToByte(s string, off int) int {
	b := 0
	for i := 0; i < off; i++ {
		_, size := utf8.DecodeRuneInString(s[b:])
		b += size
	}
	return b
}

// nextBoundary returns the rune offset just past the grapheme cluster
// starting at off. At or past the end of s it returns the rune length.
func nextBoundary(s string, off int) int {
	rest := s[runeToByte(s, off):]
	if rest == "" {
		return off
	}
	cluster, _, _, _ := uniseg.StepString(rest, -1)
	return off + utf8.RuneCountInString(cluster)
}

// prevBoundary returns the rune offset of the grapheme cluster boundary
// preceding off. At or before the start it returns 0.
func prevBoundary(s string, off int) int {
	if off <= 0 {
		return 0
	}
	var at, prev int
	state := -1
	rest := s
	for len(rest) > 0 && at < off {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		prev = at
		at += utf8.RuneCountInString(cluster)
	}
	return prev
}

// widthBetween returns the display width of the rune range [from, to).
func widthBetween(s string, from, to int) int {
	if to <= from {
		return 0
	}
	seg := s[runeToByte(s, from):runeToByte(s, to)]
	var w int
	state := -1
	for len(seg) > 0 {
		var cluster string
		cluster, seg, _, state = uniseg.StepString(seg, state)
		w += runewidth.StringWidth(cluster)
	}
	return w
}

// offsetForWidth walks grapheme clusters from the rune offset from until the
// accumulated display width reaches target, a newline is hit, or the text
// ends, and returns the rune offset reached. A wide cluster that would
// overshoot target is not consumed.
func offsetForWidth(s string, from, target int) int {
	at := from
	rest := s[runeToByte(s, from):]
	var w int
	state := -1
	for len(rest) > 0 && w < target {
		var cluster string
		cluster, rest, _, state = uniseg.StepString(rest, state)
		if cluster == "\n" {
			break
		}
		cw := runewidth.StringWidth(cluster)
		if w+cw > target {
			break
		}
		w += cw
		at += utf8.RuneCountInString(cluster)
	}
	return at
}

// lineStart returns the rune offset just after the newline preceding off,
// or 0 when off is on the first line.
func lineStart(rs []rune, off int) int {
	for i := off - 1; i >= 0; i-- {
		if rs[i] == '\n' {
			return i + 1
		}
	}
	return 0
}

// lineEnd returns the rune offset of the newline terminating the line
// containing off, or the text length when off is on the last line.
func lineEnd(rs []rune, off int) int {
	for i := off; i < len(rs); i++ {
		if rs[i] == '\n' {
			return i
		}
	}
	return len(rs)
}
