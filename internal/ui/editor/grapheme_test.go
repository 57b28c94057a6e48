package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextBoundary(t *testing.T) {
	require.Equal(t, 1, nextBoundary("abc", 0))
	require.Equal(t, 3, nextBoundary("abc", 2))
	require.Equal(t, 3, nextBoundary("abc", 3), "clamps at end")

	// "e" plus combining acute is one cluster of two runes.
	require.Equal(t, 2, nextBoundary("e\u0301x", 0))

	// Family emoji: three code points joined by ZWJ, one cluster.
	family := "\U0001F468\u200d\U0001F469\u200d\U0001F466"
	require.Equal(t, 5, nextBoundary(family+"x", 0))
}

func TestPrevBoundary(t *testing.T) {
	require.Equal(t, 0, prevBoundary("abc", 0))
	require.Equal(t, 0, prevBoundary("abc", 1))
	require.Equal(t, 2, prevBoundary("abc", 3))

	require.Equal(t, 0, prevBoundary("e\u0301x", 2), "combining pair is one step")
	require.Equal(t, 2, prevBoundary("e\u0301x", 3))
}

func TestWidthBetween(t *testing.T) {
	require.Equal(t, 0, widthBetween("abc", 1, 1))
	require.Equal(t, 2, widthBetween("abc", 0, 2))
	require.Equal(t, 4, widthBetween("日本", 0, 2), "CJK is double width")
	require.Equal(t, 1, widthBetween("e\u0301x", 0, 2), "combining pair is one column")
}

func TestOffsetForWidth(t *testing.T) {
	require.Equal(t, 2, offsetForWidth("abc", 0, 2))
	require.Equal(t, 3, offsetForWidth("abc", 0, 10), "stops at end")
	require.Equal(t, 3, offsetForWidth("abc\ndef", 0, 10), "stops at newline")
	require.Equal(t, 1, offsetForWidth("日本", 0, 3), "wide cluster does not overshoot")
}

func TestLineStartEnd(t *testing.T) {
	rs := []rune("ab\ncd\nef")

	require.Equal(t, 0, lineStart(rs, 1))
	require.Equal(t, 3, lineStart(rs, 4))
	require.Equal(t, 3, lineStart(rs, 3), "offset just after newline")
	require.Equal(t, 6, lineStart(rs, 8))

	require.Equal(t, 2, lineEnd(rs, 0))
	require.Equal(t, 5, lineEnd(rs, 3))
	require.Equal(t, 8, lineEnd(rs, 7))
}
