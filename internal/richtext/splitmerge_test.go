package richtext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// Single-run case
// ============================================================================

func TestSplitAndAnnotate_MiddleOfSingleRun(t *testing.T) {
	rs := Runs{{Text: "Hello world", Annotations: Annotations{}}}
	got := splitAndAnnotate(rs, 6, 11, Annotations{"bold": true})

	require.Len(t, got, 2)
	require.Equal(t, "Hello ", got[0].Text)
	require.True(t, got[0].Annotations.Equal(Annotations{}))
	require.Equal(t, "world", got[1].Text)
	require.Equal(t, true, got[1].Annotations["bold"])
}

func TestSplitAndAnnotate_WholeRun(t *testing.T) {
	rs := Runs{{Text: "Hello", Annotations: Annotations{}}}
	got := splitAndAnnotate(rs, 0, 5, Annotations{"bold": true})

	require.Len(t, got, 1)
	require.Equal(t, "Hello", got[0].Text)
	require.Equal(t, true, got[0].Annotations["bold"])
}

func TestSplitAndAnnotate_ThreeWayCut(t *testing.T) {
	rs := Runs{{Text: "abcde", Annotations: Annotations{}}}
	got := splitAndAnnotate(rs, 1, 4, Annotations{"italic": true})

	require.Len(t, got, 3)
	require.Equal(t, "a", got[0].Text)
	require.Equal(t, "bcd", got[1].Text)
	require.Equal(t, "e", got[2].Text)
	require.Equal(t, true, got[1].Annotations["italic"])
}

func TestSplitAndAnnotate_ToggleOffWithinRun(t *testing.T) {
	rs := Runs{{Text: "Hello", Annotations: Annotations{"bold": true}}}
	got := splitAndAnnotate(rs, 0, 5, Annotations{"bold": true})

	require.Len(t, got, 1)
	require.Equal(t, false, got[0].Annotations["bold"])
}

func TestSplitAndAnnotate_StripLiteral(t *testing.T) {
	rs := Runs{{Text: "say *hi* now", Annotations: Annotations{}}}
	got := splitAndAnnotate(rs, 4, 8, Annotations{"bold": true}, "*")

	require.Equal(t, "say hi now", got.PlainText())
	require.Len(t, got, 3)
	require.Equal(t, "hi", got[1].Text)
	require.Equal(t, true, got[1].Annotations["bold"])
}

func TestSplitAndAnnotate_ClampsOffsets(t *testing.T) {
	rs := Runs{{Text: "abc", Annotations: Annotations{}}}
	got := splitAndAnnotate(rs, -2, 99, Annotations{"bold": true})

	require.Equal(t, "abc", got.PlainText())
	require.Equal(t, true, got[0].Annotations["bold"])
}

// ============================================================================
// Cross-run case
// ============================================================================

func styledPair() Runs {
	return Runs{
		{Text: "plain ", Annotations: Annotations{}},
		{Text: "bold", Annotations: Annotations{"bold": true}},
	}
}

func TestSplitAndAnnotate_CrossRun_MixedStateNormalizesOn(t *testing.T) {
	// Selection covers the tail of the plain run and the whole bold run.
	// Mixed state: the toggle asserts bold across the span.
	got := splitAndAnnotate(styledPair(), 3, 10, Annotations{"bold": true})

	require.Equal(t, "plain bold", got.PlainText())
	// "pla" stays plain, "in bold" is now uniformly bold.
	require.Equal(t, "pla", got[0].Text)
	require.True(t, got[0].Annotations.Equal(Annotations{}))
	require.Equal(t, "in bold", got[1].Text)
	require.Equal(t, true, got[1].Annotations["bold"])
}

func TestSplitAndAnnotate_CrossRun_AllOnTurnsOff(t *testing.T) {
	rs := Runs{
		{Text: "abc", Annotations: Annotations{"bold": true}},
		{Text: "def", Annotations: Annotations{"bold": true, "italic": true}},
	}
	got := splitAndAnnotate(rs, 0, 6, Annotations{"bold": true})

	require.Equal(t, "abcdef", got.PlainText())
	for _, r := range got {
		require.Equal(t, false, r.Annotations["bold"], "run %q", r.Text)
	}
	// Unrelated annotations survive.
	last := got[len(got)-1]
	require.Equal(t, true, last.Annotations["italic"])
}

func TestSplitAndAnnotate_CrossRun_PartialEdgesKeepOriginal(t *testing.T) {
	rs := Runs{
		{Text: "aaaa", Annotations: Annotations{}},
		{Text: "bbbb", Annotations: Annotations{"italic": true}},
		{Text: "cccc", Annotations: Annotations{}},
	}
	got := splitAndAnnotate(rs, 2, 10, Annotations{"bold": true})

	require.Equal(t, "aaaabbbbcccc", got.PlainText())
	require.Equal(t, "aa", got[0].Text)
	require.True(t, got[0].Annotations.Equal(Annotations{}))

	tail := got[len(got)-1]
	require.Equal(t, "cc", tail.Text)
	require.True(t, tail.Annotations.Equal(Annotations{}))
}

func TestSplitAndAnnotate_CrossRun_FullyCoveredMiddleGetsKey(t *testing.T) {
	rs := Runs{
		{Text: "aa", Annotations: Annotations{}},
		{Text: "bb", Annotations: Annotations{"italic": true}},
		{Text: "cc", Annotations: Annotations{}},
	}
	got := splitAndAnnotate(rs, 0, 6, Annotations{"bold": true})

	require.Equal(t, "aabbcc", got.PlainText())
	for _, r := range got {
		require.Equal(t, true, r.Annotations["bold"], "run %q", r.Text)
	}
	// The italic middle keeps its own annotation alongside the new key.
	var sawItalic bool
	for _, r := range got {
		if Truthy(r.Annotations["italic"]) {
			sawItalic = true
			require.Equal(t, "bb", r.Text)
		}
	}
	require.True(t, sawItalic)
}

// ============================================================================
// insertStyled
// ============================================================================

func TestInsertStyled_AtEndOfBuffer(t *testing.T) {
	rs := Runs{{Text: "abc", Annotations: Annotations{}}}
	got := insertStyled(rs, 3, Annotations{"italic": true}, "d")

	require.Len(t, got, 2)
	require.Equal(t, "abc", got[0].Text)
	require.Equal(t, "d", got[1].Text)
	require.Equal(t, true, got[1].Annotations["italic"])
}

func TestInsertStyled_MidRun(t *testing.T) {
	rs := Runs{{Text: "abcd", Annotations: Annotations{}}}
	got := insertStyled(rs, 2, Annotations{"bold": true}, "XX")

	require.Equal(t, "abXXcd", got.PlainText())
	require.Len(t, got, 3)
	require.Equal(t, "XX", got[1].Text)
	require.Equal(t, true, got[1].Annotations["bold"])
}

func TestInsertStyled_ReconcilesAgainstHostRun(t *testing.T) {
	// Inserting with a pending bold delta inside an already-bold run toggles
	// the new text off.
	rs := Runs{{Text: "abcd", Annotations: Annotations{"bold": true}}}
	got := insertStyled(rs, 2, Annotations{"bold": true}, "XX")

	require.Equal(t, "abXXcd", got.PlainText())
	require.Len(t, got, 3)
	require.Equal(t, false, got[1].Annotations["bold"])
}
