package editor

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

func init() {
	// Force ANSI color output in tests (lipgloss disables colors when no TTY)
	lipgloss.SetColorProfile(termenv.ANSI256)
}

func newEditor(t *testing.T) Model {
	t.Helper()
	store := richtext.NewStore(richtext.DefaultTable())
	t.Cleanup(store.Close)

	variants, err := styles.VariantStyles(nil)
	require.NoError(t, err)

	m := New(store, variants)
	m.Focus()
	m.SetSize(40, 5)
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		var msg tea.KeyMsg
		switch r {
		case '\n':
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case ' ':
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		}
		m, _ = m.Update(msg)
	}
	return m
}

func press(m Model, keys ...tea.KeyType) Model {
	for _, k := range keys {
		m, _ = m.Update(tea.KeyMsg{Type: k})
	}
	return m
}

func repeat(m Model, k tea.KeyType, n int) Model {
	for range n {
		m = press(m, k)
	}
	return m
}

func TestEditor_TypingUpdatesStoreAndCursor(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "hello")

	require.Equal(t, "hello", m.Store().PlainText())
	require.Equal(t, 5, m.Cursor())
}

func TestEditor_LiveMarkupTypingStripsDelimiters(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "*bold*")

	require.Equal(t, "bold", m.Store().PlainText())
	require.Equal(t, 4, m.Cursor(), "cursor follows the stripped text")

	runs := m.Store().Runs()
	require.Len(t, runs, 1)
	require.True(t, richtext.Truthy(runs[0].Annotations["bold"]))
}

func TestEditor_BackspaceRemovesWholeGrapheme(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "ab")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e', '\u0301'}})
	require.Equal(t, 4, m.Cursor())

	m = press(m, tea.KeyBackspace)
	require.Equal(t, "ab", m.Store().PlainText())
	require.Equal(t, 2, m.Cursor())
}

func TestEditor_BackspaceAtStartIsNoop(t *testing.T) {
	m := newEditor(t)
	m = press(m, tea.KeyBackspace)
	require.Equal(t, "", m.Store().PlainText())
}

func TestEditor_DeleteForward(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "abc")
	m = press(m, tea.KeyHome, tea.KeyDelete)

	require.Equal(t, "bc", m.Store().PlainText())
	require.Equal(t, 0, m.Cursor())

	m = press(m, tea.KeyEnd, tea.KeyDelete)
	require.Equal(t, "bc", m.Store().PlainText(), "delete at end is a no-op")
}

func TestEditor_ArrowsClampAtEnds(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "ab")

	m = repeat(m, tea.KeyRight, 3)
	require.Equal(t, 2, m.Cursor())

	m = repeat(m, tea.KeyLeft, 5)
	require.Equal(t, 0, m.Cursor())
}

func TestEditor_SelectionToggleAppliesStyle(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "hello world")
	m = press(m, tea.KeyHome)
	m = repeat(m, tea.KeyShiftRight, 5)

	lo, hi := m.Selection()
	require.Equal(t, 0, lo)
	require.Equal(t, 5, hi)

	m = press(m, tea.KeyCtrlB)

	runs := m.Store().Runs()
	require.Len(t, runs, 2)
	require.Equal(t, "hello", runs[0].Text)
	require.True(t, richtext.Truthy(runs[0].Annotations["bold"]))
	require.Equal(t, " world", runs[1].Text)
	require.False(t, richtext.Truthy(runs[1].Annotations["bold"]))
}

func TestEditor_CaretToggleArmsPendingThenStylesTyping(t *testing.T) {
	m := newEditor(t)
	m = press(m, tea.KeyCtrlB)

	require.Equal(t, []string{"bold"}, m.Store().PendingStyles())
	require.Contains(t, ansi.Strip(m.StatusLine()), "+bold")

	m = typeText(m, "x")
	runs := m.Store().Runs()
	require.Len(t, runs, 1)
	require.Equal(t, "x", runs[0].Text)
	require.True(t, richtext.Truthy(runs[0].Annotations["bold"]))
}

func TestEditor_CaretToggleTwiceCancelsPending(t *testing.T) {
	m := newEditor(t)
	m = press(m, tea.KeyCtrlB, tea.KeyCtrlB)
	m = typeText(m, "x")

	runs := m.Store().Runs()
	require.Len(t, runs, 1)
	require.False(t, richtext.Truthy(runs[0].Annotations["bold"]))
}

func TestEditor_PendingSkippedWhenTypingElsewhere(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "ab")
	m = press(m, tea.KeyCtrlB)
	m = press(m, tea.KeyLeft)
	m = typeText(m, "c")

	// The caret moved between arming and typing, so the insertion lands at
	// a different offset and the pending style must not apply.
	runs := m.Store().Runs()
	require.Equal(t, "acb", m.Store().PlainText())
	require.Len(t, runs, 1)
	require.False(t, richtext.Truthy(runs[0].Annotations["bold"]))
}

func TestEditor_TypingReplacesSelection(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "hello")
	m = press(m, tea.KeyHome)
	m = repeat(m, tea.KeyShiftRight, 4)
	m = typeText(m, "y")

	require.Equal(t, "yo", m.Store().PlainText())
	require.Equal(t, 1, m.Cursor())
}

func TestEditor_BackspaceDeletesSelection(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "hello")
	m = repeat(m, tea.KeyShiftLeft, 3)
	m = press(m, tea.KeyBackspace)

	require.Equal(t, "he", m.Store().PlainText())
	require.Equal(t, 2, m.Cursor())
}

func TestEditor_SelectAllAndEscape(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "abc\ndef")

	m = press(m, tea.KeyCtrlL)
	lo, hi := m.Selection()
	require.Equal(t, 0, lo)
	require.Equal(t, 7, hi)

	m = press(m, tea.KeyEscape)
	lo, hi = m.Selection()
	require.Equal(t, lo, hi)
}

func TestEditor_VerticalMovementKeepsColumn(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "abcde\nxy\nlmnop")
	require.Equal(t, 14, m.Cursor())

	m = press(m, tea.KeyUp)
	require.Equal(t, 8, m.Cursor(), "clamped to the short line's end")

	m = press(m, tea.KeyUp)
	require.Equal(t, 5, m.Cursor(), "sticky column survives the short line")

	m = press(m, tea.KeyDown, tea.KeyDown)
	require.Equal(t, 14, m.Cursor())
}

func TestEditor_UpOnFirstLineGoesToStart(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "abc")
	m = press(m, tea.KeyUp)
	require.Equal(t, 0, m.Cursor())
}

func TestEditor_ActiveStylesInStatusLine(t *testing.T) {
	m := newEditor(t)
	m.Store().SetValue("*hi* there")
	m.Reset()
	m = press(m, tea.KeyRight, tea.KeyRight)

	require.Equal(t, []string{"bold"}, m.Store().ActiveStyles())
	require.Contains(t, ansi.Strip(m.StatusLine()), "bold")
}

func TestEditor_ViewShowsDocumentWithinHeight(t *testing.T) {
	m := newEditor(t)
	m = typeText(m, "hello\nworld")

	view := ansi.Strip(m.View())
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 5)
	require.Equal(t, "hello", lines[0])
	require.Contains(t, lines[1], "world")
}

func TestEditor_ViewScrollsToCursor(t *testing.T) {
	m := newEditor(t)
	m.SetSize(40, 2)
	m = typeText(m, "one\ntwo\nthree\nfour")

	view := ansi.Strip(m.View())
	require.NotContains(t, view, "one")
	require.Contains(t, view, "four")

	m = repeat(m, tea.KeyUp, 3)
	view = ansi.Strip(m.View())
	require.Contains(t, view, "one")
	require.NotContains(t, view, "three")
}

func TestEditor_ViewTruncatesWideLines(t *testing.T) {
	m := newEditor(t)
	m.SetSize(4, 2)
	m = typeText(m, "abcdefgh")

	first := strings.Split(ansi.Strip(m.View()), "\n")[0]
	require.LessOrEqual(t, ansi.StringWidth(first), 4)
}

func TestEditor_ViewStylesBoldRuns(t *testing.T) {
	m := newEditor(t)
	m.Store().SetValue("*hi* there")
	m.Reset()

	view := m.View()
	require.NotEqual(t, ansi.Strip(view), view)
	require.Contains(t, ansi.Strip(view), "hi there")
}

func TestEditor_BlurredEditorIgnoresKeys(t *testing.T) {
	m := newEditor(t)
	m.Blur()
	m = typeText(m, "abc")
	require.Equal(t, "", m.Store().PlainText())
}
