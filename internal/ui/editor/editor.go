// Package editor is the rich-text editing pane. It owns a richtext.Store and
// translates terminal key input into the store's two-event protocol: text
// mutations become OnChangeText with the full next flat text, and cursor or
// selection movement becomes OnSelectionChange with rune offsets. Style
// chords call ToggleStyle, so a collapsed cursor arms a pending style and a
// range restyles immediately.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/richtext"
)

// noAnchor marks the absence of a selection anchor.
const noAnchor = -1

// Model is the editor component. The cursor and anchor are rune offsets into
// the store's flat text; anchor is noAnchor while no selection is active.
type Model struct {
	store    *richtext.Store
	keys     KeyMap
	variants map[richtext.Variant]lipgloss.Style

	width  int
	height int

	cursor  int
	anchor  int
	scroll  int // first visible line
	goalCol int // sticky column for up/down, -1 when unset

	focused bool
}

// New creates an editor over the given store. variants must cover every
// variant the store's pattern table can produce; build it with
// styles.VariantStyles.
func New(store *richtext.Store, variants map[richtext.Variant]lipgloss.Style) Model {
	return Model{
		store:    store,
		keys:     DefaultKeyMap(),
		variants: variants,
		anchor:   noAnchor,
		goalCol:  -1,
	}
}

// SetSize sets the visible text area in cells.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.scrollToCursor()
}

// Focus enables key handling and cursor display.
func (m *Model) Focus() { m.focused = true }

// Blur disables key handling and cursor display.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the editor has focus.
func (m Model) Focused() bool { return m.focused }

// Cursor returns the cursor's rune offset.
func (m Model) Cursor() int { return m.cursor }

// Selection returns the normalized selection range. With no active selection
// both offsets equal the cursor.
func (m Model) Selection() (start, end int) {
	if m.anchor == noAnchor {
		return m.cursor, m.cursor
	}
	if m.anchor <= m.cursor {
		return m.anchor, m.cursor
	}
	return m.cursor, m.anchor
}

// Store exposes the underlying document store.
func (m Model) Store() *richtext.Store { return m.store }

// Keys returns the active keybindings, for help rendering.
func (m Model) Keys() KeyMap { return m.keys }

// Reset points the cursor at the start of the (possibly replaced) document
// and clears any selection.
func (m *Model) Reset() {
	m.cursor = 0
	m.anchor = noAnchor
	m.scroll = 0
	m.goalCol = -1
	m.syncSelection()
}

// Update handles one message. Non-key messages are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.collapseOrMove(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.collapseOrMove(+1)
	case key.Matches(keyMsg, m.keys.Up):
		m.anchor = noAnchor
		m.moveVertical(-1)
	case key.Matches(keyMsg, m.keys.Down):
		m.anchor = noAnchor
		m.moveVertical(+1)
	case key.Matches(keyMsg, m.keys.Home):
		m.anchor = noAnchor
		m.moveToLineEdge(true)
	case key.Matches(keyMsg, m.keys.End):
		m.anchor = noAnchor
		m.moveToLineEdge(false)

	case key.Matches(keyMsg, m.keys.SelectLeft):
		m.extend(func(text string, off int) int { return prevBoundary(text, off) })
	case key.Matches(keyMsg, m.keys.SelectRight):
		m.extend(func(text string, off int) int { return nextBoundary(text, off) })
	case key.Matches(keyMsg, m.keys.SelectUp):
		m.armAnchor()
		m.moveVertical(-1)
		m.dropEmptySelection()
	case key.Matches(keyMsg, m.keys.SelectDown):
		m.armAnchor()
		m.moveVertical(+1)
		m.dropEmptySelection()
	case key.Matches(keyMsg, m.keys.SelectHome):
		m.armAnchor()
		m.moveToLineEdge(true)
		m.dropEmptySelection()
	case key.Matches(keyMsg, m.keys.SelectEnd):
		m.armAnchor()
		m.moveToLineEdge(false)
		m.dropEmptySelection()
	case key.Matches(keyMsg, m.keys.SelectAll):
		m.anchor = 0
		m.cursor = len([]rune(m.store.PlainText()))
		m.goalCol = -1
		m.afterMove()

	case key.Matches(keyMsg, m.keys.Backspace):
		m.deleteBackward()
	case key.Matches(keyMsg, m.keys.Delete):
		m.deleteForward()

	case key.Matches(keyMsg, m.keys.Bold):
		m.toggle("bold")
	case key.Matches(keyMsg, m.keys.Italic):
		m.toggle("italic")
	case key.Matches(keyMsg, m.keys.Underline):
		m.toggle("underline")
	case key.Matches(keyMsg, m.keys.Strikethrough):
		m.toggle("strikethrough")
	case key.Matches(keyMsg, m.keys.Code):
		m.toggle("code")

	case key.Matches(keyMsg, m.keys.Escape):
		m.anchor = noAnchor
		m.afterMove()

	default:
		switch keyMsg.Type {
		case tea.KeyRunes:
			if !keyMsg.Alt {
				m.insert(string(keyMsg.Runes))
			}
		case tea.KeySpace:
			m.insert(" ")
		case tea.KeyEnter:
			m.insert("\n")
		case tea.KeyTab:
			m.insert("\t")
		}
	}

	return m, nil
}

// insert replaces the selection (or splices at the cursor) with text and
// reports the new flat text to the store. Live markup can strip delimiter
// characters out of the reported text, so the cursor is recomputed from the
// length the store settled on.
func (m *Model) insert(text string) {
	lo, hi := m.Selection()
	plain := []rune(m.store.PlainText())
	next := string(plain[:lo]) + text + string(plain[hi:])

	m.store.OnChangeText(next)

	after := len([]rune(m.store.PlainText()))
	stripped := len([]rune(next)) - after
	m.cursor = clamp(lo+len([]rune(text))-stripped, 0, after)
	m.anchor = noAnchor
	m.goalCol = -1
	m.afterMove()
}

func (m *Model) deleteBackward() {
	lo, hi := m.Selection()
	plain := m.store.PlainText()
	if lo == hi {
		if lo == 0 {
			return
		}
		lo = prevBoundary(plain, lo)
	}
	m.deleteRange(lo, hi)
}

func (m *Model) deleteForward() {
	lo, hi := m.Selection()
	plain := m.store.PlainText()
	if lo == hi {
		if hi == len([]rune(plain)) {
			return
		}
		hi = nextBoundary(plain, hi)
	}
	m.deleteRange(lo, hi)
}

func (m *Model) deleteRange(lo, hi int) {
	plain := []rune(m.store.PlainText())
	next := string(plain[:lo]) + string(plain[hi:])

	m.store.OnChangeText(next)

	m.cursor = clamp(lo, 0, len([]rune(m.store.PlainText())))
	m.anchor = noAnchor
	m.goalCol = -1
	m.afterMove()
}

func (m *Model) toggle(style string) {
	if err := m.store.ToggleStyle(style); err != nil {
		// The active pattern table does not define this style; the chord
		// is a no-op rather than an error surface.
		log.Debug(log.CatUI, "style toggle ignored", "style", style, "error", err)
	}
}

// collapseOrMove moves the cursor one grapheme in the given direction, or
// collapses an active selection to the edge the direction points at.
func (m *Model) collapseOrMove(dir int) {
	if m.anchor != noAnchor {
		lo, hi := m.Selection()
		if dir < 0 {
			m.cursor = lo
		} else {
			m.cursor = hi
		}
		m.anchor = noAnchor
	} else if dir < 0 {
		m.cursor = prevBoundary(m.store.PlainText(), m.cursor)
	} else {
		m.cursor = nextBoundary(m.store.PlainText(), m.cursor)
	}
	m.goalCol = -1
	m.afterMove()
}

func (m *Model) extend(step func(text string, off int) int) {
	m.armAnchor()
	m.cursor = step(m.store.PlainText(), m.cursor)
	m.goalCol = -1
	m.dropEmptySelection()
}

func (m *Model) armAnchor() {
	if m.anchor == noAnchor {
		m.anchor = m.cursor
	}
}

// dropEmptySelection clears the anchor when an extension step had nowhere to
// go, so a dead-end shift+arrow does not leave a zero-width selection armed.
func (m *Model) dropEmptySelection() {
	if m.anchor == m.cursor {
		m.anchor = noAnchor
	}
	m.afterMove()
}

// moveVertical moves the cursor delta lines, keeping the display column
// sticky across consecutive vertical moves.
func (m *Model) moveVertical(delta int) {
	text := m.store.PlainText()
	rs := []rune(text)

	start := lineStart(rs, m.cursor)
	if m.goalCol < 0 {
		m.goalCol = widthBetween(text, start, m.cursor)
	}

	if delta < 0 {
		if start == 0 {
			m.cursor = 0
			m.afterMove()
			return
		}
		prevStart := lineStart(rs, start-1)
		m.cursor = offsetForWidth(text, prevStart, m.goalCol)
	} else {
		end := lineEnd(rs, m.cursor)
		if end == len(rs) {
			m.cursor = end
			m.afterMove()
			return
		}
		m.cursor = offsetForWidth(text, end+1, m.goalCol)
	}
	m.afterMove()
}

func (m *Model) moveToLineEdge(toStart bool) {
	rs := []rune(m.store.PlainText())
	if toStart {
		m.cursor = lineStart(rs, m.cursor)
	} else {
		m.cursor = lineEnd(rs, m.cursor)
	}
	m.goalCol = -1
	m.afterMove()
}

// afterMove is the common tail of every cursor mutation: report the
// selection to the store and keep the cursor line visible.
func (m *Model) afterMove() {
	m.syncSelection()
	m.scrollToCursor()
}

func (m *Model) syncSelection() {
	lo, hi := m.Selection()
	m.store.OnSelectionChange(lo, hi)
}

func (m *Model) scrollToCursor() {
	if m.height <= 0 {
		return
	}
	line := strings.Count(string([]rune(m.store.PlainText())[:m.cursor]), "\n")
	if line < m.scroll {
		m.scroll = line
	}
	if line >= m.scroll+m.height {
		m.scroll = line - m.height + 1
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
