package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// cell is one grapheme cluster with the style it renders in and the rune
// offset it starts at. The selection and cursor overlays key off the offset.
type cell struct {
	cluster string
	start   int
	style   lipgloss.Style
}

// View renders the visible window of the document. Each document line is one
// screen line, truncated to the editor width; the window scrolls vertically
// to keep the cursor line visible.
func (m Model) View() string {
	lines := m.renderLines()

	top := clamp(m.scroll, 0, max(0, len(lines)-1))
	bottom := len(lines)
	if m.height > 0 && top+m.height < bottom {
		bottom = top + m.height
	}

	var b strings.Builder
	for i := top; i < bottom; i++ {
		if i > top {
			b.WriteByte('\n')
		}
		line := lines[i]
		if m.width > 0 {
			line = ansi.Truncate(line, m.width, "…")
		}
		b.WriteString(line)
	}
	for i := bottom - top; i < m.height; i++ {
		b.WriteByte('\n')
	}
	return b.String()
}

// StatusLine renders the style badges for the status bar: the styles active
// at the cursor, plus any armed pending styles marked with a "+".
func (m Model) StatusLine() string {
	var parts []string
	for _, name := range m.store.ActiveStyles() {
		parts = append(parts, styles.StatusBadgeStyle.Render(name))
	}
	for _, name := range m.store.PendingStyles() {
		parts = append(parts, styles.StatusBadgeStyle.Render("+"+name))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ")
}

// renderLines builds the fully styled document lines, selection and cursor
// overlays applied.
func (m Model) renderLines() []string {
	cells := m.documentCells()
	selLo, selHi := m.Selection()
	docLen := len([]rune(m.store.PlainText()))

	lines := []string{}
	var line strings.Builder
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
	}

	for _, c := range cells {
		st := c.style
		if m.anchor != noAnchor && c.start >= selLo && c.start < selHi {
			st = st.Background(styles.SelectionBgColor)
		}
		atCursor := m.focused && m.anchor == noAnchor && c.start == m.cursor
		if atCursor {
			st = st.Reverse(true)
		}
		if c.cluster == "\n" {
			if atCursor {
				line.WriteString(st.Render(" "))
			}
			flush()
			continue
		}
		line.WriteString(st.Render(c.cluster))
	}

	// Cursor parked at the very end of the document.
	if m.focused && m.anchor == noAnchor && m.cursor == docLen {
		line.WriteString(lipgloss.NewStyle().Reverse(true).Render(" "))
	}
	flush()

	return lines
}

// documentCells flattens the run list into styled grapheme cells.
func (m Model) documentCells() []cell {
	var cells []cell
	at := 0
	for _, run := range m.store.Runs() {
		st := m.styleFor(run.Annotations)
		rest := run.Text
		state := -1
		for len(rest) > 0 {
			var cluster string
			cluster, rest, _, state = uniseg.StepString(rest, state)
			cells = append(cells, cell{cluster: cluster, start: at, style: st})
			at += utf8.RuneCountInString(cluster)
		}
	}
	return cells
}

// styleFor layers the variant styles of every truthy annotation, in pattern
// table order so the layering is deterministic.
func (m Model) styleFor(ann richtext.Annotations) lipgloss.Style {
	st := lipgloss.NewStyle()
	for _, p := range m.store.Table().Patterns() {
		if !richtext.Truthy(ann[p.Style]) {
			continue
		}
		if vs, ok := m.variants[p.Variant]; ok {
			st = st.Inherit(vs)
		}
	}
	return st
}
