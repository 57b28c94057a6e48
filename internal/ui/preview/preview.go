// Package preview renders the document as styled markdown in a side pane.
package preview

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/richtext"
)

// noMarginStyle strips glamour's document margins so the preview lines up
// with the pane border.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Model is the preview pane. It re-renders whenever the document or the pane
// size changes; when glamour cannot render, the plain markdown is word
// wrapped with reflow instead of showing nothing.
type Model struct {
	style    string // "dark", "light", or "" for terminal detection
	width    int
	height   int
	renderer *glamour.TermRenderer
	markdown string
	rendered string
}

// New creates a preview pane using the given glamour style name.
func New(style string) Model {
	return Model{style: style}
}

// SetSize resizes the pane and rebuilds the renderer for the new wrap width.
func (m *Model) SetSize(width, height int) {
	if width == m.width && height == m.height {
		return
	}
	m.width = width
	m.height = height
	m.renderer = m.buildRenderer()
	m.render()
}

// SetRuns replaces the previewed document.
func (m *Model) SetRuns(rs richtext.Runs, table richtext.Table) {
	m.markdown = runsToMarkdown(rs, table)
	m.render()
}

// View returns the rendered preview clipped to the pane size.
func (m Model) View() string {
	lines := strings.Split(strings.TrimRight(m.rendered, "\n"), "\n")
	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	if m.width > 0 {
		for i, line := range lines {
			lines[i] = ansi.Truncate(line, m.width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) buildRenderer() *glamour.TermRenderer {
	if m.width <= 0 {
		return nil
	}
	opts := []glamour.TermRendererOption{
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(m.width),
	}
	if m.style != "" {
		opts = append([]glamour.TermRendererOption{glamour.WithStandardStyle(m.style)}, opts...)
	} else {
		opts = append([]glamour.TermRendererOption{glamour.WithAutoStyle()}, opts...)
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		log.ErrorErr(log.CatUI, "building markdown renderer", err, "style", m.style)
		return nil
	}
	return r
}

// render refreshes the cached output, falling back to word-wrapped plain
// markdown when no renderer is available or rendering fails.
func (m *Model) render() {
	if m.renderer != nil {
		out, err := m.renderer.Render(m.markdown)
		if err == nil {
			m.rendered = out
			return
		}
		log.ErrorErr(log.CatUI, "rendering markdown preview", err)
	}
	if m.width > 0 {
		m.rendered = wordwrap.String(m.markdown, m.width)
	} else {
		m.rendered = m.markdown
	}
}
