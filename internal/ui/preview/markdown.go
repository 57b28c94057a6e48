package preview

import (
	"strings"

	"github.com/zjrosen/inkwell/internal/richtext"
)

// markdownDelims maps each rendering variant to the markdown emphasis pair
// the preview uses for it. Underline has no markdown form and falls back to
// emphasis.
var markdownDelims = map[richtext.Variant]string{
	richtext.VariantBold:          "**",
	richtext.VariantItalic:        "*",
	richtext.VariantUnderline:     "_",
	richtext.VariantStrikethrough: "~~",
	richtext.VariantCode:          "`",
}

// Markdown converts a run list to markdown. The render subcommand uses it to
// print documents outside the TUI.
func Markdown(rs richtext.Runs, table richtext.Table) string {
	return runsToMarkdown(rs, table)
}

// runsToMarkdown converts a run list to markdown, wrapping each styled run
// in the emphasis delimiters of its truthy annotations, outermost first in
// table order. Emphasis cannot span lines in markdown, so runs are wrapped
// line by line and newlines become hard breaks.
func runsToMarkdown(rs richtext.Runs, table richtext.Table) string {
	var b strings.Builder
	for _, run := range rs {
		delims, code := runDelims(run.Annotations, table)
		lines := strings.Split(run.Text, "\n")
		for i, line := range lines {
			if i > 0 {
				b.WriteString("  \n")
			}
			if line == "" {
				continue
			}
			if !code {
				line = escapeMarkdown(line)
			}
			for _, d := range delims {
				b.WriteString(d)
			}
			b.WriteString(line)
			for i := len(delims) - 1; i >= 0; i-- {
				b.WriteString(delims[i])
			}
		}
	}
	return b.String()
}

// runDelims returns the emphasis delimiters for a run's truthy annotations
// in table order, and whether one of them is a code span (whose content must
// not be escaped).
func runDelims(ann richtext.Annotations, table richtext.Table) (delims []string, code bool) {
	seen := map[string]bool{}
	for _, p := range table.Patterns() {
		if !richtext.Truthy(ann[p.Style]) {
			continue
		}
		d, ok := markdownDelims[p.Variant]
		if !ok || seen[d] {
			continue
		}
		seen[d] = true
		delims = append(delims, d)
		if p.Variant == richtext.VariantCode {
			code = true
		}
	}
	return delims, code
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"`", "\\`",
	"#", `\#`,
)

// escapeMarkdown backslash-escapes characters that would otherwise be read
// as markdown syntax.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
