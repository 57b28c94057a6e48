package preview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/richtext"
)

func parseRuns(t *testing.T, markup string) (richtext.Runs, richtext.Table) {
	t.Helper()
	table := richtext.DefaultTable()
	runs, _ := richtext.ParseMarkup(markup, table)
	return runs, table
}

func TestRunsToMarkdown_PlainText(t *testing.T) {
	runs, table := parseRuns(t, "hello world")
	require.Equal(t, "hello world", runsToMarkdown(runs, table))
}

func TestRunsToMarkdown_StyledRuns(t *testing.T) {
	runs, table := parseRuns(t, "a *b* _c_ ~d~ `e`")
	require.Equal(t, "a **b** *c* ~~d~~ `e`", runsToMarkdown(runs, table))
}

func TestRunsToMarkdown_UnderlineFallsBackToEmphasis(t *testing.T) {
	runs, table := parseRuns(t, "__u__")
	require.Equal(t, "_u_", runsToMarkdown(runs, table))
}

func TestRunsToMarkdown_NestedStylesWrapInTableOrder(t *testing.T) {
	table := richtext.DefaultTable()
	runs := richtext.Runs{
		{Text: "x", Annotations: richtext.Annotations{"bold": true, "italic": true}},
	}
	require.Equal(t, "***x***", runsToMarkdown(runs, table))
}

func TestRunsToMarkdown_EscapesSyntaxInPlainText(t *testing.T) {
	table := richtext.DefaultTable()
	runs := richtext.Runs{{Text: "2 * 3 = 6", Annotations: richtext.Annotations{}}}
	require.Equal(t, `2 \* 3 = 6`, runsToMarkdown(runs, table))
}

func TestRunsToMarkdown_CodeContentIsNotEscaped(t *testing.T) {
	table := richtext.DefaultTable()
	runs := richtext.Runs{{Text: "a*b", Annotations: richtext.Annotations{"code": true}}}
	require.Equal(t, "`a*b`", runsToMarkdown(runs, table))
}

func TestRunsToMarkdown_NewlinesBecomeHardBreaks(t *testing.T) {
	table := richtext.DefaultTable()
	runs := richtext.Runs{{Text: "one\ntwo", Annotations: richtext.Annotations{"bold": true}}}
	require.Equal(t, "**one**  \n**two**", runsToMarkdown(runs, table))
}

func TestPreview_RendersDocument(t *testing.T) {
	m := New("dark")
	m.SetSize(40, 10)

	runs, table := parseRuns(t, "plain and *bold*")
	m.SetRuns(runs, table)

	out := ansi.Strip(m.View())
	require.Contains(t, out, "plain and")
	require.Contains(t, out, "bold")
}

func TestPreview_ClipsToHeight(t *testing.T) {
	m := New("dark")
	m.SetSize(40, 2)

	table := richtext.DefaultTable()
	m.SetRuns(richtext.Runs{{Text: "a\nb\nc\nd", Annotations: richtext.Annotations{}}}, table)

	lines := strings.Split(m.View(), "\n")
	require.LessOrEqual(t, len(lines), 2)
}

func TestPreview_TruncatesToWidth(t *testing.T) {
	m := New("dark")
	m.SetSize(8, 5)

	table := richtext.DefaultTable()
	m.SetRuns(richtext.Runs{{Text: "abcdefghijklmnop", Annotations: richtext.Annotations{}}}, table)

	for _, line := range strings.Split(m.View(), "\n") {
		require.LessOrEqual(t, ansi.StringWidth(line), 8)
	}
}

func TestPreview_NoSizeFallsBackToPlainMarkdown(t *testing.T) {
	m := New("dark")

	runs, table := parseRuns(t, "*bold*")
	m.SetRuns(runs, table)

	require.Equal(t, "**bold**", m.View())
}
