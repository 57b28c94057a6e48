package richtext

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTable_RejectsEmptyStyleName(t *testing.T) {
	_, err := NewTable(Pattern{Style: "", Opening: "*", Closing: "*"})
	require.Error(t, err)
}

func TestNewTable_RejectsDuplicateStyle(t *testing.T) {
	_, err := NewTable(
		Pattern{Style: "bold", Opening: "*", Closing: "*"},
		Pattern{Style: "bold", Opening: "!", Closing: "!"},
	)
	require.ErrorContains(t, err, "duplicate")
}

func TestNewTable_RejectsClosingWithoutOpening(t *testing.T) {
	_, err := NewTable(Pattern{Style: "odd", Closing: "*"})
	require.Error(t, err)
}

func TestNewTable_AcceptsOpeningOnly(t *testing.T) {
	table, err := NewTable(Pattern{Style: "heading", Opening: "#", Variant: VariantBold})
	require.NoError(t, err)

	p, ok := table.Find("heading")
	require.True(t, ok)
	require.False(t, p.serializable())
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()
	require.Equal(t, 5, table.Len())

	// Underline must precede italic so "__" wins the scan over "_".
	patterns := table.Patterns()
	var underlineAt, italicAt int
	for i, p := range patterns {
		switch p.Style {
		case "underline":
			underlineAt = i
		case "italic":
			italicAt = i
		}
	}
	require.Less(t, underlineAt, italicAt)

	for _, style := range []string{"bold", "italic", "underline", "strikethrough", "code"} {
		p, ok := table.Find(style)
		require.True(t, ok, style)
		require.True(t, p.serializable(), style)
	}

	_, ok := table.Find("blink")
	require.False(t, ok)
}

func TestTable_PatternsReturnsCopy(t *testing.T) {
	table := DefaultTable()
	patterns := table.Patterns()
	patterns[0].Style = "tampered"

	fresh := table.Patterns()
	require.Equal(t, "bold", fresh[0].Style)
}
