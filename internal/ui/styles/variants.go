package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkwell/internal/richtext"
)

// variantColors are the default accent colors per rendering variant.
var variantColors = map[richtext.Variant]lipgloss.AdaptiveColor{
	richtext.VariantBold:          {Light: "#B45309", Dark: "#F59E0B"},
	richtext.VariantItalic:        {Light: "#6D28D9", Dark: "#A78BFA"},
	richtext.VariantUnderline:     {Light: "#1D4ED8", Dark: "#60A5FA"},
	richtext.VariantStrikethrough: {Light: "#6B7280", Dark: "#9CA3AF"},
	richtext.VariantCode:          {Light: "#047857", Dark: "#34D399"},
}

// VariantStyles builds the style used to render each variant. overrides maps
// variant name to a hex color from the theme config. The mapping is closed:
// an override naming an unknown variant is an error, and every variant a
// pattern table can produce gets a style.
func VariantStyles(overrides map[string]string) (map[richtext.Variant]lipgloss.Style, error) {
	colors := make(map[richtext.Variant]lipgloss.AdaptiveColor, len(variantColors))
	for v, c := range variantColors {
		colors[v] = c
	}
	for name, hex := range overrides {
		v := richtext.Variant(name)
		if _, ok := colors[v]; !ok {
			return nil, fmt.Errorf("unknown style variant %q", name)
		}
		colors[v] = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	return map[richtext.Variant]lipgloss.Style{
		richtext.VariantBold: lipgloss.NewStyle().
			Bold(true).
			Foreground(colors[richtext.VariantBold]),
		richtext.VariantItalic: lipgloss.NewStyle().
			Italic(true).
			Foreground(colors[richtext.VariantItalic]),
		richtext.VariantUnderline: lipgloss.NewStyle().
			Underline(true).
			Foreground(colors[richtext.VariantUnderline]),
		richtext.VariantStrikethrough: lipgloss.NewStyle().
			Strikethrough(true).
			Foreground(colors[richtext.VariantStrikethrough]),
		richtext.VariantCode: lipgloss.NewStyle().
			Foreground(colors[richtext.VariantCode]),
	}, nil
}
