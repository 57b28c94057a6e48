package richtext

import (
	"fmt"
	"regexp"
)

// Variant names the rendering strategy for a style. The set is closed:
// renderers map each variant to a concrete text style and validate the
// mapping when they are built, not at paint time.
type Variant string

const (
	VariantBold          Variant = "bold"
	VariantItalic        Variant = "italic"
	VariantUnderline     Variant = "underline"
	VariantStrikethrough Variant = "strikethrough"
	VariantCode          Variant = "code"
)

// Pattern is one style definition: a unique name, optional opening/closing
// delimiter literals for the markup serialization, an optional matcher
// regexp, and the rendering variant.
//
// A pattern with an opening literal but no closing literal is accepted by
// the table but skipped by the markup scan (reserved for block-style
// markers, which the balanced-pair parser does not support).
type Pattern struct {
	Style   string
	Opening string
	Closing string
	Matcher *regexp.Regexp
	Variant Variant
}

// serializable reports whether the pattern carries both delimiter literals.
func (p Pattern) serializable() bool {
	return p.Opening != "" && p.Closing != ""
}

// Table is an ordered, immutable style registry. Order matters twice: the
// markup scan tries patterns in table order (so a two-character delimiter
// must precede a one-character prefix of it), and the serializer nests
// delimiters in table order.
type Table struct {
	patterns []Pattern
	byStyle  map[string]int
}

// NewTable validates the given patterns and builds a table.
// Rejected at registration: a duplicate style name, an empty style name, and
// a closing literal without an opening literal.
func NewTable(patterns ...Pattern) (Table, error) {
	t := Table{byStyle: make(map[string]int, len(patterns))}
	for _, p := range patterns {
		if p.Style == "" {
			return Table{}, fmt.Errorf("pattern has empty style name")
		}
		if _, dup := t.byStyle[p.Style]; dup {
			return Table{}, fmt.Errorf("duplicate pattern style %q", p.Style)
		}
		if p.Closing != "" && p.Opening == "" {
			return Table{}, fmt.Errorf("pattern %q has a closing literal without an opening literal", p.Style)
		}
		t.byStyle[p.Style] = len(t.patterns)
		t.patterns = append(t.patterns, p)
	}
	return t, nil
}

// DefaultTable returns a fresh copy of the default style table:
//
//	*bold*  __underline__  _italic_  ~strikethrough~  `code`
//
// Underline is registered before italic so the two-character "__" delimiter
// wins the scan over its one-character prefix "_".
func DefaultTable() Table {
	t, err := NewTable(
		Pattern{Style: "bold", Opening: "*", Closing: "*", Variant: VariantBold},
		Pattern{Style: "underline", Opening: "__", Closing: "__", Variant: VariantUnderline},
		Pattern{Style: "italic", Opening: "_", Closing: "_", Variant: VariantItalic},
		Pattern{Style: "strikethrough", Opening: "~", Closing: "~", Variant: VariantStrikethrough},
		Pattern{Style: "code", Opening: "`", Closing: "`", Variant: VariantCode},
	)
	if err != nil {
		// The default table is a constant; a validation failure here is a bug.
		panic(err)
	}
	return t
}

// Patterns returns the patterns in table order.
func (t Table) Patterns() []Pattern {
	out := make([]Pattern, len(t.patterns))
	copy(out, t.patterns)
	return out
}

// Find returns the pattern registered under the given style name.
func (t Table) Find(style string) (Pattern, bool) {
	i, ok := t.byStyle[style]
	if !ok {
		return Pattern{}, false
	}
	return t.patterns[i], true
}

// Len returns the number of registered patterns.
func (t Table) Len() int {
	return len(t.patterns)
}
