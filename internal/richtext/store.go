package richtext

import (
	"fmt"
	"sort"

	"github.com/zjrosen/inkwell/internal/pubsub"
)

// Snapshot is the read-only view of the store published on every mutation.
type Snapshot struct {
	PlainText string
	Runs      Runs
}

// Store owns the canonical run list and is the single mutation point of the
// document. An external text-input adapter reports two events ("the flat
// text changed to X", "the selection is now [s, e]") and a toolbar-like
// caller invokes ToggleStyle and SetValue; everything else in this package
// is a pure function the store orchestrates.
//
// A Store is owned by one goroutine; each event is handled to completion
// before the next. Readers get value snapshots, never aliases into the live
// list, so subscribers on other goroutines never observe a partial update.
type Store struct {
	table Table
	runs  Runs

	// text is the last flat-text snapshot, kept as an explicit field and
	// passed into the pure diff function per event.
	text string

	selStart int
	selEnd   int
	pending  *pendingStyle

	events *pubsub.Broker[Snapshot]
}

// NewStore creates a store holding the canonical empty document.
func NewStore(table Table) *Store {
	return &Store{
		table:  table,
		runs:   emptyRuns(),
		events: pubsub.NewBroker[Snapshot](),
	}
}

// Close shuts down the store's event broker.
func (s *Store) Close() {
	s.events.Close()
}

// Events exposes the change-event broker. A Snapshot is published after
// every mutating operation.
func (s *Store) Events() *pubsub.Broker[Snapshot] {
	return s.events
}

// Table returns the store's pattern table.
func (s *Store) Table() Table {
	return s.table
}

// SetValue replaces the document with the parse of a delimited markup
// string. The selection is clamped into the new text and any pending style
// is discarded.
func (s *Store) SetValue(markup string) {
	runs, plain := ParseMarkup(markup, s.table)
	s.replace(runs, plain)
}

// SetRuns replaces the document with the given run list, normalizing it
// first.
func (s *Store) SetRuns(rs Runs) {
	runs := normalize(rs.Clone())
	s.replace(runs, runs.PlainText())
}

func (s *Store) replace(runs Runs, plain string) {
	s.runs = runs
	s.text = plain
	n := s.runs.runeLen()
	s.selStart = clampOffset(s.selStart, n)
	s.selEnd = clampOffset(s.selEnd, n)
	s.pending = nil
	s.publish()
}

// OnChangeText reconciles the run list with a new flat-text snapshot.
// Routing order: a balanced delimiter pair in the new text converts to an
// annotation (live markup typing), then a pending style consumes a matching
// insertion, then the edit is applied structurally.
//
// When a markup match strips delimiter characters, the resulting flat text
// differs from next; callers read the authoritative text back via PlainText.
func (s *Store) OnChangeText(next string) {
	d := ComputeDiff(s.text, next)
	if d.IsZero() {
		s.text = next
		return
	}

	switch {
	case ContainsMatch(next, s.table):
		runs := applyEdit(s.runs, d)
		runs, _ = applyMarkup(runs, s.table)
		s.runs = normalize(runs)
	case s.pending != nil && s.pending.consumes(d):
		s.runs = insertStyled(s.runs, d.Start, s.pending.Annotations, d.Added)
	default:
		s.runs = applyEdit(s.runs, d)
	}

	s.pending = nil
	s.text = s.runs.PlainText()
	s.publish()
}

// OnSelectionChange records the latest selection offsets, clamped into the
// current text, for use by ToggleStyle and ActiveStyles.
func (s *Store) OnSelectionChange(start, end int) {
	n := s.runs.runeLen()
	start = clampOffset(start, n)
	end = clampOffset(end, n)
	if end < start {
		start, end = end, start
	}
	s.selStart, s.selEnd = start, end
}

// ToggleStyle toggles the named style over the current selection. With a
// collapsed selection the toggle arms a pending style for the next insertion
// at the caret; re-toggling the same style at the same caret cancels it.
// With a range the annotation is applied immediately, and a pending style is
// armed for the position just after the selection so that typing right after
// a styled span does not silently inherit it.
//
// The style must exist in the pattern table.
func (s *Store) ToggleStyle(style string) error {
	if _, ok := s.table.Find(style); !ok {
		return fmt.Errorf("unknown style %q", style)
	}
	delta := Annotations{style: true}

	if s.selStart == s.selEnd {
		if s.pending != nil && s.pending.collapsed() && s.pending.Start == s.selStart {
			s.pending.Annotations = reconcile(s.pending.Annotations, delta)
		} else {
			s.pending = &pendingStyle{Start: s.selStart, End: s.selEnd, Annotations: delta}
		}
		return nil
	}

	s.runs = splitAndAnnotate(s.runs, s.selStart, s.selEnd, delta)
	s.text = s.runs.PlainText()
	s.pending = &pendingStyle{Start: s.selEnd, End: s.selEnd, Annotations: delta.Clone()}
	s.publish()
	return nil
}

// RichTextString serializes the document to its delimited markup form.
func (s *Store) RichTextString() string {
	return SerializeMarkup(s.runs, s.table)
}

// Runs returns a read-only snapshot of the current run list.
func (s *Store) Runs() Runs {
	return s.runs.Clone()
}

// PlainText returns the current flat text.
func (s *Store) PlainText() string {
	return s.text
}

// Selection returns the latest selection offsets.
func (s *Store) Selection() (start, end int) {
	return s.selStart, s.selEnd
}

// ActiveStyles returns the style names with a truthy value on the run
// containing the cursor. A cursor sitting on a run boundary reports the
// preceding run, matching where freshly typed text would land.
func (s *Store) ActiveStyles() []string {
	loc := locateEnd(s.runs, s.selStart)
	styles := s.runs[loc.index].Annotations.Active()
	sort.Strings(styles)
	return styles
}

// PendingStyles returns the truthy styles of the armed pending delta, if
// any. Toolbars use it to highlight styles that will apply to the next
// typed character.
func (s *Store) PendingStyles() []string {
	if s.pending == nil {
		return nil
	}
	styles := s.pending.Annotations.Active()
	sort.Strings(styles)
	return styles
}

func (s *Store) publish() {
	s.events.Publish(pubsub.UpdatedEvent, Snapshot{
		PlainText: s.text,
		Runs:      s.runs.Clone(),
	})
}
