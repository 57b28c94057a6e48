package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/document"
)

// docData holds one document fixture before insertion.
type docData struct {
	title     string
	markup    string
	updatedAt time.Time
	deleted   bool
}

// DocumentOption configures a document fixture.
type DocumentOption func(*docData)

// WithMarkup sets the fixture's markup body.
func WithMarkup(markup string) DocumentOption {
	return func(d *docData) { d.markup = markup }
}

// WithUpdatedAt pins the fixture's updated_at, for deterministic list order.
func WithUpdatedAt(at time.Time) DocumentOption {
	return func(d *docData) { d.updatedAt = at }
}

// Deleted soft-deletes the fixture after insertion.
func Deleted() DocumentOption {
	return func(d *docData) { d.deleted = true }
}

// Builder accumulates document fixtures and inserts them in order.
type Builder struct {
	t    *testing.T
	repo document.Repository
	docs []docData
}

// NewBuilder creates a builder inserting through the given repository.
func NewBuilder(t *testing.T, repo document.Repository) *Builder {
	t.Helper()
	return &Builder{t: t, repo: repo}
}

// WithDocument adds a document fixture.
func (b *Builder) WithDocument(title string, opts ...DocumentOption) *Builder {
	d := docData{title: title}
	for _, opt := range opts {
		opt(&d)
	}
	b.docs = append(b.docs, d)
	return b
}

// Build inserts all fixtures and returns them in insertion order.
func (b *Builder) Build() []*document.Document {
	b.t.Helper()
	out := make([]*document.Document, 0, len(b.docs))
	for _, d := range b.docs {
		doc := document.New(d.title, d.markup)
		if !d.updatedAt.IsZero() {
			doc = document.Reconstitute(0, doc.GUID(), d.title, d.markup, d.updatedAt, d.updatedAt, nil)
		}
		require.NoError(b.t, b.repo.Save(doc))
		if d.deleted {
			require.NoError(b.t, b.repo.Delete(doc.GUID()))
		}
		out = append(out, doc)
	}
	return out
}
