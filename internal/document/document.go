// Package document provides the domain layer for notes: the Document entity,
// the Repository persistence interface, and domain error types. It has no
// knowledge of storage or UI concerns.
package document

import (
	"time"

	"github.com/google/uuid"
)

// Document is a stored note: a title plus the markup serialization of its
// annotated-run content. Fields are unexported; use the constructor and
// getters.
type Document struct {
	id        int64
	guid      string
	title     string
	markup    string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// New creates a Document with a fresh GUID and current timestamps. The ID is
// left zero and assigned by the persistence layer on first Save.
func New(title, markup string) *Document {
	now := time.Now()
	return &Document{
		guid:      uuid.New().String(),
		title:     title,
		markup:    markup,
		createdAt: now,
		updatedAt: now,
	}
}

// Reconstitute creates a Document from existing data, typically when
// hydrating from the database. All fields are provided explicitly.
func Reconstitute(id int64, guid, title, markup string, createdAt, updatedAt time.Time, deletedAt *time.Time) *Document {
	return &Document{
		id:        id,
		guid:      guid,
		title:     title,
		markup:    markup,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

// ID returns the database identifier, 0 until the document is persisted.
func (d *Document) ID() int64 { return d.id }

// SetID assigns the database identifier after an insert.
func (d *Document) SetID(id int64) { d.id = id }

// GUID returns the globally unique identifier for this document.
func (d *Document) GUID() string { return d.guid }

// Title returns the human-readable title.
func (d *Document) Title() string { return d.title }

// Markup returns the markup serialization of the document content.
func (d *Document) Markup() string { return d.markup }

// CreatedAt returns when the document was created.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// UpdatedAt returns when the document was last modified.
func (d *Document) UpdatedAt() time.Time { return d.updatedAt }

// DeletedAt returns the soft-delete timestamp, nil for live documents.
func (d *Document) DeletedAt() *time.Time { return d.deletedAt }

// Rename updates the title and bumps the modification timestamp.
func (d *Document) Rename(title string) {
	d.title = title
	d.updatedAt = time.Now()
}

// SetMarkup replaces the content and bumps the modification timestamp.
func (d *Document) SetMarkup(markup string) {
	d.markup = markup
	d.updatedAt = time.Now()
}
