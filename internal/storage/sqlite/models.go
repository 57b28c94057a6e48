package sqlite

import (
	"time"

	"github.com/zjrosen/inkwell/internal/document"
)

// DocumentModel represents the database row for the documents table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type DocumentModel struct {
	ID        int64
	GUID      string
	Title     string
	Markup    string
	CreatedAt int64  // Unix timestamp
	UpdatedAt int64  // Unix timestamp
	DeletedAt *int64 // Unix timestamp, nullable
}

// toDocumentModel converts a domain Document entity to a database row model.
func toDocumentModel(d *document.Document) *DocumentModel {
	m := &DocumentModel{
		ID:        d.ID(),
		GUID:      d.GUID(),
		Title:     d.Title(),
		Markup:    d.Markup(),
		CreatedAt: d.CreatedAt().Unix(),
		UpdatedAt: d.UpdatedAt().Unix(),
	}
	if d.DeletedAt() != nil {
		deletedAt := d.DeletedAt().Unix()
		m.DeletedAt = &deletedAt
	}
	return m
}

// toDomain converts a database row model to a domain Document entity.
func (m *DocumentModel) toDomain() *document.Document {
	var deletedAt *time.Time
	if m.DeletedAt != nil {
		t := time.Unix(*m.DeletedAt, 0)
		deletedAt = &t
	}
	return document.Reconstitute(
		m.ID,
		m.GUID,
		m.Title,
		m.Markup,
		time.Unix(m.CreatedAt, 0),
		time.Unix(m.UpdatedAt, 0),
		deletedAt,
	)
}
