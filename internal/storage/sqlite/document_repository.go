package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/inkwell/internal/document"
)

// documentColumns is the list of columns to select for document queries.
const documentColumns = `id, guid, title, markup, created_at, updated_at, deleted_at`

// documentRepository implements document.Repository using SQLite.
type documentRepository struct {
	db *sql.DB
}

func newDocumentRepository(db *sql.DB) *documentRepository {
	return &documentRepository{db: db}
}

var _ document.Repository = (*documentRepository)(nil)

// scanDocument scans a row into a DocumentModel.
func scanDocument(scanner interface{ Scan(...any) error }) (*DocumentModel, error) {
	var model DocumentModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Title, &model.Markup,
		&model.CreatedAt, &model.UpdatedAt, &model.DeletedAt,
	)
	return &model, err
}

// Save persists a document. New documents (ID == 0) are inserted and the
// generated row ID is written back; existing documents are updated.
func (r *documentRepository) Save(doc *document.Document) error {
	model := toDocumentModel(doc)

	if doc.ID() == 0 {
		result, err := r.db.Exec(
			`INSERT INTO documents (guid, title, markup, created_at, updated_at, deleted_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			model.GUID, model.Title, model.Markup,
			model.CreatedAt, model.UpdatedAt, model.DeletedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert document: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		doc.SetID(id)
		return nil
	}

	_, err := r.db.Exec(
		`UPDATE documents SET title = ?, markup = ?, updated_at = ?, deleted_at = ? WHERE id = ?`,
		model.Title, model.Markup, model.UpdatedAt, model.DeletedAt, model.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return nil
}

// FindByGUID retrieves a document by its GUID.
// Returns NotFoundError if no matching live document exists.
func (r *documentRepository) FindByGUID(guid string) (*document.Document, error) {
	row := r.db.QueryRow(
		`SELECT `+documentColumns+` FROM documents WHERE guid = ? AND deleted_at IS NULL`,
		guid,
	)
	model, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &document.NotFoundError{GUID: guid}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find document by guid: %w", err)
	}
	return model.toDomain(), nil
}

// List retrieves documents matching the filter, most recently edited first.
func (r *documentRepository) List(filter document.ListFilter) ([]*document.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE 1=1`
	var args []any

	if filter.TitleContains != "" {
		query += ` AND title LIKE ?`
		args = append(args, "%"+filter.TitleContains+"%")
	}
	if !filter.IncludeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY updated_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []*document.Document
	for rows.Next() {
		model, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document row: %w", err)
		}
		docs = append(docs, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}
	return docs, nil
}

// Delete performs a soft delete by setting the deleted_at timestamp.
// Returns NotFoundError if no live document matches.
func (r *documentRepository) Delete(guid string) error {
	now := time.Now().Unix()
	result, err := r.db.Exec(
		`UPDATE documents SET deleted_at = ?, updated_at = ? WHERE guid = ? AND deleted_at IS NULL`,
		now, now, guid,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &document.NotFoundError{GUID: guid}
	}
	return nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *documentRepository) Close() error {
	return nil
}
