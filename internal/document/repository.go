package document

// ListFilter provides filtering options for listing documents.
type ListFilter struct {
	// TitleContains restricts results to titles containing the substring.
	// If empty, no title filtering is applied.
	TitleContains string

	// Limit restricts the number of documents returned. 0 means no limit.
	Limit int

	// IncludeDeleted includes soft-deleted documents in results.
	IncludeDeleted bool
}

// Repository defines the persistence interface for Document entities.
type Repository interface {
	// Save persists a document. For new documents (ID == 0) it inserts a
	// row and sets the ID; otherwise it updates the existing row.
	Save(doc *Document) error

	// FindByGUID retrieves a document by GUID. Returns NotFoundError if no
	// matching document exists. Soft-deleted documents are not returned.
	FindByGUID(guid string) (*Document, error)

	// List retrieves documents matching the filter, ordered by updated_at
	// descending (most recently edited first).
	List(filter ListFilter) ([]*Document, error)

	// Delete performs a soft delete by setting the deletedAt timestamp.
	// Returns NotFoundError if no live document matches.
	Delete(guid string) error

	// Close releases any resources held by the repository.
	Close() error
}
