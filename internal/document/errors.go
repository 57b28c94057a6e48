package document

import "fmt"

// NotFoundError indicates that no live document matches the given GUID.
type NotFoundError struct {
	GUID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("document %s not found", e.GUID)
}
