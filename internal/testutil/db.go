// Package testutil provides shared helpers for tests: a throwaway migrated
// library database and a fluent document fixture builder.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/storage/sqlite"
)

// NewTestDB creates a fully migrated library database in a temp directory.
// It is closed automatically when the test finishes.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewTestService creates a document service over a throwaway database, with
// caching disabled so tests observe every repository call.
func NewTestService(t *testing.T) *document.Service {
	t.Helper()
	db := NewTestDB(t)
	svc := document.NewService(db.DocumentRepository(), richtext.DefaultTable(), nil)
	t.Cleanup(svc.Close)
	return svc
}
