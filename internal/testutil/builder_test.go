package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/document"
)

func TestBuilder_InsertsDocuments(t *testing.T) {
	db := NewTestDB(t)
	repo := db.DocumentRepository()

	docs := NewBuilder(t, repo).
		WithDocument("notes", WithMarkup("*hi*")).
		WithDocument("scratch").
		Build()

	require.Len(t, docs, 2)
	require.NotZero(t, docs[0].ID())

	got, err := repo.FindByGUID(docs[0].GUID())
	require.NoError(t, err)
	require.Equal(t, "notes", got.Title())
	require.Equal(t, "*hi*", got.Markup())
}

func TestBuilder_DeletedFixtureIsHidden(t *testing.T) {
	db := NewTestDB(t)
	repo := db.DocumentRepository()

	docs := NewBuilder(t, repo).
		WithDocument("gone", Deleted()).
		Build()

	_, err := repo.FindByGUID(docs[0].GUID())
	var notFound *document.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestBuilder_PinnedUpdatedAtOrdersList(t *testing.T) {
	db := NewTestDB(t)
	repo := db.DocumentRepository()

	base := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	NewBuilder(t, repo).
		WithDocument("older", WithUpdatedAt(base)).
		WithDocument("newer", WithUpdatedAt(base.Add(time.Hour))).
		Build()

	docs, err := repo.List(document.ListFilter{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "newer", docs[0].Title())
	require.Equal(t, "older", docs[1].Title())
}
