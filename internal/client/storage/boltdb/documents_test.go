package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codraft/codraft/internal/client/storage"
	"github.com/codraft/codraft/internal/models"
)

// createTestDocument создает тестовый снимок документа
func createTestDocument(id string, content string, revision int64) *models.Document {
	return &models.Document{
		ID:        id,
		OwnerID:   "user-123",
		Content:   []byte(content),
		Revision:  revision,
		UpdatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestStorage_SaveDocument(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	doc := createTestDocument("doc-1", `{"sections":["intro"]}`, 1)
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Content, got.Content)
	assert.Equal(t, doc.Revision, got.Revision)
}

func TestStorage_SaveDocument_LastWriteWins(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Последовательные сохранения одного документа: читается последний снимок
	contents := []string{"v1", "v2", "v3"}
	for i, c := range contents {
		require.NoError(t, store.SaveDocument(ctx, createTestDocument("doc-1", c, int64(i+1))))
	}

	got, err := store.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("v3"), got.Content)
	assert.Equal(t, int64(3), got.Revision)
}

func TestStorage_GetDocument_NotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, storage.ErrDocumentNotFound)
}

func TestStorage_ListDocuments(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, createTestDocument("doc-1", "a", 1)))
	require.NoError(t, store.SaveDocument(ctx, createTestDocument("doc-2", "b", 4)))

	docs, err := store.ListDocuments(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestStorage_ListDocuments_Empty(t *testing.T) {
	store := createTestStorage(t)

	docs, err := store.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStorage_Documents_SurviveReopen(t *testing.T) {
	dbPath := t.TempDir() + "/reopen.db"
	ctx := context.Background()

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveDocument(ctx, createTestDocument("doc-1", "offline edit", 2)))
	require.NoError(t, store.Close())

	// Снимок должен пережить перезапуск процесса
	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("offline edit"), got.Content)
}
