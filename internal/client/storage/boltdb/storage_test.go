package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStorage создает временное хранилище для тестов
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		if store.db != nil {
			require.NoError(t, store.Close())
		}
	})

	return store
}

func TestNew(t *testing.T) {
	store := createTestStorage(t)
	assert.NotNil(t, store.db)
}

func TestNew_InvalidPath(t *testing.T) {
	_, err := New(context.Background(), "/nonexistent-dir/nested/test.db")
	assert.Error(t, err)
}

func TestStorage_Close(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	assert.NoError(t, store.Close())

	// Повторное закрытие nil-безопасно
	store.db = nil
	assert.NoError(t, store.Close())
}
