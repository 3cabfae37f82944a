package storage

import (
	"context"

	"github.com/codraft/codraft/internal/models"
)

//go:generate moq -out documents_mock.go . DocumentStorage

// DocumentStorage defines interface for the durable per-document snapshot
// store on the client. Хранит последний известный снимок каждого документа,
// переживающий потерю соединения и перезапуск процесса.
type DocumentStorage interface {
	// SaveDocument stores or overwrites the snapshot for a document.
	// Idempotent: последующий вызов с тем же содержимым безвреден.
	SaveDocument(ctx context.Context, doc *models.Document) error

	// GetDocument retrieves the last stored snapshot by document ID
	// Returns ErrDocumentNotFound if no snapshot exists
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	// ListDocuments returns all cached snapshots
	ListDocuments(ctx context.Context) ([]*models.Document, error)
}
