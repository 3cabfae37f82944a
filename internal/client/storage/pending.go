package storage

import (
	"context"

	"github.com/codraft/codraft/internal/models"
)

//go:generate moq -out pending_mock.go . PendingStorage

// PendingStorage defines interface for the durable queue of local edits not
// yet confirmed by the server. Порядок захвата сохраняется: правки выдаются
// строго по возрастанию Seq (oldest first).
type PendingStorage interface {
	// AppendChange appends an edit to the tail of the queue and assigns
	// its sequence number (returned via change.Seq)
	AppendChange(ctx context.Context, change *models.PendingChange) error

	// GetChanges returns all queued edits ordered by sequence number
	GetChanges(ctx context.Context) ([]*models.PendingChange, error)

	// CountChanges returns the number of queued edits
	CountChanges(ctx context.Context) (int, error)

	// RemoveThrough removes all edits with sequence number <= seq.
	// Используется после успешного sync: подтвержденный префикс очереди
	// удаляется атомарно, правки захваченные во время sync остаются.
	RemoveThrough(ctx context.Context, seq uint64) error
}
