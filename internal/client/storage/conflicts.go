package storage

import (
	"context"

	"github.com/codraft/codraft/internal/models"
)

//go:generate moq -out conflicts_mock.go . ConflictStorage

// ConflictStorage defines interface for the durable conflict ledger. Конфликт
// переживает перезапуск клиента: он записывается при обнаружении и удаляется
// только явным разрешением. Порядок обнаружения сохраняется (oldest first).
type ConflictStorage interface {
	// SaveConflict appends a detected conflict to the ledger
	SaveConflict(ctx context.Context, conflict *models.SyncConflict) error

	// GetConflicts returns all unresolved conflicts ordered by detection time
	GetConflicts(ctx context.Context) ([]*models.SyncConflict, error)

	// DeleteConflict removes a resolved conflict. Удаление отсутствующего
	// конфликта — no-op (идемпотентные повторы допустимы).
	DeleteConflict(ctx context.Context, conflictID string) error
}
