package storage

import (
	"context"
	"time"

	"github.com/codraft/codraft/internal/models"
)

// LockStorage defines interface for section lease persistence. Сервер —
// единственный авторитет по арендам; истечение вычисляется лениво при
// захвате и чтении, фоновых чисток нет.
type LockStorage interface {
	// AcquireLock grants a lease on the section when it is free, expired, or
	// already held by userID (renewal). Возвращает актуальную аренду и
	// granted=false, когда секцию держит другой пользователь.
	AcquireLock(ctx context.Context, sectionID, documentID, userID string, ttl time.Duration) (*models.SectionLock, bool, error)

	// ReleaseLock drops the lease held by userID.
	// Returns ErrNotLockHolder when the active lease belongs to someone else,
	// ErrLockNotFound when no active lease exists.
	ReleaseLock(ctx context.Context, sectionID, userID string) error

	// GetLock retrieves the active lease for a section
	// Returns ErrLockNotFound if no lease exists or the lease has expired
	GetLock(ctx context.Context, sectionID string) (*models.SectionLock, error)

	// ListLocks retrieves all active leases for a document
	// Returns empty slice if none
	ListLocks(ctx context.Context, documentID string) ([]*models.SectionLock, error)
}
