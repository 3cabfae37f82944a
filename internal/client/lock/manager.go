// Package lock implements the client-side section lock manager: a thin proxy
// over the server's lock authority with an advisory local cache of last-known
// leases. Expiry is evaluated lazily against the injected clock; there are no
// background timers.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/pkg/api"
)

// Manager errors
var (
	// ErrNotLockHolder возвращается при попытке снять аренду, которую
	// вызывающий не держит. Сама аренда при этом не затрагивается.
	ErrNotLockHolder = errors.New("caller does not hold the lock")
)

// LockAPI is the remote lock authority. Решение о выдаче аренды принимает
// только сервер; локальный кеш менеджера — подсказка, не источник истины.
type LockAPI interface {
	AcquireLock(ctx context.Context, sectionID, documentID string) (*api.LockResponse, error)
	ReleaseLock(ctx context.Context, sectionID string) (*api.ReleaseLockResponse, error)
}

//go:generate moq -out lock_api_mock.go . LockAPI

// AcquireResult is the outcome of an acquire attempt. Denial is a normal
// result, not an error: HeldBy names the current holder.
type AcquireResult struct {
	ExpiresAt time.Time
	HeldBy    string
	Granted   bool
}

// Manager keeps the advisory lock cache and forwards acquire/release to the
// server authority on focus/blur.
type Manager struct {
	remote LockAPI
	logger *slog.Logger

	userID string

	now func() time.Time

	locks map[string]*models.SectionLock // section_id → last-known lease
	mu    sync.Mutex
}

// New creates a lock manager acting on behalf of userID.
func New(remote LockAPI, userID string, logger *slog.Logger) *Manager {
	return &Manager{
		remote: remote,
		logger: logger,
		userID: userID,
		now:    time.Now,
		locks:  make(map[string]*models.SectionLock),
	}
}

// Acquire requests a lease on the section. Повторный захват держателем
// продлевает аренду. Отказ возвращается как результат, не как ошибка.
func (m *Manager) Acquire(ctx context.Context, sectionID, documentID string) (*AcquireResult, error) {
	resp, err := m.remote.AcquireLock(ctx, sectionID, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !resp.Granted {
		// Запоминаем чужую аренду, чтобы IsLocked/LockedBy отвечали локально
		m.remember(&models.SectionLock{
			SectionID:     sectionID,
			DocumentID:    documentID,
			LockedBy:      resp.HeldBy,
			LockExpiresAt: resp.ExpiresAt,
			LockedAt:      resp.LockedAt,
		})

		m.logger.Debug("lock denied",
			"section_id", sectionID,
			"held_by", resp.HeldBy)

		return &AcquireResult{HeldBy: resp.HeldBy}, nil
	}

	m.remember(&models.SectionLock{
		SectionID:     sectionID,
		DocumentID:    documentID,
		LockedBy:      m.userID,
		LockedAt:      resp.LockedAt,
		LockExpiresAt: resp.ExpiresAt,
	})

	m.logger.Debug("lock granted",
		"section_id", sectionID,
		"expires_at", resp.ExpiresAt)

	return &AcquireResult{Granted: true, ExpiresAt: resp.ExpiresAt}, nil
}

// Release drops the caller's lease on the section. ErrNotLockHolder, если
// сервер сообщил, что аренду держит кто-то другой (или никто).
func (m *Manager) Release(ctx context.Context, sectionID string) error {
	resp, err := m.remote.ReleaseLock(ctx, sectionID)
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if !resp.Released {
		return fmt.Errorf("%w: section %s", ErrNotLockHolder, sectionID)
	}

	m.mu.Lock()
	delete(m.locks, sectionID)
	m.mu.Unlock()

	m.logger.Debug("lock released", "section_id", sectionID)
	return nil
}

// HandleFocus acquires the lease when the user focuses a section editor.
func (m *Manager) HandleFocus(ctx context.Context, sectionID, documentID string) (*AcquireResult, error) {
	return m.Acquire(ctx, sectionID, documentID)
}

// HandleBlur releases the lease when the user leaves the section. Сбой снятия
// не фатален: аренда краткоживущая, пассивное истечение доберет ее само.
func (m *Manager) HandleBlur(ctx context.Context, sectionID string) {
	if err := m.Release(ctx, sectionID); err != nil {
		m.logger.Warn("failed to release lock on blur",
			"section_id", sectionID,
			"error", err)
	}
}

// IsLocked reports whether the section has an active lease per the advisory
// cache. Истекшая аренда трактуется как отсутствующая.
func (m *Manager) IsLocked(sectionID string) bool {
	lease, ok := m.active(sectionID)
	return ok && lease != nil
}

// IsLockedByMe reports whether the caller holds an active lease on the section.
func (m *Manager) IsLockedByMe(sectionID string) bool {
	lease, ok := m.active(sectionID)
	return ok && lease.HeldBy(m.userID, m.now())
}

// LockedBy returns the holder of the active lease, or "" when the section is
// free (no lease or expired).
func (m *Manager) LockedBy(sectionID string) string {
	lease, ok := m.active(sectionID)
	if !ok {
		return ""
	}
	return lease.LockedBy
}

// Observe updates the advisory cache from an externally observed lease, e.g.
// a lock event relayed over the presence channel.
func (m *Manager) Observe(lease *models.SectionLock) {
	if lease == nil {
		return
	}
	m.remember(lease.Clone())
}

// remember записывает аренду в кеш-подсказку
func (m *Manager) remember(lease *models.SectionLock) {
	m.mu.Lock()
	m.locks[lease.SectionID] = lease
	m.mu.Unlock()
}

// active возвращает неистекшую аренду секции; истекшие удаляются при чтении
func (m *Manager) active(sectionID string) (*models.SectionLock, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	lease, ok := m.locks[sectionID]
	if !ok {
		return nil, false
	}
	if lease.IsExpired(m.now()) {
		delete(m.locks, sectionID)
		return nil, false
	}
	return lease, true
}
