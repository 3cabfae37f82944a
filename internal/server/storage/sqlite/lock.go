package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/internal/server/storage"
)

// AcquireLock grants a lease on the section when it is free, expired, or held
// by the same user (renewal). Истекшая запись просто перезаписывается при
// следующем захвате — фоновой чистки нет.
func (s *Storage) AcquireLock(ctx context.Context, sectionID, documentID, userID string, ttl time.Duration) (*models.SectionLock, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := s.now().UTC()

	existing := &models.SectionLock{}
	query := `
		SELECT section_id, document_id, locked_by, locked_at, lock_expires_at
		FROM section_locks
		WHERE section_id = ?
	`
	err = tx.QueryRowContext(ctx, query, sectionID).Scan(
		&existing.SectionID,
		&existing.DocumentID,
		&existing.LockedBy,
		&existing.LockedAt,
		&existing.LockExpiresAt,
	)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("failed to read lock: %w", err)
	}

	// Активная чужая аренда — отказ с актуальным держателем
	if err == nil && !existing.IsExpired(now) && existing.LockedBy != userID {
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("failed to commit: %w", err)
		}
		return existing, false, nil
	}

	// Секция свободна, аренда истекла или продлевается держателем
	lease := &models.SectionLock{
		SectionID:     sectionID,
		DocumentID:    documentID,
		LockedBy:      userID,
		LockedAt:      now,
		LockExpiresAt: now.Add(ttl),
	}

	upsert := `
		INSERT INTO section_locks (section_id, document_id, locked_by, locked_at, lock_expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(section_id) DO UPDATE SET
			document_id = excluded.document_id,
			locked_by = excluded.locked_by,
			locked_at = excluded.locked_at,
			lock_expires_at = excluded.lock_expires_at
	`
	if _, err := tx.ExecContext(ctx, upsert,
		lease.SectionID,
		lease.DocumentID,
		lease.LockedBy,
		lease.LockedAt,
		lease.LockExpiresAt,
	); err != nil {
		return nil, false, fmt.Errorf("failed to save lock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit: %w", err)
	}

	return lease, true, nil
}

// ReleaseLock drops the lease held by userID
func (s *Storage) ReleaseLock(ctx context.Context, sectionID, userID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	existing := &models.SectionLock{}
	query := `
		SELECT section_id, document_id, locked_by, locked_at, lock_expires_at
		FROM section_locks
		WHERE section_id = ?
	`
	err = tx.QueryRowContext(ctx, query, sectionID).Scan(
		&existing.SectionID,
		&existing.DocumentID,
		&existing.LockedBy,
		&existing.LockedAt,
		&existing.LockExpiresAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrLockNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read lock: %w", err)
	}

	// Истекшая аренда трактуется как отсутствующая
	if existing.IsExpired(s.now().UTC()) {
		return storage.ErrLockNotFound
	}

	if existing.LockedBy != userID {
		return storage.ErrNotLockHolder
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM section_locks WHERE section_id = ?`, sectionID); err != nil {
		return fmt.Errorf("failed to delete lock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// GetLock retrieves the active lease for a section
func (s *Storage) GetLock(ctx context.Context, sectionID string) (*models.SectionLock, error) {
	lease := &models.SectionLock{}
	query := `
		SELECT section_id, document_id, locked_by, locked_at, lock_expires_at
		FROM section_locks
		WHERE section_id = ?
	`
	err := s.db.QueryRowContext(ctx, query, sectionID).Scan(
		&lease.SectionID,
		&lease.DocumentID,
		&lease.LockedBy,
		&lease.LockedAt,
		&lease.LockExpiresAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrLockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lock: %w", err)
	}

	if lease.IsExpired(s.now().UTC()) {
		return nil, storage.ErrLockNotFound
	}

	return lease, nil
}

// ListLocks retrieves all active leases for a document
func (s *Storage) ListLocks(ctx context.Context, documentID string) ([]*models.SectionLock, error) {
	query := `
		SELECT section_id, document_id, locked_by, locked_at, lock_expires_at
		FROM section_locks
		WHERE document_id = ?
		ORDER BY section_id
	`

	rows, err := s.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list locks: %w", err)
	}
	defer rows.Close()

	now := s.now().UTC()

	var leases []*models.SectionLock
	for rows.Next() {
		lease := &models.SectionLock{}
		if err := rows.Scan(
			&lease.SectionID,
			&lease.DocumentID,
			&lease.LockedBy,
			&lease.LockedAt,
			&lease.LockExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lock: %w", err)
		}
		// Истекшие аренды отфильтровываются при чтении
		if lease.IsExpired(now) {
			continue
		}
		leases = append(leases, lease)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate locks: %w", err)
	}

	return leases, nil
}
