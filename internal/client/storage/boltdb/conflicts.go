package boltdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/codraft/codraft/internal/client/storage"
	"github.com/codraft/codraft/internal/models"
)

// SaveConflict appends a detected conflict to the durable ledger.
// Ключ — порядковый номер обнаружения, обход bucket дает oldest first.
func (s *Storage) SaveConflict(ctx context.Context, conflict *models.SyncConflict) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return fmt.Errorf("conflicts bucket not found")
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}

		data, err := json.Marshal(conflict)
		if err != nil {
			return fmt.Errorf("failed to marshal conflict: %w", err)
		}

		if err := bucket.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("failed to save conflict: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetConflicts returns all unresolved conflicts ordered by detection time
func (s *Storage) GetConflicts(ctx context.Context) ([]*models.SyncConflict, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var conflicts []*models.SyncConflict

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var conflict models.SyncConflict
			if err := json.Unmarshal(v, &conflict); err != nil {
				return fmt.Errorf("failed to unmarshal conflict: %w", err)
			}
			conflicts = append(conflicts, &conflict)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get conflicts: %w", err)
	}

	return conflicts, nil
}

// DeleteConflict removes a resolved conflict; missing id is a no-op
func (s *Storage) DeleteConflict(ctx context.Context, conflictID string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketConflicts)
		if bucket == nil {
			return nil
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			// Записей мало (по одной на расходящийся документ), полный
			// обход дешевле вторичного индекса по id
			if !bytes.Contains(v, []byte(conflictID)) {
				continue
			}
			var conflict models.SyncConflict
			if err := json.Unmarshal(v, &conflict); err != nil {
				return fmt.Errorf("failed to unmarshal conflict: %w", err)
			}
			if conflict.ID != conflictID {
				continue
			}
			if err := cursor.Delete(); err != nil {
				return fmt.Errorf("failed to delete conflict: %w", err)
			}
			return nil
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("delete transaction failed: %w", err)
	}

	return nil
}
