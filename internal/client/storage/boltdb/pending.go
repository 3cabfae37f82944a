package boltdb

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/codraft/codraft/internal/client/storage"
	"github.com/codraft/codraft/internal/models"
)

// seqKey кодирует sequence number в 8-байтовый big-endian ключ,
// чтобы обход bucket по ключам давал порядок захвата правок
func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// AppendChange appends an edit to the tail of the queue and assigns its
// sequence number
func (s *Storage) AppendChange(ctx context.Context, change *models.PendingChange) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return fmt.Errorf("pending bucket not found")
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to get next sequence: %w", err)
		}
		change.Seq = seq

		data, err := json.Marshal(change)
		if err != nil {
			return fmt.Errorf("failed to marshal pending change: %w", err)
		}

		if err := bucket.Put(seqKey(seq), data); err != nil {
			return fmt.Errorf("failed to save pending change: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetChanges returns all queued edits ordered by sequence number
func (s *Storage) GetChanges(ctx context.Context) ([]*models.PendingChange, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var changes []*models.PendingChange

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return nil
		}

		// Cursor обходит ключи в byte order — для big-endian seq это порядок захвата
		return bucket.ForEach(func(k, v []byte) error {
			var change models.PendingChange
			if err := json.Unmarshal(v, &change); err != nil {
				return fmt.Errorf("failed to unmarshal pending change: %w", err)
			}
			changes = append(changes, &change)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to get pending changes: %w", err)
	}

	return changes, nil
}

// CountChanges returns the number of queued edits
func (s *Storage) CountChanges(ctx context.Context) (int, error) {
	if s.db == nil {
		return 0, storage.ErrStorageClosed
	}

	var count int

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return nil
		}
		count = bucket.Stats().KeyN
		return nil
	})

	if err != nil {
		return 0, fmt.Errorf("failed to count pending changes: %w", err)
	}

	return count, nil
}

// RemoveThrough removes all edits with sequence number <= seq in one transaction
func (s *Storage) RemoveThrough(ctx context.Context, seq uint64) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	limit := seqKey(seq)

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPending)
		if bucket == nil {
			return nil
		}

		cursor := bucket.Cursor()
		for k, _ := cursor.First(); k != nil && bytes.Compare(k, limit) <= 0; k, _ = cursor.Next() {
			if err := cursor.Delete(); err != nil {
				return fmt.Errorf("failed to delete pending change: %w", err)
			}
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("remove transaction failed: %w", err)
	}

	return nil
}
