package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/codraft/codraft/internal/client/storage"
	"github.com/codraft/codraft/internal/models"
)

// SaveDocument stores or overwrites the snapshot for a document
func (s *Storage) SaveDocument(ctx context.Context, doc *models.Document) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	// Сериализуем снимок в JSON
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	err = s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return fmt.Errorf("documents bucket not found")
		}

		// Сохраняем по ключу ID, перезаписывая предыдущий снимок
		if err := bucket.Put([]byte(doc.ID), data); err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// GetDocument retrieves the last stored snapshot by document ID
func (s *Storage) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var doc *models.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return storage.ErrDocumentNotFound
		}

		data := bucket.Get([]byte(id))
		if data == nil {
			return storage.ErrDocumentNotFound
		}

		doc = &models.Document{}
		if err := json.Unmarshal(data, doc); err != nil {
			return fmt.Errorf("failed to unmarshal document: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// ListDocuments returns all cached snapshots
func (s *Storage) ListDocuments(ctx context.Context) ([]*models.Document, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var docs []*models.Document

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDocuments)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var doc models.Document
			if err := json.Unmarshal(v, &doc); err != nil {
				return fmt.Errorf("failed to unmarshal document: %w", err)
			}
			docs = append(docs, &doc)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}
