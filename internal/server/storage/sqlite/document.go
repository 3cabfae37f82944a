package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/internal/server/storage"
)

// ApplyChange adjudicates one pushed change via compare-and-set on the
// document revision. Вся проверка и продвижение ревизии выполняются в одной
// транзакции: параллельные push сериализуются БД.
func (s *Storage) ApplyChange(ctx context.Context, documentID, ownerID string, content []byte, baseRevision int64) (*storage.ApplyResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var currentContent []byte
	var currentRevision int64

	query := `SELECT content, revision FROM documents WHERE id = ?`
	err = tx.QueryRowContext(ctx, query, documentID).Scan(&currentContent, &currentRevision)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Документа нет — правка создает его на ревизии 1
		now := s.now().UTC()
		insert := `
			INSERT INTO documents (id, owner_id, content, revision, created_at, updated_at)
			VALUES (?, ?, ?, 1, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, insert, documentID, ownerID, content, now, now); err != nil {
			return nil, fmt.Errorf("failed to create document: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		return &storage.ApplyResult{
			Verdict:  storage.VerdictAccepted,
			Content:  content,
			Revision: 1,
		}, nil

	case err != nil:
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	// Идентичное содержимое — no-op независимо от базовой ревизии
	if bytes.Equal(content, currentContent) {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		return &storage.ApplyResult{
			Verdict:  storage.VerdictNoop,
			Content:  currentContent,
			Revision: currentRevision,
		}, nil
	}

	// Ревизии разошлись и содержимое различается — отказ с серверным состоянием
	if baseRevision != currentRevision {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit: %w", err)
		}
		return &storage.ApplyResult{
			Verdict:  storage.VerdictRejected,
			Content:  currentContent,
			Revision: currentRevision,
		}, nil
	}

	// База совпала — принимаем и продвигаем ревизию
	newRevision := currentRevision + 1
	update := `UPDATE documents SET content = ?, revision = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, update, content, newRevision, s.now().UTC(), documentID); err != nil {
		return nil, fmt.Errorf("failed to update document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	return &storage.ApplyResult{
		Verdict:  storage.VerdictAccepted,
		Content:  content,
		Revision: newRevision,
	}, nil
}

// GetDocument retrieves the current server state of a document
func (s *Storage) GetDocument(ctx context.Context, documentID string) (*models.Document, error) {
	query := `
		SELECT id, owner_id, content, revision, updated_at
		FROM documents
		WHERE id = ?
	`

	doc := &models.Document{}
	err := s.db.QueryRowContext(ctx, query, documentID).Scan(
		&doc.ID,
		&doc.OwnerID,
		&doc.Content,
		&doc.Revision,
		&doc.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// ListDocuments retrieves all documents owned by a user
func (s *Storage) ListDocuments(ctx context.Context, ownerID string) ([]*models.Document, error) {
	query := `
		SELECT id, owner_id, content, revision, updated_at
		FROM documents
		WHERE owner_id = ?
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc := &models.Document{}
		if err := rows.Scan(&doc.ID, &doc.OwnerID, &doc.Content, &doc.Revision, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}
