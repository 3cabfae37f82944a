// Package cache implements the client-side document cache: the latest known
// snapshot of every document, durable across disconnects and restarts.
//
// Ошибка записи в durable хранилище никогда не блокирует редактирование:
// in-memory копия остается авторитетной для текущей сессии, а ошибка только
// логируется.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/codraft/codraft/internal/client/storage"
	"github.com/codraft/codraft/internal/models"
)

// Cache является LocalCache движка синхронизации: последний известный снимок
// каждого документа, с durable слоем (BoltDB) под in-memory overlay.
type Cache struct {
	store  storage.DocumentStorage
	logger *slog.Logger
	memory map[string]*models.Document
	now    func() time.Time
	mu     sync.RWMutex
}

// New creates a document cache over the given durable storage
func New(store storage.DocumentStorage, logger *slog.Logger) *Cache {
	return &Cache{
		store:  store,
		logger: logger,
		memory: make(map[string]*models.Document),
		now:    time.Now,
	}
}

// CacheDocument overwrites the stored snapshot for a document. Idempotent.
// Never returns an error: durable write failures are logged and the in-memory
// snapshot stays authoritative for the session.
func (c *Cache) CacheDocument(ctx context.Context, documentID string, content []byte, revision int64) {
	doc := &models.Document{
		ID:        documentID,
		Content:   content,
		Revision:  revision,
		UpdatedAt: c.now(),
	}

	c.mu.Lock()
	c.memory[documentID] = doc.Clone()
	c.mu.Unlock()

	if err := c.store.SaveDocument(ctx, doc); err != nil {
		// Редактирование не должно блокироваться ошибкой локального хранилища
		c.logger.Warn("failed to persist document snapshot",
			"document_id", documentID,
			"error", err)
	}
}

// GetCached returns the last cached snapshot for a document.
// Второе возвращаемое значение false означает, что снимка нет.
func (c *Cache) GetCached(ctx context.Context, documentID string) (*models.Document, bool) {
	c.mu.RLock()
	doc, ok := c.memory[documentID]
	c.mu.RUnlock()

	if ok {
		return doc.Clone(), true
	}

	// Memory miss: пробуем durable слой (холодный старт после перезапуска)
	stored, err := c.store.GetDocument(ctx, documentID)
	if err != nil {
		if !errors.Is(err, storage.ErrDocumentNotFound) {
			c.logger.Warn("failed to read document snapshot",
				"document_id", documentID,
				"error", err)
		}
		return nil, false
	}

	c.mu.Lock()
	c.memory[documentID] = stored.Clone()
	c.mu.Unlock()

	return stored, true
}
