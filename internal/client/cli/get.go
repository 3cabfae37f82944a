package cli

import (
	"context"
	"fmt"

	"github.com/codraft/codraft/internal/validation"
)

// runGet показывает документ: локальный снимок, если он есть, иначе
// загружает серверное состояние и кеширует его.
func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: codraft get <doc-id>")
	}
	documentID := args[0]
	if err := validation.ValidateDocumentID(documentID); err != nil {
		return err
	}

	if doc, ok := c.cache.GetCached(ctx, documentID); ok {
		c.io.Printf("Document: %s (revision %d, local snapshot)\n", doc.ID, doc.Revision)
		c.io.Println("")
		c.io.Println(string(doc.Content))
		return nil
	}

	// Нет локального снимка — нужен сервер
	if err := c.loadSession(ctx); err != nil {
		return fmt.Errorf("document is not cached locally and %w", err)
	}

	resp, err := c.apiClient.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	c.cache.CacheDocument(ctx, documentID, resp.Content, resp.Revision)

	c.io.Printf("Document: %s (revision %d, fetched from server)\n", resp.ID, resp.Revision)
	c.io.Println("")
	c.io.Println(string(resp.Content))

	return nil
}
