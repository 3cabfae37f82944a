package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codraft/codraft/internal/client/lock"
	"github.com/codraft/codraft/internal/client/ws"
	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/internal/validation"
	"github.com/codraft/codraft/pkg/api"
)

// runWatch подписывается на комнату документа и печатает события до Ctrl+C
// или закрытия соединения сервером. События аренд дополнительно обновляют
// advisory-кеш менеджера блокировок.
func (c *Cli) runWatch(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: codraft watch <doc-id>")
	}
	documentID := args[0]
	if err := validation.ValidateDocumentID(documentID); err != nil {
		return err
	}

	if err := c.loadSession(ctx); err != nil {
		return err
	}

	manager := lock.New(c.apiClient, c.session.UserID, c.logger)
	watcher := ws.New(c.apiClient.BaseURL(), c.session.AccessToken, c.logger)

	c.io.Printf("Watching document %s (Ctrl+C to stop)\n", documentID)

	return watcher.Run(ctx, documentID, func(e api.Event) {
		c.handleRoomEvent(manager, e)
	})
}

// handleRoomEvent печатает событие комнаты и обновляет кеш аренд
func (c *Cli) handleRoomEvent(manager *lock.Manager, e api.Event) {
	switch e.Type {
	case api.EventPresence:
		c.io.Printf("Editors online: %s\n", strings.Join(e.Users, ", "))

	case api.EventDocumentUpdated:
		c.io.Printf("Document %s advanced to revision %d\n", e.DocumentID, e.Revision)

	case api.EventLockChanged:
		if e.Locked {
			manager.Observe(&models.SectionLock{
				SectionID:     e.SectionID,
				DocumentID:    e.DocumentID,
				LockedBy:      e.LockedBy,
				LockExpiresAt: e.ExpiresAt,
			})
			c.io.Printf("Section %s locked by %s until %s\n",
				e.SectionID, e.LockedBy, e.ExpiresAt.Format(time.RFC3339))
			return
		}
		// Снятие аренды: просроченная запись вычищается кешем при чтении
		manager.Observe(&models.SectionLock{
			SectionID:  e.SectionID,
			DocumentID: e.DocumentID,
		})
		c.io.Printf("Section %s unlocked\n", e.SectionID)

	default:
		c.logger.Debug("ignoring unknown room event", "type", e.Type)
	}
}
