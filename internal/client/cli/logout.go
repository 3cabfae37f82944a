package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.loadSession(ctx); err != nil {
		return err
	}

	// Отзыв серверных refresh tokens; локальная сессия удаляется в любом случае
	if err := c.apiClient.Logout(ctx); err != nil {
		c.logger.Warn("server-side logout failed", "error", err)
	}

	if err := c.store.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	c.session = nil

	c.io.Println("✓ Logged out.")
	return nil
}
