package cli

import (
	"context"
	"time"

	"github.com/codraft/codraft/internal/client/storage"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println("")

	auth, err := c.store.GetAuth(ctx)
	switch {
	case err == storage.ErrAuthNotFound:
		c.io.Println("Session:    not authenticated")
	case err != nil:
		return err
	default:
		c.io.Printf("Session:    %s\n", auth.Username)
		expiresAt := time.Unix(auth.ExpiresAt, 0)
		if time.Now().After(expiresAt) {
			c.io.Println("Token:      expired (will refresh on next command)")
		} else {
			c.io.Printf("Token:      valid until %s\n", expiresAt.Format(time.RFC3339))
		}
	}

	// Connection probe не фатален: status работает и offline
	if err := c.coordinator.Connect(ctx, c.apiClient.Health); err != nil {
		c.io.Println("Server:     unreachable")
	} else {
		c.io.Println("Server:     reachable")
	}

	count, err := c.store.CountChanges(ctx)
	if err != nil {
		return err
	}
	c.io.Printf("Pending:    %d queued edit(s)\n", count)

	if conflicts := c.coordinator.Conflicts(); len(conflicts) > 0 {
		c.io.Printf("Conflicts:  %d unresolved, run 'codraft resolve local|server'\n", len(conflicts))
	}

	lastSync, err := c.store.GetLastSyncTime(ctx)
	if err != nil {
		return err
	}
	if lastSync.IsZero() {
		c.io.Println("Last sync:  never")
	} else {
		c.io.Printf("Last sync:  %s\n", lastSync.Format(time.RFC3339))
	}

	return nil
}
