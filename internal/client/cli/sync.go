package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/codraft/codraft/internal/client/sync"
)

func (c *Cli) runSync(ctx context.Context) error {
	if err := c.loadSession(ctx); err != nil {
		return err
	}

	c.io.Println("=== Synchronization ===")
	c.io.Println("")

	if err := c.connect(ctx); err != nil {
		return err
	}

	result, err := c.coordinator.Sync(ctx, c.apiClient.Push)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	if err := c.store.SaveLastSyncTime(ctx, time.Now()); err != nil {
		c.logger.Warn("failed to record sync time", "error", err)
	}

	c.printSyncResult(result)

	if result.NewConflicts > 0 {
		c.io.Println("")
		c.io.Println("Conflicting documents:")
		for _, conflict := range c.coordinator.Conflicts() {
			c.io.Printf("  %s (server revision %d)\n", conflict.DocumentID, conflict.ServerRevision)
		}
		c.io.Println("")
		c.io.Println("Run 'codraft resolve local' to keep your edits or 'codraft resolve server' to take the server version.")
	}

	return nil
}

// connect пробует прямое подключение, затем переподключение с backoff
func (c *Cli) connect(ctx context.Context) error {
	if err := c.coordinator.Connect(ctx, c.apiClient.Health); err == nil {
		return nil
	}

	c.io.Println("Server unreachable, retrying...")
	if err := c.coordinator.Reconnect(ctx, c.apiClient.Health); err != nil {
		return fmt.Errorf("server is unreachable, your edits stay queued: %w", err)
	}
	return nil
}

func (c *Cli) printSyncResult(result *sync.SyncResult) {
	c.io.Println("")
	c.io.Println("✓ Synchronization completed.")
	c.io.Println("")
	c.io.Printf("Pushed:    %d document(s)\n", result.Pushed)
	c.io.Printf("Accepted:  %d\n", result.Accepted)
	if result.Noops > 0 {
		c.io.Printf("Unchanged: %d\n", result.Noops)
	}
	if result.NewConflicts > 0 {
		c.io.Printf("Conflicts: %d\n", result.NewConflicts)
	}
}
