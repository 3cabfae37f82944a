package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/codraft/codraft/internal/models"
)

// runResolve разрешает все конфликты одной политикой. Первый sync выявляет
// конфликты, второй отправляет правки, поставленные в очередь разрешением.
func (c *Cli) runResolve(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: codraft resolve <local|server>")
	}

	var resolution models.Resolution
	switch args[0] {
	case "local":
		resolution = models.ResolutionLocal
	case "server":
		resolution = models.ResolutionServer
	default:
		return fmt.Errorf("unknown resolution %q, expected local or server", args[0])
	}

	if err := c.loadSession(ctx); err != nil {
		return err
	}

	c.io.Println("=== Resolve conflicts ===")
	c.io.Println("")

	if err := c.connect(ctx); err != nil {
		return err
	}

	// Выявляем конфликты
	result, err := c.coordinator.Sync(ctx, c.apiClient.Push)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	conflicts := c.coordinator.Conflicts()
	if len(conflicts) == 0 {
		c.printSyncResult(result)
		c.io.Println("")
		c.io.Println("No conflicts to resolve.")
		return nil
	}

	c.io.Printf("Resolving %d conflict(s) with policy %q:\n", len(conflicts), args[0])
	for _, conflict := range conflicts {
		c.io.Printf("  %s (server revision %d)\n", conflict.DocumentID, conflict.ServerRevision)
	}

	if err := c.coordinator.ResolveAllConflicts(ctx, resolution); err != nil {
		return err
	}

	// Разрешение политикой local ставит правки в очередь поверх серверной
	// ревизии; отправляем их сразу
	if _, err := c.coordinator.Sync(ctx, c.apiClient.Push); err != nil {
		return fmt.Errorf("failed to push resolved content: %w", err)
	}

	if err := c.store.SaveLastSyncTime(ctx, time.Now()); err != nil {
		c.logger.Warn("failed to record sync time", "error", err)
	}

	c.io.Println("")
	c.io.Println("✓ All conflicts resolved.")

	return nil
}
