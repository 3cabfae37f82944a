package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/codraft/codraft/internal/validation"
)

// runEdit захватывает локальную правку: полный снимок документа кешируется
// и ставится в очередь на отправку. Работает offline.
func (c *Cli) runEdit(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: codraft edit <doc-id> [file]")
	}
	documentID := args[0]
	if err := validation.ValidateDocumentID(documentID); err != nil {
		return err
	}

	var content []byte
	if len(args) >= 2 {
		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read content file: %w", err)
		}
		content = data
	} else {
		input, err := c.io.ReadInput("Content: ")
		if err != nil {
			return fmt.Errorf("failed to read content: %w", err)
		}
		content = []byte(input)
	}

	if err := c.coordinator.CaptureEdit(ctx, documentID, content); err != nil {
		return err
	}

	count, err := c.store.CountChanges(ctx)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Edit captured for %s (%d bytes)\n", documentID, len(content))
	c.io.Printf("Pending queue: %d edit(s). Run 'codraft sync' to push.\n", count)

	return nil
}
