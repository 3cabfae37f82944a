package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codraft/codraft/internal/client/lock"
	"github.com/codraft/codraft/internal/validation"
)

func (c *Cli) runLock(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: codraft lock <section-id> <doc-id>")
	}
	sectionID, documentID := args[0], args[1]
	if err := validation.ValidateSectionID(sectionID); err != nil {
		return err
	}
	if err := validation.ValidateDocumentID(documentID); err != nil {
		return err
	}

	if err := c.loadSession(ctx); err != nil {
		return err
	}

	manager := lock.New(c.apiClient, c.session.UserID, c.logger)
	result, err := manager.Acquire(ctx, sectionID, documentID)
	if err != nil {
		return err
	}

	if !result.Granted {
		c.io.Printf("Section %s is locked by %s\n", sectionID, result.HeldBy)
		return nil
	}

	c.io.Printf("✓ Section %s locked until %s\n", sectionID, result.ExpiresAt.Format(time.RFC3339))
	return nil
}

func (c *Cli) runUnlock(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: codraft unlock <section-id>")
	}
	sectionID := args[0]
	if err := validation.ValidateSectionID(sectionID); err != nil {
		return err
	}

	if err := c.loadSession(ctx); err != nil {
		return err
	}

	manager := lock.New(c.apiClient, c.session.UserID, c.logger)
	if err := manager.Release(ctx, sectionID); err != nil {
		if errors.Is(err, lock.ErrNotLockHolder) {
			return fmt.Errorf("section %s is not held by you", sectionID)
		}
		return err
	}

	c.io.Printf("✓ Section %s unlocked\n", sectionID)
	return nil
}
