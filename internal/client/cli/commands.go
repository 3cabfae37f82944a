package cli

import (
	"context"
	"fmt"
)

// Run dispatches a single command invocation
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "edit":
		return c.runEdit(ctx, args)
	case "get":
		return c.runGet(ctx, args)
	case "sync":
		return c.runSync(ctx)
	case "resolve":
		return c.runResolve(ctx, args)
	case "watch":
		return c.runWatch(ctx, args)
	case "lock":
		return c.runLock(ctx, args)
	case "unlock":
		return c.runUnlock(ctx, args)
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}
