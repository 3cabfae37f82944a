// Package cli implements the command dispatch of the client binary.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codraft/codraft/internal/client/api"
	"github.com/codraft/codraft/internal/client/cache"
	"github.com/codraft/codraft/internal/client/iocli"
	"github.com/codraft/codraft/internal/client/storage"
	"github.com/codraft/codraft/internal/client/storage/boltdb"
	"github.com/codraft/codraft/internal/client/sync"
)

type Cli struct {
	io          iocli.IO
	apiClient   *api.Client
	store       *boltdb.Storage
	cache       *cache.Cache
	coordinator *sync.Coordinator
	logger      *slog.Logger

	// session заполняется loadSession перед командами, требующими авторизации
	session *storage.AuthData
}

func New(ctx context.Context, io iocli.IO, apiClient *api.Client, store *boltdb.Storage, logger *slog.Logger) (*Cli, error) {
	documentCache := cache.New(store, logger)
	coordinator, err := sync.New(ctx, documentCache, store, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sync coordinator: %w", err)
	}
	return &Cli{
		io:          io,
		apiClient:   apiClient,
		store:       store,
		cache:       documentCache,
		coordinator: coordinator,
		logger:      logger,
	}, nil
}

// loadSession загружает сохраненную сессию и обновляет пару токенов,
// если access token истек. Обновленная сессия сохраняется обратно.
func (c *Cli) loadSession(ctx context.Context) error {
	auth, err := c.store.GetAuth(ctx)
	if err != nil {
		if err == storage.ErrAuthNotFound {
			return fmt.Errorf("not authenticated, run 'codraft login' first")
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	if time.Now().Unix() >= auth.ExpiresAt {
		resp, err := c.apiClient.Refresh(ctx, auth.RefreshToken)
		if err != nil {
			return fmt.Errorf("session expired and refresh failed, run 'codraft login' again: %w", err)
		}

		auth.AccessToken = resp.AccessToken
		auth.RefreshToken = resp.RefreshToken
		auth.ExpiresAt = time.Now().Unix() + resp.ExpiresIn

		if err := c.store.SaveAuth(ctx, auth); err != nil {
			return fmt.Errorf("failed to save refreshed session: %w", err)
		}
	}

	c.apiClient.SetToken(auth.AccessToken)
	c.session = auth
	return nil
}

func PrintUsage(io iocli.IO) {
	io.Println("Codraft Client")
	io.Println("")
	io.Println("Usage:")
	io.Println("  codraft [OPTIONS] COMMAND")
	io.Println("")
	io.Println("Options:")
	io.Println("  --server URL   Server URL (default: http://localhost:8080)")
	io.Println("  --db PATH      Path to local database (default: codraft-client.db)")
	io.Println("")
	io.Println("Commands:")
	io.Println("  register                    Register new user")
	io.Println("  login                       Login to server")
	io.Println("  logout                      Logout and drop the local session")
	io.Println("  status                      Show session, connection and queue state")
	io.Println("  edit <doc-id> [file]        Capture a local edit (content from file or prompt)")
	io.Println("  get <doc-id>                Show a document (local snapshot, server fallback)")
	io.Println("  sync                        Push pending edits and reconcile verdicts")
	io.Println("  resolve <local|server>      Resolve all sync conflicts with one policy")
	io.Println("  watch <doc-id>              Follow presence and lock events for a document")
	io.Println("  lock <section-id> <doc-id>  Acquire a section lock")
	io.Println("  unlock <section-id>         Release a section lock")
	io.Println("")
	io.Println("Examples:")
	io.Println("  codraft login")
	io.Println("  codraft edit proposal-2026 draft.md")
	io.Println("  codraft sync")
	io.Println("  codraft resolve local")
	io.Println("  codraft --server https://example.com lock exec-summary proposal-2026")
}
