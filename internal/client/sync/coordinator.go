// Package sync implements the client-side synchronization coordinator:
// connection state, the pending change queue, conflict detection and
// whole-document conflict resolution.
package sync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/codraft/codraft/internal/client/cache"
	"github.com/codraft/codraft/internal/client/storage"
	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/pkg/api"
)

// ConnectionStatus описывает состояние подключения к серверу.
// Ровно одно значение в каждый момент времени; переходами владеет Coordinator.
type ConnectionStatus string

// Connection status values
const (
	StatusConnected    ConnectionStatus = "connected"
	StatusConnecting   ConnectionStatus = "connecting"
	StatusDisconnected ConnectionStatus = "disconnected"
	StatusReconnecting ConnectionStatus = "reconnecting"
	StatusSyncing      ConnectionStatus = "syncing"
)

// Coordinator errors
var (
	// ErrSyncInProgress возвращается при вызове Sync, пока другой Sync в полете.
	// Повторная отправка не выполняется — вызов отклоняется, не ставится в очередь.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrConflictNotFound indicates the conflict id is unknown
	// (already resolved or never existed). Callers treat it as non-fatal.
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrUnknownResolution indicates an unsupported resolution policy
	ErrUnknownResolution = errors.New("unknown resolution policy")
)

// PushFunc отправляет набор правок удаленному авторитету и возвращает
// вердикт по каждой. Results идут в том же порядке, что и changes.
type PushFunc func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error)

// ProbeFunc проверяет доступность сервера (например, через health endpoint)
type ProbeFunc func(ctx context.Context) error

// SyncResult contains sync operation results
type SyncResult struct {
	Pushed       int // количество отправленных правок (после коалесценции по документу)
	Accepted     int // количество принятых сервером правок
	Noops        int // количество правок, совпавших с серверным содержимым
	NewConflicts int // количество новых конфликтов
}

// Coordinator reconciles local edits with the remote authority and exposes
// connection/sync state. PendingChangeSet и список конфликтов принадлежат
// исключительно координатору; никто другой их не мутирует.
type Coordinator struct {
	cache         *cache.Cache
	pending       storage.PendingStorage
	conflictStore storage.ConflictStorage
	logger        *slog.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	conflicts []*models.SyncConflict // oldest first

	baseBackoff time.Duration
	maxAttempts int

	status  ConnectionStatus
	syncing bool
	mu      sync.Mutex
}

// New creates a sync coordinator and loads unresolved conflicts from the
// durable ledger, so conflicts detected by a previous process stay resolvable.
// Initial status is disconnected.
func New(ctx context.Context, documentCache *cache.Cache, pending storage.PendingStorage, conflicts storage.ConflictStorage, logger *slog.Logger) (*Coordinator, error) {
	persisted, err := conflicts.GetConflicts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load conflicts: %w", err)
	}

	return &Coordinator{
		cache:         documentCache,
		pending:       pending,
		conflictStore: conflicts,
		logger:        logger,
		conflicts:     persisted,
		status:        StatusDisconnected,
		now:           time.Now,
		sleep:         sleepContext,
		baseBackoff:   time.Second,
		maxAttempts:   5,
	}, nil
}

// sleepContext ждет d или отмену контекста
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Status returns the current connection status
func (c *Coordinator) Status() ConnectionStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Conflicts returns pending conflicts ordered by detection time (oldest first)
func (c *Coordinator) Conflicts() []*models.SyncConflict {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]*models.SyncConflict, 0, len(c.conflicts))
	for _, conflict := range c.conflicts {
		result = append(result, conflict.Clone())
	}
	return result
}

// HasPendingChanges reports whether any local edits await confirmation
func (c *Coordinator) HasPendingChanges(ctx context.Context) (bool, error) {
	count, err := c.pending.CountChanges(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count pending changes: %w", err)
	}
	return count > 0, nil
}

// IsSynced reports whether the client is fully reconciled with the server:
// no pending changes, no conflicts, and the connection is up
func (c *Coordinator) IsSynced(ctx context.Context) (bool, error) {
	hasPending, err := c.HasPendingChanges(ctx)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return !hasPending && len(c.conflicts) == 0 && c.status == StatusConnected, nil
}

// CaptureEdit stores a local edit: caches the new snapshot and appends it to
// the pending change queue. Ошибка кеша не блокирует захват правки.
func (c *Coordinator) CaptureEdit(ctx context.Context, documentID string, content []byte) error {
	// Базовая ревизия — последняя известная серверная ревизия документа
	var baseRevision int64
	if cached, ok := c.cache.GetCached(ctx, documentID); ok {
		baseRevision = cached.Revision
	}

	c.cache.CacheDocument(ctx, documentID, content, baseRevision)

	change := &models.PendingChange{
		DocumentID:   documentID,
		Content:      content,
		BaseRevision: baseRevision,
		CapturedAt:   c.now(),
	}

	if err := c.pending.AppendChange(ctx, change); err != nil {
		return fmt.Errorf("failed to queue pending change: %w", err)
	}

	c.logger.Debug("captured local edit",
		"document_id", documentID,
		"base_revision", baseRevision,
		"seq", change.Seq)

	return nil
}

// Sync pushes the pending change queue through push and reconciles the
// verdicts. Безопасен для повторных вызовов: параллельный вызов при sync
// в полете возвращает ErrSyncInProgress. Вызов с пустой очередью и без
// конфликтов — успешный no-op без смены статуса.
//
// При транспортной ошибке статус откатывается к состоянию до вызова, а
// правки остаются в очереди (retryable). Конфликты никогда не ретраятся
// автоматически — только ResolveConflict/ResolveAllConflicts.
func (c *Coordinator) Sync(ctx context.Context, push PushFunc) (*SyncResult, error) {
	c.mu.Lock()
	if c.syncing {
		c.mu.Unlock()
		return nil, ErrSyncInProgress
	}
	c.syncing = true
	prevStatus := c.status
	conflictCount := len(c.conflicts)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.syncing = false
		c.mu.Unlock()
	}()

	changes, err := c.pending.GetChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending changes: %w", err)
	}

	// Тривиальный no-op: нечего отправлять и нечего разрешать
	if len(changes) == 0 && conflictCount == 0 {
		c.logger.Debug("sync is a no-op: nothing pending")
		return &SyncResult{}, nil
	}

	c.setStatus(StatusSyncing)

	// Каждая правка — полный снимок документа, поэтому для каждого документа
	// достаточно отправить последнюю; очередь коалесцируется перед push
	batch := coalesce(changes)

	c.logger.Info("starting sync",
		"queued", len(changes),
		"pushed", len(batch))

	resp, err := push(ctx, batch)
	if err != nil {
		// Транспортный сбой: статус откатывается, правки остаются pending
		c.setStatus(prevStatus)
		return nil, fmt.Errorf("sync push failed: %w", err)
	}

	if len(resp.Results) != len(batch) {
		c.setStatus(prevStatus)
		return nil, fmt.Errorf("server returned %d results for %d changes", len(resp.Results), len(batch))
	}

	result := &SyncResult{Pushed: len(batch)}
	conflictsDurable := true

	for i, change := range batch {
		verdict := resp.Results[i]

		switch verdict.Verdict {
		case api.VerdictAccepted:
			result.Accepted++
			c.cache.CacheDocument(ctx, change.DocumentID, change.Content, verdict.ServerRevision)

		case api.VerdictNoop:
			result.Noops++
			c.cache.CacheDocument(ctx, change.DocumentID, change.Content, verdict.ServerRevision)

		case api.VerdictRejected:
			// Расхождение — конфликт, только если содержимое действительно
			// различается; идентичное содержимое — no-op merge
			if bytes.Equal(change.Content, verdict.ServerContent) {
				result.Noops++
				c.cache.CacheDocument(ctx, change.DocumentID, change.Content, verdict.ServerRevision)
				continue
			}

			conflict := &models.SyncConflict{
				ID:             uuid.New().String(),
				DocumentID:     change.DocumentID,
				LocalVersion:   change.Content,
				ServerVersion:  verdict.ServerContent,
				ServerRevision: verdict.ServerRevision,
				Timestamp:      c.now(),
			}

			if err := c.rememberConflict(ctx, conflict); err != nil {
				// Конфликт остается в памяти процесса; очередь не чистим,
				// чтобы правка пережила перезапуск и всплыла конфликтом снова
				conflictsDurable = false
				c.logger.Warn("failed to persist conflict",
					"conflict_id", conflict.ID,
					"document_id", conflict.DocumentID,
					"error", err)
			}

			result.NewConflicts++
			c.logger.Warn("sync conflict detected",
				"conflict_id", conflict.ID,
				"document_id", conflict.DocumentID,
				"server_revision", conflict.ServerRevision)

		default:
			c.setStatus(prevStatus)
			return nil, fmt.Errorf("unknown verdict %q for document %s", verdict.Verdict, verdict.DocumentID)
		}
	}

	// Очередь подтверждена целиком: принятые правки применены, отвергнутые
	// превращены в конфликты и записаны в журнал. Удаляем обработанный
	// префикс атомарно — но только если каждый конфликт durable, иначе
	// перезапуск потерял бы расхождение вместе с очередью.
	if len(changes) > 0 && conflictsDurable {
		lastSeq := changes[len(changes)-1].Seq
		if err := c.pending.RemoveThrough(ctx, lastSeq); err != nil {
			c.logger.Warn("failed to clear confirmed changes", "error", err)
			// Очередь переотправится на следующем sync; сервер вынесет noop
		}
	}

	c.setStatus(StatusConnected)

	c.logger.Info("sync completed",
		"pushed", result.Pushed,
		"accepted", result.Accepted,
		"noops", result.Noops,
		"conflicts", result.NewConflicts)

	return result, nil
}

// coalesce сворачивает очередь до последней правки на документ,
// сохраняя порядок захвата между документами
func coalesce(changes []*models.PendingChange) []*models.PendingChange {
	latest := make(map[string]*models.PendingChange, len(changes))
	for _, change := range changes {
		latest[change.DocumentID] = change
	}

	batch := make([]*models.PendingChange, 0, len(latest))
	for _, change := range changes {
		if latest[change.DocumentID] == change {
			batch = append(batch, change)
		}
	}
	return batch
}

// rememberConflict записывает конфликт в память и в durable журнал. Документ
// несет не больше одного конфликта: новое расхождение вытесняет прежнее.
func (c *Coordinator) rememberConflict(ctx context.Context, conflict *models.SyncConflict) error {
	var stale *models.SyncConflict

	c.mu.Lock()
	for i, existing := range c.conflicts {
		if existing.DocumentID == conflict.DocumentID {
			stale = existing
			c.conflicts = append(c.conflicts[:i], c.conflicts[i+1:]...)
			break
		}
	}
	c.conflicts = append(c.conflicts, conflict)
	c.mu.Unlock()

	if stale != nil {
		if err := c.conflictStore.DeleteConflict(ctx, stale.ID); err != nil {
			c.logger.Warn("failed to drop superseded conflict",
				"conflict_id", stale.ID,
				"error", err)
		}
	}

	return c.conflictStore.SaveConflict(ctx, conflict)
}

// ResolveConflict removes the conflict and installs resolvedContent as the new
// authoritative local state. Если выбранное содержимое отличается от серверной
// версии, правка ставится в очередь поверх серверной ревизии и уйдет следующим
// sync. Unknown id → ErrConflictNotFound (идемпотентные повторы допустимы).
func (c *Coordinator) ResolveConflict(ctx context.Context, conflictID string, resolvedContent []byte) error {
	c.mu.Lock()
	idx := -1
	for i, conflict := range c.conflicts {
		if conflict.ID == conflictID {
			idx = i
			break
		}
	}
	if idx < 0 {
		c.mu.Unlock()
		return ErrConflictNotFound
	}
	conflict := c.conflicts[idx]
	c.conflicts = append(c.conflicts[:idx], c.conflicts[idx+1:]...)
	c.mu.Unlock()

	if err := c.conflictStore.DeleteConflict(ctx, conflictID); err != nil {
		c.logger.Warn("failed to drop resolved conflict from ledger",
			"conflict_id", conflictID,
			"error", err)
	}

	// Разрешенное состояние основано на серверной ревизии конфликта
	c.cache.CacheDocument(ctx, conflict.DocumentID, resolvedContent, conflict.ServerRevision)

	if !bytes.Equal(resolvedContent, conflict.ServerVersion) {
		change := &models.PendingChange{
			DocumentID:   conflict.DocumentID,
			Content:      resolvedContent,
			BaseRevision: conflict.ServerRevision,
			CapturedAt:   c.now(),
		}
		if err := c.pending.AppendChange(ctx, change); err != nil {
			return fmt.Errorf("failed to queue resolved content: %w", err)
		}
	}

	c.logger.Info("conflict resolved",
		"conflict_id", conflictID,
		"document_id", conflict.DocumentID)

	return nil
}

// ResolveAllConflicts applies one resolution policy to every pending conflict
// in detection order (oldest first), so the outcome is deterministic.
func (c *Coordinator) ResolveAllConflicts(ctx context.Context, resolution models.Resolution) error {
	if resolution != models.ResolutionLocal && resolution != models.ResolutionServer {
		return fmt.Errorf("%w: %q", ErrUnknownResolution, resolution)
	}

	// Снимок списка под локом; разрешение — вне лока, в порядке обнаружения
	c.mu.Lock()
	pending := make([]*models.SyncConflict, len(c.conflicts))
	copy(pending, c.conflicts)
	c.mu.Unlock()

	for _, conflict := range pending {
		content := conflict.LocalVersion
		if resolution == models.ResolutionServer {
			content = conflict.ServerVersion
		}

		if err := c.ResolveConflict(ctx, conflict.ID, content); err != nil {
			// Уже разрешен параллельным вызовом — не ошибка
			if errors.Is(err, ErrConflictNotFound) {
				continue
			}
			return err
		}
	}

	return nil
}

// Connect performs the initial connection probe (no retries)
func (c *Coordinator) Connect(ctx context.Context, probe ProbeFunc) error {
	c.setStatus(StatusConnecting)

	if err := probe(ctx); err != nil {
		c.setStatus(StatusDisconnected)
		return fmt.Errorf("connection probe failed: %w", err)
	}

	c.setStatus(StatusConnected)
	return nil
}

// Reconnect retries the connection probe with exponential backoff.
// Успех переводит в connected, исчерпание попыток — обратно в disconnected.
func (c *Coordinator) Reconnect(ctx context.Context, probe ProbeFunc) error {
	c.setStatus(StatusReconnecting)

	var lastErr error
	backoff := c.baseBackoff

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		err := probe(ctx)
		if err == nil {
			c.setStatus(StatusConnected)
			c.logger.Info("reconnected", "attempt", attempt)
			return nil
		}

		lastErr = err
		c.logger.Debug("reconnect attempt failed",
			"attempt", attempt,
			"error", err)

		if attempt == c.maxAttempts {
			break
		}

		if err := c.sleep(ctx, backoff); err != nil {
			c.setStatus(StatusDisconnected)
			return fmt.Errorf("reconnect cancelled: %w", err)
		}
		backoff *= 2
	}

	c.setStatus(StatusDisconnected)
	return fmt.Errorf("reconnect attempts exhausted: %w", lastErr)
}

// MarkDisconnected records a detected network loss (any state → disconnected)
func (c *Coordinator) MarkDisconnected() {
	c.setStatus(StatusDisconnected)
	c.logger.Info("connection lost")
}

func (c *Coordinator) setStatus(status ConnectionStatus) {
	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}
