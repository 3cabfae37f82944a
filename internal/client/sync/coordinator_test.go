package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codraft/codraft/internal/client/cache"
	"github.com/codraft/codraft/internal/client/storage"
	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/pkg/api"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMemoryPending возвращает mock, который ведет себя как рабочая очередь
func newMemoryPending() *storage.PendingStorageMock {
	var mu sync.Mutex
	var queue []*models.PendingChange
	var seq uint64

	return &storage.PendingStorageMock{
		AppendChangeFunc: func(ctx context.Context, change *models.PendingChange) error {
			mu.Lock()
			defer mu.Unlock()
			seq++
			change.Seq = seq
			queue = append(queue, change)
			return nil
		},
		GetChangesFunc: func(ctx context.Context) ([]*models.PendingChange, error) {
			mu.Lock()
			defer mu.Unlock()
			result := make([]*models.PendingChange, len(queue))
			copy(result, queue)
			return result, nil
		},
		CountChangesFunc: func(ctx context.Context) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			return len(queue), nil
		},
		RemoveThroughFunc: func(ctx context.Context, upTo uint64) error {
			mu.Lock()
			defer mu.Unlock()
			kept := queue[:0]
			for _, change := range queue {
				if change.Seq > upTo {
					kept = append(kept, change)
				}
			}
			queue = kept
			return nil
		},
	}
}

func newMemoryCache() *cache.Cache {
	docs := make(map[string]*models.Document)
	store := &storage.DocumentStorageMock{
		SaveDocumentFunc: func(ctx context.Context, doc *models.Document) error {
			docs[doc.ID] = doc
			return nil
		},
		GetDocumentFunc: func(ctx context.Context, id string) (*models.Document, error) {
			if doc, ok := docs[id]; ok {
				return doc.Clone(), nil
			}
			return nil, storage.ErrDocumentNotFound
		},
		ListDocumentsFunc: func(ctx context.Context) ([]*models.Document, error) {
			return nil, nil
		},
	}
	return cache.New(store, testLogger())
}

// newMemoryConflicts возвращает mock, который ведет себя как durable журнал
func newMemoryConflicts() *storage.ConflictStorageMock {
	var mu sync.Mutex
	var ledger []*models.SyncConflict

	return &storage.ConflictStorageMock{
		SaveConflictFunc: func(ctx context.Context, conflict *models.SyncConflict) error {
			mu.Lock()
			defer mu.Unlock()
			ledger = append(ledger, conflict.Clone())
			return nil
		},
		GetConflictsFunc: func(ctx context.Context) ([]*models.SyncConflict, error) {
			mu.Lock()
			defer mu.Unlock()
			result := make([]*models.SyncConflict, 0, len(ledger))
			for _, conflict := range ledger {
				result = append(result, conflict.Clone())
			}
			return result, nil
		},
		DeleteConflictFunc: func(ctx context.Context, conflictID string) error {
			mu.Lock()
			defer mu.Unlock()
			kept := ledger[:0]
			for _, conflict := range ledger {
				if conflict.ID != conflictID {
					kept = append(kept, conflict)
				}
			}
			ledger = kept
			return nil
		},
	}
}

func newTestCoordinatorWith(t *testing.T, documentCache *cache.Cache, pending storage.PendingStorage, conflicts storage.ConflictStorage) *Coordinator {
	t.Helper()
	c, err := New(context.Background(), documentCache, pending, conflicts, testLogger())
	require.NoError(t, err)
	// Мгновенный sleep для тестов переподключения
	c.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return c
}

func newTestCoordinator(t *testing.T) *Coordinator {
	return newTestCoordinatorWith(t, newMemoryCache(), newMemoryPending(), newMemoryConflicts())
}

// acceptAll — pushFn, принимающий каждую правку и продвигающий ревизию
func acceptAll(revisions map[string]int64) PushFunc {
	return func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
		resp := &api.PushResponse{}
		for _, change := range changes {
			revisions[change.DocumentID]++
			resp.Results = append(resp.Results, api.ChangeResult{
				DocumentID:     change.DocumentID,
				Verdict:        api.VerdictAccepted,
				ServerRevision: revisions[change.DocumentID],
			})
		}
		return resp, nil
	}
}

// rejectAllWith — pushFn, отвергающий каждую правку с данным серверным содержимым
func rejectAllWith(serverContent []byte, serverRevision int64) PushFunc {
	return func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
		resp := &api.PushResponse{}
		for _, change := range changes {
			resp.Results = append(resp.Results, api.ChangeResult{
				DocumentID:     change.DocumentID,
				Verdict:        api.VerdictRejected,
				ServerContent:  serverContent,
				ServerRevision: serverRevision,
			})
		}
		return resp, nil
	}
}

func TestSync_EmptyQueue_NoOp(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	called := false
	result, err := c.Sync(ctx, func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
		called = true
		return &api.PushResponse{}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, &SyncResult{}, result)
	assert.False(t, called, "push must not be invoked for a trivial no-op")
	assert.Equal(t, StatusConnected, c.Status())
	assert.Empty(t, c.Conflicts())
}

func TestSync_AcceptedChanges_ClearQueue(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("local edit")))

	hasPending, err := c.HasPendingChanges(ctx)
	require.NoError(t, err)
	assert.True(t, hasPending)

	result, err := c.Sync(ctx, acceptAll(map[string]int64{}))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)
	assert.Equal(t, 0, result.NewConflicts)

	synced, err := c.IsSynced(ctx)
	require.NoError(t, err)
	assert.True(t, synced)
	assert.Equal(t, StatusConnected, c.Status())
}

func TestSync_IdenticalContent_NoConflict(t *testing.T) {
	// Сервер ушел вперед по ревизии, но содержимое совпало — no-op merge
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("same content")))

	result, err := c.Sync(ctx, rejectAllWith([]byte("same content"), 7))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Noops)
	assert.Equal(t, 0, result.NewConflicts)
	assert.Empty(t, c.Conflicts())

	// Локальный снимок перебазирован на серверную ревизию
	doc, ok := c.cache.GetCached(ctx, "doc-1")
	require.True(t, ok)
	assert.Equal(t, int64(7), doc.Revision)
}

func TestSync_DivergentContent_RaisesConflict(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("local version")))

	result, err := c.Sync(ctx, rejectAllWith([]byte("server version"), 5))
	require.NoError(t, err)

	assert.Equal(t, 1, result.NewConflicts)

	conflicts := c.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "doc-1", conflicts[0].DocumentID)
	assert.Equal(t, []byte("local version"), conflicts[0].LocalVersion)
	assert.Equal(t, []byte("server version"), conflicts[0].ServerVersion)
	assert.Equal(t, int64(5), conflicts[0].ServerRevision)

	// Конфликт не считается pending-правкой, но блокирует isSynced
	synced, err := c.IsSynced(ctx)
	require.NoError(t, err)
	assert.False(t, synced)
}

func TestSync_PushFailure_RevertsStatusAndKeepsQueue(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("edit")))

	_, err := c.Sync(ctx, func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
		return nil, errors.New("network unreachable")
	})
	require.Error(t, err)

	// Статус откатился, правки остались pending (retryable)
	assert.Equal(t, StatusConnected, c.Status())
	hasPending, err := c.HasPendingChanges(ctx)
	require.NoError(t, err)
	assert.True(t, hasPending)

	// Повторный sync после восстановления сети успешен
	result, err := c.Sync(ctx, acceptAll(map[string]int64{}))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)
}

func TestSync_ConcurrentCall_Rejected(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("edit")))

	inFlight := make(chan struct{})
	release := make(chan struct{})

	var firstErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = c.Sync(ctx, func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
			close(inFlight)
			<-release
			resp := &api.PushResponse{}
			for _, change := range changes {
				resp.Results = append(resp.Results, api.ChangeResult{
					DocumentID:     change.DocumentID,
					Verdict:        api.VerdictAccepted,
					ServerRevision: 1,
				})
			}
			return resp, nil
		})
	}()

	<-inFlight
	assert.Equal(t, StatusSyncing, c.Status())

	// Второй вызов, пока первый в полете — отклоняется, не дублируется
	_, err := c.Sync(ctx, acceptAll(map[string]int64{}))
	assert.ErrorIs(t, err, ErrSyncInProgress)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
}

func TestSync_CoalescesEditsPerDocument(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	// Три правки одного документа — полные снимки, уходит только последняя
	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("v1")))
	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("v2")))
	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("v3")))
	require.NoError(t, c.CaptureEdit(ctx, "doc-2", []byte("other")))

	var pushed []*models.PendingChange
	_, err := c.Sync(ctx, func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
		pushed = changes
		resp := &api.PushResponse{}
		for _, change := range changes {
			resp.Results = append(resp.Results, api.ChangeResult{
				DocumentID:     change.DocumentID,
				Verdict:        api.VerdictAccepted,
				ServerRevision: 1,
			})
		}
		return resp, nil
	})
	require.NoError(t, err)

	require.Len(t, pushed, 2)
	assert.Equal(t, "doc-1", pushed[0].DocumentID)
	assert.Equal(t, []byte("v3"), pushed[0].Content)
	assert.Equal(t, "doc-2", pushed[1].DocumentID)
}

func TestResolveConflict(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("local")))
	_, err := c.Sync(ctx, rejectAllWith([]byte("server"), 3))
	require.NoError(t, err)

	conflicts := c.Conflicts()
	require.Len(t, conflicts, 1)
	conflictID := conflicts[0].ID

	require.NoError(t, c.ResolveConflict(ctx, conflictID, []byte("local")))

	// Конфликт удален и повторно не появляется
	assert.Empty(t, c.Conflicts())

	// Повторное разрешение того же id — ErrConflictNotFound (non-fatal)
	err = c.ResolveConflict(ctx, conflictID, []byte("local"))
	assert.ErrorIs(t, err, ErrConflictNotFound)
}

func TestResolveConflict_UnknownID(t *testing.T) {
	c := newTestCoordinator(t)

	err := c.ResolveConflict(context.Background(), "never-existed", []byte("x"))
	assert.ErrorIs(t, err, ErrConflictNotFound)
}

func TestResolveConflict_LocalChoice_QueuesForPush(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("local")))
	_, err := c.Sync(ctx, rejectAllWith([]byte("server"), 3))
	require.NoError(t, err)

	conflictID := c.Conflicts()[0].ID
	require.NoError(t, c.ResolveConflict(ctx, conflictID, []byte("local")))

	// Выбор локальной версии должен уйти на сервер поверх серверной ревизии
	var pushed []*models.PendingChange
	_, err = c.Sync(ctx, func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
		pushed = changes
		resp := &api.PushResponse{}
		for _, change := range changes {
			resp.Results = append(resp.Results, api.ChangeResult{
				DocumentID:     change.DocumentID,
				Verdict:        api.VerdictAccepted,
				ServerRevision: change.BaseRevision + 1,
			})
		}
		return resp, nil
	})
	require.NoError(t, err)

	require.Len(t, pushed, 1)
	assert.Equal(t, []byte("local"), pushed[0].Content)
	assert.Equal(t, int64(3), pushed[0].BaseRevision)

	synced, err := c.IsSynced(ctx)
	require.NoError(t, err)
	assert.True(t, synced)
}

func TestResolveConflict_ServerChoice_NoReQueue(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("local")))
	_, err := c.Sync(ctx, rejectAllWith([]byte("server"), 3))
	require.NoError(t, err)

	conflict := c.Conflicts()[0]
	require.NoError(t, c.ResolveConflict(ctx, conflict.ID, conflict.ServerVersion))

	// Принятие серверной версии только перематывает локальный снимок
	hasPending, err := c.HasPendingChanges(ctx)
	require.NoError(t, err)
	assert.False(t, hasPending)

	doc, ok := c.cache.GetCached(ctx, "doc-1")
	require.True(t, ok)
	assert.Equal(t, []byte("server"), doc.Content)
	assert.Equal(t, int64(3), doc.Revision)
}

func TestResolveAllConflicts_Local(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("local-1")))
	require.NoError(t, c.CaptureEdit(ctx, "doc-2", []byte("local-2")))
	_, err := c.Sync(ctx, rejectAllWith([]byte("server"), 2))
	require.NoError(t, err)
	require.Len(t, c.Conflicts(), 2)

	require.NoError(t, c.ResolveAllConflicts(ctx, models.ResolutionLocal))

	assert.Empty(t, c.Conflicts())

	// Локальное состояние каждого документа не изменилось
	doc1, _ := c.cache.GetCached(ctx, "doc-1")
	doc2, _ := c.cache.GetCached(ctx, "doc-2")
	assert.Equal(t, []byte("local-1"), doc1.Content)
	assert.Equal(t, []byte("local-2"), doc2.Content)
}

func TestResolveAllConflicts_Server(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("local-1")))
	require.NoError(t, c.CaptureEdit(ctx, "doc-2", []byte("local-2")))
	_, err := c.Sync(ctx, rejectAllWith([]byte("server version"), 2))
	require.NoError(t, err)

	require.NoError(t, c.ResolveAllConflicts(ctx, models.ResolutionServer))

	assert.Empty(t, c.Conflicts())

	// Локальное состояние заменено серверной версией
	doc1, _ := c.cache.GetCached(ctx, "doc-1")
	doc2, _ := c.cache.GetCached(ctx, "doc-2")
	assert.Equal(t, []byte("server version"), doc1.Content)
	assert.Equal(t, []byte("server version"), doc2.Content)

	hasPending, err := c.HasPendingChanges(ctx)
	require.NoError(t, err)
	assert.False(t, hasPending)
}

func TestResolveAllConflicts_UnknownPolicy(t *testing.T) {
	c := newTestCoordinator(t)

	err := c.ResolveAllConflicts(context.Background(), models.Resolution("merge"))
	assert.ErrorIs(t, err, ErrUnknownResolution)
}

func TestConflicts_OrderedOldestFirst(t *testing.T) {
	c := newTestCoordinator(t)
	c.setStatus(StatusConnected)
	ctx := context.Background()

	// Управляемые часы: каждое обращение сдвигает время вперед
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("a")))
	require.NoError(t, c.CaptureEdit(ctx, "doc-2", []byte("b")))
	require.NoError(t, c.CaptureEdit(ctx, "doc-3", []byte("c")))

	_, err := c.Sync(ctx, rejectAllWith([]byte("server"), 1))
	require.NoError(t, err)

	conflicts := c.Conflicts()
	require.Len(t, conflicts, 3)
	for i := 1; i < len(conflicts); i++ {
		assert.True(t, conflicts[i].Timestamp.After(conflicts[i-1].Timestamp),
			"conflicts must be ordered oldest first")
	}
}

func TestConnect(t *testing.T) {
	c := newTestCoordinator(t)

	err := c.Connect(context.Background(), func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, StatusConnected, c.Status())
}

func TestConnect_ProbeFails(t *testing.T) {
	c := newTestCoordinator(t)

	err := c.Connect(context.Background(), func(ctx context.Context) error {
		return errors.New("connection refused")
	})
	require.Error(t, err)
	assert.Equal(t, StatusDisconnected, c.Status())
}

func TestReconnect_SucceedsAfterRetries(t *testing.T) {
	c := newTestCoordinator(t)
	c.MarkDisconnected()

	attempts := 0
	err := c.Reconnect(context.Background(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("still down")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, StatusConnected, c.Status())
}

func TestReconnect_Exhausted(t *testing.T) {
	c := newTestCoordinator(t)
	c.MarkDisconnected()

	err := c.Reconnect(context.Background(), func(ctx context.Context) error {
		return errors.New("still down")
	})

	require.Error(t, err)
	assert.Equal(t, StatusDisconnected, c.Status())
}

func TestOfflineEditThenReconnectAndSync(t *testing.T) {
	// Сценарий: правка офлайн → hasPendingChanges → reconnect → sync → isSynced
	c := newTestCoordinator(t)
	ctx := context.Background()

	c.MarkDisconnected()
	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("offline edit")))

	hasPending, err := c.HasPendingChanges(ctx)
	require.NoError(t, err)
	assert.True(t, hasPending)

	require.NoError(t, c.Reconnect(ctx, func(ctx context.Context) error { return nil }))

	result, err := c.Sync(ctx, acceptAll(map[string]int64{}))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)

	synced, err := c.IsSynced(ctx)
	require.NoError(t, err)
	assert.True(t, synced)
	assert.Empty(t, c.Conflicts())
}

func TestTwoClientsDivergence(t *testing.T) {
	// Два клиента правят один документ офлайн; второй при sync видит конфликт
	// с обеими версиями; разрешение local оставляет его правку локальным состоянием
	ctx := context.Background()

	serverContent := []byte("")
	var serverRevision int64

	serverPush := func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
		resp := &api.PushResponse{}
		for _, change := range changes {
			if change.BaseRevision == serverRevision {
				serverContent = change.Content
				serverRevision++
				resp.Results = append(resp.Results, api.ChangeResult{
					DocumentID:     change.DocumentID,
					Verdict:        api.VerdictAccepted,
					ServerRevision: serverRevision,
				})
				continue
			}
			resp.Results = append(resp.Results, api.ChangeResult{
				DocumentID:     change.DocumentID,
				Verdict:        api.VerdictRejected,
				ServerContent:  serverContent,
				ServerRevision: serverRevision,
			})
		}
		return resp, nil
	}

	clientA := newTestCoordinator(t)
	clientB := newTestCoordinator(t)
	clientA.setStatus(StatusConnected)
	clientB.setStatus(StatusConnected)

	require.NoError(t, clientA.CaptureEdit(ctx, "doc-1", []byte("version A")))
	require.NoError(t, clientB.CaptureEdit(ctx, "doc-1", []byte("version B")))

	// Первый успевает первым
	resultA, err := clientA.Sync(ctx, serverPush)
	require.NoError(t, err)
	assert.Equal(t, 1, resultA.Accepted)

	// Второй наблюдает конфликт с обеими версиями
	resultB, err := clientB.Sync(ctx, serverPush)
	require.NoError(t, err)
	assert.Equal(t, 1, resultB.NewConflicts)

	conflicts := clientB.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, []byte("version B"), conflicts[0].LocalVersion)
	assert.Equal(t, []byte("version A"), conflicts[0].ServerVersion)

	// Разрешение local: правка B остается локальным состоянием и уходит на сервер
	require.NoError(t, clientB.ResolveAllConflicts(ctx, models.ResolutionLocal))

	_, err = clientB.Sync(ctx, serverPush)
	require.NoError(t, err)

	doc, ok := clientB.cache.GetCached(ctx, "doc-1")
	require.True(t, ok)
	assert.Equal(t, []byte("version B"), doc.Content)
	assert.Equal(t, []byte("version B"), serverContent)

	synced, err := clientB.IsSynced(ctx)
	require.NoError(t, err)
	assert.True(t, synced)
}

func TestConflictSurvivesRestart(t *testing.T) {
	// Конфликт переживает перезапуск клиента: обнаружен одним процессом,
	// разрешается другим поверх тех же хранилищ
	ctx := context.Background()

	documentCache := newMemoryCache()
	pending := newMemoryPending()
	conflictLedger := newMemoryConflicts()

	first := newTestCoordinatorWith(t, documentCache, pending, conflictLedger)
	first.setStatus(StatusConnected)

	require.NoError(t, first.CaptureEdit(ctx, "doc-1", []byte("local edit")))
	result, err := first.Sync(ctx, rejectAllWith([]byte("server edit"), 4))
	require.NoError(t, err)
	require.Equal(t, 1, result.NewConflicts)

	// "Перезапуск": новый координатор над теми же хранилищами
	restarted := newTestCoordinatorWith(t, documentCache, pending, conflictLedger)
	restarted.setStatus(StatusConnected)

	conflicts := restarted.Conflicts()
	require.Len(t, conflicts, 1, "divergent local edit must remain resolvable after restart")
	assert.Equal(t, "doc-1", conflicts[0].DocumentID)
	assert.Equal(t, []byte("local edit"), conflicts[0].LocalVersion)
	assert.Equal(t, []byte("server edit"), conflicts[0].ServerVersion)
	assert.Equal(t, int64(4), conflicts[0].ServerRevision)

	synced, err := restarted.IsSynced(ctx)
	require.NoError(t, err)
	assert.False(t, synced, "unresolved divergence must block isSynced across restarts")

	// Разрешение local после перезапуска отправляет правку на сервер
	require.NoError(t, restarted.ResolveAllConflicts(ctx, models.ResolutionLocal))

	var pushed []*models.PendingChange
	_, err = restarted.Sync(ctx, func(ctx context.Context, changes []*models.PendingChange) (*api.PushResponse, error) {
		pushed = changes
		resp := &api.PushResponse{}
		for _, change := range changes {
			resp.Results = append(resp.Results, api.ChangeResult{
				DocumentID:     change.DocumentID,
				Verdict:        api.VerdictAccepted,
				ServerRevision: change.BaseRevision + 1,
			})
		}
		return resp, nil
	})
	require.NoError(t, err)
	require.Len(t, pushed, 1)
	assert.Equal(t, []byte("local edit"), pushed[0].Content)
	assert.Equal(t, int64(4), pushed[0].BaseRevision)

	// Журнал очищен разрешением: следующий запуск стартует без конфликтов
	again := newTestCoordinatorWith(t, documentCache, pending, conflictLedger)
	assert.Empty(t, again.Conflicts())
}

func TestSync_NewDivergenceSupersedesConflict(t *testing.T) {
	// Документ несет не больше одного конфликта: повторное расхождение
	// вытесняет прежнее и в памяти, и в журнале
	ctx := context.Background()

	documentCache := newMemoryCache()
	pending := newMemoryPending()
	conflictLedger := newMemoryConflicts()

	c := newTestCoordinatorWith(t, documentCache, pending, conflictLedger)
	c.setStatus(StatusConnected)

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("local v1")))
	_, err := c.Sync(ctx, rejectAllWith([]byte("server v1"), 3))
	require.NoError(t, err)

	require.NoError(t, c.CaptureEdit(ctx, "doc-1", []byte("local v2")))
	_, err = c.Sync(ctx, rejectAllWith([]byte("server v2"), 5))
	require.NoError(t, err)

	conflicts := c.Conflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, []byte("local v2"), conflicts[0].LocalVersion)
	assert.Equal(t, []byte("server v2"), conflicts[0].ServerVersion)
	assert.Equal(t, int64(5), conflicts[0].ServerRevision)

	// Журнал согласован с памятью
	restarted := newTestCoordinatorWith(t, documentCache, pending, conflictLedger)
	loaded := restarted.Conflicts()
	require.Len(t, loaded, 1)
	assert.Equal(t, conflicts[0].ID, loaded[0].ID)
}
