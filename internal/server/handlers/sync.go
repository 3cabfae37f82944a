package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/internal/server/storage"
	"github.com/codraft/codraft/internal/validation"
	"github.com/codraft/codraft/pkg/api"
)

// DocumentStore определяет интерфейс для работы с документами
type DocumentStore interface {
	ApplyChange(ctx context.Context, documentID, ownerID string, content []byte, baseRevision int64) (*storage.ApplyResult, error)
	GetDocument(ctx context.Context, documentID string) (*models.Document, error)
}

// Notifier рассылает события подписчикам комнаты документа.
// Реализуется presence hub'ом.
type Notifier interface {
	Broadcast(documentID string, event api.Event)
}

// SyncHandler handles push synchronization requests
type SyncHandler struct {
	logger   *slog.Logger
	storage  DocumentStore
	notifier Notifier
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, storage DocumentStore, notifier Notifier) *SyncHandler {
	return &SyncHandler{
		logger:   logger,
		storage:  storage,
		notifier: notifier,
	}
}

// HandleSync обрабатывает POST /api/v1/sync
// Принимает пакет правок и возвращает вердикт по каждой в том же порядке
func (h *SyncHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Получаем user_id из контекста (установлен AuthMiddleware)
	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("user ID not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode sync request", "error", err)
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.logger.Info("sync request",
		"user_id", userID,
		"changes_count", len(req.Changes))

	resp := api.PushResponse{Results: make([]api.ChangeResult, 0, len(req.Changes))}
	conflicts := 0

	for _, change := range req.Changes {
		if err := validation.ValidateDocumentID(change.DocumentID); err != nil {
			sendError(h.logger, w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := h.storage.ApplyChange(ctx, change.DocumentID, userID, change.Content, change.BaseRevision)
		if err != nil {
			h.logger.Error("failed to apply change",
				"error", err,
				"document_id", change.DocumentID)
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}

		verdict := api.ChangeResult{
			DocumentID:     change.DocumentID,
			ServerRevision: result.Revision,
		}

		switch result.Verdict {
		case storage.VerdictAccepted:
			verdict.Verdict = api.VerdictAccepted
			// Подписчики комнаты видят продвижение ревизии live
			if h.notifier != nil {
				h.notifier.Broadcast(change.DocumentID, api.Event{
					Type:       api.EventDocumentUpdated,
					DocumentID: change.DocumentID,
					Revision:   result.Revision,
				})
			}
		case storage.VerdictNoop:
			verdict.Verdict = api.VerdictNoop
		case storage.VerdictRejected:
			verdict.Verdict = api.VerdictRejected
			// Сервер прикладывает свою версию, чтобы клиент построил
			// конфликт без дополнительного запроса
			verdict.ServerContent = result.Content
			conflicts++
		}

		resp.Results = append(resp.Results, verdict)
	}

	sendJSON(h.logger, w, resp, http.StatusOK)

	h.logger.Info("sync completed",
		"user_id", userID,
		"changes_count", len(req.Changes),
		"rejected", conflicts)
}
