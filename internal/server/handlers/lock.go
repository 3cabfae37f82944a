package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/codraft/codraft/internal/models"
	"github.com/codraft/codraft/internal/server/storage"
	"github.com/codraft/codraft/internal/validation"
	"github.com/codraft/codraft/pkg/api"
)

// DefaultLockTTL срок аренды секции. Клиент продлевает аренду повторным
// захватом, пока держит фокус в секции.
const DefaultLockTTL = 2 * time.Minute

// LockStore определяет интерфейс для работы с арендами секций
type LockStore interface {
	AcquireLock(ctx context.Context, sectionID, documentID, userID string, ttl time.Duration) (*models.SectionLock, bool, error)
	ReleaseLock(ctx context.Context, sectionID, userID string) error
	GetLock(ctx context.Context, sectionID string) (*models.SectionLock, error)
}

// LockHandler обрабатывает захват и снятие аренд секций.
// Единственный авторитет по арендам — серверное хранилище.
type LockHandler struct {
	logger   *slog.Logger
	storage  LockStore
	notifier Notifier
	ttl      time.Duration
}

// NewLockHandler создает новый handler для аренд секций
func NewLockHandler(logger *slog.Logger, storage LockStore, notifier Notifier, ttl time.Duration) *LockHandler {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &LockHandler{
		logger:   logger,
		storage:  storage,
		notifier: notifier,
		ttl:      ttl,
	}
}

// Acquire обрабатывает POST /api/v1/locks/acquire
// Отказ — нормальный результат (granted=false с актуальным держателем)
func (h *LockHandler) Acquire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.AcquireLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateSectionID(req.SectionID); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateDocumentID(req.DocumentID); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	lease, granted, err := h.storage.AcquireLock(ctx, req.SectionID, req.DocumentID, userID, h.ttl)
	if err != nil {
		h.logger.Error("failed to acquire lock",
			"error", err,
			"section_id", req.SectionID)
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.LockResponse{
		SectionID: req.SectionID,
		Granted:   granted,
		LockedAt:  lease.LockedAt,
		ExpiresAt: lease.LockExpiresAt,
	}

	if granted {
		h.logger.Info("lock granted",
			"section_id", req.SectionID,
			"user_id", userID,
			"expires_at", lease.LockExpiresAt)

		if h.notifier != nil {
			h.notifier.Broadcast(req.DocumentID, api.Event{
				Type:       api.EventLockChanged,
				DocumentID: req.DocumentID,
				SectionID:  req.SectionID,
				LockedBy:   userID,
				Locked:     true,
				ExpiresAt:  lease.LockExpiresAt,
			})
		}
	} else {
		// Отказ: сообщаем актуального держателя
		resp.HeldBy = lease.LockedBy
		h.logger.Info("lock denied",
			"section_id", req.SectionID,
			"user_id", userID,
			"held_by", lease.LockedBy)
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Release обрабатывает POST /api/v1/locks/release
func (h *LockHandler) Release(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.ReleaseLockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateSectionID(req.SectionID); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	// Запоминаем документ аренды до удаления, чтобы разослать событие
	var documentID string
	if lease, err := h.storage.GetLock(ctx, req.SectionID); err == nil {
		documentID = lease.DocumentID
	}

	err := h.storage.ReleaseLock(ctx, req.SectionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrLockNotFound):
			// Аренды нет (или истекла) — снимать нечего, это не отказ
			sendJSON(h.logger, w, api.ReleaseLockResponse{SectionID: req.SectionID, Released: true}, http.StatusOK)
			return
		case errors.Is(err, storage.ErrNotLockHolder):
			h.logger.Warn("release by non-holder",
				"section_id", req.SectionID,
				"user_id", userID)
			sendJSON(h.logger, w, api.ReleaseLockResponse{SectionID: req.SectionID, Released: false}, http.StatusOK)
			return
		default:
			h.logger.Error("failed to release lock",
				"error", err,
				"section_id", req.SectionID)
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
	}

	h.logger.Info("lock released",
		"section_id", req.SectionID,
		"user_id", userID)

	if h.notifier != nil && documentID != "" {
		h.notifier.Broadcast(documentID, api.Event{
			Type:       api.EventLockChanged,
			DocumentID: documentID,
			SectionID:  req.SectionID,
			Locked:     false,
		})
	}

	sendJSON(h.logger, w, api.ReleaseLockResponse{SectionID: req.SectionID, Released: true}, http.StatusOK)
}
