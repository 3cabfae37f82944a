package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codraft/codraft/internal/server/storage"
	"github.com/codraft/codraft/internal/validation"
	"github.com/codraft/codraft/pkg/api"
)

// DocumentHandler обрабатывает чтение серверного состояния документов
type DocumentHandler struct {
	logger  *slog.Logger
	storage DocumentStore
}

// NewDocumentHandler создает новый handler для документов
func NewDocumentHandler(logger *slog.Logger, storage DocumentStore) *DocumentHandler {
	return &DocumentHandler{
		logger:  logger,
		storage: storage,
	}
}

// GetDocument обрабатывает GET /api/v1/documents/{id}
// Возвращает актуальный серверный снимок документа
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, ok := GetUserID(ctx); !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// Извлекаем id из path parameter (Go 1.22+)
	documentID := r.PathValue("id")
	if err := validation.ValidateDocumentID(documentID); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := h.storage.GetDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get document", "error", err, "document_id", documentID)
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.DocumentResponse{
		UpdatedAt: doc.UpdatedAt,
		ID:        doc.ID,
		Content:   doc.Content,
		Revision:  doc.Revision,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
