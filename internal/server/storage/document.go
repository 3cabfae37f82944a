package storage

import (
	"context"

	"github.com/codraft/codraft/internal/models"
)

// ApplyVerdict статус, вынесенный хранилищем по одной правке
type ApplyVerdict string

const (
	// VerdictAccepted правка принята, ревизия продвинута
	VerdictAccepted ApplyVerdict = "accepted"
	// VerdictNoop содержимое совпало с текущим серверным — принято без изменения
	VerdictNoop ApplyVerdict = "noop"
	// VerdictRejected ревизии разошлись и содержимое различается
	VerdictRejected ApplyVerdict = "rejected"
)

// ApplyResult is the adjudication outcome for a single pushed change.
// Content и Revision всегда отражают актуальное серверное состояние после
// применения (для rejected — состояние, с которым правка разошлась).
type ApplyResult struct {
	Verdict  ApplyVerdict
	Content  []byte
	Revision int64
}

// DocumentStorage defines interface for document persistence. Ревизии
// монотонны и назначаются только сервером; ApplyChange — единственная
// операция, продвигающая их.
type DocumentStorage interface {
	// ApplyChange adjudicates one pushed change by compare-and-set on the
	// document revision:
	//   - document absent: the change creates it at revision 1 (accepted)
	//   - baseRevision == current: content equal → noop, else accept & bump
	//   - baseRevision != current: content equal → noop, else rejected with
	//     the current server content and revision
	ApplyChange(ctx context.Context, documentID, ownerID string, content []byte, baseRevision int64) (*ApplyResult, error)

	// GetDocument retrieves the current server state of a document
	// Returns ErrDocumentNotFound if document doesn't exist
	GetDocument(ctx context.Context, documentID string) (*models.Document, error)

	// ListDocuments retrieves all documents owned by a user
	// Returns empty slice if no documents found
	ListDocuments(ctx context.Context, ownerID string) ([]*models.Document, error)
}
