package models

import (
	"bytes"
	"time"
)

// Document представляет снимок документа, известный клиенту или серверу.
// Содержимое (Content) непрозрачно для движка синхронизации: оно никогда
// не интерпретируется, только сравнивается побайтово и замещается целиком.
type Document struct {
	UpdatedAt time.Time `json:"updated_at"` // UpdatedAt время последнего изменения
	ID        string    `json:"id"`         // ID уникальный идентификатор документа (UUID)
	OwnerID   string    `json:"owner_id"`   // OwnerID идентификатор владельца документа
	Content   []byte    `json:"content"`    // Content непрозрачное содержимое документа
	Revision  int64     `json:"revision"`   // Revision монотонная серверная ревизия
}

// ContentEquals reports whether both documents carry byte-identical content.
// Это единственная операция сравнения, которую движок применяет к содержимому.
func (d *Document) ContentEquals(other *Document) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(d.Content, other.Content)
}

// Clone создает глубокую копию документа
func (d *Document) Clone() *Document {
	content := make([]byte, len(d.Content))
	copy(content, d.Content)

	return &Document{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Content:   content,
		Revision:  d.Revision,
		UpdatedAt: d.UpdatedAt,
	}
}

// PendingChange представляет локальную правку, еще не подтвержденную сервером.
// Принадлежит исключительно координатору синхронизации: создается при захвате
// правки и атомарно удаляется после успешного sync.
type PendingChange struct {
	CapturedAt   time.Time `json:"captured_at"`   // CapturedAt время захвата правки
	DocumentID   string    `json:"document_id"`   // DocumentID документ, к которому относится правка
	Content      []byte    `json:"content"`       // Content полное содержимое документа после правки
	BaseRevision int64     `json:"base_revision"` // BaseRevision серверная ревизия, на которой основана правка
	Seq          uint64    `json:"seq"`           // Seq порядковый номер в очереди (присваивается хранилищем)
}
