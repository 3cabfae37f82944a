package api

import "time"

// Event types delivered over the presence channel
const (
	// EventPresence обновление списка участников комнаты документа
	EventPresence = "presence"
	// EventDocumentUpdated ревизия документа продвинута принятой правкой
	EventDocumentUpdated = "document_updated"
	// EventLockChanged аренда секции выдана или снята
	EventLockChanged = "lock_changed"
)

// Event представляет одно событие, рассылаемое подписчикам комнаты документа
type Event struct {
	Type       string   `json:"type"`
	DocumentID string   `json:"document_id"`
	Users      []string `json:"users,omitempty"`      // presence: актуальный список участников
	Revision   int64    `json:"revision,omitempty"`   // document_updated: новая ревизия
	SectionID  string   `json:"section_id,omitempty"` // lock_changed: секция
	LockedBy   string   `json:"locked_by,omitempty"`  // lock_changed: держатель ("" при снятии)
	Locked     bool     `json:"locked,omitempty"`     // lock_changed: выдана или снята

	ExpiresAt time.Time `json:"expires_at,omitzero"` // lock_changed: срок аренды при выдаче
}
