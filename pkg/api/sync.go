package api

import "time"

// DocumentChange представляет одну локальную правку, отправляемую на сервер.
// Содержимое — полный снимок документа; BaseRevision указывает серверную
// ревизию, на которой правка основана.
type DocumentChange struct {
	CapturedAt   time.Time `json:"captured_at"`   // время захвата правки на клиенте
	DocumentID   string    `json:"document_id"`   // идентификатор документа
	Content      []byte    `json:"content"`       // полное содержимое документа
	BaseRevision int64     `json:"base_revision"` // ревизия, на которой основана правка
}

// PushRequest представляет запрос на синхронизацию от клиента.
// Правки передаются в порядке захвата (oldest first).
type PushRequest struct {
	Changes []DocumentChange `json:"changes"`
}

// ChangeVerdict статус, вынесенный сервером по одной правке
type ChangeVerdict string

const (
	// VerdictAccepted правка принята, ревизия документа продвинута
	VerdictAccepted ChangeVerdict = "accepted"
	// VerdictNoop содержимое совпало с серверным — принято без изменения
	VerdictNoop ChangeVerdict = "noop"
	// VerdictRejected ревизии разошлись и содержимое различается —
	// клиент должен поднять конфликт
	VerdictRejected ChangeVerdict = "rejected"
)

// ChangeResult представляет вердикт сервера по одной правке.
// Для rejected сервер прикладывает свою версию содержимого, чтобы клиент
// мог построить конфликт без дополнительного запроса.
type ChangeResult struct {
	DocumentID     string        `json:"document_id"`
	Verdict        ChangeVerdict `json:"verdict"`
	ServerContent  []byte        `json:"server_content,omitempty"` // заполнено для rejected
	ServerRevision int64         `json:"server_revision"`          // актуальная ревизия документа
}

// PushResponse представляет ответ сервера на синхронизацию.
// Results идут в том же порядке, что и Changes в запросе.
type PushResponse struct {
	Results []ChangeResult `json:"results"`
}

// DocumentResponse представляет серверный снимок документа
type DocumentResponse struct {
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Content   []byte    `json:"content"`
	Revision  int64     `json:"revision"`
}
