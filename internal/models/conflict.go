package models

import "time"

// Resolution задает политику разрешения конфликта целиком для документа.
type Resolution string

// Resolution константы для политик разрешения
const (
	ResolutionLocal  Resolution = "local"  // оставить локальную версию
	ResolutionServer Resolution = "server" // принять серверную версию
)

// SyncConflict представляет расхождение локальной и серверной версий документа,
// обнаруженное при синхронизации. Конфликт существует, пока обе версии различны
// и не разрешены; разрешение схлопывает его до одной версии и удаляет из списка.
// Конфликты никогда не разрешаются автоматически.
type SyncConflict struct {
	Timestamp      time.Time `json:"timestamp"`       // Timestamp время обнаружения конфликта
	ID             string    `json:"id"`              // ID уникальный идентификатор конфликта (UUID)
	DocumentID     string    `json:"document_id"`     // DocumentID документ, в котором обнаружено расхождение
	LocalVersion   []byte    `json:"local_version"`   // LocalVersion локальный снимок содержимого
	ServerVersion  []byte    `json:"server_version"`  // ServerVersion серверный снимок содержимого
	ServerRevision int64     `json:"server_revision"` // ServerRevision ревизия серверного снимка
}

// Clone создает глубокую копию конфликта
func (c *SyncConflict) Clone() *SyncConflict {
	local := make([]byte, len(c.LocalVersion))
	copy(local, c.LocalVersion)

	server := make([]byte, len(c.ServerVersion))
	copy(server, c.ServerVersion)

	return &SyncConflict{
		ID:             c.ID,
		DocumentID:     c.DocumentID,
		LocalVersion:   local,
		ServerVersion:  server,
		ServerRevision: c.ServerRevision,
		Timestamp:      c.Timestamp,
	}
}
