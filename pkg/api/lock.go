package api

import "time"

// AcquireLockRequest представляет запрос на захват аренды секции
type AcquireLockRequest struct {
	SectionID  string `json:"section_id"`  // идентификатор секции
	DocumentID string `json:"document_id"` // документ, которому принадлежит секция
}

// LockResponse представляет решение сервера по аренде секции.
// Отказ (granted=false) — нормальный результат, не ошибка: поле held_by
// сообщает, кто держит аренду.
type LockResponse struct {
	LockedAt  time.Time `json:"locked_at,omitempty"`  // время выдачи (для granted)
	ExpiresAt time.Time `json:"expires_at,omitempty"` // время истечения аренды
	SectionID string    `json:"section_id"`
	HeldBy    string    `json:"held_by,omitempty"` // держатель (для denied)
	Granted   bool      `json:"granted"`
}

// ReleaseLockRequest представляет запрос на снятие аренды секции
type ReleaseLockRequest struct {
	SectionID string `json:"section_id"`
}

// ReleaseLockResponse представляет ответ на снятие аренды
type ReleaseLockResponse struct {
	SectionID string `json:"section_id"`
	Released  bool   `json:"released"`
}
