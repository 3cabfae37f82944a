package models

import "time"

// SectionLock представляет краткоживущую эксклюзивную аренду (lease) на
// редактирование секции документа. Инвариант: не более одной активной
// (неистекшей) аренды на section_id. Истечение вычисляется лениво при
// чтении или захвате — фоновых таймеров нет.
type SectionLock struct {
	LockedAt      time.Time `json:"locked_at"`       // LockedAt время выдачи аренды
	LockExpiresAt time.Time `json:"lock_expires_at"` // LockExpiresAt время истечения аренды
	SectionID     string    `json:"section_id"`      // SectionID идентификатор секции документа
	DocumentID    string    `json:"document_id"`     // DocumentID документ, которому принадлежит секция
	LockedBy      string    `json:"locked_by"`       // LockedBy идентификатор пользователя-держателя
}

// IsExpired reports whether the lease has lapsed at the given instant.
// Истекшая аренда трактуется как отсутствующая любым последующим чтением.
func (l *SectionLock) IsExpired(now time.Time) bool {
	return now.After(l.LockExpiresAt)
}

// HeldBy reports whether the lease is active and held by userID at now.
func (l *SectionLock) HeldBy(userID string, now time.Time) bool {
	return !l.IsExpired(now) && l.LockedBy == userID
}

// Clone создает копию аренды
func (l *SectionLock) Clone() *SectionLock {
	clone := *l
	return &clone
}
