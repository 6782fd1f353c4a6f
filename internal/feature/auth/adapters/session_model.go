package adapters

import (
	"time"

	"lucius_backend/internal/feature/auth/domain/entity"
)

// sessionRow は sessions テーブルの行です。
// フィールドの並びと型は entity.Session と一致させ、型変換だけで相互に変換します。
type sessionRow struct {
	ID        string     `gorm:"primaryKey;size:64"`
	UserID    uint       `gorm:"index:idx_sessions_user_id;not null"`
	UserAgent string     `gorm:"size:512"`
	IPAddress string     `gorm:"size:45"`
	CreatedAt time.Time  `gorm:"not null"`
	ExpiresAt time.Time  `gorm:"index:idx_sessions_expires_at;not null"`
	RevokedAt *time.Time `gorm:"index:idx_sessions_revoked_at"`
}

func (sessionRow) TableName() string { return "sessions" }

func (r sessionRow) toSession() *entity.Session {
	s := entity.Session(r)
	return &s
}
