// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User は登録済みのユーザーを表します。
// Password にはbcryptハッシュのみを保持し、平文は保存しません。
type User struct {
	ID          uint      `gorm:"primaryKey"`
	Username    string    `gorm:"uniqueIndex:idx_users_username;size:64;not null"`
	Email       string    `gorm:"size:255;not null"`
	Password    string    `gorm:"size:255;not null"`
	MemberSince time.Time `gorm:"not null"`
}
