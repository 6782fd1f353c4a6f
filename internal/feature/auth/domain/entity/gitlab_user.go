package entity

import "time"

// GitlabUser maps a local user to its account on the GitLab host.
// A local user has at most one mapping.
type GitlabUser struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_gitlab_users_user_id;not null"`
	GitlabID  int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// RemoteAccount is the account requested from the GitLab host on registration.
// Password is plaintext and must only travel to the provider.
type RemoteAccount struct {
	Username string
	Name     string
	Password string
	Email    string
}
