package entity

import "time"

// SSHKey はGitLab上のユーザーSSH公開鍵です。
// 鍵はローカルに保存せず、GitLabを唯一の正とします。
type SSHKey struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Key       string     `json:"key"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	UsageType string     `json:"usage_type,omitempty"`
}
