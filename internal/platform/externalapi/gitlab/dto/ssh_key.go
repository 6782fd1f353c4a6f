package dto

import "time"

// SSHKey is a GitLab SSH key record.
type SSHKey struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Key       string     `json:"key"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	UsageType string     `json:"usage_type,omitempty"`
}

// CreateSSHKeyRequest is the body of POST /user/keys.
type CreateSSHKeyRequest struct {
	Title string `json:"title"`
	Key   string `json:"key"`
}
