package entity

import "time"

// Session はリフレッシュトークンに対応するログインセッションです。
type Session struct {
	ID        string     `json:"id"` // refresh token (64 hex chars)
	UserID    uint       `json:"user_id"`
	UserAgent string     `json:"user_agent"`
	IPAddress string     `json:"ip_address"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// IsExpiredAt reports whether the session has expired at t.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return !t.Before(s.ExpiresAt)
}

// IsRevoked returns true if the session has been revoked.
func (s *Session) IsRevoked() bool {
	return s.RevokedAt != nil
}

// IsActiveAt reports whether the session is neither expired at t nor revoked.
func (s *Session) IsActiveAt(t time.Time) bool {
	return !s.IsExpiredAt(t) && !s.IsRevoked()
}
