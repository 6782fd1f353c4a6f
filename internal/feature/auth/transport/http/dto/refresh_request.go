package dto

// RefreshReq carries a refresh token for /auth/refresh and /auth/logout.
type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
