package dto

// UserInfoRes is the body of GET /user/info.
type UserInfoRes struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}
