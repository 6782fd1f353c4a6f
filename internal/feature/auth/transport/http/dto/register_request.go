// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/auth/registerのリクエストボディです。
// Roles を省略した場合はデフォルトロールが割り当てられます。
type RegisterReq struct {
	Username string   `json:"username" binding:"required,max=64"`
	Password string   `json:"password" binding:"required,min=8,max=72"`
	Email    string   `json:"email" binding:"required,email,max=255"`
	Roles    []string `json:"roles" binding:"omitempty,dive,required"`
}

// RegisterRes is returned with 201 on successful registration.
type RegisterRes struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
}
