// Package dto はsshkeyフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// AddKeyReq は POST /user/keys のリクエストボディです。
type AddKeyReq struct {
	Title string `json:"title" binding:"required,max=255"`
	Key   string `json:"key" binding:"required"`
}
