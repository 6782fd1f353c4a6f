// Package dto はcasesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "lucius_backend/internal/feature/cases/domain/entity"

// CaseReq は作成・更新共通のリクエストボディです。
// max は文字数（ルーン数）です。
type CaseReq struct {
	Title      string `json:"title" binding:"required,max=50"`
	BriefIntro string `json:"brief_intro" binding:"required,max=150"`
	Content    string `json:"content" binding:"required"`
	DemoURL    string `json:"demo_url" binding:"omitempty,url,max=512"`
}

// CaseListRes is the body of GET /cases.
type CaseListRes struct {
	Items []entity.Case `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Size  int           `json:"size"`
}
