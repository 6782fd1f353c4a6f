// Package entity defines the domain entities for the cases feature.
package entity

import "time"

// Field limits, counted in characters.
const (
	MaxTitleLength      = 50
	MaxBriefIntroLength = 150
)

// Case は教材として公開するケースです。
type Case struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AuthorID   uint      `gorm:"index:idx_cases_author_id;not null" json:"author_id"`
	Title      string    `gorm:"size:50;not null" json:"title"`
	BriefIntro string    `gorm:"size:150;not null" json:"brief_intro"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	DemoURL    string    `gorm:"size:512" json:"demo_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
