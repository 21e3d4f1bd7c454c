package model

import "time"

// AIHistory records one assistant interaction: what the user asked and the
// reply that was produced. Append-mostly; entries are only ever listed and
// deleted after creation.
type AIHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Query     string    `json:"query" gorm:"type:text;not null"`
	Response  string    `json:"response" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName keeps the historical table name used by the exports.
func (AIHistory) TableName() string {
	return "ai_history"
}
