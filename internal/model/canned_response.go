package model

import "time"

// CannedResponse 快捷回复模板
type CannedResponse struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Shortcut  string    `gorm:"uniqueIndex;type:varchar(64)" json:"shortcut"` // 触发指令，如 /greeting
	Content   string    `gorm:"type:varchar(1024)" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (CannedResponse) TableName() string { return "canned_responses" }
