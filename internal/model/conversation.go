package model

import "time"

// Conversation 会话主表
type Conversation struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID   uint64    `gorm:"not null;index" json:"customerId"`       // 发起会话的客户 UID
	Status       int8      `gorm:"not null;default:1" json:"status"`       // 1-进行中, 2-已关闭
	MessageCount int64     `gorm:"not null;default:0" json:"messageCount"` // 消息总数（含内部备注，按消息流重算）
	Content      string    `gorm:"type:varchar(255)" json:"content"`       // 最后一条消息预览
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `gorm:"index" json:"updatedAt"`
}

func (Conversation) TableName() string { return "conversations" }

// ConversationParticipant 会话参与者表
// (conversation_id, user_id) 联合唯一索引保证参与者集合语义
type ConversationParticipant struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID uint64    `gorm:"uniqueIndex:idx_conv_user" json:"conversationId"`
	UserID         uint64    `gorm:"uniqueIndex:idx_conv_user;index" json:"userId"`
	JoinedAt       time.Time `json:"joinedAt"`
}

func (ConversationParticipant) TableName() string { return "conversation_participants" }
