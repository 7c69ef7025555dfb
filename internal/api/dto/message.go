package dto

import "time"

// AddMessageReq 发送消息请求体
// Content 与 Attachments 至少一项非空，校验在引擎内完成
type AddMessageReq struct {
	ConversationID   uint64          `json:"conversation_id" binding:"required"`
	Content          string          `json:"content"`
	Attachments      []AttachmentDTO `json:"attachments"`
	MentionedUserIDs []uint64        `json:"mentioned_user_ids"`
	Internal         bool            `json:"internal"` // 内部备注，仅客服可见
	CustomerID       uint64          `json:"customer_id"`
	Status           string          `json:"status"`
}

// AttachmentDTO 附件描述
type AttachmentDTO struct {
	MimeType string `json:"mime_type"`
	URL      string `json:"url" binding:"required"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
}

// MessageDTO 消息明细响应
type MessageDTO struct {
	ID               string          `json:"id,omitempty"`
	ConversationID   uint64          `json:"conversation_id"`
	Content          string          `json:"content"`
	Attachments      []AttachmentDTO `json:"attachments,omitempty"`
	MentionedUserIDs []uint64        `json:"mentioned_user_ids,omitempty"`
	UserID           uint64          `json:"user_id,omitempty"`
	CustomerID       uint64          `json:"customer_id,omitempty"`
	Internal         bool            `json:"internal"`
	IsCustomerRead   *bool           `json:"is_customer_read,omitempty"`
	Status           string          `json:"status,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// MarkReadReq 客户侧确认已读请求
type MarkReadReq struct {
	ConversationID uint64 `json:"conversation_id" binding:"required"`
}

// MarkReadDTO 批量已读结果
type MarkReadDTO struct {
	MarkedCount int64 `json:"marked_count"`
}
