package dto

import "time"

// CreateConversationReq 创建会话请求体
type CreateConversationReq struct {
	CustomerID uint64 `json:"customer_id" binding:"required"`
}

// ConversationDTO 会话列表项响应
type ConversationDTO struct {
	ID           uint64    `json:"id"`
	CustomerID   uint64    `json:"customer_id"`
	Status       int8      `json:"status"`
	MessageCount int64     `json:"message_count"`
	Content      string    `json:"content"` // 最后一条消息预览
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ConversationDetailDTO 会话详情响应，附带参与者集合
type ConversationDetailDTO struct {
	ConversationDTO
	ParticipatedUserIDs []uint64 `json:"participated_user_ids"`
}

// ConversationListDTO 分页列表响应
type ConversationListDTO struct {
	Total int64              `json:"total"`
	List  []*ConversationDTO `json:"list"`
}
