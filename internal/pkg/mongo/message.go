package mongo

import (
	"time"
)

// Message MongoDB 消息明细模型
type Message struct {
	ID               string       `bson:"_id,omitempty" json:"id"`               // MongoDB 自动生成的 ObjectID
	ConversationID   uint64       `bson:"conversation_id" json:"conversationId"` // 关联 MySQL 的会话 ID
	Content          string       `bson:"content" json:"content"`                // 文本内容，可为空（需至少有一个附件）
	Attachments      []Attachment `bson:"attachments,omitempty" json:"attachments"`
	MentionedUserIDs []uint64     `bson:"mentioned_user_ids,omitempty" json:"mentionedUserIds"` // 被 @ 的用户
	UserID           uint64       `bson:"user_id,omitempty" json:"userId"`                      // 客服 UID（客服消息时存在）
	CustomerID       uint64       `bson:"customer_id,omitempty" json:"customerId"`              // 客户 UID（客户消息时存在）
	Internal         bool         `bson:"internal" json:"internal"`                             // 内部备注，客户侧不可见
	IsCustomerRead   *bool        `bson:"is_customer_read,omitempty" json:"isCustomerRead"`     // nil-未评估, false-未读, true-已读
	Status           string       `bson:"status,omitempty" json:"status"`                       // pending / sent，引擎透传
	CreatedAt        time.Time    `bson:"created_at" json:"createdAt"`
}

// Attachment 附件描述（引擎不解析其内容）
type Attachment struct {
	MimeType string `bson:"mime_type" json:"mime_type"`
	URL      string `bson:"url" json:"url"`
	Name     string `bson:"name,omitempty" json:"name"`
	Size     int64  `bson:"size,omitempty" json:"size"`
}
