package repository

import (
	"Quayside/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepo interface {
	CreateConversation(ctx context.Context, conv *model.Conversation) error
	GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error)
	GetConversationList(ctx context.Context, page, pageSize int) ([]*model.Conversation, int64, error)

	UpdatePreview(ctx context.Context, convID uint64, content string) error
	UpdateStatus(ctx context.Context, convID uint64, status int8) error
	UpdateAggregate(ctx context.Context, convID uint64, messageCount int64, updatedAt time.Time) error
	UpdateMessageCount(ctx context.Context, convID uint64, messageCount int64) error

	AddParticipant(ctx context.Context, convID uint64, userID uint64) error
	GetParticipants(ctx context.Context, convID uint64) ([]uint64, error)

	GetActiveSince(ctx context.Context, since time.Time) ([]*model.Conversation, error)
}

type conversationRepoImpl struct {
	db *gorm.DB
}

func NewConversationRepo(db *gorm.DB) ConversationRepo {
	return &conversationRepoImpl{db: db}
}

// CreateConversation 创建会话，同时把发起客户写入参与者表
func (s *conversationRepoImpl) CreateConversation(ctx context.Context, conv *model.Conversation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conv).Error; err != nil {
			return err
		}
		participant := &model.ConversationParticipant{
			ConversationID: conv.ID,
			UserID:         conv.CustomerID,
			JoinedAt:       time.Now(),
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(participant).Error
	})
}

// GetConversation 根据会话 ID 获取会话
func (s *conversationRepoImpl) GetConversation(ctx context.Context, convID uint64) (*model.Conversation, error) {
	var conv model.Conversation
	err := s.db.WithContext(ctx).First(&conv, convID).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetConversationList 分页获取会话列表，最近活跃的在前
func (s *conversationRepoImpl) GetConversationList(ctx context.Context, page, pageSize int) ([]*model.Conversation, int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Conversation{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var convs []*model.Conversation
	err := s.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&convs).Error
	return convs, total, err
}

// UpdatePreview 写入最后一条消息预览（覆盖而非追加）
func (s *conversationRepoImpl) UpdatePreview(ctx context.Context, convID uint64, content string) error {
	return s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", convID).
		Update("content", content).Error
}

// UpdateStatus 更新会话状态
func (s *conversationRepoImpl) UpdateStatus(ctx context.Context, convID uint64, status int8) error {
	return s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", convID).
		Update("status", status).Error
}

// UpdateAggregate 一次更新写入重算后的消息数与活跃时间
func (s *conversationRepoImpl) UpdateAggregate(ctx context.Context, convID uint64, messageCount int64, updatedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", convID).
		Updates(map[string]interface{}{
			"message_count": messageCount,
			"updated_at":    updatedAt,
		}).Error
}

// UpdateMessageCount 仅修正消息数，不触碰活跃时间（校准任务专用）
func (s *conversationRepoImpl) UpdateMessageCount(ctx context.Context, convID uint64, messageCount int64) error {
	return s.db.WithContext(ctx).Model(&model.Conversation{}).
		Where("id = ?", convID).
		UpdateColumn("message_count", messageCount).Error
}

// AddParticipant 把用户加入参与者集合，重复加入静默忽略
func (s *conversationRepoImpl) AddParticipant(ctx context.Context, convID uint64, userID uint64) error {
	participant := &model.ConversationParticipant{
		ConversationID: convID,
		UserID:         userID,
		JoinedAt:       time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(participant).Error
}

// GetParticipants 获取会话参与者 UID 列表
func (s *conversationRepoImpl) GetParticipants(ctx context.Context, convID uint64) ([]uint64, error) {
	var userIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.ConversationParticipant{}).
		Where("conversation_id = ?", convID).
		Order("joined_at ASC").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// GetActiveSince 获取指定时间后仍有消息的会话
func (s *conversationRepoImpl) GetActiveSince(ctx context.Context, since time.Time) ([]*model.Conversation, error) {
	var convs []*model.Conversation
	err := s.db.WithContext(ctx).
		Where("updated_at >= ?", since).
		Find(&convs).Error
	return convs, err
}
