package service

import (
	"Quayside/internal/api/dto"
	"Quayside/internal/model"
	"Quayside/internal/pkg/consts"
	"Quayside/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

// ConversationService 会话管理接口定义
// 消息引擎只消费已存在的会话，创建入口在这里
type ConversationService interface {
	CreateConversation(ctx context.Context, req *dto.CreateConversationReq) (*dto.ConversationDTO, error)
	GetConversation(ctx context.Context, convID uint64) (*dto.ConversationDetailDTO, error)
	GetConversationList(ctx context.Context, page, pageSize int) (*dto.ConversationListDTO, error)
	CloseConversation(ctx context.Context, convID uint64) error
}

type conversationServiceImpl struct {
	convRepo repository.ConversationRepo
}

func NewConversationService(convRepo repository.ConversationRepo) ConversationService {
	return &conversationServiceImpl{convRepo: convRepo}
}

// CreateConversation 创建会话，发起客户自动成为参与者
func (s *conversationServiceImpl) CreateConversation(ctx context.Context, req *dto.CreateConversationReq) (*dto.ConversationDTO, error) {
	conv := &model.Conversation{
		CustomerID: req.CustomerID,
		Status:     consts.ConversationStatusOpen,
	}
	if err := s.convRepo.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return s.toConversationDTO(conv), nil
}

// GetConversation 获取会话详情与参与者集合
func (s *conversationServiceImpl) GetConversation(ctx context.Context, convID uint64) (*dto.ConversationDetailDTO, error) {
	conv, err := s.convRepo.GetConversation(ctx, convID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	participants, err := s.convRepo.GetParticipants(ctx, convID)
	if err != nil {
		return nil, err
	}

	return &dto.ConversationDetailDTO{
		ConversationDTO:     *s.toConversationDTO(conv),
		ParticipatedUserIDs: participants,
	}, nil
}

// GetConversationList 分页获取会话列表
func (s *conversationServiceImpl) GetConversationList(ctx context.Context, page, pageSize int) (*dto.ConversationListDTO, error) {
	convs, total, err := s.convRepo.GetConversationList(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.ConversationDTO, 0, len(convs))
	for _, c := range convs {
		list = append(list, s.toConversationDTO(c))
	}
	return &dto.ConversationListDTO{Total: total, List: list}, nil
}

// CloseConversation 关闭会话，幂等
func (s *conversationServiceImpl) CloseConversation(ctx context.Context, convID uint64) error {
	if _, err := s.convRepo.GetConversation(ctx, convID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrConversationNotFound
		}
		return err
	}
	return s.convRepo.UpdateStatus(ctx, convID, consts.ConversationStatusClosed)
}

func (s *conversationServiceImpl) toConversationDTO(c *model.Conversation) *dto.ConversationDTO {
	return &dto.ConversationDTO{
		ID:           c.ID,
		CustomerID:   c.CustomerID,
		Status:       c.Status,
		MessageCount: c.MessageCount,
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
