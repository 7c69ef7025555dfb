package service

import (
	"Quayside/internal/api/dto"
	"Quayside/internal/pkg/consts"
	"Quayside/internal/pkg/mongo"
	"Quayside/internal/pkg/util"
	"Quayside/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// MessageService 会话消息生命周期引擎接口定义
type MessageService interface {
	AddMessage(ctx context.Context, actingUserID uint64, req *dto.AddMessageReq) (*dto.MessageDTO, error)
	GetNonAnsweredMessage(ctx context.Context, convID uint64) (*dto.MessageDTO, error)
	GetAdminMessages(ctx context.Context, convID uint64) ([]*dto.MessageDTO, error)
	MarkSentAsReadMessages(ctx context.Context, convID uint64) (*dto.MarkReadDTO, error)
	GetHistory(ctx context.Context, convID uint64, page, pageSize int) ([]*dto.MessageDTO, error)
}

type messageServiceImpl struct {
	convRepo    repository.ConversationRepo
	messageRepo mongo.MessageRepo
}

func NewMessageService(convRepo repository.ConversationRepo, messageRepo mongo.MessageRepo) MessageService {
	return &messageServiceImpl{
		convRepo:    convRepo,
		messageRepo: messageRepo,
	}
}

// AddMessage 消息入会话
//
// 会话聚合字段（消息数、预览、活跃时间、参与者集合）跨 MySQL 与 MongoDB 两个存储，
// 没有跨库事务。预览先写、消息后插、消息数按插入后的流重算，
// 中途失败会留下一个短暂的不一致窗口，由重算与夜间校准任务收敛。
func (s *messageServiceImpl) AddMessage(ctx context.Context, actingUserID uint64, req *dto.AddMessageReq) (*dto.MessageDTO, error) {
	// 1. 会话必须存在（写路径严格校验）
	conv, err := s.convRepo.GetConversation(ctx, req.ConversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	// 2. 归一化：内容默认空串，附件默认空序列
	content := req.Content
	attachments := toAttachmentModels(req.Attachments)

	// 3. 无附件时内容不能为语义空
	if len(attachments) == 0 && util.IsBlank(content) {
		return nil, ErrMessageContentRequired
	}

	// 消息必须有唯一的作者：客服或客户
	if actingUserID == 0 && req.CustomerID == 0 {
		return nil, ErrParamInvalid
	}

	// 状态为透传字段，但取值收敛在已知集合内
	if req.Status != "" && req.Status != consts.MessageStatusPending && req.Status != consts.MessageStatusSent {
		return nil, ErrParamInvalid
	}

	// 4. 预览覆盖写入（最后一条消息预览，不是日志）
	if err = s.convRepo.UpdatePreview(ctx, conv.ID, content); err != nil {
		return nil, err
	}

	// 5. 持久化消息
	msg := &mongo.Message{
		ConversationID:   conv.ID,
		Content:          content,
		Attachments:      attachments,
		MentionedUserIDs: req.MentionedUserIDs,
		Internal:         req.Internal,
		Status:           req.Status,
		CreatedAt:        time.Now(),
	}
	if actingUserID > 0 {
		msg.UserID = actingUserID
	} else {
		msg.CustomerID = req.CustomerID
	}

	created, err := s.messageRepo.Create(ctx, msg)
	if err != nil {
		return nil, err
	}

	// 6. 重算消息数（读已写，必须包含刚插入的消息），与活跃时间一次更新
	count, err := s.messageRepo.CountByConversation(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	if err = s.convRepo.UpdateAggregate(ctx, conv.ID, count, time.Now()); err != nil {
		return nil, err
	}

	// 7. 作者与被 @ 用户进入参与者集合，重复加入为幂等空操作
	author := actingUserID
	if author == 0 {
		author = req.CustomerID
	}
	if err = s.convRepo.AddParticipant(ctx, conv.ID, author); err != nil {
		return nil, err
	}
	for _, uid := range req.MentionedUserIDs {
		if err = s.convRepo.AddParticipant(ctx, conv.ID, uid); err != nil {
			return nil, err
		}
	}

	return s.toMessageDTO(created), nil
}

// GetNonAnsweredMessage 获取最新一条客户消息，用于判断客户是否仍在等待回复
// 宽松读：会话不存在时返回空结果而非错误
func (s *messageServiceImpl) GetNonAnsweredMessage(ctx context.Context, convID uint64) (*dto.MessageDTO, error) {
	msg, err := s.messageRepo.GetLatestCustomerMessage(ctx, convID)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, nil
	}
	return s.toMessageDTO(msg), nil
}

// GetAdminMessages 客户侧待展示队列：客服发出、未读、非内部备注，按时间升序
func (s *messageServiceImpl) GetAdminMessages(ctx context.Context, convID uint64) ([]*dto.MessageDTO, error) {
	models, err := s.messageRepo.GetUnreadAdminMessages(ctx, convID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageDTO, 0, len(models))
	for _, m := range models {
		res = append(res, s.toMessageDTO(m))
	}
	return res, nil
}

// MarkSentAsReadMessages 客户确认已读：仅迁移从未写入过已读标记的客服消息
func (s *messageServiceImpl) MarkSentAsReadMessages(ctx context.Context, convID uint64) (*dto.MarkReadDTO, error) {
	marked, err := s.messageRepo.MarkSentAsRead(ctx, convID)
	if err != nil {
		return nil, err
	}
	return &dto.MarkReadDTO{MarkedCount: marked}, nil
}

// GetHistory 分页拉取会话消息流
func (s *messageServiceImpl) GetHistory(ctx context.Context, convID uint64, page, pageSize int) ([]*dto.MessageDTO, error) {
	// Mongo 的 skip/limit 不接受负值，分页参数收敛到下界
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	limit := int64(pageSize)
	offset := int64((page - 1) * pageSize)

	models, err := s.messageRepo.GetHistory(ctx, convID, limit, offset)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageDTO, 0, len(models))
	for _, m := range models {
		res = append(res, s.toMessageDTO(m))
	}
	return res, nil
}

func (s *messageServiceImpl) toMessageDTO(m *mongo.Message) *dto.MessageDTO {
	return &dto.MessageDTO{
		ID:               m.ID,
		ConversationID:   m.ConversationID,
		Content:          m.Content,
		Attachments:      toAttachmentDTOs(m.Attachments),
		MentionedUserIDs: m.MentionedUserIDs,
		UserID:           m.UserID,
		CustomerID:       m.CustomerID,
		Internal:         m.Internal,
		IsCustomerRead:   m.IsCustomerRead,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
	}
}

func toAttachmentModels(list []dto.AttachmentDTO) []mongo.Attachment {
	if len(list) == 0 {
		return nil
	}
	res := make([]mongo.Attachment, 0, len(list))
	for _, a := range list {
		res = append(res, mongo.Attachment{
			MimeType: a.MimeType,
			URL:      a.URL,
			Name:     a.Name,
			Size:     a.Size,
		})
	}
	return res
}

func toAttachmentDTOs(list []mongo.Attachment) []dto.AttachmentDTO {
	if len(list) == 0 {
		return nil
	}
	res := make([]dto.AttachmentDTO, 0, len(list))
	for _, a := range list {
		res = append(res, dto.AttachmentDTO{
			MimeType: a.MimeType,
			URL:      a.URL,
			Name:     a.Name,
			Size:     a.Size,
		})
	}
	return res
}
