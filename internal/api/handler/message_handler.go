package handler

import (
	"Quayside/internal/api/dto"
	"Quayside/internal/pkg/response"
	"Quayside/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessage 客服发送消息接口（支持内部备注）
func (s *MessageHandler) SendMessage(c *gin.Context) {
	var req dto.AddMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	// 从 Context 中获取中间件解析出的当前客服 ID
	userID := c.GetUint64("user_id")
	// 客服消息不携带客户身份
	req.CustomerID = 0

	res, err := s.messageService.AddMessage(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// SendCustomerMessage 客户发送消息接口
func (s *MessageHandler) SendCustomerMessage(c *gin.Context) {
	var req dto.AddMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	// 客户不能写内部备注
	req.Internal = false

	res, err := s.messageService.AddMessage(c.Request.Context(), 0, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetNonAnswered 获取最新一条未回复的客户消息，没有则返回空
func (s *MessageHandler) GetNonAnswered(c *gin.Context) {
	convID, _ := strconv.ParseUint(c.Query("conversation_id"), 10, 64)

	res, err := s.messageService.GetNonAnsweredMessage(c.Request.Context(), convID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetAdminMessages 客户侧待展示队列
func (s *MessageHandler) GetAdminMessages(c *gin.Context) {
	convID, _ := strconv.ParseUint(c.Query("conversation_id"), 10, 64)

	res, err := s.messageService.GetAdminMessages(c.Request.Context(), convID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// MarkRead 客户确认已读接口
func (s *MessageHandler) MarkRead(c *gin.Context) {
	var req dto.MarkReadReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.messageService.MarkSentAsReadMessages(c.Request.Context(), req.ConversationID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetHistory 获取历史消息
func (s *MessageHandler) GetHistory(c *gin.Context) {
	convID, _ := strconv.ParseUint(c.Query("conversation_id"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	res, err := s.messageService.GetHistory(c.Request.Context(), convID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
