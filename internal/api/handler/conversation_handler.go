package handler

import (
	"Quayside/internal/api/dto"
	"Quayside/internal/pkg/response"
	"Quayside/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	convService service.ConversationService
}

func NewConversationHandler(convService service.ConversationService) *ConversationHandler {
	return &ConversationHandler{convService: convService}
}

// CreateConversation 创建会话接口
func (s *ConversationHandler) CreateConversation(c *gin.Context) {
	var req dto.CreateConversationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.convService.CreateConversation(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetConversation 获取会话详情
func (s *ConversationHandler) GetConversation(c *gin.Context) {
	convID, err := strconv.ParseUint(c.Param("conversation_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.convService.GetConversation(c.Request.Context(), convID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// CloseConversation 关闭会话
func (s *ConversationHandler) CloseConversation(c *gin.Context) {
	convID, err := strconv.ParseUint(c.Param("conversation_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.convService.CloseConversation(c.Request.Context(), convID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetConversationList 获取会话列表
func (s *ConversationHandler) GetConversationList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	res, err := s.convService.GetConversationList(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
