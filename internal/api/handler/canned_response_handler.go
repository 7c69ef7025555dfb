package handler

import (
	"Quayside/internal/api/dto"
	"Quayside/internal/pkg/response"
	"Quayside/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CannedResponseHandler struct {
	cannedService service.CannedResponseService
}

func NewCannedResponseHandler(cannedService service.CannedResponseService) *CannedResponseHandler {
	return &CannedResponseHandler{cannedService: cannedService}
}

// GetList 获取快捷回复列表
func (s *CannedResponseHandler) GetList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	res, err := s.cannedService.GetList(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Create 新建快捷回复
func (s *CannedResponseHandler) Create(c *gin.Context) {
	var req dto.CannedResponseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.cannedService.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Update 更新快捷回复
func (s *CannedResponseHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("canned_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.CannedResponseReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.cannedService.Update(c.Request.Context(), id, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete 删除快捷回复
func (s *CannedResponseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("canned_id"), 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.cannedService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
