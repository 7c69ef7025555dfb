package handler

import (
	"Quayside/internal/api/dto"
	"Quayside/internal/pkg/consts"
	"Quayside/internal/pkg/minio"
	"Quayside/internal/pkg/redis"
	"Quayside/internal/pkg/response"
	"Quayside/internal/pkg/util"
	"Quayside/internal/service"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 附件上传接口：存储原样文件并返回公共 URL，不做转码
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	isImage := strings.HasPrefix(contentType, consts.MimePrefixImage)
	isVideo := strings.HasPrefix(contentType, consts.MimePrefixVideo)
	isAudio := strings.HasPrefix(contentType, consts.MimePrefixAudio)
	isFile := strings.HasPrefix(contentType, consts.MimePrefixApp)
	if !isImage && !isVideo && !isAudio && !isFile {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	ext := path.Ext(file.Filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	meta := dto.AttachmentMetadata{
		MimeType:  contentType,
		Size:      file.Size,
		Original:  file.Filename,
		CreatedAt: time.Now().Unix(),
	}
	metaBytes, _ := json.Marshal(meta)
	_ = redis.SetWithExpiration(c.Request.Context(), consts.AttachmentMetaKey+fileKey, string(metaBytes), 24*time.Hour)

	res := map[string]interface{}{
		"url":      minio.GetPublicURL(fileKey),
		"mime":     contentType,
		"size":     file.Size,
		"original": file.Filename,
	}

	log.InfoContext(c.Request.Context(), "attachment upload success", "fileKey", fileKey, "type", contentType)
	response.Success(c, res)
}
