package dto

// AttachmentMetadata 附件元数据，上传后写入 Redis 供后续排查
type AttachmentMetadata struct {
	MimeType  string `json:"mime_type"`
	Size      int64  `json:"size"`
	Original  string `json:"original"`
	CreatedAt int64  `json:"created_at"`
}
