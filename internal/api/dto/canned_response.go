package dto

// CannedResponseReq 快捷回复创建/更新请求体
type CannedResponseReq struct {
	Shortcut string `json:"shortcut" binding:"required,max=64"`
	Content  string `json:"content" binding:"required,max=1024"`
}

// CannedResponseDTO 快捷回复响应
type CannedResponseDTO struct {
	ID       uint64 `json:"id"`
	Shortcut string `json:"shortcut"`
	Content  string `json:"content"`
}

// CannedResponseListDTO 分页列表响应
type CannedResponseListDTO struct {
	Total int64                `json:"total"`
	List  []*CannedResponseDTO `json:"list"`
}
