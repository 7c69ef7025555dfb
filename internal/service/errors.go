package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid           = errors.New("参数错误")
	ErrConversationNotFound   = errors.New("会话不存在")
	ErrMessageContentRequired = errors.New("消息内容不能为空")
	ErrCannedResponseNotFound = errors.New("快捷回复不存在")
	ErrShortcutExist          = errors.New("快捷指令已存在")
	ErrFileNotSupported       = errors.New("不支持的文件类型")
	UnauthorizedError         = errors.New("权限不足")
	UnExpectedError           = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:           BadRequest,
	ErrConversationNotFound:   NotFound,
	ErrMessageContentRequired: BadRequest,
	ErrCannedResponseNotFound: NotFound,
	ErrShortcutExist:          BadRequest,
	ErrFileNotSupported:       BadRequest,
	UnauthorizedError:         Unauthorized,
	UnExpectedError:           InternalServerError,
}
