package api

import "Quayside/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	MessageHandler        *handler.MessageHandler
	ConversationHandler   *handler.ConversationHandler
	CannedResponseHandler *handler.CannedResponseHandler
	MediaHandler          *handler.MediaHandler
}
