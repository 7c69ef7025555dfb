package api

import (
	"Quayside/internal/api/middleware"
	"Quayside/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		convGroup := apiGroup.Group("/conversations")
		{
			convGroup.Use(middleware.AuthMiddleware())
			{
				convGroup.POST("", group.ConversationHandler.CreateConversation)
				convGroup.GET("", group.ConversationHandler.GetConversationList)
				convGroup.GET("/:conversation_id", group.ConversationHandler.GetConversation)
				convGroup.POST("/:conversation_id/close", group.ConversationHandler.CloseConversation)
			}
		}

		msgGroup := apiGroup.Group("/messages")
		{
			// 客户侧组件入口：无客服 Token 也可访问
			customerGroup := msgGroup.Group("")
			customerGroup.Use(middleware.AuthOptionalMiddleware())
			{
				customerGroup.POST("/customer/send", group.MessageHandler.SendCustomerMessage)
				customerGroup.GET("/admin", group.MessageHandler.GetAdminMessages)
				customerGroup.POST("/read", group.MessageHandler.MarkRead)
			}

			// 客服侧入口
			authGroup := msgGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/send", group.MessageHandler.SendMessage)
				authGroup.GET("/unanswered", group.MessageHandler.GetNonAnswered)
				authGroup.GET("/history", group.MessageHandler.GetHistory)
			}
		}

		cannedGroup := apiGroup.Group("/canned-responses")
		{
			cannedGroup.Use(middleware.AuthMiddleware())
			{
				cannedGroup.GET("", group.CannedResponseHandler.GetList)
			}

			// 模板管理需要 ADMIN 角色
			adminGroup := cannedGroup.Group("")
			adminGroup.Use(middleware.CheckRoles("ADMIN"))
			{
				adminGroup.POST("", group.CannedResponseHandler.Create)
				adminGroup.PUT("/:canned_id", group.CannedResponseHandler.Update)
				adminGroup.DELETE("/:canned_id", group.CannedResponseHandler.Delete)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		{
			mediaGroup.Use(middleware.AuthOptionalMiddleware())
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
