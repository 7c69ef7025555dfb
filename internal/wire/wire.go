package wire

import (
	"Quayside/internal/api"
	"Quayside/internal/api/handler"
	"Quayside/internal/job"
	"Quayside/internal/pkg/cron"
	pkgMongo "Quayside/internal/pkg/mongo"
	"Quayside/internal/repository"
	"Quayside/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database) (*ApplicationContainer, error) {
	convRepo := repository.NewConversationRepo(db)
	cannedRepo := repository.NewCannedResponseRepo(db)
	messageRepo := pkgMongo.NewMessageRepo(mongoDB)

	messageService := service.NewMessageService(convRepo, messageRepo)
	convService := service.NewConversationService(convRepo)
	cannedService := service.NewCannedResponseService(cannedRepo)

	handlers := &api.HandlersGroup{
		MessageHandler:        handler.NewMessageHandler(messageService),
		ConversationHandler:   handler.NewConversationHandler(convService),
		CannedResponseHandler: handler.NewCannedResponseHandler(cannedService),
		MediaHandler:          handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	auditJob := job.NewConversationAuditJob(convRepo, messageRepo)
	cronMgr := cron.NewCronManager(auditJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
