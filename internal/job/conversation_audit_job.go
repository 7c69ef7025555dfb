package job

import (
	"Quayside/internal/pkg/consts"
	"Quayside/internal/pkg/logger"
	"Quayside/internal/pkg/mongo"
	"Quayside/internal/pkg/redis"
	"Quayside/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// ConversationAuditJob 夜间校准任务
// message_count 采用写时重算，偶发竞争仍可能留下漂移，这里按消息流兜底修正
type ConversationAuditJob struct {
	convRepo    repository.ConversationRepo
	messageRepo mongo.MessageRepo
}

func NewConversationAuditJob(convRepo repository.ConversationRepo, messageRepo mongo.MessageRepo) *ConversationAuditJob {
	return &ConversationAuditJob{
		convRepo:    convRepo,
		messageRepo: messageRepo,
	}
}

func (s *ConversationAuditJob) Run() {
	traceID := "job-audit-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	// 多实例部署时只允许一个实例执行
	locked, err := redis.TryLock(ctx, consts.ConversationAuditLock, traceID, 10*time.Minute, 1)
	if err != nil || !locked {
		return
	}
	defer redis.UnLock(ctx, consts.ConversationAuditLock, traceID)

	since := time.Now().Add(-24 * time.Hour)
	convs, err := s.convRepo.GetActiveSince(ctx, since)
	if err != nil {
		log.ErrorContext(ctx, "fetch active conversations error", "err", err)
		return
	}

	log.InfoContext(ctx, "ConversationAuditJob processing", "conv_count", len(convs))

	repaired := 0
	for _, conv := range convs {
		count, err := s.messageRepo.CountByConversation(ctx, conv.ID)
		if err != nil {
			log.ErrorContext(ctx, "count messages error", "conv_id", conv.ID, "err", err)
			continue
		}
		if count == conv.MessageCount {
			continue
		}

		if err = s.convRepo.UpdateMessageCount(ctx, conv.ID, count); err != nil {
			log.ErrorContext(ctx, "repair message count error", "conv_id", conv.ID, "err", err)
			continue
		}
		log.WarnContext(ctx, "message count drift repaired",
			"conv_id", conv.ID, "stored", conv.MessageCount, "actual", count)
		repaired++
	}

	log.InfoContext(ctx, "ConversationAuditJob finished", "repaired", repaired)
}
