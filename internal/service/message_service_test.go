package service

import (
	"Quayside/internal/api/dto"
	"Quayside/internal/model"
	"Quayside/internal/pkg/mongo"
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeConvRepo 内存实现，记录写入次数用于断言失败路径不落库
type fakeConvRepo struct {
	convs        map[uint64]*model.Conversation
	participants map[uint64][]uint64
	previewCalls int
}

func newFakeConvRepo() *fakeConvRepo {
	return &fakeConvRepo{
		convs:        make(map[uint64]*model.Conversation),
		participants: make(map[uint64][]uint64),
	}
}

func (f *fakeConvRepo) CreateConversation(_ context.Context, conv *model.Conversation) error {
	conv.ID = uint64(len(f.convs) + 1)
	f.convs[conv.ID] = conv
	f.participants[conv.ID] = []uint64{conv.CustomerID}
	return nil
}

func (f *fakeConvRepo) GetConversation(_ context.Context, convID uint64) (*model.Conversation, error) {
	conv, ok := f.convs[convID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return conv, nil
}

func (f *fakeConvRepo) GetConversationList(_ context.Context, _, _ int) ([]*model.Conversation, int64, error) {
	res := make([]*model.Conversation, 0, len(f.convs))
	for _, c := range f.convs {
		res = append(res, c)
	}
	return res, int64(len(res)), nil
}

func (f *fakeConvRepo) UpdatePreview(_ context.Context, convID uint64, content string) error {
	f.previewCalls++
	f.convs[convID].Content = content
	return nil
}

func (f *fakeConvRepo) UpdateStatus(_ context.Context, convID uint64, status int8) error {
	conv, ok := f.convs[convID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	conv.Status = status
	return nil
}

func (f *fakeConvRepo) UpdateAggregate(_ context.Context, convID uint64, messageCount int64, updatedAt time.Time) error {
	f.convs[convID].MessageCount = messageCount
	f.convs[convID].UpdatedAt = updatedAt
	return nil
}

func (f *fakeConvRepo) UpdateMessageCount(_ context.Context, convID uint64, messageCount int64) error {
	f.convs[convID].MessageCount = messageCount
	return nil
}

func (f *fakeConvRepo) AddParticipant(_ context.Context, convID uint64, userID uint64) error {
	for _, uid := range f.participants[convID] {
		if uid == userID {
			return nil
		}
	}
	f.participants[convID] = append(f.participants[convID], userID)
	return nil
}

func (f *fakeConvRepo) GetParticipants(_ context.Context, convID uint64) ([]uint64, error) {
	return f.participants[convID], nil
}

func (f *fakeConvRepo) GetActiveSince(_ context.Context, since time.Time) ([]*model.Conversation, error) {
	var res []*model.Conversation
	for _, c := range f.convs {
		if !c.UpdatedAt.Before(since) {
			res = append(res, c)
		}
	}
	return res, nil
}

// fakeMessageRepo 内存消息流，按插入顺序保存
type fakeMessageRepo struct {
	messages []*mongo.Message
	seq      int
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *mongo.Message) (*mongo.Message, error) {
	f.seq++
	msg.ID = fmt.Sprintf("m%03d", f.seq)
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeMessageRepo) CountByConversation(_ context.Context, convID uint64) (int64, error) {
	var count int64
	for _, m := range f.messages {
		if m.ConversationID == convID {
			count++
		}
	}
	return count, nil
}

func (f *fakeMessageRepo) GetLatestCustomerMessage(_ context.Context, convID uint64) (*mongo.Message, error) {
	var latest *mongo.Message
	for _, m := range f.messages {
		if m.ConversationID != convID || m.CustomerID == 0 {
			continue
		}
		if latest == nil || !m.CreatedAt.Before(latest.CreatedAt) {
			latest = m
		}
	}
	return latest, nil
}

func (f *fakeMessageRepo) GetUnreadAdminMessages(_ context.Context, convID uint64) ([]*mongo.Message, error) {
	var res []*mongo.Message
	for _, m := range f.messages {
		if m.ConversationID != convID || m.UserID == 0 || m.Internal {
			continue
		}
		if m.IsCustomerRead != nil && *m.IsCustomerRead {
			continue
		}
		res = append(res, m)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	return res, nil
}

func (f *fakeMessageRepo) MarkSentAsRead(_ context.Context, convID uint64) (int64, error) {
	var marked int64
	for _, m := range f.messages {
		if m.ConversationID == convID && m.UserID > 0 && m.IsCustomerRead == nil {
			read := true
			m.IsCustomerRead = &read
			marked++
		}
	}
	return marked, nil
}

func (f *fakeMessageRepo) GetHistory(_ context.Context, convID uint64, limit, offset int64) ([]*mongo.Message, error) {
	var res []*mongo.Message
	for _, m := range f.messages {
		if m.ConversationID == convID {
			res = append(res, m)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].CreatedAt.Before(res[j].CreatedAt)
	})
	if offset >= int64(len(res)) {
		return nil, nil
	}
	res = res[offset:]
	if limit < int64(len(res)) {
		res = res[:limit]
	}
	return res, nil
}

func newTestService(t *testing.T) (MessageService, *fakeConvRepo, *fakeMessageRepo, uint64) {
	t.Helper()
	convRepo := newFakeConvRepo()
	msgRepo := &fakeMessageRepo{}
	conv := &model.Conversation{CustomerID: 100}
	require.NoError(t, convRepo.CreateConversation(context.Background(), conv))
	return NewMessageService(convRepo, msgRepo), convRepo, msgRepo, conv.ID
}

func boolPtr(v bool) *bool { return &v }

func TestAddMessage_OperatorMessage(t *testing.T) {
	svc, convRepo, msgRepo, convID := newTestService(t)
	ctx := context.Background()

	before := time.Now()
	msg, err := svc.AddMessage(ctx, 7, &dto.AddMessageReq{
		ConversationID: convID,
		Content:        "您好，请问有什么可以帮您？",
	})
	require.NoError(t, err)
	require.NotNil(t, msg)

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, convID, msg.ConversationID)
	assert.Equal(t, uint64(7), msg.UserID)
	assert.Zero(t, msg.CustomerID)
	assert.Nil(t, msg.IsCustomerRead)

	conv := convRepo.convs[convID]
	assert.Equal(t, int64(1), conv.MessageCount)
	assert.Equal(t, "您好，请问有什么可以帮您？", conv.Content)
	assert.False(t, conv.UpdatedAt.Before(before))

	// 作者进入参与者集合
	participants, err := convRepo.GetParticipants(ctx, convID)
	require.NoError(t, err)
	assert.Contains(t, participants, uint64(7))

	count, err := msgRepo.CountByConversation(ctx, convID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestAddMessage_CustomerMessage(t *testing.T) {
	svc, _, _, convID := newTestService(t)

	msg, err := svc.AddMessage(context.Background(), 0, &dto.AddMessageReq{
		ConversationID: convID,
		Content:        "订单还没发货",
		CustomerID:     100,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(100), msg.CustomerID)
	assert.Zero(t, msg.UserID)
}

func TestAddMessage_ConversationNotFound(t *testing.T) {
	svc, convRepo, msgRepo, _ := newTestService(t)

	msg, err := svc.AddMessage(context.Background(), 7, &dto.AddMessageReq{
		ConversationID: 9999,
		Content:        "hello",
	})
	require.ErrorIs(t, err, ErrConversationNotFound)
	assert.Nil(t, msg)

	// 校验失败发生在任何写入之前
	assert.Zero(t, convRepo.previewCalls)
	assert.Empty(t, msgRepo.messages)
}

func TestAddMessage_BlankContentRejected(t *testing.T) {
	svc, convRepo, msgRepo, convID := newTestService(t)

	cases := []string{
		"",
		"   ",
		"<p><br></p>",
		"<p>&nbsp;&nbsp;</p>",
		"<div>\n\t</div>",
	}
	for _, content := range cases {
		_, err := svc.AddMessage(context.Background(), 7, &dto.AddMessageReq{
			ConversationID: convID,
			Content:        content,
		})
		assert.ErrorIs(t, err, ErrMessageContentRequired, "content=%q", content)
	}

	assert.Zero(t, convRepo.previewCalls)
	assert.Empty(t, msgRepo.messages)
	assert.Zero(t, convRepo.convs[convID].MessageCount)
}

func TestAddMessage_AttachmentOnlyAllowed(t *testing.T) {
	svc, _, _, convID := newTestService(t)

	msg, err := svc.AddMessage(context.Background(), 7, &dto.AddMessageReq{
		ConversationID: convID,
		Content:        "<p><br></p>",
		Attachments: []dto.AttachmentDTO{
			{MimeType: "image/png", URL: "https://cdn.example.com/a.png", Name: "a.png", Size: 2048},
		},
	})
	require.NoError(t, err)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "image/png", msg.Attachments[0].MimeType)
}

func TestAddMessage_AuthorRequired(t *testing.T) {
	svc, _, msgRepo, convID := newTestService(t)

	_, err := svc.AddMessage(context.Background(), 0, &dto.AddMessageReq{
		ConversationID: convID,
		Content:        "no author",
	})
	require.ErrorIs(t, err, ErrParamInvalid)
	assert.Empty(t, msgRepo.messages)
}

func TestAddMessage_StatusValidated(t *testing.T) {
	svc, _, msgRepo, convID := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddMessage(ctx, 7, &dto.AddMessageReq{
		ConversationID: convID,
		Content:        "状态非法",
		Status:         "delivered",
	})
	require.ErrorIs(t, err, ErrParamInvalid)
	assert.Empty(t, msgRepo.messages)

	for _, status := range []string{"", "pending", "sent"} {
		_, err = svc.AddMessage(ctx, 7, &dto.AddMessageReq{
			ConversationID: convID,
			Content:        "状态合法",
			Status:         status,
		})
		require.NoError(t, err, "status=%q", status)
	}
}

func TestAddMessage_MentionsJoinParticipants(t *testing.T) {
	svc, convRepo, _, convID := newTestService(t)
	ctx := context.Background()

	req := &dto.AddMessageReq{
		ConversationID:   convID,
		Content:          "转交 @张工 @李工 处理",
		MentionedUserIDs: []uint64{21, 22},
	}
	_, err := svc.AddMessage(ctx, 7, req)
	require.NoError(t, err)

	// 重复发送，参与者集合幂等
	_, err = svc.AddMessage(ctx, 7, req)
	require.NoError(t, err)

	participants, err := convRepo.GetParticipants(ctx, convID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{100, 7, 21, 22}, participants)
}

func TestAddMessage_InternalNoteCounted(t *testing.T) {
	svc, convRepo, _, convID := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddMessage(ctx, 7, &dto.AddMessageReq{
		ConversationID: convID,
		Content:        "客户情绪激动，优先处理",
		Internal:       true,
	})
	require.NoError(t, err)

	// 内部备注同样计入消息数与预览
	assert.Equal(t, int64(1), convRepo.convs[convID].MessageCount)
	assert.Equal(t, "客户情绪激动，优先处理", convRepo.convs[convID].Content)
}

func TestGetNonAnsweredMessage(t *testing.T) {
	svc, _, msgRepo, convID := newTestService(t)
	ctx := context.Background()

	// 空会话返回 nil 而非错误
	msg, err := svc.GetNonAnsweredMessage(ctx, convID)
	require.NoError(t, err)
	assert.Nil(t, msg)

	// 未知会话宽松处理
	msg, err = svc.GetNonAnsweredMessage(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, msg)

	base := time.Now()
	msgRepo.messages = []*mongo.Message{
		{ID: "a", ConversationID: convID, CustomerID: 100, Content: "第一条", CreatedAt: base},
		{ID: "b", ConversationID: convID, UserID: 7, Content: "客服回复", CreatedAt: base.Add(time.Minute)},
		{ID: "c", ConversationID: convID, CustomerID: 100, Content: "最新追问", CreatedAt: base.Add(2 * time.Minute)},
	}

	msg, err = svc.GetNonAnsweredMessage(ctx, convID)
	require.NoError(t, err)
	require.NotNil(t, msg)
	// 忽略客服回复，返回最新的客户消息
	assert.Equal(t, "c", msg.ID)
	assert.Equal(t, "最新追问", msg.Content)
}

func TestGetAdminMessages(t *testing.T) {
	svc, _, msgRepo, convID := newTestService(t)
	ctx := context.Background()

	base := time.Now()
	msgRepo.messages = []*mongo.Message{
		{ID: "late", ConversationID: convID, UserID: 7, Content: "后发的", CreatedAt: base.Add(time.Minute)},
		{ID: "early", ConversationID: convID, UserID: 7, Content: "先发的", CreatedAt: base},
		{ID: "read", ConversationID: convID, UserID: 7, Content: "已读的", IsCustomerRead: boolPtr(true), CreatedAt: base},
		{ID: "unread", ConversationID: convID, UserID: 7, Content: "显式未读", IsCustomerRead: boolPtr(false), CreatedAt: base.Add(2 * time.Minute)},
		{ID: "note", ConversationID: convID, UserID: 7, Content: "内部备注", Internal: true, CreatedAt: base},
		{ID: "cust", ConversationID: convID, CustomerID: 100, Content: "客户消息", CreatedAt: base},
		{ID: "other", ConversationID: convID + 1, UserID: 7, Content: "别的会话", CreatedAt: base},
	}

	res, err := svc.GetAdminMessages(ctx, convID)
	require.NoError(t, err)

	ids := make([]string, 0, len(res))
	for _, m := range res {
		ids = append(ids, m.ID)
	}
	// 未评估与显式未读都展示，已读/内部备注/客户消息排除，按时间升序
	assert.Equal(t, []string{"early", "late", "unread"}, ids)
}

func TestMarkSentAsReadMessages(t *testing.T) {
	svc, _, msgRepo, convID := newTestService(t)
	ctx := context.Background()

	base := time.Now()
	msgRepo.messages = []*mongo.Message{
		{ID: "a", ConversationID: convID, UserID: 7, Content: "未评估", CreatedAt: base},
		{ID: "b", ConversationID: convID, UserID: 7, Content: "也未评估", CreatedAt: base},
		{ID: "c", ConversationID: convID, UserID: 7, Content: "显式未读", IsCustomerRead: boolPtr(false), CreatedAt: base},
		{ID: "d", ConversationID: convID, CustomerID: 100, Content: "客户消息", CreatedAt: base},
	}

	res, err := svc.MarkSentAsReadMessages(ctx, convID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.MarkedCount)

	// 仅未评估态迁移为已读，显式 false 保持原值
	require.NotNil(t, msgRepo.messages[0].IsCustomerRead)
	assert.True(t, *msgRepo.messages[0].IsCustomerRead)
	require.NotNil(t, msgRepo.messages[2].IsCustomerRead)
	assert.False(t, *msgRepo.messages[2].IsCustomerRead)
	assert.Nil(t, msgRepo.messages[3].IsCustomerRead)

	// 幂等：第二次没有可迁移的消息
	res, err = svc.MarkSentAsReadMessages(ctx, convID)
	require.NoError(t, err)
	assert.Zero(t, res.MarkedCount)
}

func TestGetHistory_Paging(t *testing.T) {
	svc, _, msgRepo, convID := newTestService(t)
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		msgRepo.messages = append(msgRepo.messages, &mongo.Message{
			ID:             fmt.Sprintf("h%d", i),
			ConversationID: convID,
			UserID:         7,
			Content:        fmt.Sprintf("第 %d 条", i),
			CreatedAt:      base.Add(time.Duration(i) * time.Second),
		})
	}

	page1, err := svc.GetHistory(ctx, convID, 1, 2)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "h0", page1[0].ID)
	assert.Equal(t, "h1", page1[1].ID)

	page3, err := svc.GetHistory(ctx, convID, 3, 2)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "h4", page3[0].ID)

	empty, err := svc.GetHistory(ctx, convID, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)

	// 非法分页参数收敛到首页，不产生负偏移
	clamped, err := svc.GetHistory(ctx, convID, 0, -1)
	require.NoError(t, err)
	require.NotEmpty(t, clamped)
	assert.Equal(t, "h0", clamped[0].ID)
}

// 完整会话流：客户提问 -> 客服侧看到待回复 -> 客服答复 -> 客户侧拉取并确认已读
func TestConversationLifecycle(t *testing.T) {
	svc, convRepo, _, convID := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddMessage(ctx, 0, &dto.AddMessageReq{
		ConversationID: convID,
		Content:        "发票抬头开错了，能重开吗？",
		CustomerID:     100,
	})
	require.NoError(t, err)

	pending, err := svc.GetNonAnsweredMessage(ctx, convID)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, "发票抬头开错了，能重开吗？", pending.Content)

	_, err = svc.AddMessage(ctx, 7, &dto.AddMessageReq{
		ConversationID: convID,
		Content:        "可以的，已为您重新开具",
	})
	require.NoError(t, err)

	queue, err := svc.GetAdminMessages(ctx, convID)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, uint64(7), queue[0].UserID)

	marked, err := svc.MarkSentAsReadMessages(ctx, convID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), marked.MarkedCount)

	queue, err = svc.GetAdminMessages(ctx, convID)
	require.NoError(t, err)
	assert.Empty(t, queue)

	conv := convRepo.convs[convID]
	assert.Equal(t, int64(2), conv.MessageCount)
	assert.Equal(t, "可以的，已为您重新开具", conv.Content)
}

func TestAddMessage_CountRecomputedNotIncremented(t *testing.T) {
	svc, convRepo, msgRepo, convID := newTestService(t)
	ctx := context.Background()

	// 聚合字段漂移后，下一次写入以流重算结果覆盖
	convRepo.convs[convID].MessageCount = 42
	msgRepo.messages = []*mongo.Message{
		{ID: "x", ConversationID: convID, UserID: 7, Content: "存量", CreatedAt: time.Now()},
	}

	_, err := svc.AddMessage(ctx, 7, &dto.AddMessageReq{
		ConversationID: convID,
		Content:        "新消息",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), convRepo.convs[convID].MessageCount)
}
