package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MessageRepo interface {
	Create(ctx context.Context, msg *Message) (*Message, error)
	CountByConversation(ctx context.Context, convID uint64) (int64, error)
	GetLatestCustomerMessage(ctx context.Context, convID uint64) (*Message, error)
	GetUnreadAdminMessages(ctx context.Context, convID uint64) ([]*Message, error)
	MarkSentAsRead(ctx context.Context, convID uint64) (int64, error)
	GetHistory(ctx context.Context, convID uint64, limit, offset int64) ([]*Message, error)
}

type messageRepoImpl struct {
	col *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepoImpl{
		col: db.Collection("message"),
	}
}

// Create 插入消息并回填存储层分配的 ID
func (s *messageRepoImpl) Create(ctx context.Context, msg *Message) (*Message, error) {
	res, err := s.col.InsertOne(ctx, msg)
	if err != nil {
		return nil, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid.Hex()
	}
	return msg, nil
}

// CountByConversation 精确统计会话消息数（包含内部备注）
func (s *messageRepoImpl) CountByConversation(ctx context.Context, convID uint64) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{"conversation_id": convID})
}

// GetLatestCustomerMessage 获取会话中最新一条客户消息，不存在时返回 nil
func (s *messageRepoImpl) GetLatestCustomerMessage(ctx context.Context, convID uint64) (*Message, error) {
	filter := bson.M{
		"conversation_id": convID,
		"customer_id":     bson.M{"$exists": true},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	var msg Message
	err := s.col.FindOne(ctx, filter, opts).Decode(&msg)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}

// GetUnreadAdminMessages 客户侧待展示队列：客服发出、客户未读、非内部备注
// 按创建时间升序，同一时刻按插入顺序
func (s *messageRepoImpl) GetUnreadAdminMessages(ctx context.Context, convID uint64) ([]*Message, error) {
	filter := bson.M{
		"conversation_id":  convID,
		"user_id":          bson.M{"$exists": true},
		"is_customer_read": bson.M{"$ne": true},
		"internal":         bson.M{"$ne": true},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var messages []*Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkSentAsRead 批量标记客服消息为已读
// 仅迁移 is_customer_read 尚未写入过的消息，显式 false/true 的保持原值
func (s *messageRepoImpl) MarkSentAsRead(ctx context.Context, convID uint64) (int64, error) {
	filter := bson.M{
		"conversation_id":  convID,
		"user_id":          bson.M{"$exists": true},
		"is_customer_read": bson.M{"$exists": false},
	}
	update := bson.M{"$set": bson.M{"is_customer_read": true}}

	res, err := s.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// GetHistory 分页拉取会话消息，按创建时间升序
func (s *messageRepoImpl) GetHistory(ctx context.Context, convID uint64, limit, offset int64) ([]*Message, error) {
	filter := bson.M{"conversation_id": convID}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var messages []*Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
