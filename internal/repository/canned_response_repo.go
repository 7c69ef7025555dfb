package repository

import (
	"Quayside/internal/model"
	"context"

	"gorm.io/gorm"
)

type CannedResponseRepo interface {
	Create(ctx context.Context, cr *model.CannedResponse) error
	Update(ctx context.Context, cr *model.CannedResponse) error
	Delete(ctx context.Context, id uint64) error
	GetByID(ctx context.Context, id uint64) (*model.CannedResponse, error)
	List(ctx context.Context, page, pageSize int) ([]*model.CannedResponse, error)
	Count(ctx context.Context) (int64, error)
}

type cannedResponseRepoImpl struct {
	db *gorm.DB
}

func NewCannedResponseRepo(db *gorm.DB) CannedResponseRepo {
	return &cannedResponseRepoImpl{db: db}
}

func (s *cannedResponseRepoImpl) Create(ctx context.Context, cr *model.CannedResponse) error {
	return s.db.WithContext(ctx).Create(cr).Error
}

func (s *cannedResponseRepoImpl) Update(ctx context.Context, cr *model.CannedResponse) error {
	return s.db.WithContext(ctx).Model(&model.CannedResponse{}).
		Where("id = ?", cr.ID).
		Updates(map[string]interface{}{
			"shortcut": cr.Shortcut,
			"content":  cr.Content,
		}).Error
}

func (s *cannedResponseRepoImpl) Delete(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.CannedResponse{}, id).Error
}

func (s *cannedResponseRepoImpl) GetByID(ctx context.Context, id uint64) (*model.CannedResponse, error) {
	var cr model.CannedResponse
	err := s.db.WithContext(ctx).First(&cr, id).Error
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

// List 按触发指令排序分页
func (s *cannedResponseRepoImpl) List(ctx context.Context, page, pageSize int) ([]*model.CannedResponse, error) {
	var list []*model.CannedResponse
	err := s.db.WithContext(ctx).
		Order("shortcut ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&list).Error
	return list, err
}

func (s *cannedResponseRepoImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.CannedResponse{}).Count(&total).Error
	return total, err
}
