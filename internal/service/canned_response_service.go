package service

import (
	"Quayside/internal/api/dto"
	"Quayside/internal/model"
	"Quayside/internal/repository"
	"context"
	"errors"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// CannedResponseService 快捷回复接口定义，纯透传 CRUD
type CannedResponseService interface {
	GetList(ctx context.Context, page, pageSize int) (*dto.CannedResponseListDTO, error)
	Create(ctx context.Context, req *dto.CannedResponseReq) (*dto.CannedResponseDTO, error)
	Update(ctx context.Context, id uint64, req *dto.CannedResponseReq) error
	Delete(ctx context.Context, id uint64) error
}

type cannedResponseServiceImpl struct {
	cannedRepo repository.CannedResponseRepo
}

func NewCannedResponseService(cannedRepo repository.CannedResponseRepo) CannedResponseService {
	return &cannedResponseServiceImpl{cannedRepo: cannedRepo}
}

// GetList 分页获取快捷回复列表
func (s *cannedResponseServiceImpl) GetList(ctx context.Context, page, pageSize int) (*dto.CannedResponseListDTO, error) {
	total, err := s.cannedRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.cannedRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CannedResponseDTO, 0, len(list))
	for _, m := range list {
		d := &dto.CannedResponseDTO{}
		_ = copier.Copy(d, m)
		res = append(res, d)
	}
	return &dto.CannedResponseListDTO{Total: total, List: res}, nil
}

// Create 新建快捷回复
func (s *cannedResponseServiceImpl) Create(ctx context.Context, req *dto.CannedResponseReq) (*dto.CannedResponseDTO, error) {
	cr := &model.CannedResponse{
		Shortcut: req.Shortcut,
		Content:  req.Content,
	}
	if err := s.cannedRepo.Create(ctx, cr); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrShortcutExist
		}
		return nil, err
	}

	d := &dto.CannedResponseDTO{}
	_ = copier.Copy(d, cr)
	return d, nil
}

// Update 更新快捷回复
func (s *cannedResponseServiceImpl) Update(ctx context.Context, id uint64, req *dto.CannedResponseReq) error {
	if _, err := s.cannedRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCannedResponseNotFound
		}
		return err
	}

	return s.cannedRepo.Update(ctx, &model.CannedResponse{
		ID:       id,
		Shortcut: req.Shortcut,
		Content:  req.Content,
	})
}

// Delete 删除快捷回复
func (s *cannedResponseServiceImpl) Delete(ctx context.Context, id uint64) error {
	if _, err := s.cannedRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCannedResponseNotFound
		}
		return err
	}
	return s.cannedRepo.Delete(ctx, id)
}
