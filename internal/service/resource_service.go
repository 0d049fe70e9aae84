package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/model"
	"course-portal/backend/internal/repository"
)

// ── 课程资源模块业务错误 ──

var (
	ErrResourceNotFound = errors.New("资源不存在")
)

// 列表排序允许列表（防止 ORDER BY 注入）
var resourceSortFields = map[string]bool{
	"title":      true,
	"created_at": true,
}

// ResourceService 课程资源业务接口
type ResourceService interface {
	List(ctx context.Context, req *dto.ListRequest) ([]dto.ResourceResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ResourceResponse, error)
	Create(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error)
	Delete(ctx context.Context, id string) error
}

type resourceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewResourceService 创建 ResourceService 实例
func NewResourceService(repo *repository.Repository, logger *zap.Logger) ResourceService {
	return &resourceService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *resourceService) List(ctx context.Context, req *dto.ListRequest) ([]dto.ResourceResponse, error) {
	sortField, order := resolveSort(req.Sort, req.Order, resourceSortFields, "created_at", "DESC")

	resources, err := s.repo.Resource.List(ctx, strings.TrimSpace(req.Search), sortField, order)
	if err != nil {
		s.logger.Error("列出资源失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ResourceResponse, 0, len(resources))
	for i := range resources {
		result = append(result, *toResourceResponse(&resources[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *resourceService) GetByID(ctx context.Context, id string) (*dto.ResourceResponse, error) {
	resource, err := s.getResource(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResourceResponse(resource), nil
}

// ────────────────────── Create ──────────────────────

func (s *resourceService) Create(ctx context.Context, req *dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	resource := &model.Resource{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Link:        strings.TrimSpace(req.Link),
	}

	if err := s.repo.Resource.Create(ctx, resource); err != nil {
		s.logger.Error("创建资源失败", zap.Error(err))
		return nil, err
	}

	return toResourceResponse(resource), nil
}

// ────────────────────── Update ──────────────────────

func (s *resourceService) Update(ctx context.Context, id string, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	if req.Title == nil && req.Description == nil && req.Link == nil {
		return nil, ErrNoFields
	}

	resource, err := s.getResource(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		resource.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		resource.Description = strings.TrimSpace(*req.Description)
	}
	if req.Link != nil {
		resource.Link = strings.TrimSpace(*req.Link)
	}

	if err := s.repo.Resource.Update(ctx, resource); err != nil {
		s.logger.Error("更新资源失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toResourceResponse(resource), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除资源及其全部评论
// 先删子后删父，整体在一个事务内，任一步失败即回滚
func (s *resourceService) Delete(ctx context.Context, id string) error {
	if _, err := s.getResource(ctx, id); err != nil {
		return err
	}

	tx := s.repo.BeginTx()
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Comment.DeleteByParent(ctx, model.ParentResource, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除资源评论失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := txRepo.Resource.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除资源失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	return nil
}

// ── 内部辅助方法 ──

func (s *resourceService) getResource(ctx context.Context, id string) (*model.Resource, error) {
	resource, err := s.repo.Resource.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("查询资源失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return resource, nil
}

func toResourceResponse(resource *model.Resource) *dto.ResourceResponse {
	return &dto.ResourceResponse{
		ID:          resource.ResourceID,
		Title:       resource.Title,
		Description: resource.Description,
		Link:        resource.Link,
		CreatedAt:   resource.CreatedAt.Format(timestampLayout),
		UpdatedAt:   resource.UpdatedAt.Format(timestampLayout),
	}
}
