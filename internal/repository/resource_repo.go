package repository

import (
	"context"

	"gorm.io/gorm"

	"course-portal/backend/internal/model"
)

// ResourceRepository 课程资源数据访问接口
type ResourceRepository interface {
	Create(ctx context.Context, resource *model.Resource) error
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	List(ctx context.Context, search, sortField, order string) ([]model.Resource, error)
	Update(ctx context.Context, resource *model.Resource) error
	Delete(ctx context.Context, id string) error
}

// resourceRepo ResourceRepository 的 GORM 实现
type resourceRepo struct {
	db *gorm.DB
}

// NewResourceRepo 创建 ResourceRepository 实例
func NewResourceRepo(db *gorm.DB) ResourceRepository {
	return &resourceRepo{db: db}
}

func (r *resourceRepo) Create(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *resourceRepo) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	var resource model.Resource
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", id).
		First(&resource).Error
	if err != nil {
		return nil, err
	}
	return &resource, nil
}

// List 资源列表
// search 在标题/描述上做大小写不敏感的子串匹配
func (r *resourceRepo) List(ctx context.Context, search, sortField, order string) ([]model.Resource, error) {
	var resources []model.Resource

	q := r.db.WithContext(ctx).Model(&model.Resource{})

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	err := q.Order(sortField + " " + order).Find(&resources).Error
	return resources, err
}

func (r *resourceRepo) Update(ctx context.Context, resource *model.Resource) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *resourceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("resource_id = ?", id).
		Delete(&model.Resource{}).Error
}
