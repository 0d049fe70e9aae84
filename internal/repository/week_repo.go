package repository

import (
	"context"

	"gorm.io/gorm"

	"course-portal/backend/internal/model"
)

// WeekRepository 周计划数据访问接口
type WeekRepository interface {
	Create(ctx context.Context, week *model.Week) error
	GetByID(ctx context.Context, id string) (*model.Week, error)
	List(ctx context.Context, search, sortField, order string) ([]model.Week, error)
	Update(ctx context.Context, week *model.Week) error
	Delete(ctx context.Context, id string) error
}

// weekRepo WeekRepository 的 GORM 实现
type weekRepo struct {
	db *gorm.DB
}

// NewWeekRepo 创建 WeekRepository 实例
func NewWeekRepo(db *gorm.DB) WeekRepository {
	return &weekRepo{db: db}
}

func (r *weekRepo) Create(ctx context.Context, week *model.Week) error {
	return r.db.WithContext(ctx).Create(week).Error
}

func (r *weekRepo) GetByID(ctx context.Context, id string) (*model.Week, error) {
	var week model.Week
	err := r.db.WithContext(ctx).
		Where("week_id = ?", id).
		First(&week).Error
	if err != nil {
		return nil, err
	}
	return &week, nil
}

// List 周计划列表
// search 在标题/描述上做大小写不敏感的子串匹配
func (r *weekRepo) List(ctx context.Context, search, sortField, order string) ([]model.Week, error) {
	var weeks []model.Week

	q := r.db.WithContext(ctx).Model(&model.Week{})

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	err := q.Order(sortField + " " + order).Find(&weeks).Error
	return weeks, err
}

func (r *weekRepo) Update(ctx context.Context, week *model.Week) error {
	return r.db.WithContext(ctx).Save(week).Error
}

func (r *weekRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("week_id = ?", id).
		Delete(&model.Week{}).Error
}
