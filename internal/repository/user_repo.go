package repository

import (
	"context"

	"gorm.io/gorm"

	"course-portal/backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string, excludeID string) (bool, error)
	ListStudents(ctx context.Context, search, sortField, order string) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists 检查邮箱是否被占用
// excludeID 非空时排除该用户自身（更新场景）
func (r *userRepo) EmailExists(ctx context.Context, email string, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email)
	if excludeID != "" {
		q = q.Where("user_id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListStudents 学生列表
// search 在姓名/邮箱上做大小写不敏感的子串匹配
// sortField/order 由 Service 层按允许列表校验后传入
func (r *userRepo) ListStudents(ctx context.Context, search, sortField, order string) ([]model.User, error) {
	var users []model.User

	q := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role = ?", model.RoleStudent)

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	err := q.Order(sortField + " " + order).Find(&users).Error
	return users, err
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Delete(&model.User{}).Error
}
