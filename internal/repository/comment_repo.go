package repository

import (
	"context"

	"gorm.io/gorm"

	"course-portal/backend/internal/model"
)

// CommentRepository 评论数据访问接口
// 作业/资源/周计划共用，按 parent_type + parent_id 区分归属
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	ListByParent(ctx context.Context, parentType, parentID string) ([]model.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByParent(ctx context.Context, parentType, parentID string) error
}

// commentRepo CommentRepository 的 GORM 实现
type commentRepo struct {
	db *gorm.DB
}

// NewCommentRepo 创建 CommentRepository 实例
func NewCommentRepo(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepo) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", id).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByParent 按时间正序返回父级下全部评论（讨论顺序）
func (r *commentRepo) ListByParent(ctx context.Context, parentType, parentID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ?", id).
		Delete(&model.Comment{}).Error
}

// DeleteByParent 删除父级下全部评论（级联删除，需在事务内调用）
func (r *commentRepo) DeleteByParent(ctx context.Context, parentType, parentID string) error {
	return r.db.WithContext(ctx).
		Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Delete(&model.Comment{}).Error
}
