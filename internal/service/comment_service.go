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

// ── 评论模块业务错误 ──

var (
	ErrCommentNotFound = errors.New("评论不存在")
)

// CommentService 评论业务接口
// 作业 / 资源 / 周计划三类父资源共用同一套评论操作
type CommentService interface {
	ListByParent(ctx context.Context, parentType, parentID string) ([]dto.CommentResponse, error)
	Create(ctx context.Context, parentType, parentID string, req *dto.CreateCommentRequest, author string) (*dto.CommentResponse, error)
	Delete(ctx context.Context, id string) error
}

type commentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCommentService 创建 CommentService 实例
func NewCommentService(repo *repository.Repository, logger *zap.Logger) CommentService {
	return &commentService{repo: repo, logger: logger}
}

// ────────────────────── ListByParent ──────────────────────

// ListByParent 按时间正序返回父资源下全部评论
func (s *commentService) ListByParent(ctx context.Context, parentType, parentID string) ([]dto.CommentResponse, error) {
	if err := s.checkParent(ctx, parentType, parentID); err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.ListByParent(ctx, parentType, parentID)
	if err != nil {
		s.logger.Error("列出评论失败",
			zap.String("parent_type", parentType),
			zap.String("parent_id", parentID),
			zap.Error(err))
		return nil, err
	}

	result := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		result = append(result, *toCommentResponse(&comments[i]))
	}
	return result, nil
}

// ────────────────────── Create ──────────────────────

// Create 创建评论，写入前先确认父资源存在
func (s *commentService) Create(ctx context.Context, parentType, parentID string, req *dto.CreateCommentRequest, author string) (*dto.CommentResponse, error) {
	if err := s.checkParent(ctx, parentType, parentID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ParentType: parentType,
		ParentID:   parentID,
		Author:     author,
		Text:       strings.TrimSpace(req.Text),
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.logger.Error("创建评论失败",
			zap.String("parent_type", parentType),
			zap.String("parent_id", parentID),
			zap.Error(err))
		return nil, err
	}

	return toCommentResponse(comment), nil
}

// ────────────────────── Delete ──────────────────────

func (s *commentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Comment.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		s.logger.Error("查询评论失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Comment.Delete(ctx, id); err != nil {
		s.logger.Error("删除评论失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// checkParent 确认父资源存在，不存在时返回对应模块的业务错误
func (s *commentService) checkParent(ctx context.Context, parentType, parentID string) error {
	var err error
	var notFound error

	switch parentType {
	case model.ParentAssignment:
		_, err = s.repo.Assignment.GetByID(ctx, parentID)
		notFound = ErrAssignmentNotFound
	case model.ParentResource:
		_, err = s.repo.Resource.GetByID(ctx, parentID)
		notFound = ErrResourceNotFound
	case model.ParentWeek:
		_, err = s.repo.Week.GetByID(ctx, parentID)
		notFound = ErrWeekNotFound
	default:
		return ErrCommentNotFound
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		s.logger.Error("查询评论父资源失败",
			zap.String("parent_type", parentType),
			zap.String("parent_id", parentID),
			zap.Error(err))
		return err
	}
	return nil
}

func toCommentResponse(comment *model.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        comment.CommentID,
		ParentID:  comment.ParentID,
		Author:    comment.Author,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Format(timestampLayout),
	}
}
