package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/model"
	"course-portal/backend/internal/repository"
)

// ── 作业模块业务错误 ──

var (
	ErrAssignmentNotFound    = errors.New("作业不存在")
	ErrAssignmentDateInvalid = errors.New("截止日期格式无效")
)

// 列表排序允许列表（防止 ORDER BY 注入）
var assignmentSortFields = map[string]bool{
	"title":      true,
	"due_date":   true,
	"created_at": true,
}

// AssignmentService 作业业务接口
type AssignmentService interface {
	List(ctx context.Context, req *dto.ListRequest) ([]dto.AssignmentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *assignmentService) List(ctx context.Context, req *dto.ListRequest) ([]dto.AssignmentResponse, error) {
	sortField, order := resolveSort(req.Sort, req.Order, assignmentSortFields, "created_at", "DESC")

	assignments, err := s.repo.Assignment.List(ctx, strings.TrimSpace(req.Search), sortField, order)
	if err != nil {
		s.logger.Error("列出作业失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, *toAssignmentResponse(&assignments[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *assignmentService) GetByID(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAssignmentResponse(assignment), nil
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, ErrAssignmentDateInvalid
	}

	assignment := &model.Assignment{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		DueDate:     dueDate,
		Files:       model.StringArray(req.Files),
	}
	if assignment.Files == nil {
		assignment.Files = model.StringArray{}
	}

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("创建作业失败", zap.Error(err))
		return nil, err
	}

	return toAssignmentResponse(assignment), nil
}

// ────────────────────── Update ──────────────────────

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if req.Title == nil && req.Description == nil && req.DueDate == nil && req.Files == nil {
		return nil, ErrNoFields
	}

	assignment, err := s.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		assignment.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		assignment.Description = strings.TrimSpace(*req.Description)
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			return nil, ErrAssignmentDateInvalid
		}
		assignment.DueDate = dueDate
	}
	if req.Files != nil {
		assignment.Files = model.StringArray(*req.Files)
	}

	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		s.logger.Error("更新作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toAssignmentResponse(assignment), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除作业及其全部评论
// 先删子后删父，整体在一个事务内，任一步失败即回滚
func (s *assignmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.getAssignment(ctx, id); err != nil {
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

	if err := txRepo.Comment.DeleteByParent(ctx, model.ParentAssignment, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除作业评论失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := txRepo.Assignment.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除作业失败", zap.String("id", id), zap.Error(err))
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

func (s *assignmentService) getAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("查询作业失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return assignment, nil
}

func toAssignmentResponse(assignment *model.Assignment) *dto.AssignmentResponse {
	files := []string(assignment.Files)
	if files == nil {
		files = []string{}
	}
	return &dto.AssignmentResponse{
		ID:          assignment.AssignmentID,
		Title:       assignment.Title,
		Description: assignment.Description,
		DueDate:     assignment.DueDate.Format(dateLayout),
		Files:       files,
		CreatedAt:   assignment.CreatedAt.Format(timestampLayout),
		UpdatedAt:   assignment.UpdatedAt.Format(timestampLayout),
	}
}
