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

// ── 周计划模块业务错误 ──

var (
	ErrWeekNotFound    = errors.New("周计划不存在")
	ErrWeekDateInvalid = errors.New("开始日期格式无效")
)

// 列表排序允许列表（防止 ORDER BY 注入）
var weekSortFields = map[string]bool{
	"title":      true,
	"start_date": true,
	"created_at": true,
}

// WeekService 周计划业务接口
type WeekService interface {
	List(ctx context.Context, req *dto.ListRequest) ([]dto.WeekResponse, error)
	GetByID(ctx context.Context, id string) (*dto.WeekResponse, error)
	Create(ctx context.Context, req *dto.CreateWeekRequest) (*dto.WeekResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateWeekRequest) (*dto.WeekResponse, error)
	Delete(ctx context.Context, id string) error
}

type weekService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewWeekService 创建 WeekService 实例
func NewWeekService(repo *repository.Repository, logger *zap.Logger) WeekService {
	return &weekService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *weekService) List(ctx context.Context, req *dto.ListRequest) ([]dto.WeekResponse, error) {
	// 周计划按开学周顺序展示，默认开始日期正序
	sortField, order := resolveSort(req.Sort, req.Order, weekSortFields, "start_date", "ASC")

	weeks, err := s.repo.Week.List(ctx, strings.TrimSpace(req.Search), sortField, order)
	if err != nil {
		s.logger.Error("列出周计划失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WeekResponse, 0, len(weeks))
	for i := range weeks {
		result = append(result, *toWeekResponse(&weeks[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *weekService) GetByID(ctx context.Context, id string) (*dto.WeekResponse, error) {
	week, err := s.getWeek(ctx, id)
	if err != nil {
		return nil, err
	}
	return toWeekResponse(week), nil
}

// ────────────────────── Create ──────────────────────

func (s *weekService) Create(ctx context.Context, req *dto.CreateWeekRequest) (*dto.WeekResponse, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, ErrWeekDateInvalid
	}

	week := &model.Week{
		Title:       strings.TrimSpace(req.Title),
		StartDate:   startDate,
		Description: strings.TrimSpace(req.Description),
		Links:       model.StringArray(req.Links),
	}
	if week.Links == nil {
		week.Links = model.StringArray{}
	}

	if err := s.repo.Week.Create(ctx, week); err != nil {
		s.logger.Error("创建周计划失败", zap.Error(err))
		return nil, err
	}

	return toWeekResponse(week), nil
}

// ────────────────────── Update ──────────────────────

func (s *weekService) Update(ctx context.Context, id string, req *dto.UpdateWeekRequest) (*dto.WeekResponse, error) {
	if req.Title == nil && req.StartDate == nil && req.Description == nil && req.Links == nil {
		return nil, ErrNoFields
	}

	week, err := s.getWeek(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		week.Title = strings.TrimSpace(*req.Title)
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, ErrWeekDateInvalid
		}
		week.StartDate = startDate
	}
	if req.Description != nil {
		week.Description = strings.TrimSpace(*req.Description)
	}
	if req.Links != nil {
		week.Links = model.StringArray(*req.Links)
	}

	if err := s.repo.Week.Update(ctx, week); err != nil {
		s.logger.Error("更新周计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toWeekResponse(week), nil
}

// ────────────────────── Delete ──────────────────────

// Delete 删除周计划及其全部评论
// 先删子后删父，整体在一个事务内，任一步失败即回滚
func (s *weekService) Delete(ctx context.Context, id string) error {
	if _, err := s.getWeek(ctx, id); err != nil {
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

	if err := txRepo.Comment.DeleteByParent(ctx, model.ParentWeek, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除周计划评论失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := txRepo.Week.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除周计划失败", zap.String("id", id), zap.Error(err))
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

func (s *weekService) getWeek(ctx context.Context, id string) (*model.Week, error) {
	week, err := s.repo.Week.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWeekNotFound
		}
		s.logger.Error("查询周计划失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return week, nil
}

func toWeekResponse(week *model.Week) *dto.WeekResponse {
	links := []string(week.Links)
	if links == nil {
		links = []string{}
	}
	return &dto.WeekResponse{
		ID:          week.WeekID,
		Title:       week.Title,
		StartDate:   week.StartDate.Format(dateLayout),
		Description: week.Description,
		Links:       links,
		CreatedAt:   week.CreatedAt.Format(timestampLayout),
		UpdatedAt:   week.UpdatedAt.Format(timestampLayout),
	}
}
