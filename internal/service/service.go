package service

import (
	"strings"

	"go.uber.org/zap"

	"course-portal/backend/config"
	"course-portal/backend/internal/repository"
	"course-portal/backend/pkg/session"
)

// 日期与时间戳的统一格式
const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05Z"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Student    StudentService
	Assignment AssignmentService
	Discussion DiscussionService
	Resource   ResourceService
	Week       WeekService
	Comment    CommentService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	sessionMgr *session.Manager,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo, sessionMgr, logger),
		Student:    NewStudentService(repo, logger),
		Assignment: NewAssignmentService(repo, logger),
		Discussion: NewDiscussionService(repo, logger),
		Resource:   NewResourceService(repo, logger),
		Week:       NewWeekService(repo, logger),
		Comment:    NewCommentService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}

// resolveSort 按允许列表解析排序参数
// 不在允许列表内的列名与非法 order 一律回落到默认值，
// 保证拼入 ORDER BY 的只可能是允许列表内的固定列名
func resolveSort(sort, order string, allowed map[string]bool, defaultSort, defaultOrder string) (string, string) {
	if !allowed[sort] {
		sort = defaultSort
	}
	switch strings.ToLower(order) {
	case "asc":
		order = "ASC"
	case "desc":
		order = "DESC"
	default:
		order = defaultOrder
	}
	return sort, order
}
