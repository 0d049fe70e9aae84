package handler

import (
	"course-portal/backend/config"
	"course-portal/backend/internal/service"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Student    *StudentHandler
	Assignment *AssignmentHandler
	Discussion *DiscussionHandler
	Resource   *ResourceHandler
	Week       *WeekHandler
	Comment    *CommentHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth, &cfg.Session),
		Student:    NewStudentHandler(svc.Student),
		Assignment: NewAssignmentHandler(svc.Assignment, svc.Comment),
		Discussion: NewDiscussionHandler(svc.Discussion),
		Resource:   NewResourceHandler(svc.Resource, svc.Comment),
		Week:       NewWeekHandler(svc.Week, svc.Comment),
		Comment:    NewCommentHandler(svc.Comment),
		Export:     NewExportHandler(svc.Export),
	}
}
