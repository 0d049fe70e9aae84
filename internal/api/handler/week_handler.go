package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/model"
	"course-portal/backend/internal/service"
	"course-portal/backend/pkg/response"
)

// WeekHandler 周计划模块 HTTP 处理器
type WeekHandler struct {
	weekSvc    service.WeekService
	commentSvc service.CommentService
}

// NewWeekHandler 创建 WeekHandler
func NewWeekHandler(weekSvc service.WeekService, commentSvc service.CommentService) *WeekHandler {
	return &WeekHandler{weekSvc: weekSvc, commentSvc: commentSvc}
}

// ListWeeks 获取周计划列表
// GET /api/v1/weeks?search=&sort=&order=
func (h *WeekHandler) ListWeeks(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	weeks, err := h.weekSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, weeks, len(weeks))
}

// GetWeek 获取周计划详情
// GET /api/v1/weeks/:id
func (h *WeekHandler) GetWeek(c *gin.Context) {
	week, err := h.weekSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, week)
}

// CreateWeek 创建周计划
// POST /api/v1/weeks
func (h *WeekHandler) CreateWeek(c *gin.Context) {
	var req dto.CreateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	week, err := h.weekSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.Created(c, week)
}

// UpdateWeek 更新周计划
// PUT /api/v1/weeks/:id
func (h *WeekHandler) UpdateWeek(c *gin.Context) {
	var req dto.UpdateWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	week, err := h.weekSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OK(c, week)
}

// DeleteWeek 删除周计划（级联删除其评论）
// DELETE /api/v1/weeks/:id
func (h *WeekHandler) DeleteWeek(c *gin.Context) {
	if err := h.weekSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OKMessage(c, "周计划已删除")
}

// ListComments 获取周计划评论
// GET /api/v1/weeks/:id/comments
func (h *WeekHandler) ListComments(c *gin.Context) {
	comments, err := h.commentSvc.ListByParent(c.Request.Context(), model.ParentWeek, c.Param("id"))
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.OKList(c, comments, len(comments))
}

// CreateComment 发表周计划评论
// POST /api/v1/weeks/:id/comments
func (h *WeekHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	author, ok := MustGetUserName(c)
	if !ok {
		return
	}

	comment, err := h.commentSvc.Create(c.Request.Context(), model.ParentWeek, c.Param("id"), &req, author)
	if err != nil {
		h.handleWeekError(c, err)
		return
	}

	response.Created(c, comment)
}

// handleWeekError 统一处理周计划模块业务错误
func (h *WeekHandler) handleWeekError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWeekNotFound):
		response.NotFound(c, "周计划不存在")
	case errors.Is(err, service.ErrWeekDateInvalid):
		response.BadRequest(c, "开始日期格式无效")
	case errors.Is(err, service.ErrNoFields):
		response.BadRequest(c, "未提供任何待更新字段")
	default:
		response.InternalError(c)
	}
}
