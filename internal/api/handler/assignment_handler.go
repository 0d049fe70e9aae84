package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/model"
	"course-portal/backend/internal/service"
	"course-portal/backend/pkg/response"
)

// AssignmentHandler 作业模块 HTTP 处理器
// 作业下的评论作为子资源挂在 /assignments/:id/comments 下
type AssignmentHandler struct {
	assignmentSvc service.AssignmentService
	commentSvc    service.CommentService
}

// NewAssignmentHandler 创建 AssignmentHandler
func NewAssignmentHandler(assignmentSvc service.AssignmentService, commentSvc service.CommentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentSvc: assignmentSvc, commentSvc: commentSvc}
}

// ListAssignments 获取作业列表
// GET /api/v1/assignments?search=&sort=&order=
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	assignments, err := h.assignmentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, assignments, len(assignments))
}

// GetAssignment 获取作业详情
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	assignment, err := h.assignmentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// CreateAssignment 创建作业
// POST /api/v1/assignments
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	assignment, err := h.assignmentSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, assignment)
}

// UpdateAssignment 更新作业
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	var req dto.UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	assignment, err := h.assignmentSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OK(c, assignment)
}

// DeleteAssignment 删除作业（级联删除其评论）
// DELETE /api/v1/assignments/:id
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	if err := h.assignmentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OKMessage(c, "作业已删除")
}

// ListComments 获取作业评论
// GET /api/v1/assignments/:id/comments
func (h *AssignmentHandler) ListComments(c *gin.Context) {
	comments, err := h.commentSvc.ListByParent(c.Request.Context(), model.ParentAssignment, c.Param("id"))
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.OKList(c, comments, len(comments))
}

// CreateComment 发表作业评论
// POST /api/v1/assignments/:id/comments
func (h *AssignmentHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	author, ok := MustGetUserName(c)
	if !ok {
		return
	}

	comment, err := h.commentSvc.Create(c.Request.Context(), model.ParentAssignment, c.Param("id"), &req, author)
	if err != nil {
		h.handleAssignmentError(c, err)
		return
	}

	response.Created(c, comment)
}

// handleAssignmentError 统一处理作业模块业务错误
func (h *AssignmentHandler) handleAssignmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAssignmentNotFound):
		response.NotFound(c, "作业不存在")
	case errors.Is(err, service.ErrAssignmentDateInvalid):
		response.BadRequest(c, "截止日期格式无效")
	case errors.Is(err, service.ErrNoFields):
		response.BadRequest(c, "未提供任何待更新字段")
	default:
		response.InternalError(c)
	}
}
