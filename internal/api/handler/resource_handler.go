package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/model"
	"course-portal/backend/internal/service"
	"course-portal/backend/pkg/response"
)

// ResourceHandler 课程资源模块 HTTP 处理器
type ResourceHandler struct {
	resourceSvc service.ResourceService
	commentSvc  service.CommentService
}

// NewResourceHandler 创建 ResourceHandler
func NewResourceHandler(resourceSvc service.ResourceService, commentSvc service.CommentService) *ResourceHandler {
	return &ResourceHandler{resourceSvc: resourceSvc, commentSvc: commentSvc}
}

// ListResources 获取资源列表
// GET /api/v1/resources?search=&sort=&order=
func (h *ResourceHandler) ListResources(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	resources, err := h.resourceSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, resources, len(resources))
}

// GetResource 获取资源详情
// GET /api/v1/resources/:id
func (h *ResourceHandler) GetResource(c *gin.Context) {
	resource, err := h.resourceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, resource)
}

// CreateResource 创建资源
// POST /api/v1/resources
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	var req dto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	resource, err := h.resourceSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.Created(c, resource)
}

// UpdateResource 更新资源
// PUT /api/v1/resources/:id
func (h *ResourceHandler) UpdateResource(c *gin.Context) {
	var req dto.UpdateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	resource, err := h.resourceSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OK(c, resource)
}

// DeleteResource 删除资源（级联删除其评论）
// DELETE /api/v1/resources/:id
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	if err := h.resourceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OKMessage(c, "资源已删除")
}

// ListComments 获取资源评论
// GET /api/v1/resources/:id/comments
func (h *ResourceHandler) ListComments(c *gin.Context) {
	comments, err := h.commentSvc.ListByParent(c.Request.Context(), model.ParentResource, c.Param("id"))
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.OKList(c, comments, len(comments))
}

// CreateComment 发表资源评论
// POST /api/v1/resources/:id/comments
func (h *ResourceHandler) CreateComment(c *gin.Context) {
	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	author, ok := MustGetUserName(c)
	if !ok {
		return
	}

	comment, err := h.commentSvc.Create(c.Request.Context(), model.ParentResource, c.Param("id"), &req, author)
	if err != nil {
		h.handleResourceError(c, err)
		return
	}

	response.Created(c, comment)
}

// handleResourceError 统一处理资源模块业务错误
func (h *ResourceHandler) handleResourceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrResourceNotFound):
		response.NotFound(c, "资源不存在")
	case errors.Is(err, service.ErrNoFields):
		response.BadRequest(c, "未提供任何待更新字段")
	default:
		response.InternalError(c)
	}
}
