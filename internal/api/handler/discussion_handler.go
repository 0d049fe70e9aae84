package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/service"
	"course-portal/backend/pkg/response"
)

// DiscussionHandler 讨论区模块 HTTP 处理器（主题 + 回复）
type DiscussionHandler struct {
	discussionSvc service.DiscussionService
}

// NewDiscussionHandler 创建 DiscussionHandler
func NewDiscussionHandler(discussionSvc service.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{discussionSvc: discussionSvc}
}

// ListTopics 获取主题列表
// GET /api/v1/topics?search=&sort=&order=
func (h *DiscussionHandler) ListTopics(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	topics, err := h.discussionSvc.ListTopics(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKList(c, topics, len(topics))
}

// GetTopic 获取主题详情
// GET /api/v1/topics/:id
func (h *DiscussionHandler) GetTopic(c *gin.Context) {
	topic, err := h.discussionSvc.GetTopic(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDiscussionError(c, err)
		return
	}

	response.OK(c, topic)
}

// CreateTopic 发布主题
// POST /api/v1/topics
// 作者署名取自会话，不信任请求体
func (h *DiscussionHandler) CreateTopic(c *gin.Context) {
	var req dto.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	author, ok := MustGetUserName(c)
	if !ok {
		return
	}

	topic, err := h.discussionSvc.CreateTopic(c.Request.Context(), &req, author)
	if err != nil {
		h.handleDiscussionError(c, err)
		return
	}

	response.Created(c, topic)
}

// UpdateTopic 更新主题
// PUT /api/v1/topics/:id
func (h *DiscussionHandler) UpdateTopic(c *gin.Context) {
	var req dto.UpdateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	topic, err := h.discussionSvc.UpdateTopic(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleDiscussionError(c, err)
		return
	}

	response.OK(c, topic)
}

// DeleteTopic 删除主题（级联删除其回复）
// DELETE /api/v1/topics/:id
func (h *DiscussionHandler) DeleteTopic(c *gin.Context) {
	if err := h.discussionSvc.DeleteTopic(c.Request.Context(), c.Param("id")); err != nil {
		h.handleDiscussionError(c, err)
		return
	}

	response.OKMessage(c, "主题已删除")
}

// ListReplies 获取主题回复
// GET /api/v1/topics/:id/replies
func (h *DiscussionHandler) ListReplies(c *gin.Context) {
	// 先确认主题存在，避免对已删除主题返回空列表
	if _, err := h.discussionSvc.GetTopic(c.Request.Context(), c.Param("id")); err != nil {
		h.handleDiscussionError(c, err)
		return
	}

	replies, err := h.discussionSvc.ListReplies(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDiscussionError(c, err)
		return
	}

	response.OKList(c, replies, len(replies))
}

// CreateReply 发表回复
// POST /api/v1/topics/:id/replies
func (h *DiscussionHandler) CreateReply(c *gin.Context) {
	var req dto.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数校验失败")
		return
	}

	author, ok := MustGetUserName(c)
	if !ok {
		return
	}

	reply, err := h.discussionSvc.CreateReply(c.Request.Context(), c.Param("id"), &req, author)
	if err != nil {
		h.handleDiscussionError(c, err)
		return
	}

	response.Created(c, reply)
}

// DeleteReply 删除回复
// DELETE /api/v1/replies/:id
func (h *DiscussionHandler) DeleteReply(c *gin.Context) {
	if err := h.discussionSvc.DeleteReply(c.Request.Context(), c.Param("id")); err != nil {
		h.handleDiscussionError(c, err)
		return
	}

	response.OKMessage(c, "回复已删除")
}

// handleDiscussionError 统一处理讨论区模块业务错误
func (h *DiscussionHandler) handleDiscussionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTopicNotFound):
		response.NotFound(c, "主题不存在")
	case errors.Is(err, service.ErrReplyNotFound):
		response.NotFound(c, "回复不存在")
	case errors.Is(err, service.ErrNoFields):
		response.BadRequest(c, "未提供任何待更新字段")
	default:
		response.InternalError(c)
	}
}
