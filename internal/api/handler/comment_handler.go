package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"course-portal/backend/internal/service"
	"course-portal/backend/pkg/response"
)

// CommentHandler 评论模块 HTTP 处理器
// 评论的列表与创建挂在各父资源路由下，这里只处理按 ID 删除
type CommentHandler struct {
	commentSvc service.CommentService
}

// NewCommentHandler 创建 CommentHandler
func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

// DeleteComment 删除评论（任意父级）
// DELETE /api/v1/comments/:id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	if err := h.commentSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			response.NotFound(c, "评论不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "评论已删除")
}
