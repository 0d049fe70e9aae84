package dto

// ── 评论子资源 DTO（作业/资源/周计划共用） ──

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentResponse 评论信息响应
type CommentResponse struct {
	ID        string `json:"id"`
	ParentID  string `json:"parent_id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}
