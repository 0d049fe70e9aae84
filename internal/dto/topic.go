package dto

// ── 讨论区模块 DTO ──

// CreateTopicRequest 创建主题请求
type CreateTopicRequest struct {
	Subject string `json:"subject" binding:"required,min=1,max=200"`
	Message string `json:"message" binding:"required"`
}

// UpdateTopicRequest 更新主题请求
// 指针字段缺省表示不修改（部分更新语义）
type UpdateTopicRequest struct {
	Subject *string `json:"subject" binding:"omitempty,min=1,max=200"`
	Message *string `json:"message"`
}

// TopicResponse 主题信息响应
type TopicResponse struct {
	ID        string `json:"id"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// CreateReplyRequest 创建回复请求
type CreateReplyRequest struct {
	Text string `json:"text" binding:"required"`
}

// ReplyResponse 回复信息响应
type ReplyResponse struct {
	ID        string `json:"id"`
	TopicID   string `json:"topic_id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}
