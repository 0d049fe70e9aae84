package dto

// ── 课程资源模块 DTO ──

// CreateResourceRequest 创建资源请求
type CreateResourceRequest struct {
	Title       string `json:"title"       binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"required"`
	Link        string `json:"link"        binding:"required,url"`
}

// UpdateResourceRequest 更新资源请求
// 指针字段缺省表示不修改（部分更新语义）
type UpdateResourceRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string `json:"description"`
	Link        *string `json:"link"        binding:"omitempty,url"`
}

// ResourceResponse 资源信息响应
type ResourceResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
