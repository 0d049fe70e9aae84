package dto

// ── 作业模块 DTO ──

// CreateAssignmentRequest 创建作业请求
type CreateAssignmentRequest struct {
	Title       string   `json:"title"       binding:"required,min=1,max=200"`
	Description string   `json:"description" binding:"required"`
	DueDate     string   `json:"due_date"    binding:"required"` // "2025-01-10"
	Files       []string `json:"files"       binding:"omitempty,dive,max=500"`
}

// UpdateAssignmentRequest 更新作业请求
// 指针字段缺省表示不修改（部分更新语义）
type UpdateAssignmentRequest struct {
	Title       *string   `json:"title"       binding:"omitempty,min=1,max=200"`
	Description *string   `json:"description"`
	DueDate     *string   `json:"due_date"`
	Files       *[]string `json:"files"       binding:"omitempty,dive,max=500"`
}

// AssignmentResponse 作业信息响应
type AssignmentResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	Files       []string `json:"files"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
