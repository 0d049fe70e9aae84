package dto

// ── 周计划模块 DTO ──

// CreateWeekRequest 创建周计划请求
type CreateWeekRequest struct {
	Title       string   `json:"title"       binding:"required,min=1,max=200"`
	StartDate   string   `json:"start_date"  binding:"required"` // "2025-09-01"
	Description string   `json:"description" binding:"required"`
	Links       []string `json:"links"       binding:"omitempty,dive,url"`
}

// UpdateWeekRequest 更新周计划请求
// 指针字段缺省表示不修改（部分更新语义）
type UpdateWeekRequest struct {
	Title       *string   `json:"title"       binding:"omitempty,min=1,max=200"`
	StartDate   *string   `json:"start_date"`
	Description *string   `json:"description"`
	Links       *[]string `json:"links"       binding:"omitempty,dive,url"`
}

// WeekResponse 周计划信息响应
type WeekResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	StartDate   string   `json:"start_date"`
	Description string   `json:"description"`
	Links       []string `json:"links"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}
