package dto

// ── 学生管理模块 DTO（管理员） ──

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateStudentRequest 更新学生请求
// 指针字段缺省表示不修改（部分更新语义）
type UpdateStudentRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}
