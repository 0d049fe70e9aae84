package dto

// ── 通用列表查询参数 ──

// ListRequest 列表查询参数
// sort 仅接受各资源允许列表内的列名，非法值回落到默认排序
type ListRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`
	Sort   string `form:"sort"   binding:"omitempty,max=30"`
	Order  string `form:"order"  binding:"omitempty,oneof=asc desc ASC DESC"`
}

// ── 认证模块响应 ──

// LoginResponse 登录成功响应
// Redirect 为角色对应的落地页
type LoginResponse struct {
	User     UserResponse `json:"user"`
	Redirect string       `json:"redirect"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// ── 创建类响应 ──

// CreatedResponse 创建成功响应，仅回传生成的主键
type CreatedResponse struct {
	ID string `json:"id"`
}
