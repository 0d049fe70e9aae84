package model

// Resource 课程资源表 — 对应 resources
type Resource struct {
	ResourceID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"resource_id"`
	Title       string `gorm:"type:varchar(200);not null"                     json:"title"`
	Description string `gorm:"type:text;not null"                             json:"description"`
	Link        string `gorm:"type:text;not null"                             json:"link"`
	BaseModel
}

// TableName 指定表名
func (Resource) TableName() string { return "resources" }
