package model

import "time"

// ── 评论父级类型 ──

const (
	ParentAssignment = "assignment"
	ParentResource   = "resource"
	ParentWeek       = "week"
)

// Comment 评论表 — 对应 comments
// 作业/资源/周计划共用，按 parent_type + parent_id 区分归属
type Comment struct {
	CommentID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"comment_id"`
	ParentType string    `gorm:"type:varchar(20);not null;index:idx_comments_parent" json:"parent_type"` // assignment | resource | week
	ParentID   string    `gorm:"type:uuid;not null;index:idx_comments_parent"   json:"parent_id"`
	Author     string    `gorm:"type:varchar(100);not null"                     json:"author"`
	Text       string    `gorm:"type:text;not null"                             json:"text"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Comment) TableName() string { return "comments" }
