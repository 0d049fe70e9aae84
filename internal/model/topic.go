package model

import "time"

// Topic 讨论主题表 — 对应 topics
type Topic struct {
	TopicID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"topic_id"`
	Subject   string    `gorm:"type:varchar(200);not null"                     json:"subject"`
	Message   string    `gorm:"type:text;not null"                             json:"message"`
	Author    string    `gorm:"type:varchar(100);not null"                     json:"author"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Topic) TableName() string { return "topics" }

// Reply 主题回复表 — 对应 replies（topics 1:N）
type Reply struct {
	ReplyID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"reply_id"`
	TopicID   string    `gorm:"type:uuid;not null;index"                       json:"topic_id"`
	Author    string    `gorm:"type:varchar(100);not null"                     json:"author"`
	Text      string    `gorm:"type:text;not null"                             json:"text"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (Reply) TableName() string { return "replies" }
