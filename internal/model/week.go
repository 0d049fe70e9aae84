package model

import "time"

// Week 周计划表 — 对应 weeks
type Week struct {
	WeekID      string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"week_id"`
	Title       string      `gorm:"type:varchar(200);not null"                     json:"title"`
	StartDate   time.Time   `gorm:"type:date;not null"                             json:"start_date"`
	Description string      `gorm:"type:text;not null"                             json:"description"`
	Links       StringArray `gorm:"type:text[];not null;default:'{}'"              json:"links"`
	BaseModel
}

// TableName 指定表名
func (Week) TableName() string { return "weeks" }
