package model

import "time"

// Assignment 作业表 — 对应 assignments
type Assignment struct {
	AssignmentID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	Title        string      `gorm:"type:varchar(200);not null"                     json:"title"`
	Description  string      `gorm:"type:text;not null"                             json:"description"`
	DueDate      time.Time   `gorm:"type:date;not null"                             json:"due_date"`
	Files        StringArray `gorm:"type:text[];not null;default:'{}'"              json:"files"`
	BaseModel
}

// TableName 指定表名
func (Assignment) TableName() string { return "assignments" }
