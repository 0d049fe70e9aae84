package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User       UserRepository
	Assignment AssignmentRepository
	Topic      TopicRepository
	Reply      ReplyRepository
	Resource   ResourceRepository
	Week       WeekRepository
	Comment    CommentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		User:       NewUserRepo(db),
		Assignment: NewAssignmentRepo(db),
		Topic:      NewTopicRepo(db),
		Reply:      NewReplyRepo(db),
		Resource:   NewResourceRepo(db),
		Week:       NewWeekRepo(db),
		Comment:    NewCommentRepo(db),
	}
}

// BeginTx 开启事务
// 未绑定数据库时（单元测试用 mock 构造聚合）返回 nil，调用方需判空
func (r *Repository) BeginTx() *gorm.DB {
	if r.db == nil {
		return nil
	}
	return r.db.Begin()
}

// WithTx 返回绑定到事务的 Repository 聚合
// tx 为 nil 时原样返回（配合 BeginTx 的降级约定）
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
