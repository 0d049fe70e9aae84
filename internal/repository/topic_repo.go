package repository

import (
	"context"

	"gorm.io/gorm"

	"course-portal/backend/internal/model"
)

// TopicRepository 讨论主题数据访问接口
type TopicRepository interface {
	Create(ctx context.Context, topic *model.Topic) error
	GetByID(ctx context.Context, id string) (*model.Topic, error)
	List(ctx context.Context, search, sortField, order string) ([]model.Topic, error)
	Update(ctx context.Context, topic *model.Topic) error
	Delete(ctx context.Context, id string) error
}

// topicRepo TopicRepository 的 GORM 实现
type topicRepo struct {
	db *gorm.DB
}

// NewTopicRepo 创建 TopicRepository 实例
func NewTopicRepo(db *gorm.DB) TopicRepository {
	return &topicRepo{db: db}
}

func (r *topicRepo) Create(ctx context.Context, topic *model.Topic) error {
	return r.db.WithContext(ctx).Create(topic).Error
}

func (r *topicRepo) GetByID(ctx context.Context, id string) (*model.Topic, error) {
	var topic model.Topic
	err := r.db.WithContext(ctx).
		Where("topic_id = ?", id).
		First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// List 主题列表
// search 在标题/内容/作者上做大小写不敏感的子串匹配
func (r *topicRepo) List(ctx context.Context, search, sortField, order string) ([]model.Topic, error) {
	var topics []model.Topic

	q := r.db.WithContext(ctx).Model(&model.Topic{})

	if search != "" {
		pattern := "%" + search + "%"
		q = q.Where("subject ILIKE ? OR message ILIKE ? OR author ILIKE ?", pattern, pattern, pattern)
	}

	err := q.Order(sortField + " " + order).Find(&topics).Error
	return topics, err
}

func (r *topicRepo) Update(ctx context.Context, topic *model.Topic) error {
	return r.db.WithContext(ctx).Save(topic).Error
}

func (r *topicRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("topic_id = ?", id).
		Delete(&model.Topic{}).Error
}

// ── 回复 ──

// ReplyRepository 主题回复数据访问接口
type ReplyRepository interface {
	Create(ctx context.Context, reply *model.Reply) error
	GetByID(ctx context.Context, id string) (*model.Reply, error)
	ListByTopic(ctx context.Context, topicID string) ([]model.Reply, error)
	Delete(ctx context.Context, id string) error
	DeleteByTopic(ctx context.Context, topicID string) error
}

// replyRepo ReplyRepository 的 GORM 实现
type replyRepo struct {
	db *gorm.DB
}

// NewReplyRepo 创建 ReplyRepository 实例
func NewReplyRepo(db *gorm.DB) ReplyRepository {
	return &replyRepo{db: db}
}

func (r *replyRepo) Create(ctx context.Context, reply *model.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepo) GetByID(ctx context.Context, id string) (*model.Reply, error) {
	var reply model.Reply
	err := r.db.WithContext(ctx).
		Where("reply_id = ?", id).
		First(&reply).Error
	if err != nil {
		return nil, err
	}
	return &reply, nil
}

// ListByTopic 按时间正序返回主题下全部回复（讨论顺序）
func (r *replyRepo) ListByTopic(ctx context.Context, topicID string) ([]model.Reply, error) {
	var replies []model.Reply
	err := r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

func (r *replyRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("reply_id = ?", id).
		Delete(&model.Reply{}).Error
}

// DeleteByTopic 删除主题下全部回复（级联删除，需在事务内调用）
func (r *replyRepo) DeleteByTopic(ctx context.Context, topicID string) error {
	return r.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Delete(&model.Reply{}).Error
}
