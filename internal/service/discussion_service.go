package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/model"
	"course-portal/backend/internal/repository"
)

// ── 讨论区模块业务错误 ──

var (
	ErrTopicNotFound = errors.New("主题不存在")
	ErrReplyNotFound = errors.New("回复不存在")
)

// 列表排序允许列表（防止 ORDER BY 注入）
var topicSortFields = map[string]bool{
	"subject":    true,
	"author":     true,
	"created_at": true,
}

// DiscussionService 讨论区业务接口（主题 + 回复）
type DiscussionService interface {
	ListTopics(ctx context.Context, req *dto.ListRequest) ([]dto.TopicResponse, error)
	GetTopic(ctx context.Context, id string) (*dto.TopicResponse, error)
	CreateTopic(ctx context.Context, req *dto.CreateTopicRequest, author string) (*dto.TopicResponse, error)
	UpdateTopic(ctx context.Context, id string, req *dto.UpdateTopicRequest) (*dto.TopicResponse, error)
	DeleteTopic(ctx context.Context, id string) error

	ListReplies(ctx context.Context, topicID string) ([]dto.ReplyResponse, error)
	CreateReply(ctx context.Context, topicID string, req *dto.CreateReplyRequest, author string) (*dto.ReplyResponse, error)
	DeleteReply(ctx context.Context, id string) error
}

type discussionService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDiscussionService 创建 DiscussionService 实例
func NewDiscussionService(repo *repository.Repository, logger *zap.Logger) DiscussionService {
	return &discussionService{repo: repo, logger: logger}
}

// ────────────────────── ListTopics ──────────────────────

func (s *discussionService) ListTopics(ctx context.Context, req *dto.ListRequest) ([]dto.TopicResponse, error) {
	sortField, order := resolveSort(req.Sort, req.Order, topicSortFields, "created_at", "DESC")

	topics, err := s.repo.Topic.List(ctx, strings.TrimSpace(req.Search), sortField, order)
	if err != nil {
		s.logger.Error("列出主题失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TopicResponse, 0, len(topics))
	for i := range topics {
		result = append(result, *toTopicResponse(&topics[i]))
	}
	return result, nil
}

// ────────────────────── GetTopic ──────────────────────

func (s *discussionService) GetTopic(ctx context.Context, id string) (*dto.TopicResponse, error) {
	topic, err := s.getTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	return toTopicResponse(topic), nil
}

// ────────────────────── CreateTopic ──────────────────────

func (s *discussionService) CreateTopic(ctx context.Context, req *dto.CreateTopicRequest, author string) (*dto.TopicResponse, error) {
	topic := &model.Topic{
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Author:  author,
	}

	if err := s.repo.Topic.Create(ctx, topic); err != nil {
		s.logger.Error("创建主题失败", zap.Error(err))
		return nil, err
	}

	return toTopicResponse(topic), nil
}

// ────────────────────── UpdateTopic ──────────────────────

func (s *discussionService) UpdateTopic(ctx context.Context, id string, req *dto.UpdateTopicRequest) (*dto.TopicResponse, error) {
	if req.Subject == nil && req.Message == nil {
		return nil, ErrNoFields
	}

	topic, err := s.getTopic(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Subject != nil {
		topic.Subject = strings.TrimSpace(*req.Subject)
	}
	if req.Message != nil {
		topic.Message = strings.TrimSpace(*req.Message)
	}

	if err := s.repo.Topic.Update(ctx, topic); err != nil {
		s.logger.Error("更新主题失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toTopicResponse(topic), nil
}

// ────────────────────── DeleteTopic ──────────────────────

// DeleteTopic 删除主题及其全部回复
// 先删子后删父，整体在一个事务内，任一步失败即回滚
func (s *discussionService) DeleteTopic(ctx context.Context, id string) error {
	if _, err := s.getTopic(ctx, id); err != nil {
		return err
	}

	tx := s.repo.BeginTx()
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Reply.DeleteByTopic(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除主题回复失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := txRepo.Topic.Delete(ctx, id); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除主题失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}

	return nil
}

// ────────────────────── ListReplies ──────────────────────

// ListReplies 按时间正序返回主题下全部回复
func (s *discussionService) ListReplies(ctx context.Context, topicID string) ([]dto.ReplyResponse, error) {
	replies, err := s.repo.Reply.ListByTopic(ctx, topicID)
	if err != nil {
		s.logger.Error("列出回复失败", zap.String("topic_id", topicID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ReplyResponse, 0, len(replies))
	for i := range replies {
		result = append(result, *toReplyResponse(&replies[i]))
	}
	return result, nil
}

// ────────────────────── CreateReply ──────────────────────

// CreateReply 创建回复，写入前先确认父主题存在
func (s *discussionService) CreateReply(ctx context.Context, topicID string, req *dto.CreateReplyRequest, author string) (*dto.ReplyResponse, error) {
	if _, err := s.getTopic(ctx, topicID); err != nil {
		return nil, err
	}

	reply := &model.Reply{
		TopicID: topicID,
		Author:  author,
		Text:    strings.TrimSpace(req.Text),
	}

	if err := s.repo.Reply.Create(ctx, reply); err != nil {
		s.logger.Error("创建回复失败", zap.String("topic_id", topicID), zap.Error(err))
		return nil, err
	}

	return toReplyResponse(reply), nil
}

// ────────────────────── DeleteReply ──────────────────────

func (s *discussionService) DeleteReply(ctx context.Context, id string) error {
	if _, err := s.repo.Reply.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReplyNotFound
		}
		s.logger.Error("查询回复失败", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Reply.Delete(ctx, id); err != nil {
		s.logger.Error("删除回复失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

func (s *discussionService) getTopic(ctx context.Context, id string) (*model.Topic, error) {
	topic, err := s.repo.Topic.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTopicNotFound
		}
		s.logger.Error("查询主题失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return topic, nil
}

func toTopicResponse(topic *model.Topic) *dto.TopicResponse {
	return &dto.TopicResponse{
		ID:        topic.TopicID,
		Subject:   topic.Subject,
		Message:   topic.Message,
		Author:    topic.Author,
		CreatedAt: topic.CreatedAt.Format(timestampLayout),
	}
}

func toReplyResponse(reply *model.Reply) *dto.ReplyResponse {
	return &dto.ReplyResponse{
		ID:        reply.ReplyID,
		TopicID:   reply.TopicID,
		Author:    reply.Author,
		Text:      reply.Text,
		CreatedAt: reply.CreatedAt.Format(timestampLayout),
	}
}
