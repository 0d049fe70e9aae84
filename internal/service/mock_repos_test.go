package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"course-portal/backend/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int

	// 记录最近一次列表调用的排序参数，供允许列表测试断言
	lastSortField string
	lastOrder     string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) EmailExists(_ context.Context, email string, excludeID string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email && u.UserID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) ListStudents(_ context.Context, search, sortField, order string) ([]model.User, error) {
	m.lastSortField = sortField
	m.lastOrder = order

	var result []model.User
	for _, u := range m.users {
		if u.Role != model.RoleStudent {
			continue
		}
		if search != "" && !containsFold(u.Name, search) && !containsFold(u.Email, search) {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	seq         int

	lastSortField string
	lastOrder     string
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if assignment.AssignmentID == "" {
		m.seq++
		assignment.AssignmentID = fmt.Sprintf("asg-%03d", m.seq)
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now()
	}
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) List(_ context.Context, search, sortField, order string) ([]model.Assignment, error) {
	m.lastSortField = sortField
	m.lastOrder = order

	var result []model.Assignment
	for _, a := range m.assignments {
		if search != "" && !containsFold(a.Title, search) && !containsFold(a.Description, search) {
			continue
		}
		result = append(result, *a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AssignmentID < result[j].AssignmentID })
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	m.assignments[assignment.AssignmentID] = assignment
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	delete(m.assignments, id)
	return nil
}

// ── Mock TopicRepository ──

type mockTopicRepo struct {
	topics map[string]*model.Topic
	seq    int

	lastSortField string
	lastOrder     string
}

func newMockTopicRepo() *mockTopicRepo {
	return &mockTopicRepo{topics: make(map[string]*model.Topic)}
}

func (m *mockTopicRepo) Create(_ context.Context, topic *model.Topic) error {
	if topic.TopicID == "" {
		m.seq++
		topic.TopicID = fmt.Sprintf("topic-%03d", m.seq)
	}
	if topic.CreatedAt.IsZero() {
		topic.CreatedAt = time.Now()
	}
	m.topics[topic.TopicID] = topic
	return nil
}

func (m *mockTopicRepo) GetByID(_ context.Context, id string) (*model.Topic, error) {
	if tp, ok := m.topics[id]; ok {
		return tp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTopicRepo) List(_ context.Context, search, sortField, order string) ([]model.Topic, error) {
	m.lastSortField = sortField
	m.lastOrder = order

	var result []model.Topic
	for _, tp := range m.topics {
		if search != "" && !containsFold(tp.Subject, search) &&
			!containsFold(tp.Message, search) && !containsFold(tp.Author, search) {
			continue
		}
		result = append(result, *tp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TopicID < result[j].TopicID })
	return result, nil
}

func (m *mockTopicRepo) Update(_ context.Context, topic *model.Topic) error {
	m.topics[topic.TopicID] = topic
	return nil
}

func (m *mockTopicRepo) Delete(_ context.Context, id string) error {
	delete(m.topics, id)
	return nil
}

// ── Mock ReplyRepository ──

type mockReplyRepo struct {
	replies map[string]*model.Reply
	seq     int
}

func newMockReplyRepo() *mockReplyRepo {
	return &mockReplyRepo{replies: make(map[string]*model.Reply)}
}

func (m *mockReplyRepo) Create(_ context.Context, reply *model.Reply) error {
	if reply.ReplyID == "" {
		m.seq++
		reply.ReplyID = fmt.Sprintf("reply-%03d", m.seq)
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now()
	}
	m.replies[reply.ReplyID] = reply
	return nil
}

func (m *mockReplyRepo) GetByID(_ context.Context, id string) (*model.Reply, error) {
	if r, ok := m.replies[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReplyRepo) ListByTopic(_ context.Context, topicID string) ([]model.Reply, error) {
	var result []model.Reply
	for _, r := range m.replies {
		if r.TopicID == topicID {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockReplyRepo) Delete(_ context.Context, id string) error {
	delete(m.replies, id)
	return nil
}

func (m *mockReplyRepo) DeleteByTopic(_ context.Context, topicID string) error {
	for id, r := range m.replies {
		if r.TopicID == topicID {
			delete(m.replies, id)
		}
	}
	return nil
}

// ── Mock ResourceRepository ──

type mockResourceRepo struct {
	resources map[string]*model.Resource
	seq       int

	lastSortField string
	lastOrder     string
}

func newMockResourceRepo() *mockResourceRepo {
	return &mockResourceRepo{resources: make(map[string]*model.Resource)}
}

func (m *mockResourceRepo) Create(_ context.Context, resource *model.Resource) error {
	if resource.ResourceID == "" {
		m.seq++
		resource.ResourceID = fmt.Sprintf("res-%03d", m.seq)
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now()
	}
	m.resources[resource.ResourceID] = resource
	return nil
}

func (m *mockResourceRepo) GetByID(_ context.Context, id string) (*model.Resource, error) {
	if r, ok := m.resources[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResourceRepo) List(_ context.Context, search, sortField, order string) ([]model.Resource, error) {
	m.lastSortField = sortField
	m.lastOrder = order

	var result []model.Resource
	for _, r := range m.resources {
		if search != "" && !containsFold(r.Title, search) && !containsFold(r.Description, search) {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ResourceID < result[j].ResourceID })
	return result, nil
}

func (m *mockResourceRepo) Update(_ context.Context, resource *model.Resource) error {
	m.resources[resource.ResourceID] = resource
	return nil
}

func (m *mockResourceRepo) Delete(_ context.Context, id string) error {
	delete(m.resources, id)
	return nil
}

// ── Mock WeekRepository ──

type mockWeekRepo struct {
	weeks map[string]*model.Week
	seq   int

	lastSortField string
	lastOrder     string
}

func newMockWeekRepo() *mockWeekRepo {
	return &mockWeekRepo{weeks: make(map[string]*model.Week)}
}

func (m *mockWeekRepo) Create(_ context.Context, week *model.Week) error {
	if week.WeekID == "" {
		m.seq++
		week.WeekID = fmt.Sprintf("week-%03d", m.seq)
	}
	if week.CreatedAt.IsZero() {
		week.CreatedAt = time.Now()
	}
	m.weeks[week.WeekID] = week
	return nil
}

func (m *mockWeekRepo) GetByID(_ context.Context, id string) (*model.Week, error) {
	if w, ok := m.weeks[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeekRepo) List(_ context.Context, search, sortField, order string) ([]model.Week, error) {
	m.lastSortField = sortField
	m.lastOrder = order

	var result []model.Week
	for _, w := range m.weeks {
		if search != "" && !containsFold(w.Title, search) && !containsFold(w.Description, search) {
			continue
		}
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *mockWeekRepo) Update(_ context.Context, week *model.Week) error {
	m.weeks[week.WeekID] = week
	return nil
}

func (m *mockWeekRepo) Delete(_ context.Context, id string) error {
	delete(m.weeks, id)
	return nil
}

// ── Mock CommentRepository ──

type mockCommentRepo struct {
	comments map[string]*model.Comment
	seq      int
}

func newMockCommentRepo() *mockCommentRepo {
	return &mockCommentRepo{comments: make(map[string]*model.Comment)}
}

func (m *mockCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	if comment.CommentID == "" {
		m.seq++
		comment.CommentID = fmt.Sprintf("cmt-%03d", m.seq)
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	m.comments[comment.CommentID] = comment
	return nil
}

func (m *mockCommentRepo) GetByID(_ context.Context, id string) (*model.Comment, error) {
	if c, ok := m.comments[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCommentRepo) ListByParent(_ context.Context, parentType, parentID string) ([]model.Comment, error) {
	var result []model.Comment
	for _, c := range m.comments {
		if c.ParentType == parentType && c.ParentID == parentID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (m *mockCommentRepo) Delete(_ context.Context, id string) error {
	delete(m.comments, id)
	return nil
}

func (m *mockCommentRepo) DeleteByParent(_ context.Context, parentType, parentID string) error {
	for id, c := range m.comments {
		if c.ParentType == parentType && c.ParentID == parentID {
			delete(m.comments, id)
		}
	}
	return nil
}

// ── 辅助函数 ──

// containsFold 大小写不敏感的子串匹配（模拟 ILIKE）
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
