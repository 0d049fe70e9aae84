package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/model"
	"course-portal/backend/internal/repository"
)

// ── 学生管理模块业务错误 ──

var (
	ErrStudentNotFound = errors.New("学生不存在")
	ErrEmailExists     = errors.New("邮箱已被占用")
	ErrNoFields        = errors.New("未提供任何待更新字段")
)

// 列表排序允许列表（防止 ORDER BY 注入）
var studentSortFields = map[string]bool{
	"name":       true,
	"email":      true,
	"created_at": true,
}

// StudentService 学生管理业务接口（管理员）
type StudentService interface {
	List(ctx context.Context, req *dto.ListRequest) ([]dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.UserResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.ListRequest) ([]dto.UserResponse, error) {
	sortField, order := resolveSort(req.Sort, req.Order, studentSortFields, "name", "ASC")

	students, err := s.repo.User.ListStudents(ctx, strings.TrimSpace(req.Search), sortField, order)
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.UserResponse, 0, len(students))
	for i := range students {
		result = append(result, *toUserResponse(&students[i]))
	}
	return result, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(student), nil
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.UserResponse, error) {
	email := strings.TrimSpace(req.Email)

	// 邮箱唯一性在写入前检查
	exists, err := s.repo.User.EmailExists(ctx, email, "")
	if err != nil {
		s.logger.Error("检查邮箱占用失败", zap.Error(err))
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	student := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleStudent,
	}

	if err := s.repo.User.Create(ctx, student); err != nil {
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}

	return toUserResponse(student), nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.UserResponse, error) {
	if req.Name == nil && req.Email == nil && req.Password == nil {
		return nil, ErrNoFields
	}

	student, err := s.getStudent(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if email != student.Email {
			// 变更邮箱时重新检查唯一性，排除自身
			exists, err := s.repo.User.EmailExists(ctx, email, student.UserID)
			if err != nil {
				s.logger.Error("检查邮箱占用失败", zap.Error(err))
				return nil, err
			}
			if exists {
				return nil, ErrEmailExists
			}
		}
		student.Email = email
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		student.PasswordHash = string(hash)
	}

	if err := s.repo.User.Update(ctx, student); err != nil {
		s.logger.Error("更新学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toUserResponse(student), nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.getStudent(ctx, id); err != nil {
		return err
	}

	if err := s.repo.User.Delete(ctx, id); err != nil {
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// getStudent 查询学生，管理员账号对本模块不可见
func (s *studentService) getStudent(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if user.Role != model.RoleStudent {
		return nil, ErrStudentNotFound
	}
	return user, nil
}
