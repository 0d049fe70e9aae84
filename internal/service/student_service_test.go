package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/model"
	"course-portal/backend/internal/repository"
)

// ── 测试辅助 ──

func setupTestStudentService() (StudentService, *mockUserRepo) {
	userRepo := newMockUserRepo()
	repo := &repository.Repository{
		User:       userRepo,
		Assignment: newMockAssignmentRepo(),
		Topic:      newMockTopicRepo(),
		Reply:      newMockReplyRepo(),
		Resource:   newMockResourceRepo(),
		Week:       newMockWeekRepo(),
		Comment:    newMockCommentRepo(),
	}
	return NewStudentService(repo, zap.NewNop()), userRepo
}

func strptr(s string) *string { return &s }

// ── Create 测试 ──

func TestStudentService_Create_Success(t *testing.T) {
	svc, userRepo := setupTestStudentService()

	result, err := svc.Create(context.Background(), &dto.CreateStudentRequest{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "long-enough-pw",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Role != model.RoleStudent {
		t.Errorf("新建账号应为学生角色，实际=%s", result.Role)
	}

	stored, err := userRepo.GetByID(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("创建后应能查到学生: %v", err)
	}
	if stored.PasswordHash == "long-enough-pw" {
		t.Error("密码不得以明文存储")
	}
}

func TestStudentService_Create_DuplicateEmail(t *testing.T) {
	svc, _ := setupTestStudentService()

	_, err := svc.Create(context.Background(), &dto.CreateStudentRequest{
		Name:     "张三",
		Email:    "same@example.com",
		Password: "long-enough-pw",
	})
	if err != nil {
		t.Fatalf("首次创建应成功: %v", err)
	}

	_, err = svc.Create(context.Background(), &dto.CreateStudentRequest{
		Name:     "李四",
		Email:    "same@example.com",
		Password: "long-enough-pw",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

// ── List 测试 ──

func TestStudentService_List_ExcludesAdmins(t *testing.T) {
	svc, userRepo := setupTestStudentService()
	_ = userRepo.Create(context.Background(), &model.User{
		Name: "学生甲", Email: "a@example.com", PasswordHash: "x", Role: model.RoleStudent,
	})
	_ = userRepo.Create(context.Background(), &model.User{
		Name: "管理员", Email: "admin@example.com", PasswordHash: "x", Role: model.RoleAdmin,
	})

	result, err := svc.List(context.Background(), &dto.ListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("期望仅返回 1 名学生，实际=%d", len(result))
	}
	if result[0].Email != "a@example.com" {
		t.Errorf("管理员账号不应出现在学生列表中")
	}
}

// 不在允许列表内的排序字段必须回落到默认值
func TestStudentService_List_SortAllowList(t *testing.T) {
	svc, userRepo := setupTestStudentService()

	_, err := svc.List(context.Background(), &dto.ListRequest{
		Sort:  "password_hash; DROP TABLE users",
		Order: "desc",
	})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if userRepo.lastSortField != "name" {
		t.Errorf("非法排序字段应回落到 name，实际=%s", userRepo.lastSortField)
	}
	if userRepo.lastOrder != "DESC" {
		t.Errorf("合法的 order 应保留，实际=%s", userRepo.lastOrder)
	}
}

func TestStudentService_List_DefaultSort(t *testing.T) {
	svc, userRepo := setupTestStudentService()

	if _, err := svc.List(context.Background(), &dto.ListRequest{}); err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if userRepo.lastSortField != "name" || userRepo.lastOrder != "ASC" {
		t.Errorf("默认排序应为 name ASC，实际=%s %s", userRepo.lastSortField, userRepo.lastOrder)
	}
}

// ── GetByID 测试 ──

func TestStudentService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestStudentService()

	_, err := svc.GetByID(context.Background(), "nonexistent")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

// 管理员账号对学生管理模块不可见
func TestStudentService_GetByID_HidesAdmin(t *testing.T) {
	svc, userRepo := setupTestStudentService()
	_ = userRepo.Create(context.Background(), &model.User{
		UserID: "admin-001", Name: "管理员", Email: "admin@example.com",
		PasswordHash: "x", Role: model.RoleAdmin,
	})

	_, err := svc.GetByID(context.Background(), "admin-001")
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("按学生 ID 查询管理员应视为不存在，实际: %v", err)
	}
}

// ── Update 测试 ──

func TestStudentService_Update_PartialPreservesOthers(t *testing.T) {
	svc, _ := setupTestStudentService()

	created, err := svc.Create(context.Background(), &dto.CreateStudentRequest{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "long-enough-pw",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}

	result, err := svc.Update(context.Background(), created.ID, &dto.UpdateStudentRequest{
		Name: strptr("张三丰"),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "张三丰" {
		t.Errorf("期望Name=张三丰，实际=%s", result.Name)
	}
	if result.Email != "zhangsan@example.com" {
		t.Errorf("未提交的字段不应被修改，实际Email=%s", result.Email)
	}
}

func TestStudentService_Update_NoFields(t *testing.T) {
	svc, _ := setupTestStudentService()

	created, _ := svc.Create(context.Background(), &dto.CreateStudentRequest{
		Name:     "张三",
		Email:    "zhangsan@example.com",
		Password: "long-enough-pw",
	})

	_, err := svc.Update(context.Background(), created.ID, &dto.UpdateStudentRequest{})
	if !errors.Is(err, ErrNoFields) {
		t.Errorf("期望 ErrNoFields，实际: %v", err)
	}
}

func TestStudentService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestStudentService()

	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateStudentRequest{
		Name: strptr("新名字"),
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestStudentService_Update_EmailConflict(t *testing.T) {
	svc, _ := setupTestStudentService()

	_, _ = svc.Create(context.Background(), &dto.CreateStudentRequest{
		Name: "张三", Email: "zhangsan@example.com", Password: "long-enough-pw",
	})
	other, _ := svc.Create(context.Background(), &dto.CreateStudentRequest{
		Name: "李四", Email: "lisi@example.com", Password: "long-enough-pw",
	})

	_, err := svc.Update(context.Background(), other.ID, &dto.UpdateStudentRequest{
		Email: strptr("zhangsan@example.com"),
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}

	// 提交自己当前的邮箱不算冲突
	_, err = svc.Update(context.Background(), other.ID, &dto.UpdateStudentRequest{
		Email: strptr("lisi@example.com"),
	})
	if err != nil {
		t.Errorf("提交自身邮箱不应报冲突: %v", err)
	}
}

// ── Delete 测试 ──

func TestStudentService_Delete_Success(t *testing.T) {
	svc, userRepo := setupTestStudentService()

	created, _ := svc.Create(context.Background(), &dto.CreateStudentRequest{
		Name: "张三", Email: "zhangsan@example.com", Password: "long-enough-pw",
	})

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := userRepo.GetByID(context.Background(), created.ID); err == nil {
		t.Error("删除后不应再能查到学生")
	}
}

func TestStudentService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestStudentService()

	if err := svc.Delete(context.Background(), "nonexistent"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}
