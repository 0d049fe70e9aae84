package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"course-portal/backend/config"
	"course-portal/backend/internal/dto"
	"course-portal/backend/internal/service"
	"course-portal/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult      *dto.LoginResponse
	loginToken       string
	loginErr         error
	logoutErr        error
	registerResult   *dto.UserResponse
	registerErr      error
	getCurrentResult *dto.UserResponse
	getCurrentErr    error
	changePassErr    error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResponse, string, error) {
	return m.loginResult, m.loginToken, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ string) error {
	return m.logoutErr
}
func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.UserResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) GetCurrentUser(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getCurrentResult, m.getCurrentErr
}
func (m *mockAuthService) ChangePassword(_ context.Context, _ string, _ *dto.ChangePasswordRequest) error {
	return m.changePassErr
}

// ── Mock StudentService ──

type mockStudentService struct {
	listResult   []dto.UserResponse
	listErr      error
	getResult    *dto.UserResponse
	getErr       error
	createResult *dto.UserResponse
	createErr    error
	updateResult *dto.UserResponse
	updateErr    error
	deleteErr    error
}

func (m *mockStudentService) List(_ context.Context, _ *dto.ListRequest) ([]dto.UserResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockStudentService) GetByID(_ context.Context, _ string) (*dto.UserResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockStudentService) Create(_ context.Context, _ *dto.CreateStudentRequest) (*dto.UserResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockStudentService) Update(_ context.Context, _ string, _ *dto.UpdateStudentRequest) (*dto.UserResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockStudentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock AssignmentService ──

type mockAssignmentService struct {
	listResult   []dto.AssignmentResponse
	listErr      error
	getResult    *dto.AssignmentResponse
	getErr       error
	createResult *dto.AssignmentResponse
	createErr    error
	updateResult *dto.AssignmentResponse
	updateErr    error
	deleteErr    error
}

func (m *mockAssignmentService) List(_ context.Context, _ *dto.ListRequest) ([]dto.AssignmentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockAssignmentService) GetByID(_ context.Context, _ string) (*dto.AssignmentResponse, error) {
	return m.getResult, m.getErr
}
func (m *mockAssignmentService) Create(_ context.Context, _ *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	return m.createResult, m.createErr
}
func (m *mockAssignmentService) Update(_ context.Context, _ string, _ *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	return m.updateResult, m.updateErr
}
func (m *mockAssignmentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock CommentService ──

type mockCommentService struct {
	listResult   []dto.CommentResponse
	listErr      error
	createResult *dto.CommentResponse
	createErr    error
	deleteErr    error

	createdAuthor string
}

func (m *mockCommentService) ListByParent(_ context.Context, _, _ string) ([]dto.CommentResponse, error) {
	return m.listResult, m.listErr
}
func (m *mockCommentService) Create(_ context.Context, _, _ string, _ *dto.CreateCommentRequest, author string) (*dto.CommentResponse, error) {
	m.createdAuthor = author
	return m.createResult, m.createErr
}
func (m *mockCommentService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportStudents(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockExportService) ExportWeeksICS(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func testSessionConfig() *config.SessionConfig {
	return &config.SessionConfig{
		TTL: 24 * time.Hour,
		Cookie: config.CookieConfig{
			Name:     "portal_session",
			SameSite: "Lax",
		},
	}
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// withAuth 模拟会话中间件注入的上下文
func withAuth(name, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", "test-user-id")
		c.Set("user_name", name)
		c.Set("role", role)
		c.Next()
	}
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.LoginResponse{
			User:     dto.UserResponse{ID: "u1", Name: "张三", Email: "a@example.com", Role: "student"},
			Redirect: "/",
		},
		loginToken: "test-session-token",
	}
	h := NewAuthHandler(mock, testSessionConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "a@example.com",
		Password: "long-enough-pw",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
	resp := parseResponse(w)
	if !resp.Success {
		t.Error("期望 success=true")
	}

	// 会话 Token 应写入 HttpOnly Cookie
	found := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "portal_session" {
			found = true
			if ck.Value != "test-session-token" {
				t.Errorf("期望 Cookie 值为会话 Token，实际=%s", ck.Value)
			}
			if !ck.HttpOnly {
				t.Error("会话 Cookie 必须为 HttpOnly")
			}
		}
	}
	if !found {
		t.Error("登录成功应设置会话 Cookie")
	}

	// Token 不得出现在响应体中
	if bytes.Contains(w.Body.Bytes(), []byte("test-session-token")) {
		t.Error("会话 Token 不得出现在响应体中")
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testSessionConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials}, testSessionConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "a@example.com",
		Password: "wrong-password",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际 %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Success {
		t.Error("期望 success=false")
	}
	if resp.Message != "邮箱或密码错误" {
		t.Errorf("登录失败信息不应区分原因，实际=%s", resp.Message)
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{}, testSessionConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "some-token"})

	r := gin.New()
	r.POST("/auth/logout", h.Logout)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
	cleared := false
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "portal_session" && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("登出应使会话 Cookie 立即过期")
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{registerErr: service.ErrEmailExists}, testSessionConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/auth/register", jsonBody(dto.RegisterRequest{
		Name:     "张三",
		Email:    "taken@example.com",
		Password: "long-enough-pw",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际 %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// StudentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestStudentHandler_List_WithCount(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{
		listResult: []dto.UserResponse{
			{ID: "u1", Name: "张三"},
			{ID: "u2", Name: "李四"},
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/students", nil)

	r := gin.New()
	r.GET("/students", h.ListStudents)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Count == nil || *resp.Count != 2 {
		t.Errorf("列表响应应携带 count=2，实际=%v", resp.Count)
	}
}

func TestStudentHandler_Get_NotFound(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{getErr: service.ErrStudentNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/students/nonexistent", nil)

	r := gin.New()
	r.GET("/students/:id", h.GetStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际 %d", w.Code)
	}
}

func TestStudentHandler_Create_Conflict(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{createErr: service.ErrEmailExists})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/students", jsonBody(dto.CreateStudentRequest{
		Name:     "张三",
		Email:    "taken@example.com",
		Password: "long-enough-pw",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/students", h.CreateStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际 %d", w.Code)
	}
}

func TestStudentHandler_Create_MissingFields(t *testing.T) {
	h := NewStudentHandler(&mockStudentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/students", jsonBody(map[string]string{"name": "张三"}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/students", h.CreateStudent)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("缺少必填字段期望 400，实际 %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// AssignmentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAssignmentHandler_CreateComment_AuthorFromSession(t *testing.T) {
	commentMock := &mockCommentService{
		createResult: &dto.CommentResponse{ID: "c1", Author: "张三", Text: "这题怎么做"},
	}
	h := NewAssignmentHandler(&mockAssignmentService{}, commentMock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/asg-1/comments", jsonBody(dto.CreateCommentRequest{
		Text: "这题怎么做",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/:id/comments", withAuth("张三", "student"), h.CreateComment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("期望 201，实际 %d", w.Code)
	}
	if commentMock.createdAuthor != "张三" {
		t.Errorf("评论作者应取自会话，实际=%s", commentMock.createdAuthor)
	}
}

func TestAssignmentHandler_CreateComment_ParentMissing(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{}, &mockCommentService{
		createErr: service.ErrAssignmentNotFound,
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/assignments/nonexistent/comments", jsonBody(dto.CreateCommentRequest{
		Text: "评论",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/assignments/:id/comments", withAuth("张三", "student"), h.CreateComment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("期望 404，实际 %d", w.Code)
	}
}

func TestAssignmentHandler_Update_BadDate(t *testing.T) {
	h := NewAssignmentHandler(&mockAssignmentService{updateErr: service.ErrAssignmentDateInvalid}, &mockCommentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/assignments/asg-1", jsonBody(map[string]string{
		"due_date": "not-a-date",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.PUT("/assignments/:id", h.UpdateAssignment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际 %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestExportHandler_ExportStudents_Headers(t *testing.T) {
	h := NewExportHandler(&mockExportService{
		buf:      bytes.NewBufferString("fake-xlsx-bytes"),
		filename: "学生名单_2026-08-29.xlsx",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/export/students", nil)

	r := gin.New()
	r.GET("/export/students", h.ExportStudents)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际 %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("导出响应应携带 Content-Disposition 头")
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("期望 Excel Content-Type，实际=%s", ct)
	}
}
