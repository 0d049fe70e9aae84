package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"course-portal/backend/config"
	"course-portal/backend/internal/api/handler"
	"course-portal/backend/internal/api/middleware"
	"course-portal/backend/pkg/redis"
	"course-portal/backend/pkg/response"
	"course-portal/backend/pkg/session"
)

// 登录接口限流：每 IP 每分钟最多 10 次尝试
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, sessionMgr *session.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// 已知路径上的错误方法统一返回 405
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, loginRateLimit, loginRateWindow), h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.SessionAuth(sessionMgr, cfg.Session.Cookie.Name))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 学生管理模块（管理员）
			students := authorized.Group("/students")
			students.Use(middleware.AdminOnly())
			{
				students.GET("", h.Student.ListStudents)
				students.GET("/:id", h.Student.GetStudent)
				students.POST("", h.Student.CreateStudent)
				students.PUT("/:id", h.Student.UpdateStudent)
				students.DELETE("/:id", h.Student.DeleteStudent)
			}

			// 作业模块
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", h.Assignment.ListAssignments)
				assignments.GET("/:id", h.Assignment.GetAssignment)
				assignments.POST("", middleware.AdminOnly(), h.Assignment.CreateAssignment)
				assignments.PUT("/:id", middleware.AdminOnly(), h.Assignment.UpdateAssignment)
				assignments.DELETE("/:id", middleware.AdminOnly(), h.Assignment.DeleteAssignment)
				assignments.GET("/:id/comments", h.Assignment.ListComments)
				assignments.POST("/:id/comments", h.Assignment.CreateComment)
			}

			// 讨论区模块（主题 + 回复，登录即可参与）
			topics := authorized.Group("/topics")
			{
				topics.GET("", h.Discussion.ListTopics)
				topics.GET("/:id", h.Discussion.GetTopic)
				topics.POST("", h.Discussion.CreateTopic)
				topics.PUT("/:id", h.Discussion.UpdateTopic)
				topics.DELETE("/:id", h.Discussion.DeleteTopic)
				topics.GET("/:id/replies", h.Discussion.ListReplies)
				topics.POST("/:id/replies", h.Discussion.CreateReply)
			}
			authorized.DELETE("/replies/:id", h.Discussion.DeleteReply)

			// 课程资源模块
			resources := authorized.Group("/resources")
			{
				resources.GET("", h.Resource.ListResources)
				resources.GET("/:id", h.Resource.GetResource)
				resources.POST("", middleware.AdminOnly(), h.Resource.CreateResource)
				resources.PUT("/:id", middleware.AdminOnly(), h.Resource.UpdateResource)
				resources.DELETE("/:id", middleware.AdminOnly(), h.Resource.DeleteResource)
				resources.GET("/:id/comments", h.Resource.ListComments)
				resources.POST("/:id/comments", h.Resource.CreateComment)
			}

			// 周计划模块
			weeks := authorized.Group("/weeks")
			{
				weeks.GET("", h.Week.ListWeeks)
				weeks.GET("/:id", h.Week.GetWeek)
				weeks.POST("", middleware.AdminOnly(), h.Week.CreateWeek)
				weeks.PUT("/:id", middleware.AdminOnly(), h.Week.UpdateWeek)
				weeks.DELETE("/:id", middleware.AdminOnly(), h.Week.DeleteWeek)
				weeks.GET("/:id/comments", h.Week.ListComments)
				weeks.POST("/:id/comments", h.Week.CreateComment)
			}

			// 评论按 ID 删除（任意父级）
			authorized.DELETE("/comments/:id", h.Comment.DeleteComment)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/students", middleware.AdminOnly(), h.Export.ExportStudents)
				export.GET("/weeks.ics", h.Export.ExportWeeksICS)
			}
		}
	}

	// ── 静态前端 ──
	if cfg.Server.WebDir != "" {
		r.Static("/assets", cfg.Server.WebDir+"/assets")
		r.StaticFile("/", cfg.Server.WebDir+"/index.html")
		r.StaticFile("/index.html", cfg.Server.WebDir+"/index.html")
		r.StaticFile("/login.html", cfg.Server.WebDir+"/login.html")
		r.StaticFile("/register.html", cfg.Server.WebDir+"/register.html")
		r.StaticFile("/admin.html", cfg.Server.WebDir+"/admin.html")
		r.StaticFile("/assignments.html", cfg.Server.WebDir+"/assignments.html")
		r.StaticFile("/discussion.html", cfg.Server.WebDir+"/discussion.html")
		r.StaticFile("/topic.html", cfg.Server.WebDir+"/topic.html")
		r.StaticFile("/resources.html", cfg.Server.WebDir+"/resources.html")
		r.StaticFile("/weeks.html", cfg.Server.WebDir+"/weeks.html")
	}

	return r
}
