package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"connected/backend/config"
	"connected/backend/internal/api/handler"
	"connected/backend/internal/api/middleware"
	"connected/backend/pkg/jwt"
	"connected/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

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
			auth.POST("/login", h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 管理端（仅 admin）
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth("admin"))
			{
				// 仪表盘
				admin.GET("/dashboard", h.Dashboard.GetDashboard)

				// 用户模块
				admin.GET("/users", h.User.ListUsers)
				admin.POST("/users", h.User.CreateUser)

				// 班级与科目模块
				admin.GET("/classes", h.Class.ListClasses)
				admin.GET("/subjects", h.Class.ListSubjects)
				admin.GET("/teachers", h.Class.ListTeachers)
				admin.GET("/students", h.Class.ListStudents)
				admin.GET("/classes/:class_id/teachers", h.Class.GetClassTeachers)
				admin.GET("/classes/:class_id/students", h.Class.GetClassStudents)
				admin.POST("/assign-students", h.Class.AssignStudents)
				admin.POST("/assign-teachers", h.Class.AssignTeachers)

				// 课表模块
				admin.GET("/timetable/:class_id", h.Timetable.GetClassTimetable)
				admin.GET("/timetable/conflicts/:class_id", h.Timetable.GetClassConflicts)
				admin.POST("/timetable/slot", h.Timetable.CreateSlot)
				admin.PUT("/timetable/slot/:slot_id", h.Timetable.UpdateSlot)
				admin.DELETE("/timetable/slot/:slot_id", h.Timetable.DeleteSlot)

				// 导出模块
				admin.GET("/export/timetable/:class_id", h.Export.ExportTimetableXLSX)
				admin.GET("/export/timetable/:class_id/ics", h.Export.ExportTimetableICS)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
