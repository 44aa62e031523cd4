package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kumar4425/Employee-Management-system/config"
	"github.com/kumar4425/Employee-Management-system/internal/api/handler"
	"github.com/kumar4425/Employee-Management-system/internal/api/middleware"
)

// importBodyLimit 导入接口允许的最大请求体（8MB，Excel 文件）
const importBodyLimit = 8 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 员工模块
		employees := v1.Group("/employees")
		{
			employees.GET("", h.Employee.ListEmployees)
			employees.GET("/:id", h.Employee.GetEmployee)
			employees.POST("", h.Employee.CreateEmployee)
			employees.PUT("/:id", h.Employee.UpdateEmployee)
			employees.DELETE("/:id", h.Employee.DeleteEmployee)
			employees.POST("/import", middleware.BodyLimit(importBodyLimit), h.Employee.ImportEmployees)
		}

		// 部门模块
		departments := v1.Group("/departments")
		{
			departments.GET("", h.Department.ListDepartments)
			departments.POST("", h.Department.CreateDepartment)
			departments.DELETE("/:id", h.Department.DeleteDepartment)
		}

		// 导出模块
		export := v1.Group("/export")
		{
			export.GET("/employees", h.Export.ExportEmployees)
		}
	}

	return r
}
