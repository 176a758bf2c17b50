package router

import (
	"log/slog"
	"time"

	"restoadmin/api"
	"restoadmin/config"
	_ "restoadmin/docs"
	"restoadmin/middleware"
	"restoadmin/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services 路由依赖的服务
type Services struct {
	Backend   *service.BackendClient
	Editor    *service.EditorService
	Dashboard *service.Dashboard
	Tracker   *service.OrderTracker
	Logger    *slog.Logger
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, svc Services) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	if gin.Mode() == gin.ReleaseMode {
		r.Use(middleware.RequestLogger(svc.Logger))
	} else {
		r.Use(gin.Logger())
	}

	// CORS 中间件
	r.Use(CORSMiddleware())

	loginURL := cfg.Backend.LoginURL

	admin := r.Group("/admin")
	admin.Use(middleware.BearerCredential())
	{
		editorHandler := api.NewEditorHandler(svc.Editor, loginURL)
		admin.POST("/editors", editorHandler.Open)
		admin.GET("/editors/:id", editorHandler.Get)
		admin.POST("/editors/:id/add", editorHandler.Add)
		admin.POST("/editors/:id/remove", editorHandler.Remove)
		admin.POST("/editors/:id/apply", middleware.RateLimit(cfg.Editor.ApplyRateLimit, time.Minute), editorHandler.Apply)
		admin.DELETE("/editors/:id", editorHandler.Cancel)
		admin.GET("/parents/:kind", editorHandler.ListParents)

		// 仪表盘
		dashboardHandler := api.NewDashboardHandler(svc.Dashboard, svc.Backend, cfg.Dashboard.DefaultPreset, loginURL)
		admin.GET("/dashboard", dashboardHandler.Refresh)
		admin.GET("/dashboard/snapshot", middleware.RequireCredential(loginURL), dashboardHandler.Snapshot)
		admin.GET("/dashboard/export", dashboardHandler.Export)

		// 订单看板
		trackerHandler := api.NewTrackerHandler(svc.Tracker)
		tracked := admin.Group("/tracker", middleware.RequireCredential(loginURL))
		tracked.GET("", trackerHandler.Get)
		tracked.POST("/refresh", trackerHandler.Refresh)
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
