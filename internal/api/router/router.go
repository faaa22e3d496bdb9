package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cheivoy/battle-system/config"
	"github.com/cheivoy/battle-system/internal/api/handler"
	"github.com/cheivoy/battle-system/internal/api/middleware"
	"github.com/cheivoy/battle-system/pkg/jwt"
	"github.com/cheivoy/battle-system/pkg/redis"
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
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（Discord OAuth，无需认证）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 30, time.Minute))
		{
			auth.GET("/discord", h.Auth.Login)
			auth.GET("/discord/callback", h.Auth.Callback)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 用户模块
			user := authorized.Group("/user")
			{
				user.POST("/setup", h.User.Setup)
				user.POST("/change-job", h.User.ChangeJob)
				user.POST("/change-id", h.User.ChangeGameID)
			}

			// 帮战模块
			battle := authorized.Group("/battle")
			{
				battle.GET("/current", h.Battle.Current)
				battle.GET("/list", h.Battle.List)
				battle.POST("/open", middleware.AdminAuth(), h.Battle.Open)
				battle.POST("/close", middleware.AdminAuth(), h.Battle.Close)
			}

			// 报名模块
			reg := authorized.Group("/registration")
			{
				reg.POST("/register", h.Registration.Register)
				reg.POST("/cancel", h.Registration.Cancel)
				reg.POST("/proxy", h.Registration.Proxy)
				reg.GET("/status", h.Registration.Status)
				reg.GET("/list", middleware.AdminAuth(), h.Registration.List)
			}

			// 阵型模块
			formation := authorized.Group("/formation")
			{
				formation.GET("/get", h.Formation.Get)
				formation.POST("/save", middleware.AdminAuth(), h.Formation.Save)
				formation.POST("/publish", middleware.AdminAuth(), h.Formation.Publish)
				formation.POST("/confirm", middleware.AdminAuth(), h.Formation.Confirm)
			}

			// 请假模块
			leave := authorized.Group("/leave")
			{
				leave.POST("/submit", h.Leave.Submit)
				leave.GET("/my", h.Leave.MyLeaves)
				leave.POST("/review", middleware.AdminAuth(), h.Leave.Review)
				leave.GET("/pending", middleware.AdminAuth(), h.Leave.ListPending)
			}

			// 出勤模块
			authorized.GET("/attendance/summary", h.Attendance.Summary)

			// 成员管理（管理员）
			members := authorized.Group("/members", middleware.AdminAuth())
			{
				members.GET("/list", h.User.ListMembers)
				members.POST("/toggle-leave", h.User.ToggleLeave)
				members.POST("/toggle-admin", h.User.ToggleAdmin)
				members.POST("/delete", h.User.DeleteMember)
			}

			// 统计与日志（管理员）
			authorized.GET("/stats", middleware.AdminAuth(), h.User.Stats)
			authorized.GET("/change-logs", middleware.AdminAuth(), h.ChangeLog.List)

			// 导出
			authorized.GET("/export/attendance", middleware.AdminAuth(), h.Export.Attendance)
			authorized.GET("/export/calendar", h.Export.Calendar)
		}
	}

	return r
}
