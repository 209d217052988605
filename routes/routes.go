package routes

import (
	"time"

	"content-admin/config"
	"content-admin/contents"
	"content-admin/handlers"
	"content-admin/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes registers the API on r. A nil rdb keeps the login rate limit in
// process memory.
func SetupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	r.Use(middleware.MetricsMiddleware())

	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	contentHandler := &handlers.ContentHandler{
		Service: contents.NewService(db, contents.Options{
			DefaultPageSize: cfg.DefaultPageSize,
			MaxPageSize:     cfg.MaxPageSize,
		}),
		Location: time.Local,
	}
	brandHandler := &handlers.BrandHandler{DB: db}
	rankHandler := &handlers.RankHandler{DB: db}

	// 10 login attempts per minute per client
	var loginLimiter middleware.Limiter = middleware.NewRateLimiter(10, time.Minute)
	if rdb != nil {
		loginLimiter = middleware.NewRedisRateLimiter(rdb, "login", 10, time.Minute)
	}

	api := r.Group("/api")
	{
		api.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)
		api.GET("/auth/me", middleware.AuthMiddleware(), authHandler.GetProfile)
	}

	// Admin panel routes (global admins and company staff)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	admin.Use(middleware.StaffMiddleware())
	{
		// Content workflow
		admin.GET("/contents", contentHandler.GetContents)
		admin.GET("/contents/new", contentHandler.NewContent)
		admin.POST("/contents/new", contentHandler.NewContent)
		admin.POST("/contents/confirm", contentHandler.ConfirmContent)
		admin.POST("/contents", contentHandler.CreateContent)
		admin.GET("/contents/:id", contentHandler.GetContent)
		admin.GET("/contents/:id/edit", contentHandler.EditContent)
		admin.POST("/contents/:id/edit", contentHandler.EditContent)
		admin.PUT("/contents/:id", contentHandler.UpdateContent)
		admin.DELETE("/contents/:id", contentHandler.DeleteContent)

		// Association choices
		admin.GET("/brands", brandHandler.GetBrands)
		admin.POST("/brands", brandHandler.CreateBrand)
		admin.GET("/ranks", rankHandler.GetRanks)
		admin.POST("/ranks", rankHandler.CreateRank)
	}

	// Global admin only
	global := api.Group("/admin")
	global.Use(middleware.AuthMiddleware())
	global.Use(middleware.AdminMiddleware())
	{
		global.DELETE("/contents/:id/purge", contentHandler.PurgeContent)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
