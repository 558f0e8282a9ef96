package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/centenniallife/wellness-backend/internal/handlers"
  "github.com/centenniallife/wellness-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler              *handlers.AuthHandler
  AuthMiddleware           *middleware.AuthMiddleware
  RateLimiter              *middleware.RateLimiter
  UserHandler              *handlers.UserHandler
  HealthHandler            *handlers.HealthHandler
  ChecklistHandler         *handlers.ChecklistHandler
  AIHandler                *handlers.AIHandler
  RecommendationHandler    *handlers.RecommendationHandler
  CommunityHandler         *handlers.CommunityHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  router.Use(cfg.RateLimiter.Limit())

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)
  router.GET("/checklist/catalog", cfg.ChecklistHandler.Catalog)

// ===============
// || Protected ||
// ===============
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  protected.POST("/refresh", cfg.AuthHandler.Refresh)
  protected.POST("/logout", cfg.AuthHandler.Logout)
  // User
  protected.GET("/user", cfg.UserHandler.GetMe)
  protected.GET("/profile", cfg.UserHandler.GetProfile)
  protected.PUT("/profile", cfg.UserHandler.UpsertProfile)
  // Health data
  protected.POST("/health-data", cfg.HealthHandler.Record)
  protected.GET("/health-data", cfg.HealthHandler.List)
  protected.GET("/health-data/latest", cfg.HealthHandler.Latest)
  protected.GET("/health-data/stats", cfg.HealthHandler.Stats)
  protected.DELETE("/health-data/:id", cfg.HealthHandler.Delete)
  // Checklist
  protected.GET("/checklist", cfg.ChecklistHandler.Get)
  protected.POST("/checklist", cfg.ChecklistHandler.Upsert)
  protected.DELETE("/checklist", cfg.ChecklistHandler.Delete)
  protected.GET("/checklist/stats", cfg.ChecklistHandler.Stats)
  // AI
  protected.POST("/ai/insights", cfg.AIHandler.Insights)
  // Recommendations
  protected.GET("/recommendations", cfg.RecommendationHandler.List)
  protected.POST("/recommendations/generate", cfg.RecommendationHandler.Generate)
  protected.PATCH("/recommendations/:id/read", cfg.RecommendationHandler.MarkRead)
  // Community
  protected.GET("/community/posts", cfg.CommunityHandler.ListPosts)
  protected.POST("/community/posts", cfg.CommunityHandler.CreatePost)
  protected.GET("/community/posts/:id", cfg.CommunityHandler.GetPost)
  protected.POST("/community/posts/:id/like", cfg.CommunityHandler.ToggleLike)
  protected.GET("/community/posts/:id/comments", cfg.CommunityHandler.ListComments)
  protected.POST("/community/posts/:id/comments", cfg.CommunityHandler.AddComment)

  return router
}
