package main

import (
  "fmt"
  "os"
  "time"
  "github.com/redis/go-redis/v9"
  "github.com/centenniallife/wellness-backend/internal/logger"
  "github.com/centenniallife/wellness-backend/internal/utils"
  "github.com/centenniallife/wellness-backend/internal/db"
  "github.com/centenniallife/wellness-backend/internal/repos"
  "github.com/centenniallife/wellness-backend/internal/services"
  "github.com/centenniallife/wellness-backend/internal/handlers"
  "github.com/centenniallife/wellness-backend/internal/middleware"
  "github.com/centenniallife/wellness-backend/internal/server"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  rateLimitPerMinute := utils.GetEnvAsInt("RATE_LIMIT_PER_MINUTE", 100, log)
  redisAddr := os.Getenv("REDIS_ADDR")

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis (optional, shared rate limit counters)
  var redisClient *redis.Client
  if redisAddr != "" {
    redisClient = redis.NewClient(&redis.Options{
      Addr:     redisAddr,
      Password: os.Getenv("REDIS_PASSWORD"),
    })
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  userProfileRepo := repos.NewUserProfileRepo(thePG, log)
  healthRecordRepo := repos.NewHealthRecordRepo(thePG, log)
  dailyChecklistRepo := repos.NewDailyChecklistRepo(thePG, log)
  recommendationRepo := repos.NewRecommendationRepo(thePG, log)
  communityPostRepo := repos.NewCommunityPostRepo(thePG, log)
  communityCommentRepo := repos.NewCommunityCommentRepo(thePG, log)
  communityLikeRepo := repos.NewCommunityLikeRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  aiClient, err := services.NewAIClient(log)
  if err != nil {
    log.Warn("Could not init AIClient, AI features will serve fallbacks", "error", err)
    aiClient = nil
  }
  authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo, userProfileRepo)
  healthService := services.NewHealthService(thePG, log, healthRecordRepo)
  checklistService := services.NewChecklistService(thePG, log, dailyChecklistRepo)
  insightService := services.NewInsightService(thePG, log, dailyChecklistRepo, healthRecordRepo, userProfileRepo, aiClient)
  recommendationService := services.NewRecommendationService(thePG, log, recommendationRepo, dailyChecklistRepo, healthRecordRepo, aiClient)
  communityService := services.NewCommunityService(thePG, log, communityPostRepo, communityCommentRepo, communityLikeRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  healthHandler := handlers.NewHealthHandler(healthService)
  checklistHandler := handlers.NewChecklistHandler(checklistService)
  aiHandler := handlers.NewAIHandler(insightService)
  recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
  communityHandler := handlers.NewCommunityHandler(communityService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)
  rateLimiter := middleware.NewRateLimiter(log, rateLimitPerMinute, time.Minute, redisClient)
  defer rateLimiter.Stop()

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:           authHandler,
    AuthMiddleware:        authMiddleware,
    RateLimiter:           rateLimiter,
    UserHandler:           userHandler,
    HealthHandler:         healthHandler,
    ChecklistHandler:      checklistHandler,
    AIHandler:             aiHandler,
    RecommendationHandler: recommendationHandler,
    CommunityHandler:      communityHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
