package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"CHECKINS_COLLECTION",
		"BASELINES_COLLECTION",
		"STREAKS_COLLECTION",
		"ACHIEVEMENTS_COLLECTION",
		"SESSIONS_COLLECTION",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"REDIS_URL",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	// Repositories
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	checkinsRepo := repository.GetCheckinsRepo(utils.MongoClient)
	baselinesRepo := repository.GetBaselinesRepo(utils.MongoClient)
	streaksRepo := repository.GetStreaksRepo(utils.MongoClient)
	achievementsRepo := repository.GetAchievementsRepo(utils.MongoClient)

	// Services
	calculator := usecase.NewWellnessScoreCalculator()
	baselineService := usecase.NewSpendingBaselineService(checkinsRepo, baselinesRepo)
	streakService := usecase.NewStreakService(streaksRepo)
	achievementService := usecase.NewAchievementService(achievementsRepo, streaksRepo)
	checkinService := usecase.NewCheckinService(checkinsRepo, calculator, baselineService, streakService, achievementService)

	// Handlers
	checkinHandler := handler.NewCheckinHandler(checkinService)
	spendingHandler := handler.NewSpendingHandler(baselineService)
	streakHandler := handler.NewStreakHandler(streakService)
	achievementsHandler := handler.NewAchievementsHandler(achievementService, checkinService, streakService)
	statsHandler := handler.NewStatsHandler(checkinService, calculator, streakService, achievementService, baselineService)

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, sessionRepo)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	// One check-in per week makes a tight write limit safe.
	checkinLimiter := middleware.NewRateLimiter(
		services.TokenBlacklist.Client,
		"checkins",
		utils.GetEnvAsInt("CHECKIN_RATE_LIMIT", 10),
		utils.GetEnvAsDuration("CHECKIN_RATE_WINDOW", time.Hour),
	)

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", handler.GetUserProfileHandler)
			user.POST("/change-email", handler.ChangeEmailHandler)
			user.POST("/change-password", handler.ChangePasswordHandler)
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
			user.DELETE("/delete", handler.DeleteUserHandler)
		}

		twoFactor := protected.Group("/2fa")
		{
			twoFactor.POST("/generate", handler.Generate2FASecretHandler)
			twoFactor.POST("/enable", handler.Enable2FAHandler)
			twoFactor.POST("/verify", handler.Verify2FAHandler)
			twoFactor.POST("/disable", handler.Disable2FAHandler)
			twoFactor.POST("/recovery", handler.UseRecoveryCodeHandler)
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		checkins := protected.Group("/checkins")
		{
			checkins.POST("/", checkinLimiter.Middleware(), checkinHandler.SubmitCheckin)
			checkins.GET("/", checkinHandler.GetCheckins)
			checkins.GET("/latest", checkinHandler.GetLatestCheckin)
		}

		spending := protected.Group("/spending")
		{
			spending.GET("/baseline", spendingHandler.GetBaseline)
			spending.POST("/baseline/refresh", spendingHandler.RefreshBaseline)
			spending.POST("/compare", spendingHandler.CompareSpending)
		}

		streaks := protected.Group("/streaks")
		{
			streaks.GET("/", streakHandler.GetStreak)
			streaks.GET("/at-risk", streakHandler.GetAtRisk)
		}

		achievements := protected.Group("/achievements")
		{
			achievements.GET("/", middleware.CacheControlMiddleware(5*time.Minute), achievementsHandler.GetAchievements)
			achievements.GET("/next", achievementsHandler.GetNextAchievements)
		}

		protected.GET("/wellness/summary", statsHandler.GetWellnessSummary)
	}

	return router
}

func main() {
	// Unique indexes back the one-check-in-per-week and append-only
	// achievement guarantees; refuse to start without them.
	if err := repository.SetupIndexes(utils.MongoClient.Database(os.Getenv("MONGO_DB"))); err != nil {
		log.Fatalf("Failed to set up indexes: %v", err)
	}

	redisURL := os.Getenv("REDIS_URL")

	sessionCache, err := services.NewSessionCache(redisURL)
	if err != nil {
		log.Fatalf("Failed to connect session cache: %v", err)
	}
	services.GlobalSessionCache = sessionCache
	defer sessionCache.Close()

	tokenBlacklist, err := services.NewTokenBlacklist(redisURL)
	if err != nil {
		log.Fatalf("Failed to connect token blacklist: %v", err)
	}
	services.TokenBlacklist = tokenBlacklist
	defer tokenBlacklist.Close()

	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
