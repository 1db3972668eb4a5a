package router

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/lexistream/api/database"
	"github.com/lexistream/api/handlers"
	admin_handlers "github.com/lexistream/api/handlers/admin"
	auth_handlers "github.com/lexistream/api/handlers/auth"
	dashboard_handlers "github.com/lexistream/api/handlers/dashboard"
	goal_handlers "github.com/lexistream/api/handlers/goal"
	lesson_handlers "github.com/lexistream/api/handlers/lesson"
	notification_handlers "github.com/lexistream/api/handlers/notification"
	recording_handlers "github.com/lexistream/api/handlers/recording"
	review_handlers "github.com/lexistream/api/handlers/review"
	vocabulary_handlers "github.com/lexistream/api/handlers/vocabulary"
	"github.com/lexistream/api/services"
	"github.com/lexistream/api/services/storage"
	"github.com/lexistream/api/utils/auth"
	"github.com/lexistream/api/utils/cache"
	"github.com/lexistream/api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage, fileStore storage.Store) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "lexistream-api"
	}

	// Initialize JWT manager with config
	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection and stats caching
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	// Initialize brute force protection
	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Initialize auth middleware with DB for blacklist checking
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	// Initialize services
	transcriber := services.NewTranscriptionClient()
	recordingService := services.NewRecordingService(db, fileStore, transcriber)
	notificationService := services.NewNotificationService(db)
	analyticsService := services.NewAnalyticsService(db, redisCache)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	profileHandler := auth_handlers.NewProfileHandler(authHandler, fileStore)
	lessonHandler := lesson_handlers.NewLessonHandler(db, analyticsService)
	recordingHandler := recording_handlers.NewRecordingHandler(db, recordingService, analyticsService)
	reviewHandler := review_handlers.NewReviewHandler(db, notificationService, analyticsService)
	vocabularyHandler := vocabulary_handlers.NewVocabularyHandler(db, analyticsService)
	goalHandler := goal_handlers.NewGoalHandler(db)
	dashboardHandler := dashboard_handlers.NewDashboardHandler(analyticsService)
	notificationHandler := notification_handlers.NewNotificationHandler(notificationService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoints (public)
	app.Get("/ping", func(c *fiber.Ctx) error { return handlers.HandleCheckHealth(c, store) })
	app.Get("/health", func(c *fiber.Ctx) error { return handlers.HandleCheckHealth(c, store) })

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)
	authGroup.Post("/logout-all", authMiddleware.Required(), authHandler.LogoutAll)

	// Profile routes (protected)
	profileGroup := api.Group("/profile", authMiddleware.Required())
	profileGroup.Get("/", authHandler.GetProfile)
	profileGroup.Put("/", authHandler.UpdateProfile)
	profileGroup.Post("/avatar", profileHandler.UploadAvatar)

	// Lesson routes: reading is open to any signed-in user, writing is
	// for teachers and admins
	lessons := api.Group("/lessons")
	lessons.Get("/", authMiddleware.Required(), lessonHandler.List)
	lessons.Get("/:id", authMiddleware.Required(), lessonHandler.Get)
	lessons.Post("/", authMiddleware.RequireTeacher(), lessonHandler.Create)
	lessons.Put("/:id", authMiddleware.RequireTeacher(), lessonHandler.Update)
	lessons.Delete("/:id", authMiddleware.RequireTeacher(), lessonHandler.Delete)

	// Recording routes (protected)
	recordings := api.Group("/recordings", authMiddleware.Required())
	recordings.Post("/", recordingHandler.Submit)
	recordings.Get("/", recordingHandler.List)
	recordings.Get("/:id", recordingHandler.Get)
	recordings.Delete("/:id", recordingHandler.Delete)

	// Review routes (protected)
	recordings.Get("/:id/reviews", reviewHandler.ListForRecording)
	api.Post("/reviews", authMiddleware.Required(), reviewHandler.Create)
	api.Get("/reviews/feed", authMiddleware.Required(), reviewHandler.Feed)
	api.Get("/reviews/given", authMiddleware.Required(), reviewHandler.ListGiven)

	// Progress chart data (protected)
	api.Get("/progress", authMiddleware.Required(), recordingHandler.Progress)

	// Vocabulary routes (protected)
	vocabulary := api.Group("/vocabulary", authMiddleware.Required())
	vocabulary.Get("/", vocabularyHandler.List)
	vocabulary.Post("/", vocabularyHandler.Create)
	vocabulary.Put("/:id", vocabularyHandler.Update)
	vocabulary.Delete("/:id", vocabularyHandler.Delete)

	// Goal routes (protected)
	goal := api.Group("/goal", authMiddleware.Required())
	goal.Get("/", goalHandler.Get)
	goal.Put("/", goalHandler.Update)

	// Dashboard routes
	api.Get("/dashboard", authMiddleware.Required(), dashboardHandler.UserDashboard)
	api.Get("/teacher/dashboard", authMiddleware.RequireTeacher(), dashboardHandler.TeacherDashboard)

	// Notification routes (protected)
	notifications := api.Group("/notifications", authMiddleware.Required())
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	notifications.Post("/read-all", notificationHandler.MarkAllRead)

	// ==================== Admin Panel Endpoints ====================

	admin := api.Group("/admin", authMiddleware.RequireAdmin())

	// Admin User Management
	admin.Get("/users", func(c *fiber.Ctx) error { return admin_handlers.ListUsers(c, store) })
	admin.Get("/users/:id", func(c *fiber.Ctx) error { return admin_handlers.GetUser(c, store) })
	admin.Put("/users/:id", middleware.AdminAuditLog(db, "user_update", "users"), func(c *fiber.Ctx) error { return admin_handlers.UpdateUser(c, store) })
	admin.Delete("/users/:id", middleware.AdminAuditLog(db, "user_delete", "users"), func(c *fiber.Ctx) error { return admin_handlers.DeleteUser(c, store, recordingService) })
	admin.Post("/users/:id/reset-password", middleware.AdminAuditLog(db, "password_reset", "users"), func(c *fiber.Ctx) error { return admin_handlers.ResetUserPassword(c, store) })

	// Admin Recording Management
	admin.Get("/recordings", func(c *fiber.Ctx) error { return admin_handlers.ListRecordings(c, store) })
	admin.Delete("/recordings/:id", middleware.AdminAuditLog(db, "recording_delete", "recordings"), func(c *fiber.Ctx) error { return admin_handlers.DeleteRecording(c, store, recordingService) })

	// Admin Dashboard
	admin.Get("/dashboard", func(c *fiber.Ctx) error { return admin_handlers.Dashboard(c, analyticsService) })
	admin.Post("/dashboard/refresh", func(c *fiber.Ctx) error { return admin_handlers.RefreshDashboard(c, analyticsService) })

	// Admin Audit Logs
	admin.Get("/audit-logs", func(c *fiber.Ctx) error { return admin_handlers.ListAuditLogs(c, store) })
	admin.Get("/cron-logs", func(c *fiber.Ctx) error { return admin_handlers.ListCronJobLogs(c, store) })
}
