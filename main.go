// main.go - CollegeConnect API server
package main

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"

	"collegeconnect/database"
	"collegeconnect/handlers"
	"collegeconnect/handlers/admin"
	"collegeconnect/middleware"
	"collegeconnect/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	validateEnvironment()

	// Initialize database
	database.InitDB()
	defer database.CloseDB()

	// Connection hub for the live chat channel
	hub := services.NewHub()
	handlers.InitHandlers(hub)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    8 * 1024 * 1024, // 8MB, resumes and cover images come in as data URLs
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Auth routes with stricter rate limiting
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.AuthRateLimitMiddleware())
	authGroup.Post("/register", handlers.Register)
	authGroup.Post("/login", handlers.Login)
	authGroup.Post("/logout", handlers.Logout)
	authGroup.Get("/profile", middleware.AuthMiddleware, handlers.GetProfile)

	// Group routes. Listing works anonymously but shows more when a token is
	// presented; everything else requires auth.
	api.Get("/groups", middleware.OptionalAuthMiddleware, handlers.ListGroups)
	api.Get("/groups/public", handlers.ListPublicGroups)
	api.Get("/groups/discover", middleware.AuthMiddleware, handlers.DiscoverGroups)
	api.Get("/groups/my-groups", middleware.AuthMiddleware, handlers.GetUserGroups)

	groupRoutes := api.Group("/groups")
	groupRoutes.Use(middleware.AuthMiddleware)
	groupRoutes.Post("/", handlers.CreateGroup)
	groupRoutes.Get("/:id", handlers.GetGroup)
	groupRoutes.Put("/:id", handlers.UpdateGroup)
	groupRoutes.Delete("/:id", handlers.DeleteGroup)
	groupRoutes.Post("/:id/join", handlers.JoinGroup)
	groupRoutes.Post("/:id/leave", handlers.LeaveGroup)
	groupRoutes.Get("/:id/join-requests", handlers.ListJoinRequests)
	groupRoutes.Post("/:id/approve/:userId", handlers.ApproveJoinRequest)
	groupRoutes.Post("/:id/reject/:userId", handlers.RejectJoinRequest)

	// Message routes
	api.Get("/messages/group/:groupId", middleware.AuthMiddleware, handlers.GetGroupMessages)
	api.Post("/messages/group/:groupId", middleware.AuthMiddleware, handlers.SendMessage)
	api.Delete("/messages/:id", middleware.AuthMiddleware, handlers.DeleteMessage)

	// User routes
	api.Put("/users/profile", middleware.AuthMiddleware, handlers.UpdateProfile)
	api.Get("/users/:id", middleware.AuthMiddleware, handlers.GetUser)

	// Event routes
	api.Get("/events", handlers.ListEvents)
	api.Get("/events/my-events", middleware.AuthMiddleware, handlers.GetUserEvents)
	api.Get("/events/:id", handlers.GetEvent)
	api.Post("/events", middleware.AuthMiddleware, handlers.CreateEvent)
	api.Put("/events/:id", middleware.AuthMiddleware, handlers.UpdateEvent)
	api.Delete("/events/:id", middleware.AuthMiddleware, handlers.DeleteEvent)
	api.Post("/events/:id/attend", middleware.AuthMiddleware, handlers.AttendEvent)

	// Resource routes
	api.Get("/resources", handlers.ListResources)
	api.Get("/resources/my-resources", middleware.AuthMiddleware, handlers.GetUserResources)
	api.Get("/resources/:id", handlers.GetResource)
	api.Post("/resources", middleware.AuthMiddleware, handlers.CreateResource)
	api.Put("/resources/:id", middleware.AuthMiddleware, handlers.UpdateResource)
	api.Delete("/resources/:id", middleware.AuthMiddleware, handlers.DeleteResource)
	api.Post("/resources/:id/download", handlers.DownloadResource)
	api.Post("/resources/:id/like", middleware.AuthMiddleware, handlers.LikeResource)
	api.Post("/resources/:id/comments", middleware.AuthMiddleware, handlers.CommentResource)

	// Announcement routes
	api.Get("/announcements", handlers.ListAnnouncements)
	api.Get("/announcements/unread-count", middleware.AuthMiddleware, handlers.GetUnreadAnnouncementCount)
	api.Get("/announcements/:id", middleware.OptionalAuthMiddleware, handlers.GetAnnouncement)
	api.Post("/announcements", middleware.AuthMiddleware, handlers.CreateAnnouncement)
	api.Put("/announcements/:id", middleware.AuthMiddleware, handlers.UpdateAnnouncement)
	api.Delete("/announcements/:id", middleware.AuthMiddleware, handlers.DeleteAnnouncement)
	api.Post("/announcements/:id/comments", middleware.AuthMiddleware, handlers.CommentAnnouncement)

	// Notification routes
	notificationGroup := api.Group("/notifications")
	notificationGroup.Use(middleware.AuthMiddleware)
	notificationGroup.Get("/", handlers.GetNotifications)
	notificationGroup.Post("/read-all", handlers.MarkAllNotificationsRead)
	notificationGroup.Post("/:id/read", handlers.MarkNotificationRead)
	notificationGroup.Delete("/:id", handlers.DeleteNotification)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthRateLimitMiddleware())
	adminGroup.Post("/login", admin.Login)
	adminGroup.Post("/register", admin.Register)

	adminProtected := adminGroup.Group("")
	adminProtected.Use(middleware.AdminAuthMiddleware)
	adminProtected.Get("/verify", admin.VerifyToken)
	adminProtected.Get("/stats", admin.GetStats)
	adminProtected.Get("/recent", admin.GetRecentActivity)
	adminProtected.Get("/users", admin.GetUsers)
	adminProtected.Put("/users/:id", admin.UpdateUser)
	adminProtected.Delete("/users/:id", admin.DeleteUser)
	adminProtected.Get("/groups", admin.GetGroups)
	adminProtected.Delete("/groups/:id", admin.DeleteGroup)
	adminProtected.Get("/events", admin.GetEvents)
	adminProtected.Delete("/events/:id", admin.DeleteEvent)
	adminProtected.Get("/resources", admin.GetResources)
	adminProtected.Delete("/resources/:id", admin.DeleteResource)
	adminProtected.Get("/announcements", admin.GetAnnouncements)
	adminProtected.Delete("/announcements/:id", admin.DeleteAnnouncement)

	// WebSocket endpoint for live chat
	app.Use("/ws", handlers.WSUpgrade)
	app.Get("/ws", websocket.New(handlers.WSHandler))

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 CollegeConnect API starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")
	log.Printf("🌐 WebSocket available at ws://localhost:%s/ws", port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if os.Getenv("APP_ENV") == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
