package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/platefeed/feedback-backend/internal/api/handlers"
	"github.com/platefeed/feedback-backend/internal/api/middleware"
	"github.com/platefeed/feedback-backend/internal/config"
	"github.com/platefeed/feedback-backend/internal/roles"
	"github.com/platefeed/feedback-backend/internal/services"
	"github.com/platefeed/feedback-backend/internal/ws"
	"github.com/platefeed/feedback-backend/pkg/logger"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config, hub *ws.Hub) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RateLimitMiddleware(cfg))

	// Initialize services
	emailService := services.NewEmailService(cfg)
	var s3Service *services.S3Service
	if cfg.S3BucketName != "" {
		s3Service = services.NewS3Service(cfg.S3Region, cfg.S3BucketName, cfg.S3AccessKey, cfg.S3SecretKey)
	}
	notificationService := services.NewNotificationService(db, hub)
	authService := services.NewAuthService(db, cfg.JWTSecret)
	reviewService := services.NewReviewService(db, notificationService, s3Service)
	moderationService := services.NewModerationService(db, notificationService, emailService)
	ticketService := services.NewTicketService(db, notificationService)
	restaurantService := services.NewRestaurantService(db)
	adminService := services.NewAdminService(db, emailService, cfg.AdminEmail)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	reviewHandler := handlers.NewReviewHandler(reviewService, moderationService)
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	ticketHandler := handlers.NewTicketHandler(ticketService)
	adminHandler := handlers.NewAdminHandler(adminService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	authRequired := middleware.AuthMiddleware(cfg, db)
	staffOnly := middleware.RequireRole(roles.RoleManager)
	adminOnly := middleware.RequireRole(roles.RoleAdmin)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// Push notifications
	router.GET("/ws/notifications", authRequired, hub.HandleWebSocket)

	// API routes
	api := router.Group("/api/v1")

	// Auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh-token", authHandler.RefreshToken)
		auth.GET("/profile", authRequired, authHandler.GetProfile)
		auth.PUT("/profile", authRequired, authHandler.UpdateProfile)
	}

	// Restaurant routes
	restaurants := api.Group("/restaurants")
	{
		restaurants.GET("/", restaurantHandler.ListRestaurants)
		restaurants.GET("/:restaurant_id", restaurantHandler.GetRestaurant)
		restaurants.POST("/", authRequired, staffOnly, restaurantHandler.CreateRestaurant)
		restaurants.PUT("/:restaurant_id", authRequired, staffOnly, restaurantHandler.UpdateRestaurant)
	}

	// Review routes
	reviews := api.Group("/reviews")
	{
		reviews.GET("/", reviewHandler.ListReviews)
		reviews.GET("/:review_id", reviewHandler.GetReview)
		reviews.POST("/", authRequired, reviewHandler.CreateReview)
		reviews.PUT("/:review_id", authRequired, reviewHandler.UpdateReview)
		reviews.POST("/:review_id/vote", authRequired, reviewHandler.VoteReview)
		reviews.POST("/:review_id/photos", authRequired, reviewHandler.UploadReviewPhoto)
		reviews.POST("/:review_id/response", authRequired, staffOnly, reviewHandler.RespondToReview)
		reviews.DELETE("/:review_id", authRequired, staffOnly, reviewHandler.ModerateReview)
	}

	// Support tickets
	tickets := api.Group("/tickets", authRequired)
	{
		tickets.POST("/", ticketHandler.CreateTicket)
		tickets.GET("/", ticketHandler.ListMyTickets)
		tickets.GET("/all", staffOnly, ticketHandler.ListAllTickets)
		tickets.GET("/:ticket_id", ticketHandler.GetTicket)
		tickets.POST("/:ticket_id/messages", ticketHandler.AddMessage)
		tickets.PATCH("/:ticket_id/status", staffOnly, ticketHandler.UpdateStatus)
		tickets.PATCH("/:ticket_id/priority", staffOnly, ticketHandler.UpdatePriority)
	}

	// Notifications
	notifications := api.Group("/notifications", authRequired)
	{
		notifications.GET("/", notificationHandler.ListNotifications)
		notifications.POST("/:notification_id/read", notificationHandler.MarkRead)
		notifications.POST("/read-all", notificationHandler.MarkAllRead)
	}

	// Admin routes
	admin := api.Group("/admin", authRequired)
	{
		admin.GET("/dashboard", adminOnly, adminHandler.GetDashboard)
		admin.GET("/users", adminOnly, adminHandler.ListUsers)
		// Managers participate in role demotion and blocking; the pure guard
		// enforces the per-operation rules.
		admin.PUT("/users/:user_id/role", staffOnly, adminHandler.UpdateUserRole)
		admin.POST("/users/:user_id/block", staffOnly, adminHandler.BlockUser)
		admin.POST("/users/:user_id/unblock", staffOnly, adminHandler.UnblockUser)
		admin.GET("/reviews/archived", staffOnly, reviewHandler.ListArchivedReviews)
	}

	logger.Info("Routes initialized successfully")
}
