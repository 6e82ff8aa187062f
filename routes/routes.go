package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"socialgram-api/config"
	"socialgram-api/controllers"
	"socialgram-api/middleware"
	"socialgram-api/services"
)

func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService, storage services.FileStorage) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, emailService)
	userController := controllers.NewUserController(db)
	friendController := controllers.NewFriendController(db)
	postController := controllers.NewPostController(db, storage, cfg)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Uploaded images served as static files when using local storage
	if cfg.StorageDriver == "local" {
		r.Static("/uploads", cfg.UploadDir)
	}

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		users := protected.Group("/users")
		{
			users.GET("/search", userController.SearchUsers)
			users.GET("/profile", userController.GetProfile)
		}

		// Friend routes
		friends := protected.Group("/friends")
		{
			friends.GET("", friendController.GetFriends)
			friends.GET("/recommendations", friendController.GetRecommendations)
			friends.POST("/request/:user_id", friendController.SendFriendRequest)
			friends.GET("/requests", friendController.GetPendingRequests)
			friends.POST("/requests/:request_id/:action", friendController.RespondToFriendRequest)
			friends.DELETE("/:friend_id", friendController.RemoveFriend)
		}

		// Post routes
		posts := protected.Group("/posts")
		{
			posts.GET("", postController.GetPosts)
			posts.POST("", postController.CreatePost)
			posts.POST("/:post_id/like", postController.ToggleLike)
		}
	}
}
