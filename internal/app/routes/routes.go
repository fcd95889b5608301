package routes

import (
	"github.com/deniz/teamup/internal/app/controllers"
	"github.com/deniz/teamup/internal/app/models/dto"
	"github.com/deniz/teamup/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	postController *controllers.PostController,
	participantController *controllers.ParticipantController,
	notificationController *controllers.NotificationController,
	homeController *controllers.HomeController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Public browse routes ---
	// The feed and post reads are public; a valid token personalizes the
	// feed's matched subset.
	public := v1.Group("")
	public.Use(authMiddleware.OptionalJWTAuth())
	{
		public.GET("/feed", homeController.Feed)
		public.GET("/posts", postController.ListPosts)
		public.GET("/posts/:id", postController.GetPost)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		authenticated.GET("/dashboard", homeController.Dashboard)

		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetProfile)
			users.PUT("/me", userController.UpdateProfile)
			users.PUT("/me/skills", userController.UpdateSkills)
			users.PUT("/me/photo", userController.UpdateProfilePhoto)
		}

		posts := authenticated.Group("/posts")
		{
			posts.POST("", postController.CreatePost)
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)
			posts.PUT("/:id/image", postController.UploadPostImage)

			posts.POST("/:id/apply", participantController.Apply)
			posts.GET("/:id/participants", participantController.ListByPost)
		}

		participants := authenticated.Group("/participants")
		{
			participants.POST("/:id/approve", participantController.Approve)
			participants.POST("/:id/reject", participantController.Reject)
		}

		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.List)
			notifications.GET("/unread-count", notificationController.UnreadCount)
			notifications.POST("/mark-read", notificationController.MarkAllRead)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})
}
