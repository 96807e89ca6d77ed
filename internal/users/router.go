package users

import (
	"github.com/gin-gonic/gin"

	"grandprix/internal/shared/middleware"
)

// SetupUserRoutes registers the profile endpoints for the current user
// and the admin-only account directory.
func SetupUserRoutes(router *gin.RouterGroup, controller Controller) {
	profile := router.Group("/users")
	profile.Use(middleware.JWTAuth())
	{
		profile.GET("/me", controller.GetProfile)    // Current user's profile
		profile.PUT("/me", controller.UpdateProfile) // Update contact details
	}

	adminUsers := router.Group("/admin/users")
	adminUsers.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminUsers.GET("", controller.ListUsers)             // All accounts
		adminUsers.GET("/admins", controller.ListAdmins)     // Admin accounts only
		adminUsers.GET("/:username", controller.GetUser)     // Account by username
	}
}
