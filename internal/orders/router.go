package orders

import (
	"github.com/gin-gonic/gin"

	"grandprix/internal/shared/middleware"
)

// SetupOrderRoutes registers the order endpoints. Everything is
// authenticated; ownership checks happen in the service so admins can
// reach any order through the same handlers.
func SetupOrderRoutes(router *gin.RouterGroup, controller Controller) {
	orders := router.Group("/orders")
	orders.Use(middleware.JWTAuth())
	{
		orders.POST("", controller.CreateOrder)                          // Open an empty pending order
		orders.POST("/purchase", controller.Purchase)                    // One-call catalog purchase
		orders.GET("", controller.GetMyOrders)                           // Current user's order history
		orders.GET("/:id", controller.GetOrder)                          // Get order by ID
		orders.POST("/:id/tickets", controller.AddTicket)                // Add a registered ticket
		orders.DELETE("/:id/tickets/:ticketId", controller.RemoveTicket) // Remove a ticket
		orders.PUT("/:id/payment", controller.SetPayment)                // Set payment method
		orders.POST("/:id/confirm", controller.ConfirmOrder)             // Confirm the order
		orders.POST("/:id/cancel", controller.CancelOrder)               // Cancel the order
	}

	adminOrders := router.Group("/admin/orders")
	adminOrders.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminOrders.GET("", controller.GetAllOrders) // List every order in the system
	}
}
