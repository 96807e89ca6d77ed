package tickets

import (
	"github.com/gin-gonic/gin"

	"grandprix/internal/shared/middleware"
)

// SetupTicketRoutes registers the ticket registry endpoints. The whole
// surface is admin-only: customers never touch raw tickets, they buy
// through orders.
func SetupTicketRoutes(router *gin.RouterGroup, controller Controller) {
	adminTickets := router.Group("/admin/tickets")
	adminTickets.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		adminTickets.POST("", controller.MintTicket)            // Mint and register a ticket
		adminTickets.GET("", controller.ListTickets)            // List registered tickets
		adminTickets.GET("/:id", controller.GetTicket)          // Get ticket by ID
		adminTickets.PATCH("/:id/used", controller.ToggleUsed)  // Toggle used status
	}
}
