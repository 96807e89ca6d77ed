// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"grandprix/internal/auth"
	"grandprix/internal/booking"
	"grandprix/internal/catalog"
	"grandprix/internal/orders"
	"grandprix/internal/reports"
	"grandprix/internal/shared/config"
	"grandprix/internal/tickets"
	"grandprix/internal/users"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	store  *booking.Store
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, store *booking.Store) *Router {
	return &Router{
		config: cfg,
		store:  store,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupCatalogRoutes(api)
		r.setupTicketRoutes(api)
		r.setupOrderRoutes(api)
		r.setupUserRoutes(api)
		r.setupReportRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.store.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "grandprix-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "grandprix-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"system":      r.store.Summary(),
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authService := auth.NewService(r.store, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupCatalogRoutes configures the public race and season endpoints
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalogService := catalog.NewService(r.store)
	catalogController := catalog.NewController(catalogService)

	catalog.SetupCatalogRoutes(rg, catalogController)
}

// setupTicketRoutes configures the admin ticket registry routes
func (r *Router) setupTicketRoutes(rg *gin.RouterGroup) {
	ticketService := tickets.NewService(r.store)
	ticketController := tickets.NewController(ticketService)

	tickets.SetupTicketRoutes(rg, ticketController)
}

// setupOrderRoutes configures order management routes
func (r *Router) setupOrderRoutes(rg *gin.RouterGroup) {
	orderService := orders.NewService(r.store)
	orderController := orders.NewController(orderService)

	orders.SetupOrderRoutes(rg, orderController)
}

// setupUserRoutes configures profile and account directory routes
func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userService := users.NewService(r.store)
	userController := users.NewController(userService)

	users.SetupUserRoutes(rg, userController)
}

// setupReportRoutes configures the back-office report routes
func (r *Router) setupReportRoutes(rg *gin.RouterGroup) {
	reportService := reports.NewService(r.store)
	reportController := reports.NewController(reportService)

	reports.SetupReportRoutes(rg, reportController)
}
