package reports

import (
	"github.com/gin-gonic/gin"

	"grandprix/internal/shared/middleware"
)

func SetupReportRoutes(rg *gin.RouterGroup, controller Controller) {
	reports := rg.Group("/admin/reports")
	reports.Use(middleware.JWTAuth())
	reports.Use(middleware.RequireAdmin())

	reports.GET("/summary", controller.GetSystemSummary) // One-line system status plus collection sizes
	reports.GET("/sales", controller.GetSalesReport)     // Order book aggregates

	exports := reports.Group("/export")
	{
		exports.GET("/orders/:id", controller.ExportOrderReport)        // Printable order document
		exports.GET("/users", controller.ExportAllUsersReport)          // Customer roster with totals
		exports.GET("/users/:username", controller.ExportUserReport)    // Printable account document
	}
}
