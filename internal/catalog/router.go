package catalog

import (
	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes registers the public browsing endpoints. No auth:
// anyone can look at the race calendar before registering.
func SetupCatalogRoutes(router *gin.RouterGroup, controller Controller) {
	races := router.Group("/races")
	{
		races.GET("", controller.ListRaces)    // Get all races
		races.GET("/:id", controller.GetRace)  // Get race by ID
	}

	seasons := router.Group("/seasons")
	{
		seasons.GET("", controller.ListSeasons)   // Get all seasons
		seasons.GET("/:id", controller.GetSeason) // Get season by ID
	}
}
