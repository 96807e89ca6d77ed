package catalog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"grandprix/internal/shared/utils/response"
)

type Controller interface {
	ListRaces(c *gin.Context)
	GetRace(c *gin.Context)
	ListSeasons(c *gin.Context)
	GetSeason(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) ListRaces(c *gin.Context) {
	races := ctrl.service.ListRaces()
	response.Success(c, http.StatusOK, "Races retrieved successfully", races)
}

func (ctrl *controller) GetRace(c *gin.Context) {
	raceID := c.Param("id")

	race, err := ctrl.service.GetRace(raceID)
	if err != nil {
		if errors.Is(err, ErrRaceNotFound) {
			response.Error(c, http.StatusNotFound, "Race not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve race", nil)
		return
	}

	response.Success(c, http.StatusOK, "Race retrieved successfully", race)
}

func (ctrl *controller) ListSeasons(c *gin.Context) {
	seasons := ctrl.service.ListSeasons()
	response.Success(c, http.StatusOK, "Seasons retrieved successfully", seasons)
}

func (ctrl *controller) GetSeason(c *gin.Context) {
	seasonID := c.Param("id")

	season, err := ctrl.service.GetSeason(seasonID)
	if err != nil {
		if errors.Is(err, ErrSeasonNotFound) {
			response.Error(c, http.StatusNotFound, "Season not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve season", nil)
		return
	}

	response.Success(c, http.StatusOK, "Season retrieved successfully", season)
}
