package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"grandprix/internal/domain"
	"grandprix/internal/shared/utils/response"
)

type Controller interface {
	GetProfile(c *gin.Context)
	UpdateProfile(c *gin.Context)
	ListUsers(c *gin.Context)
	ListAdmins(c *gin.Context)
	GetUser(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetProfile(c *gin.Context) {
	username := c.GetString("username")

	profile, err := ctrl.service.GetProfile(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve profile", nil)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (ctrl *controller) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	username := c.GetString("username")

	profile, err := ctrl.service.UpdateProfile(c.Request.Context(), username, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, domain.ErrInvalidEmail):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to update profile", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, "Profile updated successfully", profile)
}

func (ctrl *controller) ListUsers(c *gin.Context) {
	response.Success(c, http.StatusOK, "Users retrieved successfully", ctrl.service.ListUsers())
}

func (ctrl *controller) ListAdmins(c *gin.Context) {
	response.Success(c, http.StatusOK, "Admins retrieved successfully", ctrl.service.ListAdmins())
}

func (ctrl *controller) GetUser(c *gin.Context) {
	username := c.Param("username")

	profile, err := ctrl.service.GetUser(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve user", nil)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved successfully", profile)
}
