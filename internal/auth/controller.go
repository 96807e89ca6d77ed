package auth

import (
	"errors"
	"net/http"

	"grandprix/internal/domain"
	"grandprix/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			response.Error(ctx, http.StatusConflict, "Username already exists", nil)
		case errors.Is(err, domain.ErrPasswordTooShort), errors.Is(err, domain.ErrInvalidEmail):
			response.Error(ctx, http.StatusBadRequest, err.Error(), nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to register user", nil)
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "User registered successfully", resp)
}

// CreateAdmin provisions an administrator account. The route is
// reachable only through admin-gated middleware.
func (c *Controller) CreateAdmin(ctx *gin.Context) {
	var req CreateAdminRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	resp, err := c.service.RegisterAdmin(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			response.Error(ctx, http.StatusConflict, "Username already exists", nil)
		case errors.Is(err, domain.ErrPasswordTooShort),
			errors.Is(err, domain.ErrInvalidEmail),
			errors.Is(err, domain.ErrInvalidAdminLevel):
			response.Error(ctx, http.StatusBadRequest, err.Error(), nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to create admin", nil)
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Admin created successfully", resp)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(ctx, http.StatusUnauthorized, "Invalid username or password", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to login", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Login successful", resp)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	tokenPair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
			response.Error(ctx, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusUnauthorized, "User not found", nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to refresh token", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Token refreshed successfully", tokenPair)
}

func (c *Controller) Logout(ctx *gin.Context) {
	var req LogoutRequest
	ctx.ShouldBindJSON(&req) // Optional body

	response.Success(ctx, http.StatusOK, "Logged out successfully", nil)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	username, exists := ctx.Get("username")
	if !exists {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	err := c.service.ChangePassword(ctx.Request.Context(), username.(string), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(ctx, http.StatusUnauthorized, "Current password is incorrect", nil)
		case errors.Is(err, ErrUserNotFound):
			response.Error(ctx, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, domain.ErrPasswordTooShort):
			response.Error(ctx, http.StatusBadRequest, err.Error(), nil)
		default:
			response.Error(ctx, http.StatusInternalServerError, "Failed to change password", nil)
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Password changed successfully", nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	username, _ := ctx.Get("username")
	role, _ := ctx.Get("user_role")

	userData := map[string]interface{}{
		"id":       userID,
		"username": username,
		"role":     role,
	}

	response.Success(ctx, http.StatusOK, "User data retrieved successfully", userData)
}
