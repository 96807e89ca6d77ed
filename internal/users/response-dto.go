package users

import (
	"grandprix/internal/domain"
	"grandprix/internal/shared/middleware"
)

type ProfileResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	AdminLevel int    `json:"admin_level,omitempty"`
	Department string `json:"department,omitempty"`
	OrderCount int    `json:"order_count"`
	Summary    string `json:"summary"`
}

func NewProfileResponse(u *domain.User) ProfileResponse {
	resp := ProfileResponse{
		ID:         u.ID(),
		Username:   u.Username(),
		Email:      u.Email(),
		Phone:      u.Phone(),
		Role:       middleware.RoleCustomer,
		OrderCount: len(u.Orders()),
		Summary:    u.Summary(),
	}
	if profile, ok := u.Admin(); ok {
		resp.Role = middleware.RoleAdmin
		resp.AdminLevel = profile.Level
		resp.Department = profile.Department
	}
	return resp
}
