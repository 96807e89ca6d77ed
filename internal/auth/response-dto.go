package auth

import (
	"grandprix/internal/domain"
	"grandprix/internal/shared/middleware"
)

// represents the authentication response
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// represents account data in responses (without sensitive info)
type UserResponse struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	AdminLevel int    `json:"admin_level,omitempty"`
	Department string `json:"department,omitempty"`
}

// NewUserResponse flattens an account for the wire.
func NewUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:       u.ID(),
		Username: u.Username(),
		Email:    u.Email(),
		Phone:    u.Phone(),
		Role:     RoleOf(u),
	}
	if profile, ok := u.Admin(); ok {
		resp.AdminLevel = profile.Level
		resp.Department = profile.Department
	}
	return resp
}

// RoleOf maps an account to its JWT role claim.
func RoleOf(u *domain.User) string {
	if u.IsAdmin() {
		return middleware.RoleAdmin
	}
	return middleware.RoleCustomer
}
