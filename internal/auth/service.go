package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"grandprix/internal/booking"
	"grandprix/internal/shared/config"
	"grandprix/internal/shared/utils/ref"
	"grandprix/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	RegisterAdmin(ctx context.Context, req *CreateAdminRequest) (*UserResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, username string, req *ChangePasswordRequest) error
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type service struct {
	store  *booking.Store
	config *config.Config
	log    *logger.Logger
}

func NewService(store *booking.Store, cfg *config.Config) Service {
	return &service{
		store:  store,
		config: cfg,
		log:    logger.GetDefault(),
	}
}

func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	userID := ref.New("USR")
	user, err := s.store.CreateUser(userID, req.Username, req.Password, req.Email, req.Phone)
	if err != nil {
		if errors.Is(err, booking.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	s.log.LogUserCreated(ctx, user.ID(), user.Username(), false)

	tokenPair, err := s.generateTokenPair(user.ID(), user.Username(), RoleOf(user))
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         NewUserResponse(user),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) RegisterAdmin(ctx context.Context, req *CreateAdminRequest) (*UserResponse, error) {
	adminID := ref.New("ADM")
	admin, err := s.store.CreateAdmin(adminID, req.Username, req.Password, req.Email,
		req.AdminLevel, req.Department, req.Phone)
	if err != nil {
		if errors.Is(err, booking.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	s.log.LogUserCreated(ctx, admin.ID(), admin.Username(), true)

	resp := NewUserResponse(admin)
	return &resp, nil
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	// Pick up accounts created by other processes before deciding the
	// username is unknown.
	s.store.Load()

	user := s.store.GetUser(req.Username)
	if user == nil {
		s.log.LogAuthFailure(ctx, "unknown username", req.Username)
		return nil, ErrInvalidCredentials
	}

	if !user.VerifyPassword(req.Password) {
		s.log.LogAuthFailure(ctx, "wrong password", req.Username)
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.generateTokenPair(user.ID(), user.Username(), RoleOf(user))
	if err != nil {
		return nil, err
	}
	s.log.LogAuthSuccess(ctx, user.ID(), "password")

	return &AuthResponse{
		User:         NewUserResponse(user),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != "refresh" {
		return nil, ErrInvalidToken
	}

	// Verify user still exists
	user := s.store.GetUser(claims.Username)
	if user == nil {
		return nil, ErrUserNotFound
	}

	tokenPair, err := s.generateTokenPair(user.ID(), user.Username(), RoleOf(user))
	if err != nil {
		return nil, err
	}
	s.log.LogAuthSuccess(ctx, user.ID(), "refresh")

	return tokenPair, nil
}

func (s *service) ChangePassword(ctx context.Context, username string, req *ChangePasswordRequest) error {
	user := s.store.GetUser(username)
	if user == nil {
		return ErrUserNotFound
	}

	// Verify current password
	if !user.VerifyPassword(req.CurrentPassword) {
		s.log.LogAuthFailure(ctx, "wrong current password", username)
		return ErrInvalidCredentials
	}

	return s.store.UpdateUserPassword(username, req.NewPassword)
}

func (s *service) ValidateToken(tokenString string) (*JWTClaims, error) {
	return s.validateToken(tokenString)
}

func (s *service) generateTokenPair(userID, username, role string) (*TokenPair, error) {
	now := time.Now()

	accessClaims := JWTClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Type:     "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.JWTExpiresIn)),
			Issuer:    "grandprix",
			Subject:   userID,
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	refreshClaims := JWTClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Type:     "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.JWT.RefreshExpiresIn)),
			Issuer:    "grandprix",
			Subject:   userID,
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString([]byte(s.config.JWT.Secret))
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.config.JWT.JWTExpiresIn.Seconds()),
	}, nil
}

func (s *service) validateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWT.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
