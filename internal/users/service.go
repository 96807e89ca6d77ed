package users

import (
	"context"
	"errors"
	"sort"

	"grandprix/internal/booking"
	"grandprix/internal/domain"
	"grandprix/pkg/logger"
)

var ErrUserNotFound = errors.New("user not found")

type Service interface {
	GetProfile(username string) (*ProfileResponse, error)
	UpdateProfile(ctx context.Context, username string, req *UpdateProfileRequest) (*ProfileResponse, error)
	ListUsers() []ProfileResponse
	ListAdmins() []ProfileResponse
	GetUser(username string) (*ProfileResponse, error)
}

type service struct {
	store *booking.Store
	log   *logger.Logger
}

func NewService(store *booking.Store) Service {
	return &service{
		store: store,
		log:   logger.GetDefault(),
	}
}

func (s *service) GetProfile(username string) (*ProfileResponse, error) {
	// Pick up account changes written by other processes.
	s.store.Load()

	user := s.store.GetUser(username)
	if user == nil {
		return nil, ErrUserNotFound
	}
	resp := NewProfileResponse(user)
	return &resp, nil
}

// UpdateProfile merges the provided fields over the current contact
// details; nil fields keep their present value.
func (s *service) UpdateProfile(ctx context.Context, username string, req *UpdateProfileRequest) (*ProfileResponse, error) {
	user := s.store.GetUser(username)
	if user == nil {
		return nil, ErrUserNotFound
	}

	email := user.Email()
	if req.Email != nil {
		email = *req.Email
	}
	phone := user.Phone()
	if req.Phone != nil {
		phone = *req.Phone
	}

	if err := s.store.UpdateUserContact(username, email, phone); err != nil {
		if errors.Is(err, booking.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	s.log.InfoWithContext(ctx, "user profile updated", map[string]interface{}{
		"username": username,
	})

	resp := NewProfileResponse(user)
	return &resp, nil
}

func (s *service) ListUsers() []ProfileResponse {
	s.store.Load()
	return directory(s.store.AllUsers())
}

func (s *service) ListAdmins() []ProfileResponse {
	s.store.Load()
	return directory(s.store.AllAdmins())
}

func (s *service) GetUser(username string) (*ProfileResponse, error) {
	return s.GetProfile(username)
}

func directory(users map[string]*domain.User) []ProfileResponse {
	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]ProfileResponse, 0, len(names))
	for _, name := range names {
		out = append(out, NewProfileResponse(users[name]))
	}
	return out
}
