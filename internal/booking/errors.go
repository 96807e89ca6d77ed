package booking

import "errors"

var (
	ErrUsernameTaken  = errors.New("username already exists")
	ErrTicketExists   = errors.New("ticket ID already exists")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrOrderNotFound  = errors.New("order does not exist")
	ErrUserNotFound   = errors.New("user not found")
)
