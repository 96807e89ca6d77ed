package domain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted at account
// creation and password change.
const MinPasswordLength = 6

const (
	MinAdminLevel = 1
	MaxAdminLevel = 3
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidAdminLevel = errors.New("admin level must be between 1 and 3")
	ErrNotAdmin          = errors.New("admin privileges required")
)

// AdminProfile is the administrative capability attached to a user
// account. A user with a nil profile is a regular customer.
type AdminProfile struct {
	Level      int
	Department string
}

// User is an account holder. Administrators are regular users carrying
// an AdminProfile; the same value can therefore be handed out through
// both the user and the admin directories without any copying.
type User struct {
	id           string
	username     string
	passwordHash string
	email        string
	phone        string
	admin        *AdminProfile
	orders       []*Order
}

// NewUser creates a customer account. The password is validated in
// plaintext and stored as a bcrypt hash; the email must carry an "@".
func NewUser(id, username, password, email, phone string) (*User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	return &User{
		id:           id,
		username:     username,
		passwordHash: hash,
		email:        email,
		phone:        phone,
	}, nil
}

// NewAdmin creates an administrator account: a user with an attached
// AdminProfile. The level must be between 1 and 3.
func NewAdmin(id, username, password, email string, level int, department, phone string) (*User, error) {
	if level < MinAdminLevel || level > MaxAdminLevel {
		return nil, ErrInvalidAdminLevel
	}
	u, err := NewUser(id, username, password, email, phone)
	if err != nil {
		return nil, err
	}
	u.admin = &AdminProfile{Level: level, Department: department}
	return u, nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

func validateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (u *User) ID() string { return u.id }

func (u *User) Username() string { return u.username }

func (u *User) Email() string { return u.email }

// SetEmail validates the new address before storing it.
func (u *User) SetEmail(email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}
	u.email = email
	return nil
}

func (u *User) Phone() string { return u.phone }

func (u *User) SetPhone(phone string) { u.phone = phone }

// PasswordHash exposes the stored bcrypt hash for snapshotting.
func (u *User) PasswordHash() string { return u.passwordHash }

// VerifyPassword reports whether the plaintext matches the stored
// hash. The hash itself is never compared directly.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

// SetPassword validates the new plaintext and replaces the stored
// hash.
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	u.passwordHash = hash
	return nil
}

func (u *User) IsAdmin() bool { return u.admin != nil }

// Admin returns a copy of the administrative profile and whether the
// user has one.
func (u *User) Admin() (AdminProfile, bool) {
	if u.admin == nil {
		return AdminProfile{}, false
	}
	return *u.admin, true
}

// AdminLevel returns the admin level, or 0 for regular customers.
func (u *User) AdminLevel() int {
	if u.admin == nil {
		return 0
	}
	return u.admin.Level
}

// SetAdminLevel changes the admin level within the 1..3 range. It
// fails for users without admin privileges.
func (u *User) SetAdminLevel(level int) error {
	if u.admin == nil {
		return ErrNotAdmin
	}
	if level < MinAdminLevel || level > MaxAdminLevel {
		return ErrInvalidAdminLevel
	}
	u.admin.Level = level
	return nil
}

func (u *User) Department() string {
	if u.admin == nil {
		return ""
	}
	return u.admin.Department
}

func (u *User) SetDepartment(department string) error {
	if u.admin == nil {
		return ErrNotAdmin
	}
	u.admin.Department = department
	return nil
}

// Orders returns the user's order history, oldest first. The returned
// slice is a copy; the history itself only grows through AddOrder.
func (u *User) Orders() []*Order {
	return append([]*Order(nil), u.orders...)
}

// AddOrder appends an order to the user's history. Orders are never
// removed: cancelled orders stay in the history with their status.
func (u *User) AddOrder(o *Order) {
	u.orders = append(u.orders, o)
}

// RelinkOrders replaces the order history wholesale. It exists for the
// booking store, which rebuilds user/order links after snapshots
// reload; everything else goes through AddOrder.
func (u *User) RelinkOrders(orders []*Order) {
	u.orders = append([]*Order(nil), orders...)
}

// MintTicket is the admin ticket factory. It builds the variant the
// spec selects, applies the factory defaults and stamps the minting
// admin's username on the ticket. Customers get ErrNotAdmin. The
// ticket is returned unregistered; callers decide whether it enters a
// booking store.
func (u *User) MintTicket(spec TicketSpec) (Ticket, error) {
	if u.admin == nil {
		return nil, ErrNotAdmin
	}
	t, err := mintTicket(spec)
	if err != nil {
		return nil, err
	}
	t.SetCreatedBy(u.username)
	return t, nil
}

func (u *User) Summary() string {
	if u.admin != nil {
		return fmt.Sprintf("Admin: %s, Level: %d, Department: %s", u.username, u.admin.Level, u.admin.Department)
	}
	return fmt.Sprintf("User: %s (%s)", u.username, u.email)
}
