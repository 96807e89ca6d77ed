package booking

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"grandprix/internal/domain"
	"grandprix/pkg/logger"
)

// Default admin account, guaranteed to exist after every load unless
// another admin is already present.
const (
	defaultAdminID         = "ADM-001"
	defaultAdminUsername   = "admin"
	defaultAdminPassword   = "admin123"
	defaultAdminEmail      = "admin@grandprix.com"
	defaultAdminLevel      = 3
	defaultAdminDepartment = "System Administration"
)

// Config holds the knobs for opening a store.
type Config struct {
	// Name and Version identify the booking system instance.
	Name    string
	Version string

	// DataDir holds the snapshot files. It is created if missing and
	// doubles as the handoff point between processes sharing state.
	DataDir string

	// AuditLogFile overrides the default booking_system.log inside
	// DataDir.
	AuditLogFile string

	// SeedCatalog fills an empty race/season catalog with the sample
	// lineup after the first load.
	SeedCatalog bool

	Logger *logger.Logger
}

// Store is the booking system: the in-memory object graph of
// accounts, tickets and orders plus its flat-file snapshots. Every
// mutation validates, applies, appends an audit line and synchronously
// saves; persistence failures are logged and reported as booleans, the
// mutation itself stands.
//
// The store is safe for concurrent use. Handlers must mutate the graph
// through store operations rather than on objects they got from
// getters; getters are for reading.
type Store struct {
	name    string
	version string
	dataDir string
	logFile string
	log     *logger.Logger

	mu       sync.RWMutex
	users    map[string]*domain.User   // by username
	admins   map[string]*domain.User   // by username, aliases entries in users
	tickets  map[string]domain.Ticket  // by ticket ID
	orders   map[string]*domain.Order  // by order ID
	races    map[string]*domain.Race   // by race ID
	seasons  map[string]*domain.Season // by season ID
	orderSeq uint64
	mtimes   map[string]time.Time // snapshot file name -> mtime at last load
}

// Open creates the data directory if needed, loads any existing
// snapshots and guarantees the default admin account. Load failures
// are logged, not returned: a store always opens, possibly empty.
func Open(cfg Config) (*Store, error) {
	if cfg.Name == "" {
		cfg.Name = "Grand Prix Experience"
	}
	if cfg.Version == "" {
		cfg.Version = "1.0"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "./data"
	}
	if cfg.AuditLogFile == "" {
		cfg.AuditLogFile = filepath.Join(cfg.DataDir, "booking_system.log")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.GetDefault()
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{
		name:    cfg.Name,
		version: cfg.Version,
		dataDir: cfg.DataDir,
		logFile: cfg.AuditLogFile,
		log:     cfg.Logger,
		users:   make(map[string]*domain.User),
		admins:  make(map[string]*domain.User),
		tickets: make(map[string]domain.Ticket),
		orders:  make(map[string]*domain.Order),
		races:   make(map[string]*domain.Race),
		seasons: make(map[string]*domain.Season),
		mtimes:  make(map[string]time.Time),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	if cfg.SeedCatalog {
		s.seedCatalogLocked()
	}
	return s, nil
}

func (s *Store) Name() string { return s.name }

func (s *Store) Version() string { return s.version }

// Summary is the one-line system status used by status endpoints and
// the demo.
func (s *Store) Summary() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("BookingSystem: %s v%s, Users: %d, Orders: %d, Tickets: %d",
		s.name, s.version, len(s.users), len(s.orders), len(s.tickets))
}

// Stats are collection sizes for status and report endpoints.
type Stats struct {
	Users   int `json:"users"`
	Admins  int `json:"admins"`
	Tickets int `json:"tickets"`
	Orders  int `json:"orders"`
	Races   int `json:"races"`
	Seasons int `json:"seasons"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		Users:   len(s.users),
		Admins:  len(s.admins),
		Tickets: len(s.tickets),
		Orders:  len(s.orders),
		Races:   len(s.races),
		Seasons: len(s.seasons),
	}
}

// Health probes that the data directory is still writable.
func (s *Store) Health() error {
	probe := filepath.Join(s.dataDir, ".health")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	os.Remove(probe)
	return nil
}

// User management

// CreateUser registers a customer account under a unique username.
func (s *Store) CreateUser(userID, username, password, email, phone string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
	}
	u, err := domain.NewUser(userID, username, password, email, phone)
	if err != nil {
		return nil, err
	}
	s.users[username] = u
	s.audit("Created user: %s", username)
	s.saveLocked()
	return u, nil
}

// CreateAdmin registers an administrator account. The same value is
// reachable through both the user and the admin directories.
func (s *Store) CreateAdmin(userID, username, password, email string, level int, department, phone string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAdminLocked(userID, username, password, email, level, department, phone)
}

func (s *Store) createAdminLocked(userID, username, password, email string, level int, department, phone string) (*domain.User, error) {
	if _, exists := s.users[username]; exists {
		return nil, fmt.Errorf("%w: %q", ErrUsernameTaken, username)
	}
	u, err := domain.NewAdmin(userID, username, password, email, level, department, phone)
	if err != nil {
		return nil, err
	}
	s.users[username] = u
	s.admins[username] = u
	s.audit("Created admin: %s", username)
	s.saveLocked()
	return u, nil
}

// GetUser returns the account with the given username, or nil.
func (s *Store) GetUser(username string) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[username]
}

// GetAdmin returns the admin with the given username, or nil. Regular
// customers are not visible through the admin directory.
func (s *Store) GetAdmin(username string) *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admins[username]
}

// AllUsers returns a copy of the user directory keyed by username.
func (s *Store) AllUsers() map[string]*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.users)
}

// AllAdmins returns a copy of the admin directory keyed by username.
func (s *Store) AllAdmins() map[string]*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.admins)
}

// UpdateUserContact changes a user's email and phone and saves.
func (s *Store) UpdateUserContact(username, email, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	if err := u.SetEmail(email); err != nil {
		return err
	}
	u.SetPhone(phone)
	s.saveLocked()
	return nil
}

// UpdateUserPassword replaces a user's password and saves. Verifying
// the current password is the caller's business.
func (s *Store) UpdateUserPassword(username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUserNotFound, username)
	}
	if err := u.SetPassword(password); err != nil {
		return err
	}
	s.saveLocked()
	return nil
}

// Ticket management

// RegisterTicket adds a ticket to the registry under its unique ID.
func (s *Store) RegisterTicket(t domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := t.ID()
	if _, exists := s.tickets[id]; exists {
		return fmt.Errorf("%w: %q", ErrTicketExists, id)
	}
	s.tickets[id] = t
	s.audit("Registered ticket: %s", id)
	s.saveLocked()
	return nil
}

// GetTicket returns the ticket with the given ID, or nil.
func (s *Store) GetTicket(ticketID string) domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tickets[ticketID]
}

// AllTickets returns a copy of the ticket registry keyed by ID.
func (s *Store) AllTickets() map[string]domain.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.tickets)
}

// ToggleTicketUsed flips a ticket's used flag and saves, returning the
// new state.
func (s *Store) ToggleTicketUsed(ticketID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[ticketID]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrTicketNotFound, ticketID)
	}
	t.SetUsed(!t.IsUsed())
	s.saveLocked()
	return t.IsUsed(), nil
}

// Order management

// CreateOrder opens a pending order for the user, dated today, and
// links it into the user's history. Order IDs come from a persisted
// sequence so they stay unique across restarts.
func (s *Store) CreateOrder(u *domain.User) *domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orderSeq++
	orderID := fmt.Sprintf("ORD-%d", s.orderSeq)
	o := domain.NewOrder(orderID, domain.DateOf(time.Now()))
	o.SetUserID(u.ID())

	s.orders[orderID] = o
	u.AddOrder(o)

	s.audit("Created order: %s for user: %s", orderID, u.Username())
	s.saveLocked()
	return o
}

// GetOrder returns the order with the given ID, or nil.
func (s *Store) GetOrder(orderID string) *domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders[orderID]
}

// AllOrders returns a copy of the order table keyed by ID.
func (s *Store) AllOrders() map[string]*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.orders)
}

// UpdateOrder re-saves an order that was mutated outside the store.
// The order must already exist in the table.
func (s *Store) UpdateOrder(o *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orderID := o.ID()
	if _, exists := s.orders[orderID]; !exists {
		return fmt.Errorf("order %q: %w", orderID, ErrOrderNotFound)
	}
	s.orders[orderID] = o
	s.audit("Updated order: %s", orderID)
	s.saveLocked()
	return nil
}

// AddTicketToOrder puts a registered ticket on an order. Confirmed
// orders reject the addition.
func (s *Store) AddTicketToOrder(orderID, ticketID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("order %q: %w", orderID, ErrOrderNotFound)
	}
	t, ok := s.tickets[ticketID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrTicketNotFound, ticketID)
	}
	if err := o.AddTicket(t); err != nil {
		return err
	}
	s.audit("Updated order: %s", orderID)
	s.saveLocked()
	return nil
}

// RemoveTicketFromOrder takes a ticket off an order. The boolean
// reports whether anything was removed; confirmed orders report false.
func (s *Store) RemoveTicketFromOrder(orderID, ticketID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return false, fmt.Errorf("order %q: %w", orderID, ErrOrderNotFound)
	}
	removed := o.RemoveTicket(ticketID)
	if removed {
		s.audit("Updated order: %s", orderID)
		s.saveLocked()
	}
	return removed, nil
}

// SetOrderPayment records the payment method on an order.
func (s *Store) SetOrderPayment(orderID string, m domain.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return fmt.Errorf("order %q: %w", orderID, ErrOrderNotFound)
	}
	if err := o.SetPaymentMethod(m); err != nil {
		return err
	}
	s.audit("Updated order: %s", orderID)
	s.saveLocked()
	return nil
}

// ConfirmOrder runs the order's confirmation rules. The boolean
// reports whether the order actually confirmed.
func (s *Store) ConfirmOrder(orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return false, fmt.Errorf("order %q: %w", orderID, ErrOrderNotFound)
	}
	confirmed := o.Confirm()
	if confirmed {
		s.audit("Updated order: %s", orderID)
		s.saveLocked()
	}
	return confirmed, nil
}

// CancelOrder runs the order's cancellation rules. The boolean reports
// whether the order actually cancelled.
func (s *Store) CancelOrder(orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return false, fmt.Errorf("order %q: %w", orderID, ErrOrderNotFound)
	}
	cancelled := o.Cancel()
	if cancelled {
		s.audit("Updated order: %s", orderID)
		s.saveLocked()
	}
	return cancelled, nil
}

// Catalog

// Races returns a copy of the race catalog keyed by race ID.
func (s *Store) Races() map[string]*domain.Race {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.races)
}

// Race returns the catalog race with the given ID, or nil.
func (s *Store) Race(raceID string) *domain.Race {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.races[raceID]
}

// Seasons returns a copy of the season catalog keyed by season ID.
func (s *Store) Seasons() map[string]*domain.Season {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.seasons)
}

// Season returns the catalog season with the given ID, or nil.
func (s *Store) Season(seasonID string) *domain.Season {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seasons[seasonID]
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
