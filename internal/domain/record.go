package domain

import (
	"fmt"
	"time"
)

// Snapshot records are the serialized form of the domain entities.
// Entities hold pointers into one shared object graph; records flatten
// those links into IDs (users carry order IDs, orders carry embedded
// ticket records) so each collection file stands on its own. The
// booking store stitches the graph back together after loading.

// TicketRecord is the kind-tagged snapshot of a ticket. Only the
// fields of the recorded kind are populated.
type TicketRecord struct {
	Kind         TicketKind `cbor:"kind"`
	ID           string     `cbor:"id"`
	BasePrice    float64    `cbor:"base_price"`
	EventDate    time.Time  `cbor:"event_date"`
	VenueSection string     `cbor:"venue_section"`
	Used         bool       `cbor:"used,omitempty"`
	CreatedBy    string     `cbor:"created_by,omitempty"`

	RaceName     string       `cbor:"race_name,omitempty"`
	RaceCategory RaceCategory `cbor:"race_category,omitempty"`

	SeasonYear    int         `cbor:"season_year,omitempty"`
	IncludedRaces []string    `cbor:"included_races,omitempty"`
	RaceDates     []time.Time `cbor:"race_dates,omitempty"`
}

// SnapshotTicket flattens a ticket into its record form.
func SnapshotTicket(t Ticket) TicketRecord {
	r := TicketRecord{
		Kind:         t.Kind(),
		ID:           t.ID(),
		BasePrice:    t.BasePrice(),
		EventDate:    t.EventDate(),
		VenueSection: t.VenueSection(),
		Used:         t.IsUsed(),
		CreatedBy:    t.CreatedBy(),
	}
	switch v := t.(type) {
	case *SingleRaceTicket:
		r.RaceName = v.RaceName()
		r.RaceCategory = v.Category()
	case *SeasonTicket:
		r.SeasonYear = v.SeasonYear()
		r.IncludedRaces = v.IncludedRaces()
		r.RaceDates = v.RaceDates()
	}
	return r
}

// TicketFromRecord rebuilds the concrete ticket a record describes.
func TicketFromRecord(r TicketRecord) (Ticket, error) {
	var (
		t   Ticket
		err error
	)
	switch r.Kind {
	case KindSingleRace:
		t, err = NewSingleRaceTicket(r.ID, r.BasePrice, r.EventDate, r.VenueSection, r.RaceName, r.RaceCategory)
	case KindSeason:
		t, err = NewSeasonTicket(r.ID, r.BasePrice, r.EventDate, r.VenueSection, r.SeasonYear, r.IncludedRaces, r.RaceDates)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTicketKind, r.Kind)
	}
	if err != nil {
		return nil, err
	}
	t.SetUsed(r.Used)
	t.SetCreatedBy(r.CreatedBy)
	return t, nil
}

// UserRecord is the snapshot of a user or admin account. Admins are
// users with the admin fields set; the order history is recorded as
// IDs only.
type UserRecord struct {
	ID           string `cbor:"id"`
	Username     string `cbor:"username"`
	PasswordHash string `cbor:"password_hash"`
	Email        string `cbor:"email"`
	Phone        string `cbor:"phone,omitempty"`

	IsAdmin    bool   `cbor:"is_admin,omitempty"`
	AdminLevel int    `cbor:"admin_level,omitempty"`
	Department string `cbor:"department,omitempty"`

	OrderIDs []string `cbor:"order_ids,omitempty"`
}

// SnapshotUser flattens an account into its record form.
func SnapshotUser(u *User) UserRecord {
	r := UserRecord{
		ID:           u.id,
		Username:     u.username,
		PasswordHash: u.passwordHash,
		Email:        u.email,
		Phone:        u.phone,
	}
	if u.admin != nil {
		r.IsAdmin = true
		r.AdminLevel = u.admin.Level
		r.Department = u.admin.Department
	}
	for _, o := range u.orders {
		r.OrderIDs = append(r.OrderIDs, o.ID())
	}
	return r
}

// UserFromRecord rebuilds an account from its snapshot. The password
// hash is adopted verbatim and no creation-time validation reruns;
// order links are left empty for the store to rebuild.
func UserFromRecord(r UserRecord) *User {
	u := &User{
		id:           r.ID,
		username:     r.Username,
		passwordHash: r.PasswordHash,
		email:        r.Email,
		phone:        r.Phone,
	}
	if r.IsAdmin {
		u.admin = &AdminProfile{Level: r.AdminLevel, Department: r.Department}
	}
	return u
}

// OrderRecord is the snapshot of an order. Tickets are embedded as
// records so an orders file is readable even when the tickets file is
// missing or stale.
type OrderRecord struct {
	ID      string         `cbor:"id"`
	Date    time.Time      `cbor:"date"`
	Status  OrderStatus    `cbor:"status"`
	Total   float64        `cbor:"total"`
	Payment PaymentMethod  `cbor:"payment,omitempty"`
	UserID  string         `cbor:"user_id"`
	Tickets []TicketRecord `cbor:"tickets"`
}

// SnapshotOrder flattens an order into its record form.
func SnapshotOrder(o *Order) OrderRecord {
	r := OrderRecord{
		ID:      o.id,
		Date:    o.date,
		Status:  o.status,
		Total:   o.total,
		Payment: o.payment,
		UserID:  o.userID,
	}
	for _, t := range o.tickets {
		r.Tickets = append(r.Tickets, SnapshotTicket(t))
	}
	return r
}

// OrderFromRecord rebuilds an order. When resolve is non-nil and knows
// a ticket ID, the resolved instance is linked so the order shares the
// registry's ticket objects; otherwise the embedded record is
// materialized. The total is recomputed from the linked tickets.
func OrderFromRecord(r OrderRecord, resolve func(id string) (Ticket, bool)) (*Order, error) {
	if !r.Status.IsValid() {
		return nil, fmt.Errorf("invalid order status %q", r.Status)
	}
	o := &Order{
		id:      r.ID,
		date:    r.Date,
		status:  r.Status,
		payment: r.Payment,
		userID:  r.UserID,
	}
	for _, tr := range r.Tickets {
		if resolve != nil {
			if t, ok := resolve(tr.ID); ok {
				o.tickets = append(o.tickets, t)
				continue
			}
		}
		t, err := TicketFromRecord(tr)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", r.ID, err)
		}
		o.tickets = append(o.tickets, t)
	}
	o.total = o.CalculateTotal()
	return o, nil
}
