package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of an order. Orders start
// Pending; confirmed orders can still be cancelled, cancelled orders
// are terminal.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusConfirmed OrderStatus = "Confirmed"
	StatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// PaymentMethod is the payment instrument recorded on an order. No
// actual payment processing happens anywhere; the method is bookkeeping
// that gates confirmation.
type PaymentMethod string

const (
	PaymentCreditCard    PaymentMethod = "Credit Card"
	PaymentDebitCard     PaymentMethod = "Debit Card"
	PaymentDigitalWallet PaymentMethod = "Digital Wallet"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentDigitalWallet:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

var (
	ErrOrderConfirmed       = errors.New("cannot add tickets to a confirmed order")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
)

// Order is a collection of tickets moving through the
// Pending -> Confirmed | Cancelled lifecycle. The total amount is
// recomputed on every ticket mutation and is always the sum of the
// contained tickets' calculated prices.
//
// Confirm and Cancel report refusals as booleans rather than errors:
// a false return means the business rules said no, not that something
// broke.
type Order struct {
	id      string
	date    time.Time
	status  OrderStatus
	total   float64
	payment PaymentMethod
	tickets []Ticket
	userID  string
}

// NewOrder creates a pending, empty order.
func NewOrder(id string, date time.Time) *Order {
	return &Order{
		id:     id,
		date:   date,
		status: StatusPending,
	}
}

func (o *Order) ID() string { return o.id }

func (o *Order) Date() time.Time { return o.date }

func (o *Order) Status() OrderStatus { return o.status }

// TotalAmount is the sum of the calculated prices of the contained
// tickets.
func (o *Order) TotalAmount() float64 { return o.total }

func (o *Order) Payment() PaymentMethod { return o.payment }

// SetPaymentMethod records the payment instrument. Only the known
// methods are accepted.
func (o *Order) SetPaymentMethod(m PaymentMethod) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, m)
	}
	o.payment = m
	return nil
}

// UserID is the stable account ID of the order's owner.
func (o *Order) UserID() string { return o.userID }

func (o *Order) SetUserID(id string) { o.userID = id }

// Tickets returns a copy of the contained tickets in insertion order.
func (o *Order) Tickets() []Ticket {
	return append([]Ticket(nil), o.tickets...)
}

// TicketCount avoids copying when only the size matters.
func (o *Order) TicketCount() int { return len(o.tickets) }

// AddTicket appends a ticket and recomputes the total. Confirmed
// orders are immutable and reject the addition; duplicates are not
// checked here.
func (o *Order) AddTicket(t Ticket) error {
	if o.status == StatusConfirmed {
		return ErrOrderConfirmed
	}
	o.tickets = append(o.tickets, t)
	o.total = o.CalculateTotal()
	return nil
}

// RemoveTicket removes the first ticket with the given ID and
// recomputes the total. It reports whether a ticket was removed;
// confirmed orders always report false.
func (o *Order) RemoveTicket(ticketID string) bool {
	if o.status == StatusConfirmed {
		return false
	}
	for i, t := range o.tickets {
		if t.ID() == ticketID {
			o.tickets = append(o.tickets[:i], o.tickets[i+1:]...)
			o.total = o.CalculateTotal()
			return true
		}
	}
	return false
}

// CalculateTotal sums the calculated prices of the contained tickets.
func (o *Order) CalculateTotal() float64 {
	var total float64
	for _, t := range o.tickets {
		total += t.CalculatePrice()
	}
	return total
}

// Confirm moves a pending order to Confirmed. It refuses when the
// order is empty, has no payment method, or is not pending.
func (o *Order) Confirm() bool {
	if o.status != StatusPending {
		return false
	}
	if len(o.tickets) == 0 {
		return false
	}
	if o.payment == "" {
		return false
	}
	o.status = StatusConfirmed
	return true
}

// Cancel moves an order to Cancelled. It refuses when any contained
// ticket has been used or any ticket's event date has already passed;
// already cancelled orders refuse too.
func (o *Order) Cancel() bool {
	if o.status == StatusCancelled {
		return false
	}
	for _, t := range o.tickets {
		if t.IsUsed() {
			return false
		}
	}
	for _, t := range o.tickets {
		if beforeToday(t.EventDate()) {
			return false
		}
	}
	o.status = StatusCancelled
	return true
}

// beforeToday compares calendar dates, ignoring the time of day: an
// event earlier today does not count as past.
func beforeToday(d time.Time) bool {
	now := time.Now()
	if d.Year() != now.Year() {
		return d.Year() < now.Year()
	}
	if d.Month() != now.Month() {
		return d.Month() < now.Month()
	}
	return d.Day() < now.Day()
}

func (o *Order) Summary() string {
	return fmt.Sprintf("Order #%s, Status: %s, Total: $%.2f, Tickets: %d",
		o.id, o.status, o.total, len(o.tickets))
}
