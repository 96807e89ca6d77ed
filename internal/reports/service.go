package reports

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"grandprix/internal/booking"
	"grandprix/internal/domain"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrUserNotFound  = errors.New("user not found")
)

// reportDateFormat matches the long-form dates used in the exported
// documents, e.g. "02 January 2006".
const (
	reportDateFormat      = "02 January 2006"
	reportTimestampFormat = "02 January 2006 15:04:05"
)

type Service interface {
	SystemSummary() SystemSummaryResponse
	SalesReport() SalesReportResponse
	RenderOrderReport(orderID string) (string, error)
	RenderUserReport(username string) (string, error)
	RenderAllUsersReport() string
}

type service struct {
	store *booking.Store
}

func NewService(store *booking.Store) Service {
	return &service{store: store}
}

func (s *service) SystemSummary() SystemSummaryResponse {
	// Reports read the latest state other processes dropped into the
	// data directory.
	s.store.Load()

	return SystemSummaryResponse{
		Name:    s.store.Name(),
		Version: s.store.Version(),
		Summary: s.store.Summary(),
		Stats:   s.store.Stats(),
	}
}

// SalesReport aggregates the order book: counts by status, revenue
// from confirmed orders, and ticket usage.
func (s *service) SalesReport() SalesReportResponse {
	s.store.Load()

	resp := SalesReportResponse{}

	for _, o := range s.store.AllOrders() {
		resp.TotalOrders++
		switch o.Status() {
		case domain.StatusPending:
			resp.PendingOrders++
		case domain.StatusConfirmed:
			resp.ConfirmedOrders++
			resp.Revenue += o.TotalAmount()
			resp.TicketsSold += o.TicketCount()
		case domain.StatusCancelled:
			resp.CancelledOrders++
		}
	}

	for _, t := range s.store.AllTickets() {
		resp.TicketsRegistered++
		if t.IsUsed() {
			resp.TicketsUsed++
		}
	}

	return resp
}

// RenderOrderReport produces the printable order document: order and
// customer details, payment, and a block per ticket.
func (s *service) RenderOrderReport(orderID string) (string, error) {
	s.store.Load()

	order := s.store.GetOrder(orderID)
	if order == nil {
		return "", ErrOrderNotFound
	}
	owner := s.userByID(order.UserID())

	var b strings.Builder
	b.WriteString("===== GRAND PRIX EXPERIENCE - ORDER DETAILS =====\n\n")

	fmt.Fprintf(&b, "Order ID: %s\n", order.ID())
	fmt.Fprintf(&b, "Date: %s\n", order.Date().Format(reportDateFormat))
	fmt.Fprintf(&b, "Status: %s\n\n", order.Status())

	b.WriteString("CUSTOMER INFORMATION:\n")
	if owner != nil {
		fmt.Fprintf(&b, "Username: %s\n", owner.Username())
		fmt.Fprintf(&b, "User ID: %s\n", owner.ID())
		fmt.Fprintf(&b, "Email: %s\n", owner.Email())
		fmt.Fprintf(&b, "Phone: %s\n\n", orNotProvided(owner.Phone()))
	} else {
		b.WriteString("Username: Unknown\n\n")
	}

	b.WriteString("PAYMENT INFORMATION:\n")
	payment := "Not specified"
	if order.Payment() != "" {
		payment = string(order.Payment())
	}
	fmt.Fprintf(&b, "Payment Method: %s\n", payment)
	fmt.Fprintf(&b, "Total Amount: $%.2f\n\n", order.TotalAmount())

	b.WriteString("TICKETS PURCHASED:\n")
	tickets := order.Tickets()
	if len(tickets) == 0 {
		b.WriteString("No tickets in this order.\n")
	}
	for i, t := range tickets {
		fmt.Fprintf(&b, "\nTicket %d:\n", i+1)
		fmt.Fprintf(&b, "  ID: %s\n", t.ID())
		fmt.Fprintf(&b, "  Type: %s\n", ticketTypeLabel(t))
		fmt.Fprintf(&b, "  Price: $%.2f\n", t.CalculatePrice())
		fmt.Fprintf(&b, "  Date: %s\n", t.EventDate().Format(reportDateFormat))
		fmt.Fprintf(&b, "  Section: %s\n", t.VenueSection())
		fmt.Fprintf(&b, "  Used: %s\n", yesNo(t.IsUsed()))

		switch v := t.(type) {
		case *domain.SingleRaceTicket:
			fmt.Fprintf(&b, "  Race: %s\n", v.RaceName())
			fmt.Fprintf(&b, "  Category: %s\n", v.Category())
		case *domain.SeasonTicket:
			fmt.Fprintf(&b, "  Season Year: %d\n", v.SeasonYear())
			races := "None"
			if included := v.IncludedRaces(); len(included) > 0 {
				races = strings.Join(included, ", ")
			}
			fmt.Fprintf(&b, "  Races: %s\n", races)
		}
	}

	b.WriteString("\n===== END OF ORDER DETAILS =====\n")
	fmt.Fprintf(&b, "Generated: %s", time.Now().Format(reportTimestampFormat))

	return b.String(), nil
}

// RenderUserReport produces the printable account document: contact
// details, purchase summary totals, and the order history.
func (s *service) RenderUserReport(username string) (string, error) {
	s.store.Load()

	user := s.store.GetUser(username)
	if user == nil {
		return "", ErrUserNotFound
	}

	var b strings.Builder
	b.WriteString("===== GRAND PRIX EXPERIENCE - USER DATA =====\n\n")

	b.WriteString("USER INFORMATION:\n")
	fmt.Fprintf(&b, "User ID: %s\n", user.ID())
	fmt.Fprintf(&b, "Username: %s\n", user.Username())
	fmt.Fprintf(&b, "Email: %s\n", user.Email())
	fmt.Fprintf(&b, "Phone: %s\n\n", orNotProvided(user.Phone()))

	orders := user.Orders()
	totalSpent := 0.0
	totalTickets := 0
	for _, o := range orders {
		totalSpent += o.TotalAmount()
		totalTickets += o.TicketCount()
	}

	b.WriteString("PURCHASE SUMMARY:\n")
	fmt.Fprintf(&b, "Total Orders: %d\n", len(orders))
	fmt.Fprintf(&b, "Total Tickets Purchased: %d\n", totalTickets)
	fmt.Fprintf(&b, "Total Amount Spent: $%.2f\n\n", totalSpent)

	b.WriteString("ORDERS HISTORY:\n")
	if len(orders) == 0 {
		b.WriteString("No orders found for this user.\n")
	}
	for i, o := range orders {
		fmt.Fprintf(&b, "\nOrder %d:\n", i+1)
		fmt.Fprintf(&b, "  Order ID: %s\n", o.ID())
		fmt.Fprintf(&b, "  Date: %s\n", o.Date().Format(reportDateFormat))
		fmt.Fprintf(&b, "  Status: %s\n", o.Status())

		payment := "Not specified"
		if o.Payment() != "" {
			payment = string(o.Payment())
		}
		fmt.Fprintf(&b, "  Payment Method: %s\n", payment)
		fmt.Fprintf(&b, "  Total Amount: $%.2f\n", o.TotalAmount())

		tickets := o.Tickets()
		fmt.Fprintf(&b, "  Tickets in Order: %d\n", len(tickets))
		for j, t := range tickets {
			fmt.Fprintf(&b, "    Ticket %d: %s - ", j+1, t.ID())
			switch v := t.(type) {
			case *domain.SingleRaceTicket:
				fmt.Fprintf(&b, "%s (%s)\n", v.RaceName(), v.Category())
			case *domain.SeasonTicket:
				fmt.Fprintf(&b, "Season %d (%d races)\n", v.SeasonYear(), len(v.IncludedRaces()))
			default:
				b.WriteString("Standard Ticket\n")
			}
		}
	}

	b.WriteString("\n===== END OF USER DATA =====\n")
	fmt.Fprintf(&b, "Generated: %s", time.Now().Format(reportTimestampFormat))

	return b.String(), nil
}

// RenderAllUsersReport produces the customer roster with per-account
// purchase totals. Admin accounts are left out.
func (s *service) RenderAllUsersReport() string {
	s.store.Load()

	all := s.store.AllUsers()
	names := make([]string, 0, len(all))
	for name, u := range all {
		if u.IsAdmin() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("===== GRAND PRIX EXPERIENCE - ALL USERS DATA =====\n\n")
	fmt.Fprintf(&b, "Total Users: %d\n\n", len(names))

	for i, name := range names {
		user := all[name]
		fmt.Fprintf(&b, "USER %d:\n", i+1)
		fmt.Fprintf(&b, "User ID: %s\n", user.ID())
		fmt.Fprintf(&b, "Username: %s\n", name)
		fmt.Fprintf(&b, "Email: %s\n", user.Email())
		fmt.Fprintf(&b, "Phone: %s\n", orNotProvided(user.Phone()))

		orders := user.Orders()
		totalSpent := 0.0
		totalTickets := 0
		for _, o := range orders {
			totalSpent += o.TotalAmount()
			totalTickets += o.TicketCount()
		}
		fmt.Fprintf(&b, "Total Orders: %d\n", len(orders))
		fmt.Fprintf(&b, "Total Tickets: %d\n", totalTickets)
		fmt.Fprintf(&b, "Total Spent: $%.2f\n\n", totalSpent)
	}

	b.WriteString("\n===== END OF ALL USERS DATA =====\n")
	fmt.Fprintf(&b, "Generated: %s", time.Now().Format(reportTimestampFormat))

	return b.String()
}

func (s *service) userByID(userID string) *domain.User {
	for _, u := range s.store.AllUsers() {
		if u.ID() == userID {
			return u
		}
	}
	return nil
}

func ticketTypeLabel(t domain.Ticket) string {
	if t.Kind() == domain.KindSeason {
		return "Season"
	}
	return "Single Race"
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
