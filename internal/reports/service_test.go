package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grandprix/internal/booking"
	"grandprix/internal/domain"
)

// reportFixture builds a small but complete order book: a confirmed
// order with a used race ticket, a pending order holding a season pass,
// and a cancelled empty order.
func reportFixture(t *testing.T) (Service, *booking.Store) {
	t.Helper()
	store, err := booking.Open(booking.Config{DataDir: t.TempDir()})
	require.NoError(t, err)

	alice, err := store.CreateUser("USR-A", "alice", "secret123", "alice@example.com", "555-0101")
	require.NoError(t, err)
	bob, err := store.CreateUser("USR-B", "bob", "secret123", "bob@example.com", "")
	require.NoError(t, err)

	admin := store.GetAdmin("admin")
	require.NotNil(t, admin)

	race, err := admin.MintTicket(domain.TicketSpec{
		Kind:         domain.KindSingleRace,
		ID:           "TKT-1",
		BasePrice:    200,
		EventDate:    domain.Date(2027, time.June, 15),
		VenueSection: "Main Grandstand",
		RaceName:     "Monaco Grand Prix",
		RaceCategory: domain.CategoryPremium,
	})
	require.NoError(t, err)
	require.NoError(t, store.RegisterTicket(race))

	season, err := admin.MintTicket(domain.TicketSpec{
		Kind:          domain.KindSeason,
		ID:            "TKT-S",
		BasePrice:     1000,
		EventDate:     domain.Date(2027, time.January, 1),
		VenueSection:  "VIP Lounge",
		SeasonYear:    2027,
		IncludedRaces: []string{"Monaco", "Silverstone", "Monza", "Singapore", "Abu Dhabi"},
		RaceDates: []time.Time{
			domain.Date(2027, time.May, 25),
			domain.Date(2027, time.July, 7),
			domain.Date(2027, time.September, 1),
			domain.Date(2027, time.September, 21),
			domain.Date(2027, time.December, 1),
		},
	})
	require.NoError(t, err)
	require.NoError(t, store.RegisterTicket(season))

	confirmed := store.CreateOrder(alice)
	require.NoError(t, store.AddTicketToOrder(confirmed.ID(), "TKT-1"))
	require.NoError(t, store.SetOrderPayment(confirmed.ID(), domain.PaymentCreditCard))
	ok, err := store.ConfirmOrder(confirmed.ID())
	require.NoError(t, err)
	require.True(t, ok)
	_, err = store.ToggleTicketUsed("TKT-1")
	require.NoError(t, err)

	pending := store.CreateOrder(bob)
	require.NoError(t, store.AddTicketToOrder(pending.ID(), "TKT-S"))

	cancelled := store.CreateOrder(alice)
	ok, err = store.CancelOrder(cancelled.ID())
	require.NoError(t, err)
	require.True(t, ok)

	return NewService(store), store
}

func TestSystemSummary(t *testing.T) {
	svc, _ := reportFixture(t)

	summary := svc.SystemSummary()
	assert.Equal(t, "Grand Prix Experience", summary.Name)
	assert.Equal(t, "1.0", summary.Version)
	assert.Equal(t, "BookingSystem: Grand Prix Experience v1.0, Users: 3, Orders: 3, Tickets: 2", summary.Summary)
	assert.Equal(t, 3, summary.Stats.Users)
	assert.Equal(t, 1, summary.Stats.Admins)
	assert.Equal(t, 2, summary.Stats.Tickets)
	assert.Equal(t, 3, summary.Stats.Orders)
}

func TestSalesReport(t *testing.T) {
	svc, _ := reportFixture(t)

	sales := svc.SalesReport()
	assert.Equal(t, 3, sales.TotalOrders)
	assert.Equal(t, 1, sales.PendingOrders)
	assert.Equal(t, 1, sales.ConfirmedOrders)
	assert.Equal(t, 1, sales.CancelledOrders)
	assert.InDelta(t, 240.0, sales.Revenue, 1e-9, "only confirmed orders count as revenue")
	assert.Equal(t, 1, sales.TicketsSold)
	assert.Equal(t, 2, sales.TicketsRegistered)
	assert.Equal(t, 1, sales.TicketsUsed)
}

func TestRenderOrderReport(t *testing.T) {
	svc, store := reportFixture(t)
	order := store.GetOrder("ORD-1")
	require.NotNil(t, order)

	out, err := svc.RenderOrderReport("ORD-1")
	require.NoError(t, err)

	assert.Contains(t, out, "===== GRAND PRIX EXPERIENCE - ORDER DETAILS =====")
	assert.Contains(t, out, "Order ID: ORD-1\n")
	assert.Contains(t, out, "Date: "+order.Date().Format("02 January 2006")+"\n")
	assert.Contains(t, out, "Status: Confirmed\n")

	assert.Contains(t, out, "CUSTOMER INFORMATION:\nUsername: alice\nUser ID: USR-A\nEmail: alice@example.com\nPhone: 555-0101\n")

	assert.Contains(t, out, "PAYMENT INFORMATION:\nPayment Method: Credit Card\nTotal Amount: $240.00\n")

	assert.Contains(t, out, "TICKETS PURCHASED:")
	assert.Contains(t, out, "\nTicket 1:\n  ID: TKT-1\n  Type: Single Race\n  Price: $240.00\n  Date: 15 June 2027\n  Section: Main Grandstand\n  Used: Yes\n  Race: Monaco Grand Prix\n  Category: Premium\n")

	assert.Contains(t, out, "===== END OF ORDER DETAILS =====")
	assert.Regexp(t, `Generated: \d{2} [A-Z][a-z]+ \d{4} \d{2}:\d{2}:\d{2}$`, out)
}

func TestRenderOrderReport_SeasonTicketBlock(t *testing.T) {
	svc, _ := reportFixture(t)

	out, err := svc.RenderOrderReport("ORD-2")
	require.NoError(t, err)

	assert.Contains(t, out, "Status: Pending\n")
	assert.Contains(t, out, "Payment Method: Not specified\n")
	assert.Contains(t, out, "  Type: Season\n")
	assert.Contains(t, out, "  Season Year: 2027\n")
	assert.Contains(t, out, "  Races: Monaco, Silverstone, Monza, Singapore, Abu Dhabi\n")
}

func TestRenderOrderReport_EmptyOrder(t *testing.T) {
	svc, _ := reportFixture(t)

	out, err := svc.RenderOrderReport("ORD-3")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: Cancelled\n")
	assert.Contains(t, out, "No tickets in this order.\n")
}

func TestRenderOrderReport_UnknownOwner(t *testing.T) {
	svc, store := reportFixture(t)
	store.GetOrder("ORD-1").SetUserID("USR-GONE")

	out, err := svc.RenderOrderReport("ORD-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Username: Unknown\n")
}

func TestRenderOrderReport_UnknownOrder(t *testing.T) {
	svc, _ := reportFixture(t)

	_, err := svc.RenderOrderReport("ORD-404")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestRenderUserReport(t *testing.T) {
	svc, _ := reportFixture(t)

	out, err := svc.RenderUserReport("alice")
	require.NoError(t, err)

	assert.Contains(t, out, "===== GRAND PRIX EXPERIENCE - USER DATA =====")
	assert.Contains(t, out, "USER INFORMATION:\nUser ID: USR-A\nUsername: alice\nEmail: alice@example.com\nPhone: 555-0101\n")
	assert.Contains(t, out, "PURCHASE SUMMARY:\nTotal Orders: 2\nTotal Tickets Purchased: 1\nTotal Amount Spent: $240.00\n")
	assert.Contains(t, out, "\nOrder 1:\n  Order ID: ORD-1\n")
	assert.Contains(t, out, "  Status: Confirmed\n  Payment Method: Credit Card\n  Total Amount: $240.00\n  Tickets in Order: 1\n")
	assert.Contains(t, out, "    Ticket 1: TKT-1 - Monaco Grand Prix (Premium)\n")
	assert.Contains(t, out, "\nOrder 2:\n  Order ID: ORD-3\n")
	assert.Contains(t, out, "===== END OF USER DATA =====")
}

func TestRenderUserReport_SeasonLine(t *testing.T) {
	svc, _ := reportFixture(t)

	out, err := svc.RenderUserReport("bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Phone: Not provided\n")
	assert.Contains(t, out, "    Ticket 1: TKT-S - Season 2027 (5 races)\n")
}

func TestRenderUserReport_NoOrders(t *testing.T) {
	svc, store := reportFixture(t)
	_, err := store.CreateUser("USR-C", "carol", "secret123", "carol@example.com", "")
	require.NoError(t, err)

	out, err := svc.RenderUserReport("carol")
	require.NoError(t, err)
	assert.Contains(t, out, "No orders found for this user.\n")

	_, err = svc.RenderUserReport("nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRenderAllUsersReport(t *testing.T) {
	svc, _ := reportFixture(t)

	out := svc.RenderAllUsersReport()

	assert.Contains(t, out, "===== GRAND PRIX EXPERIENCE - ALL USERS DATA =====")
	assert.Contains(t, out, "Total Users: 2\n", "admin accounts stay out of the roster")
	assert.NotContains(t, out, "Username: admin")
	assert.Contains(t, out, "USER 1:\nUser ID: USR-A\nUsername: alice\n")
	assert.Contains(t, out, "Total Orders: 2\nTotal Tickets: 1\nTotal Spent: $240.00\n")
	assert.Contains(t, out, "USER 2:\nUser ID: USR-B\nUsername: bob\n")
	assert.Contains(t, out, "===== END OF ALL USERS DATA =====")
}
