package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRecord_RoundTrip_SingleRace(t *testing.T) {
	original, err := NewSingleRaceTicket("TKT-1", 200, Date(2026, time.June, 15), "Main Grandstand", "Monaco Grand Prix", CategoryPremium)
	require.NoError(t, err)
	original.SetUsed(true)
	original.SetCreatedBy("boss")

	rebuilt, err := TicketFromRecord(SnapshotTicket(original))
	require.NoError(t, err)

	single, ok := rebuilt.(*SingleRaceTicket)
	require.True(t, ok)
	assert.Equal(t, "TKT-1", rebuilt.ID())
	assert.Equal(t, "Monaco Grand Prix", single.RaceName())
	assert.Equal(t, CategoryPremium, single.Category())
	assert.True(t, rebuilt.IsUsed())
	assert.Equal(t, "boss", rebuilt.CreatedBy())
	assert.InDelta(t, original.CalculatePrice(), rebuilt.CalculatePrice(), 1e-9)
	assert.True(t, original.EventDate().Equal(rebuilt.EventDate()))
}

func TestTicketRecord_RoundTrip_Season(t *testing.T) {
	races := []string{"Monaco", "Silverstone", "Monza", "Singapore", "Abu Dhabi"}
	dates := []time.Time{
		Date(2026, time.May, 25),
		Date(2026, time.July, 7),
		Date(2026, time.September, 1),
		Date(2026, time.September, 21),
		Date(2026, time.December, 1),
	}
	original, err := NewSeasonTicket("TKT-2", 1000, Date(2026, time.January, 1), "VIP Lounge", 2026, races, dates)
	require.NoError(t, err)

	rebuilt, err := TicketFromRecord(SnapshotTicket(original))
	require.NoError(t, err)

	season, ok := rebuilt.(*SeasonTicket)
	require.True(t, ok)
	assert.Equal(t, 2026, season.SeasonYear())
	assert.Equal(t, races, season.IncludedRaces())
	assert.InDelta(t, 900.0, rebuilt.CalculatePrice(), 1e-9, "five races keep their discount tier")
}

func TestTicketRecord_UnknownKind(t *testing.T) {
	_, err := TicketFromRecord(TicketRecord{Kind: "Weekend", ID: "TKT-1"})
	assert.ErrorIs(t, err, ErrUnknownTicketKind)
}

func TestUserRecord_RoundTrip(t *testing.T) {
	original, err := NewUser("USR-1", "alice", "secret123", "alice@example.com", "555-0101")
	require.NoError(t, err)
	original.AddOrder(NewOrder("ORD-1", Date(2026, time.March, 1)))

	record := SnapshotUser(original)
	assert.Equal(t, []string{"ORD-1"}, record.OrderIDs)

	rebuilt := UserFromRecord(record)
	assert.Equal(t, "USR-1", rebuilt.ID())
	assert.Equal(t, "alice", rebuilt.Username())
	assert.Equal(t, "alice@example.com", rebuilt.Email())
	assert.True(t, rebuilt.VerifyPassword("secret123"), "the stored hash must keep working")
	assert.False(t, rebuilt.IsAdmin())
	assert.Empty(t, rebuilt.Orders(), "order links are rebuilt by the store, not the record")
}

func TestUserRecord_RoundTrip_Admin(t *testing.T) {
	original, err := NewAdmin("ADM-1", "boss", "secret123", "boss@example.com", 3, "Operations", "")
	require.NoError(t, err)

	rebuilt := UserFromRecord(SnapshotUser(original))
	require.True(t, rebuilt.IsAdmin())
	assert.Equal(t, 3, rebuilt.AdminLevel())
	assert.Equal(t, "Operations", rebuilt.Department())
}

func TestOrderRecord_RoundTrip_PrefersResolvedTickets(t *testing.T) {
	ticket, err := NewSingleRaceTicket("TKT-1", 100, Date(2026, time.June, 15), "Grandstand", "Monaco Grand Prix", CategoryPremium)
	require.NoError(t, err)

	order := NewOrder("ORD-1", Date(2026, time.March, 1))
	order.SetUserID("USR-1")
	require.NoError(t, order.AddTicket(ticket))
	require.NoError(t, order.SetPaymentMethod(PaymentCreditCard))
	require.True(t, order.Confirm())

	registry := map[string]Ticket{"TKT-1": ticket}
	rebuilt, err := OrderFromRecord(SnapshotOrder(order), func(id string) (Ticket, bool) {
		t, ok := registry[id]
		return t, ok
	})
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, rebuilt.Status())
	assert.Equal(t, PaymentCreditCard, rebuilt.Payment())
	assert.Equal(t, "USR-1", rebuilt.UserID())
	assert.InDelta(t, 120.0, rebuilt.TotalAmount(), 1e-9)
	require.Len(t, rebuilt.Tickets(), 1)
	assert.Same(t, ticket, rebuilt.Tickets()[0], "resolved orders share the registry instance")
}

func TestOrderRecord_RoundTrip_EmbeddedFallback(t *testing.T) {
	ticket, err := NewSingleRaceTicket("TKT-1", 100, Date(2026, time.June, 15), "Grandstand", "Monaco Grand Prix", CategoryEconomy)
	require.NoError(t, err)

	order := NewOrder("ORD-1", Date(2026, time.March, 1))
	require.NoError(t, order.AddTicket(ticket))

	// No resolver: the embedded record must carry the order on its own.
	rebuilt, err := OrderFromRecord(SnapshotOrder(order), nil)
	require.NoError(t, err)

	require.Len(t, rebuilt.Tickets(), 1)
	assert.NotSame(t, ticket, rebuilt.Tickets()[0])
	assert.Equal(t, "TKT-1", rebuilt.Tickets()[0].ID())
	assert.InDelta(t, 90.0, rebuilt.TotalAmount(), 1e-9)
}

func TestOrderRecord_InvalidStatus(t *testing.T) {
	_, err := OrderFromRecord(OrderRecord{ID: "ORD-1", Status: "Shipped"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
}
