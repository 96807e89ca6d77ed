package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEventDate() time.Time {
	return Date(2026, time.June, 15)
}

func TestSingleRaceTicket_CalculatePrice(t *testing.T) {
	cases := []struct {
		name     string
		category RaceCategory
		base     float64
		want     float64
	}{
		{"premium pays 20 percent over base", CategoryPremium, 100, 120},
		{"standard pays base", CategoryStandard, 100, 100},
		{"economy pays 10 percent under base", CategoryEconomy, 100, 90},
		{"zero base stays zero", CategoryPremium, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticket, err := NewSingleRaceTicket("TKT-1", tc.base, testEventDate(), "Grandstand", "Monaco Grand Prix", tc.category)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, ticket.CalculatePrice(), 1e-9)
		})
	}
}

func TestSingleRaceTicket_Validation(t *testing.T) {
	_, err := NewSingleRaceTicket("TKT-1", -1, testEventDate(), "Grandstand", "Monaco Grand Prix", CategoryStandard)
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewSingleRaceTicket("TKT-1", 100, testEventDate(), "Grandstand", "", CategoryStandard)
	assert.ErrorIs(t, err, ErrRaceNameRequired)

	_, err = NewSingleRaceTicket("TKT-1", 100, testEventDate(), "Grandstand", "   ", CategoryStandard)
	assert.ErrorIs(t, err, ErrRaceNameRequired)

	_, err = NewSingleRaceTicket("TKT-1", 100, testEventDate(), "Grandstand", "Monaco Grand Prix", RaceCategory("VIP"))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestSingleRaceTicket_EmptyCategoryDefaultsToStandard(t *testing.T) {
	ticket, err := NewSingleRaceTicket("TKT-1", 100, testEventDate(), "Grandstand", "Monaco Grand Prix", "")
	require.NoError(t, err)
	assert.Equal(t, CategoryStandard, ticket.Category())
	assert.InDelta(t, 100.0, ticket.CalculatePrice(), 1e-9)
}

func TestTicket_SetBasePrice(t *testing.T) {
	ticket, err := NewSingleRaceTicket("TKT-1", 100, testEventDate(), "Grandstand", "Monaco Grand Prix", CategoryPremium)
	require.NoError(t, err)

	require.NoError(t, ticket.SetBasePrice(250))
	assert.InDelta(t, 300.0, ticket.CalculatePrice(), 1e-9)

	err = ticket.SetBasePrice(-0.01)
	assert.ErrorIs(t, err, ErrNegativePrice)
	assert.InDelta(t, 250.0, ticket.BasePrice(), 1e-9, "rejected price must not stick")
}

func TestSeasonTicket_CalculatePrice_Tiers(t *testing.T) {
	cases := []struct {
		races int
		want  float64
	}{
		{0, 1000},
		{4, 1000},
		{5, 900},
		{9, 900},
		{10, 800},
		{14, 800},
		{15, 700},
		{24, 700},
	}

	for _, tc := range cases {
		races := make([]string, tc.races)
		for i := range races {
			races[i] = "Race"
		}
		ticket, err := NewSeasonTicket("TKT-S", 1000, testEventDate(), "VIP Lounge", 2026, races, nil)
		require.NoError(t, err)
		assert.InDeltaf(t, tc.want, ticket.CalculatePrice(), 1e-9, "%d races", tc.races)
	}
}

func TestSeasonTicket_CopiesRaceLists(t *testing.T) {
	races := []string{"Monaco", "Monza"}
	dates := []time.Time{Date(2026, time.May, 25), Date(2026, time.September, 1)}

	ticket, err := NewSeasonTicket("TKT-S", 1000, testEventDate(), "VIP Lounge", 2026, races, dates)
	require.NoError(t, err)

	races[0] = "changed"
	got := ticket.IncludedRaces()
	assert.Equal(t, "Monaco", got[0], "constructor must copy the caller's slice")

	got[1] = "changed"
	assert.Equal(t, "Monza", ticket.IncludedRaces()[1], "getter must return a copy")
}

func TestMintTicket_Defaults(t *testing.T) {
	admin, err := NewAdmin("ADM-1", "boss", "secret123", "boss@example.com", 2, "Operations", "")
	require.NoError(t, err)

	// Empty category falls back to Standard.
	ticket, err := admin.MintTicket(TicketSpec{
		Kind:      KindSingleRace,
		ID:        "TKT-1",
		BasePrice: 100,
		EventDate: testEventDate(),
		RaceName:  "Monaco Grand Prix",
	})
	require.NoError(t, err)
	single, ok := ticket.(*SingleRaceTicket)
	require.True(t, ok)
	assert.Equal(t, CategoryStandard, single.Category())
	assert.Equal(t, "boss", ticket.CreatedBy())

	// Zero season year falls back to the event date's year.
	ticket, err = admin.MintTicket(TicketSpec{
		Kind:      KindSeason,
		ID:        "TKT-2",
		BasePrice: 1000,
		EventDate: Date(2027, time.January, 1),
	})
	require.NoError(t, err)
	season, ok := ticket.(*SeasonTicket)
	require.True(t, ok)
	assert.Equal(t, 2027, season.SeasonYear())
}

func TestMintTicket_UnknownKind(t *testing.T) {
	admin, err := NewAdmin("ADM-1", "boss", "secret123", "boss@example.com", 2, "Operations", "")
	require.NoError(t, err)

	_, err = admin.MintTicket(TicketSpec{Kind: "Weekend", ID: "TKT-1", BasePrice: 10, EventDate: testEventDate()})
	assert.ErrorIs(t, err, ErrUnknownTicketKind)
}

func TestTicket_Summary(t *testing.T) {
	single, err := NewSingleRaceTicket("TKT-1", 200, Date(2026, time.June, 15), "Main Grandstand", "Monaco Grand Prix", CategoryPremium)
	require.NoError(t, err)
	assert.Equal(t,
		"Ticket ID: TKT-1, Price: $200.00, Date: 2026-06-15, Section: Main Grandstand, Race: Monaco Grand Prix, Category: Premium",
		single.Summary())

	season, err := NewSeasonTicket("TKT-2", 1000, Date(2026, time.January, 1), "VIP Lounge", 2026, nil, nil)
	require.NoError(t, err)
	assert.Equal(t,
		"Ticket ID: TKT-2, Price: $1000.00, Date: 2026-01-01, Section: VIP Lounge, Year: 2026, Races: None",
		season.Summary())
}
