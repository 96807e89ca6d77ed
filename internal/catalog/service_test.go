package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grandprix/internal/booking"
)

func newCatalogService(t *testing.T) Service {
	t.Helper()
	store, err := booking.Open(booking.Config{DataDir: t.TempDir(), SeedCatalog: true})
	require.NoError(t, err)
	return NewService(store)
}

func TestListRaces_SortedLineup(t *testing.T) {
	svc := newCatalogService(t)

	races := svc.ListRaces()
	require.Len(t, races, 5)
	for i, race := range races {
		assert.Equal(t, fmt.Sprintf("R%03d", i+1), race.ID)
	}

	monaco := races[0]
	assert.Equal(t, "Monaco Grand Prix", monaco.Name)
	assert.Equal(t, "Circuit de Monaco", monaco.Venue)
	assert.InDelta(t, 300.0, monaco.Price, 1e-9)
	assert.Equal(t, "Premium", monaco.Category)
	assert.True(t, monaco.Date.After(time.Now()), "seeded races are upcoming")
}

func TestGetRace(t *testing.T) {
	svc := newCatalogService(t)

	race, err := svc.GetRace("R003")
	require.NoError(t, err)
	assert.Equal(t, "Italian Grand Prix", race.Name)
	assert.Equal(t, "Economy", race.Category)

	_, err = svc.GetRace("R999")
	assert.ErrorIs(t, err, ErrRaceNotFound)
}

func TestListSeasons(t *testing.T) {
	svc := newCatalogService(t)

	seasons := svc.ListSeasons()
	require.Len(t, seasons, 1)

	season := seasons[0]
	year := time.Now().Year()
	assert.Equal(t, fmt.Sprintf("S%d", year), season.ID)
	assert.Equal(t, year, season.Year)
	assert.Equal(t, 5, season.RaceCount)
	assert.Len(t, season.Races, 5)
	assert.Contains(t, season.Races, "Monaco Grand Prix")
	assert.InDelta(t, 1200.0, season.Price, 1e-9)
}

func TestGetSeason(t *testing.T) {
	svc := newCatalogService(t)

	id := fmt.Sprintf("S%d", time.Now().Year())
	season, err := svc.GetSeason(id)
	require.NoError(t, err)
	assert.Equal(t, id, season.ID)

	_, err = svc.GetSeason("S1999")
	assert.ErrorIs(t, err, ErrSeasonNotFound)
}

func TestCatalog_EmptyWithoutSeed(t *testing.T) {
	store, err := booking.Open(booking.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	svc := NewService(store)

	assert.Empty(t, svc.ListRaces())
	assert.Empty(t, svc.ListSeasons())
}
