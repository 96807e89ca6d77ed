package booking

import (
	"fmt"
	"sort"
	"time"

	"grandprix/internal/domain"
)

// seedCatalogLocked fills an empty catalog with the sample race lineup
// and the season pass bundling it. Each seeded collection writes only
// its own snapshot file; nothing else is saved.
func (s *Store) seedCatalogLocked() {
	if len(s.races) == 0 {
		s.races = sampleRaces(time.Now())
		if err := s.writeSnapshotLocked(racesFile, s.races); err != nil {
			s.log.Error("failed to write race catalog", "error", err)
		}
	}
	if len(s.seasons) == 0 {
		s.seasons = sampleSeason(s.races, time.Now())
		if err := s.writeSnapshotLocked(seasonsFile, s.seasons); err != nil {
			s.log.Error("failed to write season catalog", "error", err)
		}
	}
}

// sampleRaces is the default five-race lineup, spread over the coming
// months.
func sampleRaces(now time.Time) map[string]*domain.Race {
	return map[string]*domain.Race{
		"R001": {
			ID:       "R001",
			Name:     "Monaco Grand Prix",
			Date:     domain.DateOf(now.AddDate(0, 0, 30)),
			Venue:    "Circuit de Monaco",
			Price:    300.0,
			Category: domain.CategoryPremium,
		},
		"R002": {
			ID:       "R002",
			Name:     "British Grand Prix",
			Date:     domain.DateOf(now.AddDate(0, 0, 60)),
			Venue:    "Silverstone Circuit",
			Price:    250.0,
			Category: domain.CategoryStandard,
		},
		"R003": {
			ID:       "R003",
			Name:     "Italian Grand Prix",
			Date:     domain.DateOf(now.AddDate(0, 0, 90)),
			Venue:    "Monza Circuit",
			Price:    200.0,
			Category: domain.CategoryEconomy,
		},
		"R004": {
			ID:       "R004",
			Name:     "Abu Dhabi Grand Prix",
			Date:     domain.DateOf(now.AddDate(0, 0, 120)),
			Venue:    "Yas Marina Circuit",
			Price:    280.0,
			Category: domain.CategoryPremium,
		},
		"R005": {
			ID:       "R005",
			Name:     "Singapore Grand Prix",
			Date:     domain.DateOf(now.AddDate(0, 0, 150)),
			Venue:    "Marina Bay Street Circuit",
			Price:    270.0,
			Category: domain.CategoryStandard,
		},
	}
}

// sampleSeason bundles the whole lineup into the current year's season
// pass. Races are listed in ID order.
func sampleSeason(races map[string]*domain.Race, now time.Time) map[string]*domain.Season {
	ids := make([]string, 0, len(races))
	for id := range races {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	names := make([]string, len(ids))
	dates := make([]time.Time, len(ids))
	for i, id := range ids {
		names[i] = races[id].Name
		dates[i] = races[id].Date
	}

	year := now.Year()
	seasonID := fmt.Sprintf("S%d", year)
	return map[string]*domain.Season{
		seasonID: {
			ID:        seasonID,
			Year:      year,
			Name:      fmt.Sprintf("%d Grand Prix Season", year),
			StartDate: domain.DateOf(now),
			EndDate:   domain.DateOf(now.AddDate(0, 0, 180)),
			RaceIDs:   ids,
			RaceNames: names,
			RaceDates: dates,
			Price:     1200.0,
		},
	}
}
