package catalog

import (
	"errors"
	"sort"

	"grandprix/internal/booking"
)

var (
	ErrRaceNotFound   = errors.New("race not found")
	ErrSeasonNotFound = errors.New("season not found")
)

type Service interface {
	ListRaces() []RaceResponse
	GetRace(raceID string) (*RaceResponse, error)
	ListSeasons() []SeasonResponse
	GetSeason(seasonID string) (*SeasonResponse, error)
}

type service struct {
	store *booking.Store
}

func NewService(store *booking.Store) Service {
	return &service{store: store}
}

func (s *service) ListRaces() []RaceResponse {
	// Pick up catalog changes dropped into the data directory by
	// other processes.
	s.store.Load()

	races := s.store.Races()
	ids := make([]string, 0, len(races))
	for id := range races {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]RaceResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewRaceResponse(races[id]))
	}
	return out
}

func (s *service) GetRace(raceID string) (*RaceResponse, error) {
	s.store.Load()

	race := s.store.Race(raceID)
	if race == nil {
		return nil, ErrRaceNotFound
	}
	resp := NewRaceResponse(race)
	return &resp, nil
}

func (s *service) ListSeasons() []SeasonResponse {
	s.store.Load()

	seasons := s.store.Seasons()
	ids := make([]string, 0, len(seasons))
	for id := range seasons {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]SeasonResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewSeasonResponse(seasons[id]))
	}
	return out
}

func (s *service) GetSeason(seasonID string) (*SeasonResponse, error) {
	s.store.Load()

	season := s.store.Season(seasonID)
	if season == nil {
		return nil, ErrSeasonNotFound
	}
	resp := NewSeasonResponse(season)
	return &resp, nil
}
