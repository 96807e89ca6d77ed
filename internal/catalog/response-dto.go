package catalog

import (
	"time"

	"grandprix/internal/domain"
)

type RaceResponse struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Date     time.Time `json:"date"`
	Venue    string    `json:"venue"`
	Price    float64   `json:"price"`
	Category string    `json:"category"`
}

func NewRaceResponse(race *domain.Race) RaceResponse {
	return RaceResponse{
		ID:       race.ID,
		Name:     race.Name,
		Date:     race.Date,
		Venue:    race.Venue,
		Price:    race.Price,
		Category: string(race.Category),
	}
}

type SeasonResponse struct {
	ID        string    `json:"id"`
	Year      int       `json:"year"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Races     []string  `json:"races"`
	RaceCount int       `json:"race_count"`
	Price     float64   `json:"price"`
}

func NewSeasonResponse(season *domain.Season) SeasonResponse {
	names := make([]string, len(season.RaceNames))
	copy(names, season.RaceNames)
	return SeasonResponse{
		ID:        season.ID,
		Year:      season.Year,
		Name:      season.Name,
		StartDate: season.StartDate,
		EndDate:   season.EndDate,
		Races:     names,
		RaceCount: len(season.RaceIDs),
		Price:     season.Price,
	}
}
