package tickets

import (
	"time"

	"grandprix/internal/domain"
)

type TicketResponse struct {
	ID           string    `json:"id"`
	Kind         string    `json:"kind"`
	BasePrice    float64   `json:"base_price"`
	Price        float64   `json:"price"`
	EventDate    time.Time `json:"event_date"`
	VenueSection string    `json:"venue_section,omitempty"`
	Used         bool      `json:"used"`
	CreatedBy    string    `json:"created_by,omitempty"`
	Summary      string    `json:"summary"`

	// SingleRace fields.
	RaceName string `json:"race_name,omitempty"`
	Category string `json:"category,omitempty"`

	// Season fields.
	SeasonYear    int         `json:"season_year,omitempty"`
	IncludedRaces []string    `json:"included_races,omitempty"`
	RaceDates     []time.Time `json:"race_dates,omitempty"`
}

func NewTicketResponse(ticket domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:           ticket.ID(),
		Kind:         string(ticket.Kind()),
		BasePrice:    ticket.BasePrice(),
		Price:        ticket.CalculatePrice(),
		EventDate:    ticket.EventDate(),
		VenueSection: ticket.VenueSection(),
		Used:         ticket.IsUsed(),
		CreatedBy:    ticket.CreatedBy(),
		Summary:      ticket.Summary(),
	}

	switch t := ticket.(type) {
	case *domain.SingleRaceTicket:
		resp.RaceName = t.RaceName()
		resp.Category = t.Category().String()
	case *domain.SeasonTicket:
		resp.SeasonYear = t.SeasonYear()
		resp.IncludedRaces = t.IncludedRaces()
		resp.RaceDates = t.RaceDates()
	}

	return resp
}
