package tickets

import "time"

// MintTicketRequest carries everything the registry needs to mint a
// ticket. Kind selects the variant; the variant-specific blocks are
// validated by the service, not the binding layer, because which block
// is required depends on Kind.
type MintTicketRequest struct {
	TicketID     string    `json:"ticket_id" binding:"omitempty,min=3,max=50"`
	Kind         string    `json:"kind" binding:"required,oneof=SingleRace Season"`
	BasePrice    float64   `json:"base_price" binding:"min=0"`
	EventDate    time.Time `json:"event_date" binding:"required"`
	VenueSection string    `json:"venue_section" binding:"max=255"`

	// SingleRace fields.
	RaceName string `json:"race_name" binding:"omitempty,max=255"`
	Category string `json:"category" binding:"omitempty,oneof=Premium Standard Economy"`

	// Season fields.
	SeasonYear    int         `json:"season_year" binding:"omitempty,min=1950,max=2100"`
	IncludedRaces []string    `json:"included_races" binding:"omitempty,max=25"`
	RaceDates     []time.Time `json:"race_dates" binding:"omitempty,max=25"`
}
