package domain

import "time"

// Race is a catalog entry customers browse and buy single-race tickets
// against. It carries the advertised base price; the sale price still
// goes through the ticket's category modifier.
type Race struct {
	ID       string       `cbor:"id" json:"id"`
	Name     string       `cbor:"name" json:"name"`
	Date     time.Time    `cbor:"date" json:"date"`
	Venue    string       `cbor:"venue" json:"venue"`
	Price    float64      `cbor:"price" json:"price"`
	Category RaceCategory `cbor:"category" json:"category"`
}

// Season is a catalog entry bundling several races. The race ID, name
// and date slices run in parallel.
type Season struct {
	ID        string      `cbor:"id" json:"id"`
	Year      int         `cbor:"year" json:"year"`
	Name      string      `cbor:"name" json:"name"`
	StartDate time.Time   `cbor:"start_date" json:"start_date"`
	EndDate   time.Time   `cbor:"end_date" json:"end_date"`
	RaceIDs   []string    `cbor:"race_ids" json:"race_ids"`
	RaceNames []string    `cbor:"race_names" json:"race_names"`
	RaceDates []time.Time `cbor:"race_dates" json:"race_dates"`
	Price     float64     `cbor:"price" json:"price"`
}
