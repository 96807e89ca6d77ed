package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RaceCategory classifies a single race for pricing purposes.
type RaceCategory string

const (
	CategoryPremium  RaceCategory = "Premium"
	CategoryStandard RaceCategory = "Standard"
	CategoryEconomy  RaceCategory = "Economy"
)

func (c RaceCategory) IsValid() bool {
	switch c {
	case CategoryPremium, CategoryStandard, CategoryEconomy:
		return true
	}
	return false
}

func (c RaceCategory) String() string {
	return string(c)
}

// TicketKind discriminates the concrete ticket variants. There is no
// undifferentiated ticket: every purchasable ticket is either a
// single-race ticket or a season ticket.
type TicketKind string

const (
	KindSingleRace TicketKind = "SingleRace"
	KindSeason     TicketKind = "Season"
)

var (
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrRaceNameRequired  = errors.New("race name is required for a single-race ticket")
	ErrInvalidCategory   = errors.New("invalid race category")
	ErrUnknownTicketKind = errors.New("unknown ticket kind")
)

// Ticket is the common interface over the purchasable ticket variants.
//
// CalculatePrice derives the sale price from the base price and the
// variant's own modifiers. It is pure: deterministic, no side effects,
// and it never validates; the non-negative base price invariant is
// enforced by the constructors and SetBasePrice.
type Ticket interface {
	ID() string
	BasePrice() float64
	SetBasePrice(price float64) error
	EventDate() time.Time
	SetEventDate(d time.Time)
	VenueSection() string
	SetVenueSection(section string)
	IsUsed() bool
	SetUsed(used bool)
	// CreatedBy returns the username of the admin that minted this
	// ticket, or "" when it was materialized outside the mint flow.
	// It is a lookup key only; the ticket does not own the admin.
	CreatedBy() string
	SetCreatedBy(adminUsername string)
	Kind() TicketKind
	CalculatePrice() float64
	Summary() string
}

// ticketBase carries the state shared by every ticket variant.
type ticketBase struct {
	id           string
	basePrice    float64
	eventDate    time.Time
	venueSection string
	used         bool
	createdBy    string
}

func (b *ticketBase) ID() string { return b.id }

func (b *ticketBase) BasePrice() float64 { return b.basePrice }

// SetBasePrice rejects negative prices; the base price is non-negative
// at all times.
func (b *ticketBase) SetBasePrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	b.basePrice = price
	return nil
}

func (b *ticketBase) EventDate() time.Time { return b.eventDate }

func (b *ticketBase) SetEventDate(d time.Time) { b.eventDate = d }

func (b *ticketBase) VenueSection() string { return b.venueSection }

func (b *ticketBase) SetVenueSection(section string) { b.venueSection = section }

func (b *ticketBase) IsUsed() bool { return b.used }

func (b *ticketBase) SetUsed(used bool) { b.used = used }

func (b *ticketBase) CreatedBy() string { return b.createdBy }

func (b *ticketBase) SetCreatedBy(adminUsername string) { b.createdBy = adminUsername }

func (b *ticketBase) baseSummary() string {
	return fmt.Sprintf("Ticket ID: %s, Price: $%.2f, Date: %s, Section: %s",
		b.id, b.basePrice, b.eventDate.Format("2006-01-02"), b.venueSection)
}

// SingleRaceTicket is a ticket for one race at one venue section.
type SingleRaceTicket struct {
	ticketBase
	raceName string
	category RaceCategory
}

// NewSingleRaceTicket builds a single-race ticket. The race name is
// required; an empty category defaults to Standard.
func NewSingleRaceTicket(id string, basePrice float64, eventDate time.Time, venueSection, raceName string, category RaceCategory) (*SingleRaceTicket, error) {
	if basePrice < 0 {
		return nil, ErrNegativePrice
	}
	if strings.TrimSpace(raceName) == "" {
		return nil, ErrRaceNameRequired
	}
	if category == "" {
		category = CategoryStandard
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, category)
	}
	return &SingleRaceTicket{
		ticketBase: ticketBase{
			id:           id,
			basePrice:    basePrice,
			eventDate:    eventDate,
			venueSection: venueSection,
		},
		raceName: raceName,
		category: category,
	}, nil
}

func (t *SingleRaceTicket) RaceName() string { return t.raceName }

func (t *SingleRaceTicket) SetRaceName(name string) { t.raceName = name }

func (t *SingleRaceTicket) Category() RaceCategory { return t.category }

func (t *SingleRaceTicket) SetCategory(category RaceCategory) { t.category = category }

func (t *SingleRaceTicket) Kind() TicketKind { return KindSingleRace }

// CalculatePrice applies the category modifier: Premium pays 20% over
// base, Economy 10% under, Standard the base price itself.
func (t *SingleRaceTicket) CalculatePrice() float64 {
	switch t.category {
	case CategoryPremium:
		return t.basePrice * 1.2
	case CategoryEconomy:
		return t.basePrice * 0.9
	default:
		return t.basePrice
	}
}

func (t *SingleRaceTicket) Summary() string {
	return fmt.Sprintf("%s, Race: %s, Category: %s", t.baseSummary(), t.raceName, t.category)
}

// SeasonTicket bundles a list of races into one product. The event
// date holds the season start date.
type SeasonTicket struct {
	ticketBase
	seasonYear    int
	includedRaces []string
	raceDates     []time.Time
}

// NewSeasonTicket builds a season ticket. The race name and date lists
// are copied; callers keep ownership of their slices. The two lists
// are expected to run in parallel but their lengths are not enforced.
func NewSeasonTicket(id string, basePrice float64, startDate time.Time, venueSection string, seasonYear int, includedRaces []string, raceDates []time.Time) (*SeasonTicket, error) {
	if basePrice < 0 {
		return nil, ErrNegativePrice
	}
	return &SeasonTicket{
		ticketBase: ticketBase{
			id:           id,
			basePrice:    basePrice,
			eventDate:    startDate,
			venueSection: venueSection,
		},
		seasonYear:    seasonYear,
		includedRaces: append([]string(nil), includedRaces...),
		raceDates:     append([]time.Time(nil), raceDates...),
	}, nil
}

func (t *SeasonTicket) SeasonYear() int { return t.seasonYear }

func (t *SeasonTicket) SetSeasonYear(year int) { t.seasonYear = year }

func (t *SeasonTicket) IncludedRaces() []string {
	return append([]string(nil), t.includedRaces...)
}

func (t *SeasonTicket) SetIncludedRaces(races []string) {
	t.includedRaces = append([]string(nil), races...)
}

func (t *SeasonTicket) RaceDates() []time.Time {
	return append([]time.Time(nil), t.raceDates...)
}

func (t *SeasonTicket) SetRaceDates(dates []time.Time) {
	t.raceDates = append([]time.Time(nil), dates...)
}

func (t *SeasonTicket) Kind() TicketKind { return KindSeason }

// CalculatePrice discounts the base price by race count, highest tier
// first: 15+ races 30% off, 10+ races 20% off, 5+ races 10% off. Fewer
// than five races (including none) pay full price.
func (t *SeasonTicket) CalculatePrice() float64 {
	switch n := len(t.includedRaces); {
	case n >= 15:
		return t.basePrice * 0.7
	case n >= 10:
		return t.basePrice * 0.8
	case n >= 5:
		return t.basePrice * 0.9
	default:
		return t.basePrice
	}
}

func (t *SeasonTicket) Summary() string {
	races := "None"
	if len(t.includedRaces) > 0 {
		races = strings.Join(t.includedRaces, ", ")
	}
	return fmt.Sprintf("%s, Year: %d, Races: %s", t.baseSummary(), t.seasonYear, races)
}

// TicketSpec describes a ticket to mint through the admin factory.
// Kind selects the variant; the variant-specific fields that are left
// zero take the factory defaults (Standard category, the event date's
// year, empty race lists).
type TicketSpec struct {
	Kind         TicketKind
	ID           string
	BasePrice    float64
	EventDate    time.Time
	VenueSection string

	// SingleRace fields.
	RaceName     string
	RaceCategory RaceCategory

	// Season fields.
	SeasonYear    int
	IncludedRaces []string
	RaceDates     []time.Time
}

// mintTicket builds the variant spec.Kind selects. The admin gate and
// the creator stamp live on User.MintTicket.
func mintTicket(spec TicketSpec) (Ticket, error) {
	switch spec.Kind {
	case KindSingleRace:
		category := spec.RaceCategory
		if category == "" {
			category = CategoryStandard
		}
		return NewSingleRaceTicket(spec.ID, spec.BasePrice, spec.EventDate, spec.VenueSection, spec.RaceName, category)
	case KindSeason:
		year := spec.SeasonYear
		if year == 0 {
			year = spec.EventDate.Year()
		}
		return NewSeasonTicket(spec.ID, spec.BasePrice, spec.EventDate, spec.VenueSection, year, spec.IncludedRaces, spec.RaceDates)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTicketKind, spec.Kind)
	}
}
