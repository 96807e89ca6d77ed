package tickets

import (
	"context"
	"errors"
	"sort"

	"grandprix/internal/booking"
	"grandprix/internal/domain"
	"grandprix/internal/shared/utils/ref"
	"grandprix/pkg/logger"
)

var (
	ErrAdminRequired  = errors.New("admin privileges required")
	ErrTicketExists   = errors.New("ticket ID already exists")
	ErrTicketNotFound = errors.New("ticket not found")
)

type Service interface {
	Mint(ctx context.Context, adminUsername string, req *MintTicketRequest) (*TicketResponse, error)
	List() []TicketResponse
	Get(ticketID string) (*TicketResponse, error)
	ToggleUsed(ctx context.Context, ticketID string) (*TicketResponse, error)
}

type service struct {
	store *booking.Store
	log   *logger.Logger
}

func NewService(store *booking.Store) Service {
	return &service{
		store: store,
		log:   logger.GetDefault(),
	}
}

// Mint builds the requested ticket through the admin's factory and
// registers it. The route is already admin-gated; the lookup here binds
// the creator stamp to a real account rather than trusting the token
// alone.
func (s *service) Mint(ctx context.Context, adminUsername string, req *MintTicketRequest) (*TicketResponse, error) {
	admin := s.store.GetAdmin(adminUsername)
	if admin == nil {
		return nil, ErrAdminRequired
	}

	ticketID := req.TicketID
	if ticketID == "" {
		ticketID = ref.New("TKT")
	}

	ticket, err := admin.MintTicket(domain.TicketSpec{
		Kind:         domain.TicketKind(req.Kind),
		ID:           ticketID,
		BasePrice:    req.BasePrice,
		EventDate:    req.EventDate,
		VenueSection: req.VenueSection,

		RaceName:     req.RaceName,
		RaceCategory: domain.RaceCategory(req.Category),

		SeasonYear:    req.SeasonYear,
		IncludedRaces: req.IncludedRaces,
		RaceDates:     req.RaceDates,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.RegisterTicket(ticket); err != nil {
		if errors.Is(err, booking.ErrTicketExists) {
			return nil, ErrTicketExists
		}
		return nil, err
	}

	s.log.LogTicketRegistered(ctx, ticket.ID(), string(ticket.Kind()), adminUsername)

	resp := NewTicketResponse(ticket)
	return &resp, nil
}

func (s *service) List() []TicketResponse {
	// Pick up tickets registered by other processes before reading.
	s.store.Load()

	all := s.store.AllTickets()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]TicketResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewTicketResponse(all[id]))
	}
	return out
}

func (s *service) Get(ticketID string) (*TicketResponse, error) {
	s.store.Load()

	ticket := s.store.GetTicket(ticketID)
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	resp := NewTicketResponse(ticket)
	return &resp, nil
}

// ToggleUsed flips the used flag and reports the ticket's new state.
func (s *service) ToggleUsed(ctx context.Context, ticketID string) (*TicketResponse, error) {
	if _, err := s.store.ToggleTicketUsed(ticketID); err != nil {
		if errors.Is(err, booking.ErrTicketNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	ticket := s.store.GetTicket(ticketID)
	if ticket == nil {
		return nil, ErrTicketNotFound
	}
	resp := NewTicketResponse(ticket)
	return &resp, nil
}
