package orders

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"grandprix/internal/booking"
	"grandprix/internal/domain"
	"grandprix/internal/shared/utils/ref"
	"grandprix/pkg/logger"
)

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrTicketNotInOrder = errors.New("ticket not found in order")
	ErrUserNotFound     = errors.New("user not found")
	ErrNotOrderOwner    = errors.New("order belongs to another user")
	ErrOrderConfirmed   = errors.New("cannot modify a confirmed order")
	ErrCannotConfirm    = errors.New("order cannot be confirmed")
	ErrCannotCancel     = errors.New("order cannot be cancelled")
	ErrInvalidPayment   = errors.New("invalid payment method")
	ErrRaceNotFound     = errors.New("race not found")
	ErrSeasonNotFound   = errors.New("season not found")
)

type Service interface {
	Create(ctx context.Context, username string) (*OrderResponse, error)
	ListMine(username string) ([]OrderResponse, error)
	ListAll() []OrderResponse
	Get(orderID, requesterID string, admin bool) (*OrderResponse, error)
	AddTicket(ctx context.Context, orderID, requesterID, ticketID string) (*OrderResponse, error)
	RemoveTicket(ctx context.Context, orderID, requesterID, ticketID string) (*OrderResponse, error)
	SetPayment(ctx context.Context, orderID, requesterID, method string) (*OrderResponse, error)
	Confirm(ctx context.Context, orderID, requesterID string) (*OrderResponse, error)
	Cancel(ctx context.Context, orderID, requesterID string, admin bool) (*OrderResponse, error)
	Purchase(ctx context.Context, username string, req *PurchaseRequest) (*OrderResponse, error)
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

func (s *service) Create(ctx context.Context, username string) (*OrderResponse, error) {
	user := s.store.GetUser(username)
	if user == nil {
		return nil, ErrUserNotFound
	}

	order := s.store.CreateOrder(user)
	s.log.LogOrderCreated(ctx, order.ID(), user.ID())

	resp := NewOrderResponse(order)
	return &resp, nil
}

// ListMine returns the user's order history in the order it was built:
// oldest first.
func (s *service) ListMine(username string) ([]OrderResponse, error) {
	// Pick up orders written by other processes before reading.
	s.store.Load()

	user := s.store.GetUser(username)
	if user == nil {
		return nil, ErrUserNotFound
	}

	history := user.Orders()
	out := make([]OrderResponse, 0, len(history))
	for _, o := range history {
		out = append(out, NewOrderResponse(o))
	}
	return out, nil
}

func (s *service) ListAll() []OrderResponse {
	s.store.Load()

	all := s.store.AllOrders()
	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return orderIDLess(ids[i], ids[j]) })

	out := make([]OrderResponse, 0, len(ids))
	for _, id := range ids {
		out = append(out, NewOrderResponse(all[id]))
	}
	return out
}

func (s *service) Get(orderID, requesterID string, admin bool) (*OrderResponse, error) {
	s.store.Load()

	order, err := s.ownedOrder(orderID, requesterID, admin)
	if err != nil {
		return nil, err
	}
	resp := NewOrderResponse(order)
	return &resp, nil
}

func (s *service) AddTicket(ctx context.Context, orderID, requesterID, ticketID string) (*OrderResponse, error) {
	order, err := s.ownedOrder(orderID, requesterID, false)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddTicketToOrder(orderID, ticketID); err != nil {
		switch {
		case errors.Is(err, booking.ErrTicketNotFound):
			return nil, ErrTicketNotFound
		case errors.Is(err, domain.ErrOrderConfirmed):
			return nil, ErrOrderConfirmed
		default:
			return nil, err
		}
	}

	resp := NewOrderResponse(order)
	return &resp, nil
}

func (s *service) RemoveTicket(ctx context.Context, orderID, requesterID, ticketID string) (*OrderResponse, error) {
	order, err := s.ownedOrder(orderID, requesterID, false)
	if err != nil {
		return nil, err
	}

	removed, err := s.store.RemoveTicketFromOrder(orderID, ticketID)
	if err != nil {
		return nil, err
	}
	if !removed {
		if order.Status() == domain.StatusConfirmed {
			return nil, ErrOrderConfirmed
		}
		return nil, ErrTicketNotInOrder
	}

	resp := NewOrderResponse(order)
	return &resp, nil
}

func (s *service) SetPayment(ctx context.Context, orderID, requesterID, method string) (*OrderResponse, error) {
	order, err := s.ownedOrder(orderID, requesterID, false)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetOrderPayment(orderID, domain.PaymentMethod(method)); err != nil {
		if errors.Is(err, domain.ErrInvalidPaymentMethod) {
			return nil, ErrInvalidPayment
		}
		return nil, err
	}

	resp := NewOrderResponse(order)
	return &resp, nil
}

func (s *service) Confirm(ctx context.Context, orderID, requesterID string) (*OrderResponse, error) {
	order, err := s.ownedOrder(orderID, requesterID, false)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.store.ConfirmOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		return nil, ErrCannotConfirm
	}

	s.log.LogOrderConfirmed(ctx, order.ID(), order.UserID(), order.TotalAmount())

	resp := NewOrderResponse(order)
	return &resp, nil
}

func (s *service) Cancel(ctx context.Context, orderID, requesterID string, admin bool) (*OrderResponse, error) {
	order, err := s.ownedOrder(orderID, requesterID, admin)
	if err != nil {
		return nil, err
	}

	cancelled, err := s.store.CancelOrder(orderID)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return nil, ErrCannotCancel
	}

	s.log.LogOrderCancelled(ctx, order.ID(), order.UserID())

	resp := NewOrderResponse(order)
	return &resp, nil
}

// Purchase is the one-call storefront flow: mint tickets straight off
// the catalog item, open an order, add them, pay and confirm. Tickets
// minted here carry no creator stamp; they are system-issued, not
// admin-issued.
func (s *service) Purchase(ctx context.Context, username string, req *PurchaseRequest) (*OrderResponse, error) {
	user := s.store.GetUser(username)
	if user == nil {
		return nil, ErrUserNotFound
	}

	payment := domain.PaymentMethod(req.PaymentMethod)
	if !payment.IsValid() {
		return nil, ErrInvalidPayment
	}

	section := req.VenueSection
	if section == "" {
		section = "General"
	}

	// Catalog files may have been refreshed by another process.
	s.store.Load()

	tickets, err := s.mintForItem(req, section)
	if err != nil {
		return nil, err
	}
	for _, t := range tickets {
		if err := s.store.RegisterTicket(t); err != nil {
			return nil, err
		}
	}

	order := s.store.CreateOrder(user)
	s.log.LogOrderCreated(ctx, order.ID(), user.ID())

	for _, t := range tickets {
		if err := s.store.AddTicketToOrder(order.ID(), t.ID()); err != nil {
			return nil, err
		}
	}
	if err := s.store.SetOrderPayment(order.ID(), payment); err != nil {
		return nil, err
	}

	confirmed, err := s.store.ConfirmOrder(order.ID())
	if err != nil {
		return nil, err
	}
	if !confirmed {
		// The order stays pending; the client can adjust it through
		// the regular order endpoints and confirm again.
		return nil, ErrCannotConfirm
	}

	s.log.LogOrderConfirmed(ctx, order.ID(), user.ID(), order.TotalAmount())

	resp := NewOrderResponse(order)
	return &resp, nil
}

func (s *service) mintForItem(req *PurchaseRequest, section string) ([]domain.Ticket, error) {
	out := make([]domain.Ticket, 0, req.Quantity)

	switch req.ItemType {
	case "race":
		race := s.store.Race(req.ItemID)
		if race == nil {
			return nil, ErrRaceNotFound
		}
		for i := 0; i < req.Quantity; i++ {
			t, err := domain.NewSingleRaceTicket(ref.New("RACE"), race.Price, race.Date, section, race.Name, race.Category)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil

	case "season":
		season := s.store.Season(req.ItemID)
		if season == nil {
			return nil, ErrSeasonNotFound
		}
		for i := 0; i < req.Quantity; i++ {
			t, err := domain.NewSeasonTicket(ref.New("SEASON"), season.Price, season.StartDate, section,
				season.Year, season.RaceNames, season.RaceDates)
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		return out, nil

	default:
		return nil, ErrRaceNotFound
	}
}

func (s *service) ownedOrder(orderID, requesterID string, admin bool) (*domain.Order, error) {
	order := s.store.GetOrder(orderID)
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !admin && order.UserID() != requesterID {
		return nil, ErrNotOrderOwner
	}
	return order, nil
}

// orderIDLess sorts ORD-<n> identifiers numerically so ORD-2 comes
// before ORD-10. Foreign identifiers fall back to a string compare.
func orderIDLess(a, b string) bool {
	an, aok := orderSeqOf(a)
	bn, bok := orderSeqOf(b)
	if aok && bok {
		return an < bn
	}
	if aok != bok {
		return aok
	}
	return a < b
}

func orderSeqOf(id string) (uint64, bool) {
	rest, ok := strings.CutPrefix(id, "ORD-")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
