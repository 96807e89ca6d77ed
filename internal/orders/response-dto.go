package orders

import (
	"time"

	"grandprix/internal/domain"
)

type OrderResponse struct {
	ID            string                `json:"id"`
	UserID        string                `json:"user_id"`
	Date          time.Time             `json:"date"`
	Status        string                `json:"status"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	Total         float64               `json:"total"`
	TicketCount   int                   `json:"ticket_count"`
	Tickets       []OrderTicketResponse `json:"tickets"`
	Summary       string                `json:"summary"`
}

// OrderTicketResponse is the slim ticket view embedded in an order.
// Clients that want the full ticket go through the ticket endpoints.
type OrderTicketResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Price     float64   `json:"price"`
	EventDate time.Time `json:"event_date"`
	Used      bool      `json:"used"`
}

func NewOrderResponse(o *domain.Order) OrderResponse {
	tickets := o.Tickets()
	views := make([]OrderTicketResponse, 0, len(tickets))
	for _, t := range tickets {
		views = append(views, OrderTicketResponse{
			ID:        t.ID(),
			Kind:      string(t.Kind()),
			Price:     t.CalculatePrice(),
			EventDate: t.EventDate(),
			Used:      t.IsUsed(),
		})
	}

	return OrderResponse{
		ID:            o.ID(),
		UserID:        o.UserID(),
		Date:          o.Date(),
		Status:        o.Status().String(),
		PaymentMethod: string(o.Payment()),
		Total:         o.TotalAmount(),
		TicketCount:   o.TicketCount(),
		Tickets:       views,
		Summary:       o.Summary(),
	}
}
