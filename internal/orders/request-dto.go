package orders

type AddTicketRequest struct {
	TicketID string `json:"ticket_id" binding:"required"`
}

// SetPaymentRequest names one of the accepted payment methods. The
// accepted set lives in the domain layer, so the value is checked there
// rather than in the binding tag.
type SetPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// PurchaseRequest drives the one-shot catalog purchase: mint tickets
// for a race or season, open an order, pay and confirm in one call.
type PurchaseRequest struct {
	ItemType      string `json:"item_type" binding:"required,oneof=race season"`
	ItemID        string `json:"item_id" binding:"required"`
	Quantity      int    `json:"quantity" binding:"required,min=1,max=10"`
	VenueSection  string `json:"venue_section" binding:"max=255"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}
