package reports

import "grandprix/internal/booking"

type SystemSummaryResponse struct {
	Name    string        `json:"name"`
	Version string        `json:"version"`
	Summary string        `json:"summary"`
	Stats   booking.Stats `json:"stats"`
}

type SalesReportResponse struct {
	TotalOrders       int     `json:"total_orders"`
	PendingOrders     int     `json:"pending_orders"`
	ConfirmedOrders   int     `json:"confirmed_orders"`
	CancelledOrders   int     `json:"cancelled_orders"`
	Revenue           float64 `json:"revenue"`
	TicketsSold       int     `json:"tickets_sold"`
	TicketsRegistered int     `json:"tickets_registered"`
	TicketsUsed       int     `json:"tickets_used"`
}
