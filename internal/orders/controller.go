package orders

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"grandprix/internal/shared/middleware"
	"grandprix/internal/shared/utils/response"
)

type Controller interface {
	CreateOrder(c *gin.Context)
	Purchase(c *gin.Context)
	GetMyOrders(c *gin.Context)
	GetOrder(c *gin.Context)
	AddTicket(c *gin.Context)
	RemoveTicket(c *gin.Context)
	SetPayment(c *gin.Context)
	ConfirmOrder(c *gin.Context)
	CancelOrder(c *gin.Context)
	GetAllOrders(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) CreateOrder(c *gin.Context) {
	username := c.GetString("username")

	order, err := ctrl.service.Create(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to create order", nil)
		return
	}

	response.Success(c, http.StatusCreated, "Order created successfully", order)
}

func (ctrl *controller) Purchase(c *gin.Context) {
	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	username := c.GetString("username")

	order, err := ctrl.service.Purchase(c.Request.Context(), username, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.Error(c, http.StatusNotFound, "User not found", nil)
		case errors.Is(err, ErrRaceNotFound):
			response.Error(c, http.StatusNotFound, "Race not found", nil)
		case errors.Is(err, ErrSeasonNotFound):
			response.Error(c, http.StatusNotFound, "Season not found", nil)
		case errors.Is(err, ErrInvalidPayment):
			response.Error(c, http.StatusBadRequest, "Invalid payment method", nil)
		case errors.Is(err, ErrCannotConfirm):
			response.Error(c, http.StatusConflict, "Order could not be confirmed", nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to complete purchase", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, "Purchase completed successfully", order)
}

func (ctrl *controller) GetMyOrders(c *gin.Context) {
	username := c.GetString("username")

	orders, err := ctrl.service.ListMine(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve orders", nil)
		return
	}

	response.Success(c, http.StatusOK, "Orders retrieved successfully", orders)
}

func (ctrl *controller) GetOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := ctrl.service.Get(orderID, requesterID(c), isAdmin(c))
	if err != nil {
		respondOrderError(c, err, "Failed to retrieve order")
		return
	}

	response.Success(c, http.StatusOK, "Order retrieved successfully", order)
}

func (ctrl *controller) AddTicket(c *gin.Context) {
	var req AddTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	orderID := c.Param("id")

	order, err := ctrl.service.AddTicket(c.Request.Context(), orderID, requesterID(c), req.TicketID)
	if err != nil {
		respondOrderError(c, err, "Failed to add ticket to order")
		return
	}

	response.Success(c, http.StatusOK, "Ticket added to order", order)
}

func (ctrl *controller) RemoveTicket(c *gin.Context) {
	orderID := c.Param("id")
	ticketID := c.Param("ticketId")

	order, err := ctrl.service.RemoveTicket(c.Request.Context(), orderID, requesterID(c), ticketID)
	if err != nil {
		respondOrderError(c, err, "Failed to remove ticket from order")
		return
	}

	response.Success(c, http.StatusOK, "Ticket removed from order", order)
}

func (ctrl *controller) SetPayment(c *gin.Context) {
	var req SetPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	orderID := c.Param("id")

	order, err := ctrl.service.SetPayment(c.Request.Context(), orderID, requesterID(c), req.PaymentMethod)
	if err != nil {
		respondOrderError(c, err, "Failed to set payment method")
		return
	}

	response.Success(c, http.StatusOK, "Payment method set", order)
}

func (ctrl *controller) ConfirmOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := ctrl.service.Confirm(c.Request.Context(), orderID, requesterID(c))
	if err != nil {
		respondOrderError(c, err, "Failed to confirm order")
		return
	}

	response.Success(c, http.StatusOK, "Order confirmed successfully", order)
}

func (ctrl *controller) CancelOrder(c *gin.Context) {
	orderID := c.Param("id")

	order, err := ctrl.service.Cancel(c.Request.Context(), orderID, requesterID(c), isAdmin(c))
	if err != nil {
		respondOrderError(c, err, "Failed to cancel order")
		return
	}

	response.Success(c, http.StatusOK, "Order cancelled successfully", order)
}

func (ctrl *controller) GetAllOrders(c *gin.Context) {
	orders := ctrl.service.ListAll()
	response.Success(c, http.StatusOK, "Orders retrieved successfully", orders)
}

// respondOrderError maps the shared order error set onto HTTP codes so
// each handler only deals with its own success path.
func respondOrderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, "Order not found", nil)
	case errors.Is(err, ErrTicketNotFound):
		response.Error(c, http.StatusNotFound, "Ticket not found", nil)
	case errors.Is(err, ErrTicketNotInOrder):
		response.Error(c, http.StatusNotFound, "Ticket not found in order", nil)
	case errors.Is(err, ErrNotOrderOwner):
		response.Error(c, http.StatusForbidden, "Order belongs to another user", nil)
	case errors.Is(err, ErrOrderConfirmed):
		response.Error(c, http.StatusConflict, "Order is already confirmed", nil)
	case errors.Is(err, ErrCannotConfirm):
		response.Error(c, http.StatusConflict, "Order cannot be confirmed", nil)
	case errors.Is(err, ErrCannotCancel):
		response.Error(c, http.StatusConflict, "Order cannot be cancelled", nil)
	case errors.Is(err, ErrInvalidPayment):
		response.Error(c, http.StatusBadRequest, "Invalid payment method", nil)
	default:
		response.Error(c, http.StatusInternalServerError, fallback, nil)
	}
}

func requesterID(c *gin.Context) string {
	return c.GetString("user_id")
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("user_role") == middleware.RoleAdmin
}
