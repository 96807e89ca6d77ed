package tickets

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"grandprix/internal/domain"
	"grandprix/internal/shared/utils/response"
)

type Controller interface {
	MintTicket(c *gin.Context)
	ListTickets(c *gin.Context)
	GetTicket(c *gin.Context)
	ToggleUsed(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) MintTicket(c *gin.Context) {
	var req MintTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	adminUsername := c.GetString("username")

	ticket, err := ctrl.service.Mint(c.Request.Context(), adminUsername, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAdminRequired):
			response.Error(c, http.StatusForbidden, "Admin privileges required", nil)
		case errors.Is(err, ErrTicketExists):
			response.Error(c, http.StatusConflict, "Ticket ID already exists", nil)
		case errors.Is(err, domain.ErrNegativePrice),
			errors.Is(err, domain.ErrRaceNameRequired),
			errors.Is(err, domain.ErrInvalidCategory),
			errors.Is(err, domain.ErrUnknownTicketKind):
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to mint ticket", nil)
		}
		return
	}

	response.Success(c, http.StatusCreated, "Ticket registered successfully", ticket)
}

func (ctrl *controller) ListTickets(c *gin.Context) {
	tickets := ctrl.service.List()
	response.Success(c, http.StatusOK, "Tickets retrieved successfully", tickets)
}

func (ctrl *controller) GetTicket(c *gin.Context) {
	ticketID := c.Param("id")

	ticket, err := ctrl.service.Get(ticketID)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.Error(c, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to retrieve ticket", nil)
		return
	}

	response.Success(c, http.StatusOK, "Ticket retrieved successfully", ticket)
}

func (ctrl *controller) ToggleUsed(c *gin.Context) {
	ticketID := c.Param("id")

	ticket, err := ctrl.service.ToggleUsed(c.Request.Context(), ticketID)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.Error(c, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to update ticket", nil)
		return
	}

	response.Success(c, http.StatusOK, "Ticket updated successfully", ticket)
}
