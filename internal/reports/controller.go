package reports

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"grandprix/internal/shared/utils/response"
)

type Controller interface {
	GetSystemSummary(c *gin.Context)
	GetSalesReport(c *gin.Context)
	ExportOrderReport(c *gin.Context)
	ExportUserReport(c *gin.Context)
	ExportAllUsersReport(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetSystemSummary(c *gin.Context) {
	response.Success(c, http.StatusOK, "System summary retrieved successfully", ctrl.service.SystemSummary())
}

func (ctrl *controller) GetSalesReport(c *gin.Context) {
	response.Success(c, http.StatusOK, "Sales report retrieved successfully", ctrl.service.SalesReport())
}

// Export handlers return the plain-text documents as attachments, the
// same files the back office used to generate by hand.

func (ctrl *controller) ExportOrderReport(c *gin.Context) {
	orderID := c.Param("id")

	report, err := ctrl.service.RenderOrderReport(orderID)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			response.Error(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to generate order report", nil)
		return
	}

	serveAttachment(c, fmt.Sprintf("Order_%s_Details.txt", orderID), report)
}

func (ctrl *controller) ExportUserReport(c *gin.Context) {
	username := c.Param("username")

	report, err := ctrl.service.RenderUserReport(username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to generate user report", nil)
		return
	}

	serveAttachment(c, fmt.Sprintf("User_%s_Data.txt", username), report)
}

func (ctrl *controller) ExportAllUsersReport(c *gin.Context) {
	serveAttachment(c, "All_Users_Data.txt", ctrl.service.RenderAllUsersReport())
}

func serveAttachment(c *gin.Context, filename, body string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.String(http.StatusOK, body)
}
