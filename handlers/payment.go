package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courtside/services/booking"
	"courtside/utils"
)

// PaymentCallbackHandler receives the payment gateway's redirect after a
// checkout attempt and forwards the outcome to the backend through the
// booking facade.
type PaymentCallbackHandler struct {
	Bookings booking.BookingService
}

func NewPaymentCallbackHandler(bookings booking.BookingService) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{Bookings: bookings}
}

// Success finalizes the booking for a completed payment.
func (h *PaymentCallbackHandler) Success(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing payment reference", "the gateway redirect did not include a reference")
		return
	}

	if err := h.Bookings.ConfirmPayment(c.Request.Context(), reference); err != nil {
		utils.GetLogger().Error("Failed to confirm payment", zap.String("reference", reference), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, err.Error(), "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "confirmed", "reference": reference})
}

// Failure reports an aborted or declined payment.
func (h *PaymentCallbackHandler) Failure(c *gin.Context) {
	reference := c.Query("reference")
	if reference == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing payment reference", "the gateway redirect did not include a reference")
		return
	}

	if err := h.Bookings.ReportPaymentFailure(c.Request.Context(), reference); err != nil {
		utils.GetLogger().Error("Failed to report payment failure", zap.String("reference", reference), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, err.Error(), "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "failure_reported", "reference": reference})
}
