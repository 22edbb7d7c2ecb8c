package handlers

import (
	"errors"
	"net/http"

	"studiobook/models"
	"studiobook/services/booking"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitBookingHandler accepts a new session request.
func SubmitBookingHandler(svc booking.IntakeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.BookingRequestInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		receipt, err := svc.Submit(c.Request.Context(), input)
		if err != nil {
			var vErr *booking.ValidationError
			if errors.As(err, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
				return
			}
			var uErr *booking.UnavailableError
			if errors.As(err, &uErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": uErr.Reason})
				return
			}
			utils.GetLogger().Error("booking submit failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking. Please try again."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"bookingId": receipt.BookingID,
			"dealId":    receipt.DealID,
			"contactId": receipt.ContactID,
			"message":   "Booking request received! You will get a confirmation email once it is reviewed.",
		})
	}
}
