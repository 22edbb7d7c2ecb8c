package handlers

import (
	"fmt"
	"net/http"

	"studiobook/services/booking"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApproveBookingHandler resolves an approval link.
func ApproveBookingHandler(svc booking.ApprovalService) gin.HandlerFunc {
	return resolveHandler(svc, booking.ActionApprove)
}

// DenyBookingHandler resolves a denial link.
func DenyBookingHandler(svc booking.ApprovalService) gin.HandlerFunc {
	return resolveHandler(svc, booking.ActionDeny)
}

func resolveHandler(svc booking.ApprovalService, action booking.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			renderErrorPage(c, http.StatusBadRequest, "Missing Token",
				"This link is missing its approval token.")
			return
		}

		res, err := svc.Resolve(c.Request.Context(), token, action)
		if err != nil {
			utils.GetLogger().Error("approval resolve failed",
				zap.String("action", string(action)), zap.Error(err))
		}

		switch res.Outcome {
		case booking.OutcomeSucceeded:
			if action == booking.ActionApprove {
				renderSuccessPage(c, "Booking Approved",
					fmt.Sprintf("The session for %s on %s (%s - %s) is confirmed. The client has been notified.",
						res.Booking.ClientName, res.Booking.BookingDate, res.Booking.StartTime, res.Booking.EndTime))
			} else {
				renderSuccessPage(c, "Booking Denied",
					fmt.Sprintf("The request from %s for %s has been declined. The client has been notified.",
						res.Booking.ClientName, res.Booking.BookingDate))
			}

		case booking.OutcomeAlreadyProcessed:
			status := "processed"
			if res.Booking != nil {
				status = res.Booking.ApprovalStatus
			}
			renderInfoPage(c, "Already Processed",
				fmt.Sprintf("This booking has already been %s. No further action is needed.", status))

		case booking.OutcomeNotFound:
			renderErrorPage(c, http.StatusNotFound, "Invalid Link",
				"Invalid or expired approval link.")

		case booking.OutcomeExpired:
			renderErrorPage(c, http.StatusGone, "Link Expired",
				"This approval link has expired. The booking is still pending; please handle it from the admin calendar.")

		default:
			renderErrorPage(c, http.StatusInternalServerError, "Something Went Wrong",
				"The booking could not be updated. Please try the link again in a moment.")
		}
	}
}
