package handlers

import (
	"errors"
	"net/http"

	"studiobook/services/calendar"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MonthViewHandler serves the derived month calendar.
func MonthViewHandler(svc calendar.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		month := c.Query("month")
		if month == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month query parameter is required (YYYY-MM)"})
			return
		}

		view, err := svc.MonthView(c.Request.Context(), month)
		if err != nil {
			var vErr *calendar.ValidationError
			if errors.As(err, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
				return
			}
			utils.GetLogger().Error("month view failed", zap.String("month", month), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load calendar"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// AvailableSlotsHandler lists the open start times on one date.
func AvailableSlotsHandler(svc calendar.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required (YYYY-MM-DD)"})
			return
		}

		slots, err := svc.AvailableSlots(c.Request.Context(), date)
		if err != nil {
			var vErr *calendar.ValidationError
			if errors.As(err, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
				return
			}
			utils.GetLogger().Error("slot listing failed", zap.String("date", date), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load available slots"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"date": date, "availableSlots": slots})
	}
}
