package handlers

import (
	"errors"
	"net/http"

	"studiobook/models"
	"studiobook/services/calendar"
	"studiobook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpsertCalendarDayHandler writes an administrator day override.
func UpsertCalendarDayHandler(svc calendar.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.CalendarDayInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		day, err := svc.UpsertDay(c.Request.Context(), input)
		if err != nil {
			var vErr *calendar.ValidationError
			if errors.As(err, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
				return
			}
			utils.GetLogger().Error("calendar day upsert failed",
				zap.String("date", input.Date), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update calendar day"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "day": day})
	}
}
