package handlers

import (
	"errors"
	"net/http"

	calendarRepo "slotify/database/repository/calendar"
	"slotify/services/calendar"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves slot booking requests.
type BookingHandler struct {
	Service calendar.CalendarService
}

// CreateBookingHandler claims a slot and records the booking. A slot that is
// already taken, or that another request claimed first, comes back as 409.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req calendar.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	booking, err := h.Service.BookSlot(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, calendar.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Slot is no longer available"})
		case errors.Is(err, calendarRepo.ErrDayNotFound), errors.Is(err, calendarRepo.ErrSlotNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			utils.GetLogger().Error("Failed to create booking",
				zap.String("serviceId", req.ServiceID), zap.String("date", req.Date), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Booking created", "booking": booking})
}
