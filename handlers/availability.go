package handlers

import (
	"net/http"

	"slotify/services/calendar"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler serves the slot calendar endpoints.
type CalendarHandler struct {
	Service calendar.CalendarService
}

// GetDaySlotsHandler returns the full persisted slot list for one date,
// including slots already booked.
func (h *CalendarHandler) GetDaySlotsHandler(c *gin.Context) {
	serviceID := c.Param("serviceID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	day, err := h.Service.GetDaySlots(c.Request.Context(), serviceID, date)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch day slots", zap.String("serviceId", serviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch slots", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

// GetAvailableSlotsHandler returns only the slots still open for booking.
func (h *CalendarHandler) GetAvailableSlotsHandler(c *gin.Context) {
	serviceID := c.Param("serviceID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	day, err := h.Service.GetAvailableSlots(c.Request.Context(), serviceID, date)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch availability", zap.String("serviceId", serviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch availability", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

// GetLiveAvailabilityHandler recomputes open slots from current bookings
// instead of the persisted flags.
func (h *CalendarHandler) GetLiveAvailabilityHandler(c *gin.Context) {
	serviceID := c.Param("serviceID")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date query parameter"})
		return
	}

	live, err := h.Service.GetLiveAvailability(c.Request.Context(), serviceID, date)
	if err != nil {
		utils.GetLogger().Error("Failed to compute live availability", zap.String("serviceId", serviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, live)
}
