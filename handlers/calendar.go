package handlers

import (
	"errors"
	"net/http"

	calendarRepo "slotify/database/repository/calendar"
	"slotify/models"
	"slotify/services/calendar"
	"slotify/services/slots"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type publishCalendarRequest struct {
	ProviderID      string               `json:"providerId" binding:"required"`
	ServiceName     string               `json:"serviceName" binding:"required"`
	ServiceDuration int                  `json:"serviceDuration" binding:"required"`
	WorkingHours    *models.WorkingHours `json:"workingHours"`
	NumberOfDays    int                  `json:"numberOfDays"`
	// BufferMinutes is a pointer so an explicit zero survives binding.
	BufferMinutes *int `json:"bufferMinutes"`
}

// PublishCalendarHandler (re)generates the rolling calendar for one service.
func (h *CalendarHandler) PublishCalendarHandler(c *gin.Context) {
	serviceID := c.Param("serviceID")

	var req publishCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	cfg := models.SlotGenerationConfig{
		ServiceID:       serviceID,
		ProviderID:      req.ProviderID,
		ServiceName:     req.ServiceName,
		ServiceDuration: req.ServiceDuration,
		WorkingHours:    calendar.DefaultWorkingHours,
		NumberOfDays:    req.NumberOfDays,
		BufferMinutes:   models.DefaultBufferMinutes,
	}
	if req.WorkingHours != nil {
		cfg.WorkingHours = *req.WorkingHours
	}
	if req.BufferMinutes != nil {
		cfg.BufferMinutes = *req.BufferMinutes
	}

	days, err := h.Service.PublishCalendar(c.Request.Context(), cfg)
	if err != nil {
		var vErr *slots.ValidationError
		var fErr *slots.FormatError
		if errors.As(err, &vErr) || errors.As(err, &fErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid calendar configuration", "message": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to publish calendar", zap.String("serviceId", serviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish calendar", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Calendar published",
		"serviceId": serviceID,
		"days":      days,
	})
}

// GetServiceCalendarHandler returns every persisted day of a service.
func (h *CalendarHandler) GetServiceCalendarHandler(c *gin.Context) {
	serviceID := c.Param("serviceID")

	records, err := h.Service.GetServiceCalendar(c.Request.Context(), serviceID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch calendar", zap.String("serviceId", serviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch calendar", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceId": serviceID, "days": records, "total": len(records)})
}

// ClearCalendarHandler empties the slot lists of a deactivated service.
func (h *CalendarHandler) ClearCalendarHandler(c *gin.Context) {
	serviceID := c.Param("serviceID")

	cleared, err := h.Service.ClearCalendar(c.Request.Context(), serviceID)
	if err != nil {
		utils.GetLogger().Error("Failed to clear calendar", zap.String("serviceId", serviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear calendar", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Calendar cleared", "serviceId": serviceID, "days": cleared})
}

type toggleSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	Available *bool  `json:"available" binding:"required"`
}

// SetSlotAvailabilityHandler toggles one slot. Toggling to the current value
// is reported as changed=false, not an error.
func (h *CalendarHandler) SetSlotAvailabilityHandler(c *gin.Context) {
	serviceID := c.Param("serviceID")

	var req toggleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	changed, err := h.Service.SetSlotAvailability(c.Request.Context(), serviceID, req.Date, req.Time, *req.Available)
	if err != nil {
		if errors.Is(err, calendarRepo.ErrDayNotFound) || errors.Is(err, calendarRepo.ErrSlotNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		utils.GetLogger().Error("Failed to toggle slot",
			zap.String("serviceId", serviceID), zap.String("date", req.Date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update slot", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"serviceId": serviceID, "date": req.Date, "time": req.Time, "changed": changed})
}
