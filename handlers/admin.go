package handlers

import (
	"net/http"

	"slotify/cron"
	"slotify/services/calendar"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AdminHandler serves the key-protected administrative surface.
type AdminHandler struct {
	Migration   calendar.MigrationService
	QueueClient *asynq.Client
}

// MigrateCalendarsHandler runs the full calendar regeneration pass inline and
// returns the summary. The pass is throttled, so large fleets take a while.
func (h *AdminHandler) MigrateCalendarsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	result, err := h.Migration.RegenerateAllCalendars(c.Request.Context(), func(current, total int, name string) {
		logger.Info("calendar migration progress",
			zap.Int("current", current), zap.Int("total", total), zap.String("service", name))
	})
	if err != nil {
		logger.Error("Calendar migration aborted", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Migration failed", "message": err.Error()})
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusMultiStatus
	}
	c.JSON(status, result)
}

// RefreshCalendarHandler enqueues an asynchronous rebuild of one service
// calendar instead of blocking the request on the bulk write.
func (h *AdminHandler) RefreshCalendarHandler(c *gin.Context) {
	serviceID := c.Param("serviceID")
	if serviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing service ID in path"})
		return
	}

	if err := cron.EnqueueRefresh(h.QueueClient, serviceID); err != nil {
		utils.GetLogger().Error("Failed to enqueue calendar refresh",
			zap.String("serviceId", serviceID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue refresh", "message": err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Calendar refresh queued", "serviceId": serviceID})
}
