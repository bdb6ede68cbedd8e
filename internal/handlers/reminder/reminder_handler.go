// internal/handlers/reminder/reminder_handler.go
package reminder

import (
	"net/http"

	"github.com/gryphathie/KombuchaApp/internal/domain/reminder"
	"github.com/gryphathie/KombuchaApp/internal/pkg/response"
	service "github.com/gryphathie/KombuchaApp/internal/service/reminder"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct {
	reminderService *service.ReminderService
}

func NewReminderHandler(reminderService *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
	}
}

// ListReminders recomputes and returns the full reminder list with badge
// stats, ordered by urgency.
func (h *ReminderHandler) ListReminders(c *gin.Context) {
	reminders, stats, err := h.reminderService.LoadReminders(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to load reminders", err)
		return
	}

	response.Success(c, http.StatusOK, "reminders loaded", reminder.ReminderListResponse{
		Reminders: reminders,
		Stats:     stats,
	})
}

// Stats returns the badge counts. The UI polls this endpoint for the bell.
func (h *ReminderHandler) Stats(c *gin.Context) {
	stats, err := h.reminderService.Stats(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to load reminder stats", err)
		return
	}

	response.Success(c, http.StatusOK, "stats loaded", stats)
}

// Calendar returns the 42-cell month grid for ?month=YYYY-MM, defaulting to
// the current month.
func (h *ReminderHandler) Calendar(c *gin.Context) {
	cal, err := h.reminderService.Calendar(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.FromError(c, "failed to build calendar", err)
		return
	}

	response.Success(c, http.StatusOK, "calendar built", cal)
}

// SetStatus records an operator action (contacted, dismissed, or back to
// pending) on one reminder.
func (h *ReminderHandler) SetStatus(c *gin.Context) {
	var req reminder.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.reminderService.SetStatus(c.Request.Context(), c.Param("identity"), req.Status, req.Notes)
	if err != nil {
		response.FromError(c, "failed to update reminder status", err)
		return
	}

	response.Success(c, http.StatusOK, "reminder status updated", result)
}
