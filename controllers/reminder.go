// controllers/reminder.go
package controllers

import (
	"net/http"

	"studio-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	*Deps
}

// RunReminders sends tomorrow's booking reminders now instead of waiting
// for the scheduler.
func (rc *ReminderController) RunReminders(c *gin.Context) {
	if rc.Reminders == nil {
		utils.RespondWithError(c, http.StatusServiceUnavailable, "Reminders are not configured")
		return
	}
	res, err := rc.Reminders.SendDailyReminders(c.Request.Context(), rc.now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send reminders")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetMessages lists outbound message attempts, newest first. ?kind=
// filters by reminder or report.
func (rc *ReminderController) GetMessages(c *gin.Context) {
	logs, err := rc.Store.ListMessageLogs(c.Request.Context(), c.Query("kind"))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve messages")
		return
	}
	c.JSON(http.StatusOK, logs)
}
