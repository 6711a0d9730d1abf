package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"studio-backend/access"
	"studio-backend/config"
	"studio-backend/services"
	"studio-backend/session"
	"studio-backend/store"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Deps is shared by every controller.
type Deps struct {
	Store      *store.Store
	Replica    *store.Replica
	Gate       access.Gate
	Sessions   *session.Registry
	Reminders  *services.ReminderService
	Dispatcher *services.ReportDispatcher
	Studio     config.StudioConfig
	JWT        config.JWTConfig
	Clock      func() time.Time
}

// now returns the current time in the studio's time zone.
func (d *Deps) now() time.Time {
	t := time.Now()
	if d.Clock != nil {
		t = d.Clock()
	}
	if d.Studio.Location != nil {
		t = t.In(d.Studio.Location)
	}
	return t
}

func (d *Deps) location() *time.Location {
	if d.Studio.Location != nil {
		return d.Studio.Location
	}
	return time.Local
}

func parseID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+what+" ID format")
		return uuid.Nil, false
	}
	return id, true
}

// requireConfirm guards destructive endpoints with ?confirm=true.
func requireConfirm(c *gin.Context) bool {
	if ok, _ := strconv.ParseBool(c.Query("confirm")); !ok {
		utils.RespondWithError(c, http.StatusPreconditionRequired, "Confirmation required: repeat with ?confirm=true")
		return false
	}
	return true
}

func offsetParam(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("offset", "0")
	offset, err := strconv.Atoi(raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid offset")
		return 0, false
	}
	return offset, true
}

// respondStoreError maps persistence failures to a status code.
func respondStoreError(c *gin.Context, err error, what string) {
	if errors.Is(err, store.ErrNotFound) {
		utils.RespondWithError(c, http.StatusNotFound, what+" not found")
		return
	}
	utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save "+what)
}
